package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/publishrc/cmd/publishrc/opts"
)

var (
	// Flags
	manifestFile string
	debug        bool
)

// addRootFlags adds shared flags to the root command and wires them into the
// root options each command receives.
func addRootFlags(cmd *cobra.Command, ro *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&manifestFile, "manifest", "c", ".publishrc.yaml", "manifest file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		ro.ManifestPath = manifestFile
	}
}

// setupLogging configures the zerolog console logger and stores it in ctx.
func setupLogging(ctx context.Context) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
