package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/publishrc/cmd/publishrc/commands"
	"github.com/walteh/publishrc/cmd/publishrc/opts"
	"github.com/walteh/publishrc/pkg/status"
)

func main() {
	// Setup logging
	ctx := setupLogging(context.Background())

	// Create user logger
	userLogger := status.NewUserLogger(ctx)

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "publishrc",
		Short: "A tool for publishing source trees into consumer projects",
		Long: `publishrc copies a package's source tree into a consumer project and
rewrites each file's namespace declaration to match its destination within
the project's PSR-4-style autoload mapping.`,
	}

	// Create root options
	ro := &opts.RootOpts{
		UserLogger: userLogger,
		Formatter:  status.NewFormatter(os.Stdout),
	}

	// Add shared flags
	addRootFlags(rootCmd, ro)

	// Add commands
	rootCmd.AddCommand(
		commands.NewPublishCmd(ro),
		commands.NewResolveCmd(ro),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogPublishDone("", 0, err)
		os.Exit(1)
	}
}
