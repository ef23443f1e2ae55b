package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/publishrc/cmd/publishrc/opts"
	"github.com/walteh/publishrc/pkg/manifest"
	"github.com/walteh/publishrc/pkg/namespace"
	"gitlab.com/tozd/go/errors"
)

// NewResolveCmd creates a new resolve command
func NewResolveCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Print the namespace the autoload table assigns to a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			m, err := manifest.Load(ctx, ro.ManifestPath)
			if err != nil {
				return errors.Errorf("loading manifest: %w", err)
			}

			ns, err := namespace.Resolve(m.Autoload, args[0])
			if err != nil {
				return errors.Errorf("resolving namespace: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), ns)
			return nil
		},
	}

	return cmd
}
