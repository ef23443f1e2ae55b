package commands

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/publishrc/cmd/publishrc/opts"
	"github.com/walteh/publishrc/pkg/manifest"
	"github.com/walteh/publishrc/pkg/namespace"
	"github.com/walteh/publishrc/pkg/publish"
	"github.com/walteh/publishrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewPublishCmd creates a new publish command
func NewPublishCmd(ro *opts.RootOpts) *cobra.Command {
	var destination string
	var async bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the manifest's source trees into the project",
		Long: `Publish copies each source tree named in the manifest into its
destination directory. For every entry it:
1. Resolves the base namespace from the autoload table (unless the entry
   pins one explicitly)
2. Mirrors the tree into the destination
3. Rewrites each file's namespace declaration to match its location`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			m, err := manifest.Load(ctx, ro.ManifestPath)
			if err != nil {
				return errors.Errorf("loading manifest: %w", err)
			}

			if m.Flags.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			runner := publish.NewRunner(zerolog.Ctx(ctx), async || m.Flags.Async)

			for _, entry := range m.Publishes {
				dest := entry.Destination
				if destination != "" {
					dest = destination
				}

				ns := entry.Namespace
				if ns == "" {
					ns, err = namespace.Resolve(m.Autoload, dest)
					if err != nil {
						return errors.Errorf("resolving namespace for %s: %w", dest, err)
					}
				}

				if err := publishEntry(cmd, ro, runner, entry, dest, ns); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&destination, "destination", "", "override the destination path for all entries")
	cmd.Flags().BoolVar(&async, "async", false, "run each publish on its own goroutine")

	return cmd
}

// publishEntry publishes one manifest entry and reports progress.
func publishEntry(cmd *cobra.Command, ro *opts.RootOpts, runner *publish.Runner, entry *manifest.PublishEntry, dest, ns string) error {
	ctx := cmd.Context()

	ro.UserLogger.LogPublishStart(entry.Source, dest, ns)
	ro.Formatter.StartPublish(entry.Source, dest, ns)

	pub := publish.New(publish.Options{
		Namespace: ns,
		Ignore:    entry.Ignore,
		OnFile: func(ev publish.FileEvent) {
			if ev.Skipped {
				rel := relPath(entry.Source, ev.SourcePath)
				ro.Formatter.LogFileOperation(status.FileOperation{
					Path:      rel,
					IsSkipped: true,
				})
				ro.UserLogger.LogFileEvent(status.FileEvent{
					Type: status.FileSkipped,
					Path: ev.SourcePath,
				})
				return
			}

			rel := relPath(dest, ev.DestPath)
			ro.Formatter.LogFileOperation(status.FileOperation{
				Path:        rel,
				Namespace:   ev.Namespace,
				IsRewritten: ev.Rewritten,
			})

			eventType := status.FilePublished
			if ev.Rewritten {
				eventType = status.FileRewritten
			}
			ro.UserLogger.LogFileEvent(status.FileEvent{
				Type:      eventType,
				Path:      ev.DestPath,
				Namespace: ev.Namespace,
			})
		},
	})

	err := runner.Run(ctx, publish.OperationFunc(func(ctx context.Context) error {
		return pub.Publish(ctx, entry.Source, dest)
	}))

	ro.UserLogger.LogPublishDone(dest, ro.Formatter.PublishedCount(), err)
	ro.Formatter.EndPublish()

	if err != nil {
		return errors.Errorf("publishing %s: %w", entry.Source, err)
	}
	return nil
}

// relPath returns path relative to root, falling back to path itself.
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
