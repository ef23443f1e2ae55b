package opts

import (
	"github.com/walteh/publishrc/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ManifestPath string
	UserLogger   *status.UserLogger
	Formatter    *status.Formatter
}
