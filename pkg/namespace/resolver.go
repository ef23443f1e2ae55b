// Package namespace maps filesystem locations onto logical namespaces and
// rewrites namespace declarations inside published files.
package namespace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/walteh/publishrc/pkg/manifest"
	"gitlab.com/tozd/go/errors"
)

// Separator joins namespace segments, PSR-4 style.
const Separator = `\`

var (
	// ErrMappingNotFound means no autoload entry's path contains the queried path.
	ErrMappingNotFound = errors.Base("no namespace mapping matches path")

	// ErrCreatingDirectory means the queried path could not be created on disk.
	ErrCreatingDirectory = errors.Base("creating directory")
)

// Resolve determines the namespace the autoload table assigns to targetPath.
// The directory is created first if it does not exist, since resolution works
// on canonical paths. Entries are tried in insertion order and the first one
// whose path contains targetPath wins, even when a later entry is a longer,
// more specific prefix. Entries whose path does not exist on disk are not
// candidates.
func Resolve(mapping manifest.Mapping, targetPath string) (string, error) {
	if err := os.MkdirAll(targetPath, 0755); err != nil {
		return "", errors.Errorf("%w %s: %w", ErrCreatingDirectory, targetPath, err)
	}

	canonical, err := canonicalize(targetPath)
	if err != nil {
		return "", errors.Errorf("%w: %s", ErrMappingNotFound, targetPath)
	}

	for _, entry := range mapping {
		base, err := canonicalize(entry.Path)
		if err != nil {
			continue
		}

		rel, ok := trimPathPrefix(canonical, base)
		if !ok {
			continue
		}

		ns := strings.TrimSuffix(entry.Prefix, Separator)
		if rel != "" {
			segments := strings.Split(rel, string(filepath.Separator))
			ns = Join(ns, segments...)
		}
		return ns, nil
	}

	return "", errors.Errorf("%w: %s", ErrMappingNotFound, targetPath)
}

// Join appends segments to base with the namespace separator.
func Join(base string, segments ...string) string {
	if len(segments) == 0 {
		return base
	}
	return base + Separator + strings.Join(segments, Separator)
}

// canonicalize returns the absolute, symlink-resolved form of path. It fails
// when the path does not exist.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Errorf("resolving absolute path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Errorf("resolving canonical path: %w", err)
	}

	return resolved, nil
}

// trimPathPrefix reports whether target lives under base and returns the
// remainder with leading separators trimmed. The match must end at a path
// segment boundary: base /var/www/app contains /var/www/app/Controllers but
// never /var/www/applib.
func trimPathPrefix(target, base string) (string, bool) {
	if target == base {
		return "", true
	}

	prefix := base
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(target, prefix) {
		return "", false
	}

	return strings.TrimLeft(target[len(prefix):], string(filepath.Separator)), true
}
