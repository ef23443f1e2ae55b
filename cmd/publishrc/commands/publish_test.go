package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/publishrc/cmd/publishrc/opts"
	"github.com/walteh/publishrc/pkg/status"
)

func TestPublishCmd(t *testing.T) {
	root := t.TempDir()

	srcDir := filepath.Join(root, "vendor-src")
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "Subdir"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(srcDir, "file1.php"),
		[]byte("<?php\n\nnamespace Old;\n\nclass One {}\n"), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(srcDir, "Subdir", "file2.php"),
		[]byte("<?php\n\nnamespace Old\\Subdir;\n\nclass Two {}\n"), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(srcDir, "junk.tmp"),
		[]byte("scratch"), 0644))

	projSrc := filepath.Join(root, "project", "src")
	require.NoError(t, os.MkdirAll(projSrc, 0755))
	dest := filepath.Join(projSrc, "Widgets")

	manifestPath := filepath.Join(root, "manifest.yaml")
	content := fmt.Sprintf(`autoload:
  'App\': %s
publish:
  - source: %s
    destination: %s
    ignore:
      - '*.tmp'
`, projSrc, srcDir, dest)
	require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0644))

	var report bytes.Buffer
	ro := &opts.RootOpts{
		ManifestPath: manifestPath,
		UserLogger:   status.NewUserLogger(context.Background()),
		Formatter:    status.NewFormatter(&report),
	}

	cmd := NewPublishCmd(ro)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	got1, err := os.ReadFile(filepath.Join(dest, "file1.php"))
	require.NoError(t, err)
	assert.Contains(t, string(got1), "namespace App\\Widgets;")

	got2, err := os.ReadFile(filepath.Join(dest, "Subdir", "file2.php"))
	require.NoError(t, err)
	assert.Contains(t, string(got2), "namespace App\\Widgets\\Subdir;")

	// The report carries the per-file outcomes: both sources were rewritten,
	// the scratch file was skipped, and the tally excludes it.
	assert.Contains(t, report.String(), "file1.php")
	assert.Contains(t, report.String(), "file2.php")
	assert.Contains(t, report.String(), "⟳")
	assert.Contains(t, report.String(), "junk.tmp")
	assert.NoFileExists(t, filepath.Join(dest, "junk.tmp"))
	assert.Equal(t, 2, ro.Formatter.PublishedCount())
}

func TestPublishCmd_NamespaceOverride(t *testing.T) {
	root := t.TempDir()

	srcDir := filepath.Join(root, "vendor-src")
	require.NoError(t, os.MkdirAll(srcDir, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(srcDir, "a.php"),
		[]byte("namespace Old;\n"), 0644))

	dest := filepath.Join(root, "out")

	manifestPath := filepath.Join(root, "manifest.yaml")
	content := fmt.Sprintf(`publish:
  - source: %s
    destination: %s
    namespace: Pinned\Here
`, srcDir, dest)
	require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0644))

	ro := &opts.RootOpts{
		ManifestPath: manifestPath,
		UserLogger:   status.NewUserLogger(context.Background()),
		Formatter:    status.NewFormatter(&bytes.Buffer{}),
	}

	cmd := NewPublishCmd(ro)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	got, err := os.ReadFile(filepath.Join(dest, "a.php"))
	require.NoError(t, err)
	assert.Equal(t, "namespace Pinned\\Here;\n", string(got))
}
