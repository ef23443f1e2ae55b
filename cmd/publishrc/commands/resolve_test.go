package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/publishrc/cmd/publishrc/opts"
)

func TestResolveCmd(t *testing.T) {
	root := t.TempDir()
	appDir := filepath.Join(root, "app")
	require.NoError(t, os.MkdirAll(appDir, 0755))

	manifestPath := filepath.Join(root, "manifest.yaml")
	content := fmt.Sprintf("autoload:\n  'App\\': %s\n", appDir)
	require.NoError(t, os.WriteFile(manifestPath, []byte(content), 0644))

	ro := &opts.RootOpts{ManifestPath: manifestPath}

	t.Run("prints_resolved_namespace", func(t *testing.T) {
		cmd := NewResolveCmd(ro)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{filepath.Join(appDir, "Controllers")})

		require.NoError(t, cmd.Execute())
		assert.Equal(t, "App\\Controllers\n", out.String())
	})

	t.Run("unmapped_path_fails", func(t *testing.T) {
		cmd := NewResolveCmd(ro)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs([]string{filepath.Join(root, "elsewhere")})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no namespace mapping matches path")
	})
}
