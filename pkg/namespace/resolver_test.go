package namespace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/publishrc/pkg/manifest"
	"gitlab.com/tozd/go/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		mapping   func(root string) manifest.Mapping
		target    func(root string) string
		want      string
		wantError error
	}{
		{
			name: "mapping_root_itself",
			mapping: func(root string) manifest.Mapping {
				return manifest.Mapping{{Prefix: `App\`, Path: filepath.Join(root, "app")}}
			},
			target: func(root string) string { return filepath.Join(root, "app") },
			want:   "App",
		},
		{
			name: "single_subdirectory",
			mapping: func(root string) manifest.Mapping {
				return manifest.Mapping{{Prefix: `App\`, Path: filepath.Join(root, "app")}}
			},
			target: func(root string) string { return filepath.Join(root, "app", "Controllers") },
			want:   `App\Controllers`,
		},
		{
			name: "nested_subdirectories",
			mapping: func(root string) manifest.Mapping {
				return manifest.Mapping{{Prefix: `App\`, Path: filepath.Join(root, "app")}}
			},
			target: func(root string) string { return filepath.Join(root, "app", "Controllers", "Admin") },
			want:   `App\Controllers\Admin`,
		},
		{
			name: "disjoint_mappings_pick_matching_entry",
			mapping: func(root string) manifest.Mapping {
				return manifest.Mapping{
					{Prefix: `App\`, Path: filepath.Join(root, "app")},
					{Prefix: `Lib\`, Path: filepath.Join(root, "lib")},
				}
			},
			target: func(root string) string { return filepath.Join(root, "lib", "Util") },
			want:   `Lib\Util`,
		},
		{
			name: "first_match_wins_over_longer_prefix",
			mapping: func(root string) manifest.Mapping {
				return manifest.Mapping{
					{Prefix: `App\`, Path: filepath.Join(root, "app")},
					{Prefix: `Controllers\`, Path: filepath.Join(root, "app", "Controllers")},
				}
			},
			target: func(root string) string { return filepath.Join(root, "app", "Controllers", "Admin") },
			want:   `App\Controllers\Admin`,
		},
		{
			name: "nonexistent_mapping_path_is_skipped",
			mapping: func(root string) manifest.Mapping {
				return manifest.Mapping{
					{Prefix: `Ghost\`, Path: filepath.Join(root, "does-not-exist")},
					{Prefix: `App\`, Path: filepath.Join(root, "app")},
				}
			},
			target: func(root string) string { return filepath.Join(root, "app", "Models") },
			want:   `App\Models`,
		},
		{
			name: "shared_textual_prefix_needs_segment_boundary",
			mapping: func(root string) manifest.Mapping {
				return manifest.Mapping{{Prefix: `App\`, Path: filepath.Join(root, "app")}}
			},
			target:    func(root string) string { return filepath.Join(root, "applib") },
			wantError: ErrMappingNotFound,
		},
		{
			name: "no_matching_entry",
			mapping: func(root string) manifest.Mapping {
				return manifest.Mapping{{Prefix: `App\`, Path: filepath.Join(root, "app")}}
			},
			target:    func(root string) string { return filepath.Join(root, "elsewhere") },
			wantError: ErrMappingNotFound,
		},
		{
			name:      "empty_mapping",
			mapping:   func(root string) manifest.Mapping { return nil },
			target:    func(root string) string { return filepath.Join(root, "app") },
			wantError: ErrMappingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			require.NoError(t, os.MkdirAll(filepath.Join(root, "app"), 0755))
			require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0755))

			got, err := Resolve(tt.mapping(root), tt.target(root))
			if tt.wantError != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantError), "expected %v, got %v", tt.wantError, err)
				assert.Contains(t, err.Error(), tt.target(root))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_CreatesTargetDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "app"), 0755))

	target := filepath.Join(root, "app", "Brand", "New")
	mapping := manifest.Mapping{{Prefix: `App\`, Path: filepath.Join(root, "app")}}

	got, err := Resolve(mapping, target)
	require.NoError(t, err)
	assert.Equal(t, `App\Brand\New`, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "App", Join("App"))
	assert.Equal(t, `App\Models`, Join("App", "Models"))
	assert.Equal(t, `App\Models\Admin`, Join("App", "Models", "Admin"))
}
