package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgelab/dungeonforge/pkg/errors"
	"github.com/forgelab/dungeonforge/pkg/layout"
)

const sampleFile = `
[presets.catacombs]
method = "physics_tinykep"
width = 80
height = 80
seed = 7

[presets.catacombs.parameters]
num_rooms = 120
corridor_width = 2

[presets.warrens]
method = "adjacent_rooms"
`

func writePresetFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAndNames(t *testing.T) {
	f, err := Load(writePresetFile(t, sampleFile))
	require.NoError(t, err)
	require.Equal(t, []string{"catacombs", "warrens"}, f.Names())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestLoadInvalidTOML(t *testing.T) {
	_, err := Load(writePresetFile(t, "[presets.broken\nmethod = ?"))
	require.True(t, errors.Is(err, errors.ErrCodeInvalidPreset))
}

func TestRequest(t *testing.T) {
	f, err := Load(writePresetFile(t, sampleFile))
	require.NoError(t, err)

	req, err := f.Request("catacombs")
	require.NoError(t, err)
	require.Equal(t, "physics_tinykep", req.Method)
	require.Equal(t, 80, req.Width)
	require.Equal(t, int64(7), req.Seed)
	require.NotEmpty(t, req.Overrides)

	// The re-encoded parameters pass the layout manager's schema check.
	res, err := layout.Generate(req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Rooms)
}

func TestRequestUnknownPreset(t *testing.T) {
	f, err := Load(writePresetFile(t, sampleFile))
	require.NoError(t, err)

	_, err = f.Request("maze")
	require.True(t, errors.Is(err, errors.ErrCodeInvalidPreset))
}

func TestRequestWithoutMethod(t *testing.T) {
	f, err := Load(writePresetFile(t, "[presets.empty]\nwidth = 40\n"))
	require.NoError(t, err)

	_, err = f.Request("empty")
	require.True(t, errors.Is(err, errors.ErrCodeInvalidPreset))
}
