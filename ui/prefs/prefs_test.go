package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "preferences.json")

	p := LoadFrom(path)
	p.SetFloat("zoom", 2.5)
	p.SetInt("window_width", 1280)
	p.SetString("last_image_dir", "/scans")
	p.SetBool("show_minmax", false)
	require.NoError(t, p.Save())

	q := LoadFrom(path)
	assert.Equal(t, 2.5, q.Float("zoom", 1))
	assert.Equal(t, 1280, q.Int("window_width", 0))
	assert.Equal(t, "/scans", q.String("last_image_dir"))
	assert.False(t, q.Bool("show_minmax", true))
}

func TestFallbacks(t *testing.T) {
	t.Parallel()

	p := LoadFrom(filepath.Join(t.TempDir(), "preferences.json"))
	assert.Equal(t, 1.0, p.Float("zoom", 1.0))
	assert.Equal(t, 900, p.Int("window_width", 900))
	assert.Equal(t, "", p.String("last_image_dir"))
	assert.True(t, p.Bool("show_minmax", true))
}

func TestWrongTypeFallsBack(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"zoom": "big", "name": 7}`), 0o644))

	p := LoadFrom(path)
	assert.Equal(t, 1.0, p.Float("zoom", 1.0))
	assert.Equal(t, "", p.String("name"))
}

func TestCorruptFileIgnored(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	p := LoadFrom(path)
	assert.Equal(t, 3, p.Int("anything", 3))

	p.SetInt("anything", 4)
	require.NoError(t, p.Save())
	assert.Equal(t, 4, LoadFrom(path).Int("anything", 0))
}
