package mainwindow

import (
	goimage "image"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intensity-profiler/internal/app"
	"intensity-profiler/internal/image"
	"intensity-profiler/pkg/geometry"
	"intensity-profiler/ui/prefs"
)

func TestMainWindowStatusFollowsState(t *testing.T) {
	a := test.NewApp()

	st := app.NewState()
	mw := New(a, st, prefs.LoadFrom(filepath.Join(t.TempDir(), "prefs.json")))

	assert.Equal(t, "No image loaded", mw.statusBar.Text)

	src := &image.Source{
		Path:   "/tmp/scan.png",
		Format: "png",
		Image:  goimage.NewRGBA(goimage.Rect(0, 0, 64, 48)),
	}
	st.Source = src
	st.Emit(app.EventImageLoaded, src)

	assert.Equal(t, "scan.png: 64x48 px", mw.statusBar.Text)

	st.SetEndpoints(geometry.PointInt{X: 4, Y: 10}, geometry.PointInt{X: 34, Y: 10})
	assert.Contains(t, mw.statusBar.Text, "segment (4,10)-(34,10)")
	assert.Contains(t, mw.statusBar.Text, "length 30 px")
}

func TestMainWindowSavePreferences(t *testing.T) {
	a := test.NewApp()

	prefsPath := filepath.Join(t.TempDir(), "prefs.json")
	mw := New(a, app.NewState(), prefs.LoadFrom(prefsPath))

	mw.SavePreferences()

	_, err := os.Stat(prefsPath)
	require.NoError(t, err)

	saved := prefs.LoadFrom(prefsPath)
	assert.Greater(t, saved.Float("split_offset", -1), -1.0)
}
