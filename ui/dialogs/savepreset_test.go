package dialogs

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intensity-profiler/internal/app"
	"intensity-profiler/internal/preset"
	"intensity-profiler/internal/profile"
)

func TestSavePresetDialogWritesSelectedSections(t *testing.T) {
	a := test.NewApp()
	w := a.NewWindow("test")

	st := app.NewState()
	st.SetChannel(profile.ChannelRed)
	st.SetBandWidth(30)

	dir := t.TempDir()
	d := NewSavePresetDialog(st, w, dir)
	_ = d.createContent()

	d.nameEntry.SetText("scan")
	d.stylingCheck.SetChecked(false)
	d.save()

	p, err := preset.Load(filepath.Join(dir, "scan.json"))
	require.NoError(t, err)
	require.NotNil(t, p.Channel)
	assert.Equal(t, "Red", *p.Channel)
	require.NotNil(t, p.Bandwidth)
	assert.Equal(t, 30, *p.Bandwidth)
	assert.Nil(t, p.MeanLineColor, "styling was deselected")
}

func TestSavePresetDialogRequiresName(t *testing.T) {
	a := test.NewApp()
	w := a.NewWindow("test")

	dir := t.TempDir()
	d := NewSavePresetDialog(app.NewState(), w, dir)
	_ = d.createContent()
	d.save()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSavePresetDialogListsExisting(t *testing.T) {
	a := test.NewApp()
	w := a.NewWindow("test")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "beta.json"), []byte("{}"), 0o644))

	d := NewSavePresetDialog(app.NewState(), w, dir)
	_ = d.createContent()

	assert.Equal(t, []string{"alpha.json", "beta.json"}, d.existing)
}
