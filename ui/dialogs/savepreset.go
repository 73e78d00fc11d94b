package dialogs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"intensity-profiler/internal/app"
	"intensity-profiler/internal/preset"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// SavePresetDialog saves the current settings as a named preset. Six
// checkboxes choose which sections the preset captures, and a list of the
// existing presets allows overwriting one by name.
type SavePresetDialog struct {
	state  *app.State
	window fyne.Window
	dir    string

	nameEntry *widget.Entry
	existing  []string

	channelCheck   *widget.Check
	bandwidthCheck *widget.Check
	binCheck       *widget.Check
	minmaxCheck    *widget.Check
	errorCheck     *widget.Check
	stylingCheck   *widget.Check
}

// ShowSavePreset opens the save preset dialog over the parent window.
func ShowSavePreset(state *app.State, parent fyne.Window) {
	NewSavePresetDialog(state, parent, preset.DefaultDir()).Show()
}

// NewSavePresetDialog creates a save preset dialog targeting dir.
func NewSavePresetDialog(state *app.State, parent fyne.Window, dir string) *SavePresetDialog {
	return &SavePresetDialog{
		state:  state,
		window: parent,
		dir:    dir,
	}
}

// Show displays the dialog.
func (d *SavePresetDialog) Show() {
	content := d.createContent()

	dlg := dialog.NewCustomConfirm(
		"Save Preset",
		"Save",
		"Cancel",
		content,
		func(save bool) {
			if save {
				d.save()
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(380, 480))
	dlg.Show()
}

func (d *SavePresetDialog) createContent() fyne.CanvasObject {
	d.nameEntry = widget.NewEntry()
	d.nameEntry.SetPlaceHolder("Preset name")

	nameForm := widget.NewForm(
		widget.NewFormItem("Name", d.nameEntry),
	)

	d.channelCheck = newSectionCheck("Channel")
	d.bandwidthCheck = newSectionCheck("Bandwidth")
	d.binCheck = newSectionCheck("Bin size")
	d.minmaxCheck = newSectionCheck("Min/max display")
	d.errorCheck = newSectionCheck("Error bar display")
	d.stylingCheck = newSectionCheck("Line styling")

	sectionsCard := widget.NewCard("Sections", "",
		container.NewVBox(
			d.channelCheck,
			d.bandwidthCheck,
			d.binCheck,
			d.minmaxCheck,
			d.errorCheck,
			d.stylingCheck,
		),
	)

	d.existing, _ = preset.List(d.dir)
	list := widget.NewList(
		func() int {
			return len(d.existing)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("preset.json")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(d.existing) {
				obj.(*widget.Label).SetText(d.existing[id])
			}
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		if id < len(d.existing) {
			name := d.existing[id]
			d.nameEntry.SetText(strings.TrimSuffix(name, filepath.Ext(name)))
		}
	}
	listScroll := container.NewVScroll(list)
	listScroll.SetMinSize(fyne.NewSize(0, 120))

	return container.NewVBox(
		nameForm,
		sectionsCard,
		widget.NewCard("Existing Presets", "", listScroll),
	)
}

// save validates the name and writes the preset file.
func (d *SavePresetDialog) save() {
	name := strings.TrimSpace(d.nameEntry.Text)
	if name == "" {
		dialog.ShowInformation("Name Required", "Please enter a preset name first", d.window)
		return
	}
	if filepath.Ext(name) != ".json" {
		name += ".json"
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		dialog.ShowError(err, d.window)
		return
	}

	path := filepath.Join(d.dir, name)
	if err := d.state.SavePreset(path, d.sections()); err != nil {
		dialog.ShowError(err, d.window)
		return
	}
	fmt.Printf("Saved preset %s\n", path)
}

// sections reads the checkbox selection.
func (d *SavePresetDialog) sections() preset.Sections {
	return preset.Sections{
		Channel:      d.channelCheck.Checked,
		Bandwidth:    d.bandwidthCheck.Checked,
		BinSize:      d.binCheck.Checked,
		ShowMinMax:   d.minmaxCheck.Checked,
		ShowErrorbar: d.errorCheck.Checked,
		Styling:      d.stylingCheck.Checked,
	}
}

func newSectionCheck(label string) *widget.Check {
	c := widget.NewCheck(label, nil)
	c.Checked = true
	return c
}
