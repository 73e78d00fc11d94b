// Package panels provides UI panels for the application.
package panels

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"intensity-profiler/internal/app"
	"intensity-profiler/internal/image"
	"intensity-profiler/internal/preset"
	"intensity-profiler/internal/profile"
	"intensity-profiler/pkg/geometry"
	"intensity-profiler/ui/dialogs"
	"intensity-profiler/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const prefKeyImageDir = "last_image_dir"

// ControlsPanel holds the measurement controls: image loading, segment
// drawing, sampling parameters, and preset handling.
type ControlsPanel struct {
	state     *app.State
	prefs     *prefs.Prefs
	container fyne.CanvasObject
	window    fyne.Window

	loadBtn      *widget.Button
	drawBtn      *widget.Button
	bandLabel    *widget.Label
	bandSlider   *widget.Slider
	channelRadio *widget.RadioGroup
	statusLabel  *widget.Label

	x1Entry *widget.Entry
	y1Entry *widget.Entry
	x2Entry *widget.Entry
	y2Entry *widget.Entry
}

// NewControlsPanel creates the measurement controls panel.
func NewControlsPanel(state *app.State, appPrefs *prefs.Prefs) *ControlsPanel {
	cp := &ControlsPanel{
		state: state,
		prefs: appPrefs,
	}

	cp.statusLabel = widget.NewLabel("No image loaded")
	cp.statusLabel.Wrapping = fyne.TextWrapWord

	cp.loadBtn = widget.NewButton("Load Image", func() {
		cp.OpenImage()
	})

	cp.drawBtn = widget.NewButton("Draw Segment", func() {
		cp.state.SetDrawing(!cp.state.IsDrawing())
	})

	cp.bandLabel = widget.NewLabel(fmt.Sprintf("Bandwidth: %d px", state.BandWidth))
	cp.bandSlider = widget.NewSlider(app.MinBandWidth, app.MaxBandWidth)
	cp.bandSlider.Value = float64(state.BandWidth)
	cp.bandSlider.OnChanged = func(v float64) {
		cp.state.SetBandWidth(int(v))
	}

	calcBtn := widget.NewButton("Calculate Profile", func() {
		dialogs.ShowProfile(cp.state, cp.window)
	})

	cp.channelRadio = widget.NewRadioGroup(channelNames(), func(sel string) {
		ch, err := profile.ParseChannel(sel)
		if err != nil {
			return
		}
		cp.state.SetChannel(ch)
	})
	cp.channelRadio.Horizontal = true
	cp.channelRadio.Selected = state.Channel.String()

	cp.x1Entry = newCoordEntry("X1")
	cp.y1Entry = newCoordEntry("Y1")
	cp.x2Entry = newCoordEntry("X2")
	cp.y2Entry = newCoordEntry("Y2")

	applyBtn := widget.NewButton("Apply Coordinates", func() {
		cp.applyCoordinates()
	})

	savePresetBtn := widget.NewButton("Save Preset...", func() {
		dialogs.ShowSavePreset(cp.state, cp.window)
	})
	loadPresetBtn := widget.NewButton("Load Preset...", func() {
		cp.OpenPreset()
	})

	measureCard := widget.NewCard("Measure", "",
		container.NewVBox(
			cp.loadBtn,
			cp.drawBtn,
			container.NewHBox(cp.bandLabel, cp.bandSlider),
			calcBtn,
		),
	)

	channelCard := widget.NewCard("Channel", "",
		container.NewVBox(cp.channelRadio),
	)

	segmentCard := widget.NewCard("Segment", "",
		container.NewVBox(
			container.NewGridWithColumns(4, cp.x1Entry, cp.y1Entry, cp.x2Entry, cp.y2Entry),
			applyBtn,
			cp.statusLabel,
		),
	)

	presetCard := widget.NewCard("Presets", "",
		container.NewHBox(savePresetBtn, loadPresetBtn),
	)

	cp.container = container.NewVBox(
		measureCard,
		channelCard,
		segmentCard,
		presetCard,
	)

	state.On(app.EventImageLoaded, func(data interface{}) {
		cp.onImageLoaded(data)
	})
	state.On(app.EventSegmentChanged, func(data interface{}) {
		cp.refreshSegment()
	})
	state.On(app.EventParamsChanged, func(data interface{}) {
		cp.refreshParams()
	})
	state.On(app.EventPresetLoaded, func(data interface{}) {
		cp.refreshParams()
	})

	return cp
}

// Container returns the panel container.
func (cp *ControlsPanel) Container() fyne.CanvasObject {
	return cp.container
}

// SetWindow sets the parent window for dialogs.
func (cp *ControlsPanel) SetWindow(w fyne.Window) {
	cp.window = w
}

// OpenImage shows the image open dialog and loads the chosen file.
func (cp *ControlsPanel) OpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		cp.loadImage(reader.URI().Path())
	}, cp.window)
	fd.SetFilter(storage.NewExtensionFileFilter(image.SupportedFormats()))
	if loc := listableURI(cp.prefs.String(prefKeyImageDir)); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// OpenPreset shows the preset open dialog and applies the chosen preset.
func (cp *ControlsPanel) OpenPreset() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		if err := cp.state.LoadPreset(path); err != nil {
			dialog.ShowError(err, cp.window)
			return
		}
		cp.statusLabel.SetText("Preset loaded: " + filepath.Base(path))
	}, cp.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	if loc := listableURI(preset.DefaultDir()); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// loadImage decodes the image off the UI goroutine and reports the result.
func (cp *ControlsPanel) loadImage(path string) {
	cp.loadBtn.Disable()
	cp.statusLabel.SetText("Loading " + filepath.Base(path) + "...")

	go func() {
		err := cp.state.LoadImage(path)
		cp.loadBtn.Enable()
		if err != nil {
			cp.statusLabel.SetText("Load failed")
			dialog.ShowError(err, cp.window)
			return
		}
		cp.prefs.SetString(prefKeyImageDir, filepath.Dir(path))
		if err := cp.prefs.Save(); err != nil {
			fmt.Printf("Could not save preferences: %v\n", err)
		}
	}()
}

// applyCoordinates reads the four entries and replaces the segment.
func (cp *ControlsPanel) applyCoordinates() {
	x1, err1 := parseCoord(cp.x1Entry.Text)
	y1, err2 := parseCoord(cp.y1Entry.Text)
	x2, err3 := parseCoord(cp.x2Entry.Text)
	y2, err4 := parseCoord(cp.y2Entry.Text)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		cp.statusLabel.SetText("Coordinates must be whole numbers")
		return
	}
	cp.state.SetEndpoints(
		geometry.PointInt{X: x1, Y: y1},
		geometry.PointInt{X: x2, Y: y2},
	)
}

func (cp *ControlsPanel) onImageLoaded(data interface{}) {
	src, ok := data.(*image.Source)
	if !ok {
		return
	}
	cp.statusLabel.SetText(fmt.Sprintf("%s: %dx%d px",
		filepath.Base(src.Path), src.Width(), src.Height()))
}

// refreshSegment syncs the draw button, the coordinate entries, and the
// status label with the segment state.
func (cp *ControlsPanel) refreshSegment() {
	if cp.state.IsDrawing() {
		cp.drawBtn.SetText("Cancel Drawing")
	} else {
		cp.drawBtn.SetText("Draw Segment")
	}

	p1, p2, ok := cp.state.Segment()
	if ok {
		cp.x1Entry.SetText(strconv.Itoa(p1.X))
		cp.y1Entry.SetText(strconv.Itoa(p1.Y))
		cp.x2Entry.SetText(strconv.Itoa(p2.X))
		cp.y2Entry.SetText(strconv.Itoa(p2.Y))
		cp.statusLabel.SetText(fmt.Sprintf("Segment (%d,%d)-(%d,%d), length %d px",
			p1.X, p1.Y, p2.X, p2.Y, cp.state.SegmentLength()))
		return
	}

	if cp.state.HasP1 {
		cp.x1Entry.SetText(strconv.Itoa(cp.state.P1.X))
		cp.y1Entry.SetText(strconv.Itoa(cp.state.P1.Y))
		cp.statusLabel.SetText(fmt.Sprintf("P1 (%d,%d) placed, tap to place P2",
			cp.state.P1.X, cp.state.P1.Y))
		return
	}

	if cp.state.IsDrawing() {
		cp.statusLabel.SetText("Tap the image to place P1")
		return
	}
	cp.statusLabel.SetText("No segment")
}

// refreshParams syncs the channel radio and bandwidth slider with the state.
// Direct field writes skip the change callbacks.
func (cp *ControlsPanel) refreshParams() {
	cp.channelRadio.Selected = cp.state.Channel.String()
	cp.channelRadio.Refresh()

	cp.bandSlider.Value = float64(cp.state.BandWidth)
	cp.bandSlider.Refresh()
	cp.bandLabel.SetText(fmt.Sprintf("Bandwidth: %d px", cp.state.BandWidth))
}

func newCoordEntry(placeholder string) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder(placeholder)
	return e
}

func parseCoord(text string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(text))
}

func channelNames() []string {
	var names []string
	for _, ch := range profile.Channels() {
		names = append(names, ch.String())
	}
	return names
}

// listableURI converts a directory path into a location for file dialogs.
// Returns nil when the directory can't be listed.
func listableURI(dir string) fyne.ListableURI {
	if dir == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return nil
	}
	return listable
}
