// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"intensity-profiler/internal/app"
	"intensity-profiler/internal/image"
	"intensity-profiler/internal/version"
	"intensity-profiler/pkg/geometry"
	"intensity-profiler/ui/canvas"
	"intensity-profiler/ui/dialogs"
	"intensity-profiler/ui/panels"
	"intensity-profiler/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const windowTitle = "Intensity Profiler"

const (
	prefKeyWindowWidth  = "window_width"
	prefKeyWindowHeight = "window_height"
	prefKeySplitOffset  = "split_offset"
	prefKeyZoom         = "zoom"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	prefs  *prefs.Prefs
	canvas *canvas.ImageCanvas

	controls *panels.ControlsPanel
	style    *panels.StylePanel
	preview  *panels.PreviewPanel

	split      *container.Split
	statusBar  *widget.Label
	hoverLabel *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(windowTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupCanvasCallbacks()
	mw.setupEventHandlers()

	mw.SetCloseIntercept(func() {
		mw.SavePreferences()
		mw.Window.Close()
	})

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewImageCanvas()
	mw.canvas.SetZoom(mw.prefs.Float(prefKeyZoom, 1.0))

	mw.controls = panels.NewControlsPanel(mw.state, mw.prefs)
	mw.controls.SetWindow(mw.Window)
	mw.style = panels.NewStylePanel(mw.state)
	mw.preview = panels.NewPreviewPanel(mw.state)

	mw.statusBar = widget.NewLabel("No image loaded")
	mw.hoverLabel = widget.NewLabel("")

	toolbar := mw.createToolbar()

	// Canvas area with the toolbar on top and the previews below
	canvasArea := container.NewBorder(
		toolbar,
		mw.preview.Container(),
		nil, nil,
		mw.canvas.Container(),
	)

	sideTabs := container.NewAppTabs(
		container.NewTabItem("Controls", container.NewVScroll(mw.controls.Container())),
		container.NewTabItem("Style", container.NewVScroll(mw.style.Container())),
	)

	// Main layout: canvas area | control tabs
	mw.split = container.NewHSplit(canvasArea, sideTabs)
	mw.split.SetOffset(mw.prefs.Float(prefKeySplitOffset, 0.65))

	bottom := container.NewBorder(nil, nil, nil, mw.hoverLabel, mw.statusBar)
	content := container.NewBorder(
		nil,
		container.NewPadded(bottom),
		nil, nil,
		mw.split,
	)

	mw.SetContent(content)

	width := mw.prefs.Int(prefKeyWindowWidth, 1280)
	height := mw.prefs.Int(prefKeyWindowHeight, 800)
	mw.Resize(fyne.NewSize(float32(width), float32(height)))
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.canvas.ZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.canvas.ZoomIn()
	})
	actualBtn := widget.NewButton("1:1", func() {
		mw.canvas.SetZoom(1.0)
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", func() { mw.controls.OpenImage() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Preset...", func() { dialogs.ShowSavePreset(mw.state, mw.Window) }),
		fyne.NewMenuItem("Load Preset...", func() { mw.controls.OpenPreset() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Chart PNG...", func() { dialogs.ExportProfilePNG(mw.state, mw.Window) }),
		fyne.NewMenuItem("Export HTML Report...", func() { dialogs.ExportReportHTML(mw.state, mw.Window) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.SavePreferences()
			mw.app.Quit()
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.canvas.ZoomIn() }),
		fyne.NewMenuItem("Zoom Out", func() { mw.canvas.ZoomOut() }),
		fyne.NewMenuItem("Reset Zoom", func() { mw.canvas.SetZoom(1.0) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Multi-Channel Profile...", func() { dialogs.ShowMultiChannel(mw.state, mw.Window) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupCanvasCallbacks wires canvas interactions into the state.
func (mw *MainWindow) setupCanvasCallbacks() {
	mw.canvas.OnTap(func(pt geometry.PointInt) {
		mw.state.SetSegmentPoint(pt)
	})
	mw.canvas.OnDragPoint(func(index int, pt geometry.PointInt) {
		mw.state.MoveEndpoint(index, pt)
	})
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.prefs.SetFloat(prefKeyZoom, zoom)
	})
	mw.canvas.OnHover(func(pt geometry.PointInt) {
		mw.onHover(pt)
	})
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		src, ok := data.(*image.Source)
		if !ok {
			return
		}
		mw.canvas.SetImage(src.Image)
		mw.SetTitle(windowTitle + " - " + filepath.Base(src.Path))
		mw.syncCanvas()
	})
	mw.state.On(app.EventSegmentChanged, func(data interface{}) {
		mw.syncCanvas()
	})
	mw.state.On(app.EventParamsChanged, func(data interface{}) {
		mw.syncCanvas()
	})
	mw.state.On(app.EventPresetLoaded, func(data interface{}) {
		mw.syncCanvas()
	})
}

// syncCanvas pushes the segment overlay and drawing mode to the canvas and
// refreshes the status bar.
func (mw *MainWindow) syncCanvas() {
	mw.canvas.SetOverlay(canvas.SegmentOverlay{
		P1:       mw.state.P1,
		P2:       mw.state.P2,
		HasP1:    mw.state.HasP1,
		HasP2:    mw.state.HasP2,
		HalfBand: mw.state.HalfBand(),
	})
	mw.canvas.SetDrawMode(mw.state.IsDrawing())
	mw.updateStatus()
}

// updateStatus rebuilds the status bar text from the image and segment.
func (mw *MainWindow) updateStatus() {
	src := mw.state.Source
	if src == nil {
		mw.statusBar.SetText("No image loaded")
		return
	}

	text := fmt.Sprintf("%s: %dx%d px", filepath.Base(src.Path), src.Width(), src.Height())
	if src.DPI > 0 {
		text += fmt.Sprintf(" @ %.0f dpi (%.2f x %.2f in)",
			src.DPI, src.WidthInches(), src.HeightInches())
	}
	if p1, p2, ok := mw.state.Segment(); ok {
		text += fmt.Sprintf("  |  segment (%d,%d)-(%d,%d), length %d px",
			p1.X, p1.Y, p2.X, p2.Y, mw.state.SegmentLength())
	}
	mw.statusBar.SetText(text)
}

// onHover shows the pixel under the cursor in the status bar.
func (mw *MainWindow) onHover(pt geometry.PointInt) {
	src := mw.state.Source
	if src == nil {
		return
	}
	r, g, b, _ := src.PixelAt(pt.X, pt.Y).RGBA()
	mw.hoverLabel.SetText(fmt.Sprintf("(%d,%d) R=%d G=%d B=%d",
		pt.X, pt.Y, r>>8, g>>8, b>>8))
}

// SavePreferences persists the window geometry and view settings.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetInt(prefKeyWindowWidth, int(size.Width))
	mw.prefs.SetInt(prefKeyWindowHeight, int(size.Height))
	mw.prefs.SetFloat(prefKeySplitOffset, mw.split.Offset)
	mw.prefs.SetFloat(prefKeyZoom, mw.canvas.Zoom())
	if err := mw.prefs.Save(); err != nil {
		fmt.Printf("Could not save preferences: %v\n", err)
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Intensity Profiler",
		fmt.Sprintf("Intensity Profiler v%s\n\n"+
			"Extracts intensity profiles along a measurement segment,\n"+
			"averaged across a configurable band width.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
