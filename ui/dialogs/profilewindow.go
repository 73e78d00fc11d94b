// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	goimage "image"
	"path/filepath"

	"intensity-profiler/internal/app"
	"intensity-profiler/internal/chart"
	"intensity-profiler/internal/profile"
	"intensity-profiler/internal/report"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// ShowProfile runs the single-channel pipeline on the current state and
// opens the figure in its own window. The figure is a snapshot: changing
// parameters afterwards does not redraw it, recalculating opens a new window.
func ShowProfile(state *app.State, parent fyne.Window) {
	corridor, bins, err := state.Profile()
	if err != nil {
		dialog.ShowError(err, parent)
		return
	}

	opts := state.Options
	channel := state.Channel
	figure, err := chart.RenderProfile(corridor, bins, opts)
	if err != nil {
		dialog.ShowError(err, parent)
		return
	}

	win := fyne.CurrentApp().NewWindow(fmt.Sprintf("Intensity Profile (%s)", channel))
	view := newFigureView(figure, 800, 600)

	exportPNG := widget.NewButton("Export PNG...", func() {
		savePNG(win, "profile.png", func(path string) error {
			return chart.SaveProfilePNG(path, corridor, bins, opts)
		})
	})
	exportHTML := widget.NewButton("Export HTML...", func() {
		profiles := []profile.ChannelProfile{{Channel: channel, Corridor: corridor, Bins: bins}}
		saveHTML(win, "profile.html", profiles)
	})

	win.SetContent(container.NewBorder(
		nil,
		container.NewHBox(exportPNG, exportHTML),
		nil, nil,
		view,
	))
	win.Resize(fyne.NewSize(840, 680))
	win.Show()
}

// ExportProfilePNG runs the single-channel pipeline and saves the figure as
// a PNG chosen through a file dialog.
func ExportProfilePNG(state *app.State, win fyne.Window) {
	corridor, bins, err := state.Profile()
	if err != nil {
		dialog.ShowError(err, win)
		return
	}
	opts := state.Options
	savePNG(win, "profile.png", func(path string) error {
		return chart.SaveProfilePNG(path, corridor, bins, opts)
	})
}

// newFigureView wraps a rendered figure for display at a sensible size.
func newFigureView(figure goimage.Image, w, h float32) *fynecanvas.Image {
	view := fynecanvas.NewImageFromImage(figure)
	view.FillMode = fynecanvas.ImageFillContain
	view.SetMinSize(fyne.NewSize(w, h))
	return view
}

// savePNG shows a save dialog and writes the figure with the given writer.
func savePNG(win fyne.Window, defaultName string, write func(path string) error) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".png" {
			path += ".png"
		}
		if err := write(path); err != nil {
			dialog.ShowError(err, win)
			return
		}
		fmt.Printf("Exported chart to %s\n", path)
	}, win)
	fd.SetFileName(defaultName)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	fd.Show()
}

// saveHTML shows a save dialog and writes the go-echarts report.
func saveHTML(win fyne.Window, defaultName string, profiles []profile.ChannelProfile) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".html" {
			path += ".html"
		}
		if err := report.SaveMultiChannel(path, profiles); err != nil {
			dialog.ShowError(err, win)
			return
		}
		fmt.Printf("Exported report to %s\n", path)
	}, win)
	fd.SetFileName(defaultName)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".html"}))
	fd.Show()
}
