package dialogs

import (
	"intensity-profiler/internal/app"
	"intensity-profiler/internal/chart"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ShowMultiChannel runs the pipeline on all four channels and opens the
// channel-grid figure in its own window.
func ShowMultiChannel(state *app.State, parent fyne.Window) {
	profiles, err := state.MultiChannel()
	if err != nil {
		dialog.ShowError(err, parent)
		return
	}

	opts := state.Options
	figure, err := chart.RenderMultiChannel(profiles, opts)
	if err != nil {
		dialog.ShowError(err, parent)
		return
	}

	win := fyne.CurrentApp().NewWindow("Multi-Channel Profile")
	view := newFigureView(figure, 1200, 450)

	exportPNG := widget.NewButton("Export PNG...", func() {
		savePNG(win, "channels.png", func(path string) error {
			return chart.SaveMultiChannelPNG(path, profiles, opts)
		})
	})
	exportHTML := widget.NewButton("Export HTML...", func() {
		saveHTML(win, "channels.html", profiles)
	})

	win.SetContent(container.NewBorder(
		nil,
		container.NewHBox(exportPNG, exportHTML),
		nil, nil,
		view,
	))
	win.Resize(fyne.NewSize(1240, 540))
	win.Show()
}

// ExportReportHTML runs the multi-channel pipeline and saves the go-echarts
// report to a file chosen through a file dialog.
func ExportReportHTML(state *app.State, win fyne.Window) {
	profiles, err := state.MultiChannel()
	if err != nil {
		dialog.ShowError(err, win)
		return
	}
	saveHTML(win, "report.html", profiles)
}
