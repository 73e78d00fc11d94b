package panels

import (
	"fmt"
	"strconv"

	"intensity-profiler/internal/app"
	"intensity-profiler/internal/chart"
	"intensity-profiler/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// lineControls groups the pickers for one styled chart line.
type lineControls struct {
	color *widget.Select
	dash  *widget.Select
	width *widget.Select
}

// set syncs the pickers without firing their change callbacks.
func (lc *lineControls) set(s chart.LineStyle) {
	lc.color.Selected = s.Color
	lc.dash.Selected = s.Dash
	lc.width.Selected = strconv.Itoa(s.Width)
	lc.color.Refresh()
	lc.dash.Refresh()
	lc.width.Refresh()
}

// StylePanel holds the chart styling controls: axis labels, bin size,
// display toggles, and the per-line style pickers.
type StylePanel struct {
	state     *app.State
	container fyne.CanvasObject

	profileTitle *widget.Entry
	profileX     *widget.Entry
	profileY     *widget.Entry
	bandTitle    *widget.Entry
	bandX        *widget.Entry
	bandY        *widget.Entry

	binLabel  *widget.Label
	binSlider *widget.Slider

	minmaxCheck  *widget.Check
	errorCheck   *widget.Check
	centerCheck  *widget.Check
	gridProfile  *widget.Check
	gridBand     *widget.Check

	mean   *lineControls
	min    *lineControls
	max    *lineControls
	center *lineControls

	markerSelect     *widget.Select
	markerSizeSelect *widget.Select
}

// NewStylePanel creates the chart styling panel.
func NewStylePanel(state *app.State) *StylePanel {
	sp := &StylePanel{state: state}
	opts := state.Options

	sp.profileTitle = sp.newLabelEntry(opts.Labels.ProfileTitle, func(l *chart.Labels) *string { return &l.ProfileTitle })
	sp.profileX = sp.newLabelEntry(opts.Labels.ProfileXLabel, func(l *chart.Labels) *string { return &l.ProfileXLabel })
	sp.profileY = sp.newLabelEntry(opts.Labels.ProfileYLabel, func(l *chart.Labels) *string { return &l.ProfileYLabel })
	sp.bandTitle = sp.newLabelEntry(opts.Labels.BandTitle, func(l *chart.Labels) *string { return &l.BandTitle })
	sp.bandX = sp.newLabelEntry(opts.Labels.BandXLabel, func(l *chart.Labels) *string { return &l.BandXLabel })
	sp.bandY = sp.newLabelEntry(opts.Labels.BandYLabel, func(l *chart.Labels) *string { return &l.BandYLabel })

	sp.binLabel = widget.NewLabel(fmt.Sprintf("Bin size: %d rows", state.BinSize))
	sp.binSlider = widget.NewSlider(app.MinBinSize, app.MaxBinSize)
	sp.binSlider.Value = float64(state.BinSize)
	sp.binSlider.OnChanged = func(v float64) {
		sp.state.SetBinSize(int(v))
	}

	sp.minmaxCheck = sp.newToggle("Show min/max lines", opts.ShowMinMax, func(o *chart.Options, on bool) { o.ShowMinMax = on })
	sp.errorCheck = sp.newToggle("Show error bars", opts.ShowError, func(o *chart.Options, on bool) { o.ShowError = on })
	sp.centerCheck = sp.newToggle("Show center line", opts.ShowCenter, func(o *chart.Options, on bool) { o.ShowCenter = on })
	sp.gridProfile = sp.newToggle("Profile grid", opts.GridProfile, func(o *chart.Options, on bool) { o.GridProfile = on })
	sp.gridBand = sp.newToggle("Band grid", opts.GridBand, func(o *chart.Options, on bool) { o.GridBand = on })

	sp.mean = sp.newLineControls(func(o *chart.Options) *chart.LineStyle { return &o.Mean })
	sp.min = sp.newLineControls(func(o *chart.Options) *chart.LineStyle { return &o.Min })
	sp.max = sp.newLineControls(func(o *chart.Options) *chart.LineStyle { return &o.Max })
	sp.center = sp.newLineControls(func(o *chart.Options) *chart.LineStyle { return &o.Center })

	sp.markerSelect = widget.NewSelect(chart.MarkerNames(), func(sel string) {
		sp.updateOptions(func(o *chart.Options) { o.Mean.Marker = sel })
	})
	sp.markerSizeSelect = widget.NewSelect(numberChoices(2, 16), func(sel string) {
		size, err := strconv.Atoi(sel)
		if err != nil {
			return
		}
		sp.updateOptions(func(o *chart.Options) { o.Mean.MarkerSize = size })
	})
	sp.refreshStyle()

	labelsCard := widget.NewCard("Chart Labels", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Profile title"), sp.profileTitle,
			widget.NewLabel("Profile X"), sp.profileX,
			widget.NewLabel("Profile Y"), sp.profileY,
			widget.NewLabel("Band title"), sp.bandTitle,
			widget.NewLabel("Band X"), sp.bandX,
			widget.NewLabel("Band Y"), sp.bandY,
		),
	)

	binCard := widget.NewCard("Binning", "",
		container.NewHBox(sp.binLabel, sp.binSlider),
	)

	displayCard := widget.NewCard("Display", "",
		container.NewVBox(
			sp.minmaxCheck,
			sp.errorCheck,
			sp.centerCheck,
			sp.gridProfile,
			sp.gridBand,
		),
	)

	linesCard := widget.NewCard("Line Styles", "",
		container.NewVBox(
			container.NewGridWithColumns(4,
				widget.NewLabel(""), widget.NewLabel("Color"), widget.NewLabel("Style"), widget.NewLabel("Width"),
			),
			lineRow("Mean", sp.mean),
			lineRow("Min", sp.min),
			lineRow("Max", sp.max),
			lineRow("Center", sp.center),
			container.NewGridWithColumns(4,
				widget.NewLabel("Marker"), sp.markerSelect, sp.markerSizeSelect, widget.NewLabel(""),
			),
		),
	)

	sp.container = container.NewVBox(
		binCard,
		displayCard,
		linesCard,
		labelsCard,
	)

	state.On(app.EventParamsChanged, func(data interface{}) {
		sp.refreshBin()
	})
	state.On(app.EventPresetLoaded, func(data interface{}) {
		sp.refreshBin()
		sp.refreshStyle()
	})

	return sp
}

// Container returns the panel container.
func (sp *StylePanel) Container() fyne.CanvasObject {
	return sp.container
}

// updateOptions applies a mutation to a copy of the current chart options and
// stores it back, firing the style change event.
func (sp *StylePanel) updateOptions(mutate func(*chart.Options)) {
	opts := sp.state.Options
	mutate(&opts)
	sp.state.SetOptions(opts)
}

func (sp *StylePanel) newLabelEntry(initial string, field func(*chart.Labels) *string) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(initial)
	e.OnChanged = func(text string) {
		sp.updateOptions(func(o *chart.Options) { *field(&o.Labels) = text })
	}
	return e
}

func (sp *StylePanel) newToggle(label string, initial bool, set func(*chart.Options, bool)) *widget.Check {
	c := widget.NewCheck(label, func(on bool) {
		sp.updateOptions(func(o *chart.Options) { set(o, on) })
	})
	c.Checked = initial
	return c
}

func (sp *StylePanel) newLineControls(line func(*chart.Options) *chart.LineStyle) *lineControls {
	lc := &lineControls{}
	lc.color = widget.NewSelect(colorutil.LineColorNames(), func(sel string) {
		sp.updateOptions(func(o *chart.Options) { line(o).Color = sel })
	})
	lc.dash = widget.NewSelect(chart.LineStyleNames(), func(sel string) {
		sp.updateOptions(func(o *chart.Options) { line(o).Dash = sel })
	})
	lc.width = widget.NewSelect(numberChoices(1, 10), func(sel string) {
		w, err := strconv.Atoi(sel)
		if err != nil {
			return
		}
		sp.updateOptions(func(o *chart.Options) { line(o).Width = w })
	})
	return lc
}

// refreshBin syncs the bin size controls with the state.
// Direct field writes skip the change callbacks.
func (sp *StylePanel) refreshBin() {
	sp.binSlider.Value = float64(sp.state.BinSize)
	sp.binSlider.Refresh()
	sp.binLabel.SetText(fmt.Sprintf("Bin size: %d rows", sp.state.BinSize))
}

// refreshStyle syncs every styling widget with the state's chart options.
func (sp *StylePanel) refreshStyle() {
	opts := sp.state.Options

	setEntryText(sp.profileTitle, opts.Labels.ProfileTitle)
	setEntryText(sp.profileX, opts.Labels.ProfileXLabel)
	setEntryText(sp.profileY, opts.Labels.ProfileYLabel)
	setEntryText(sp.bandTitle, opts.Labels.BandTitle)
	setEntryText(sp.bandX, opts.Labels.BandXLabel)
	setEntryText(sp.bandY, opts.Labels.BandYLabel)

	setChecked(sp.minmaxCheck, opts.ShowMinMax)
	setChecked(sp.errorCheck, opts.ShowError)
	setChecked(sp.centerCheck, opts.ShowCenter)
	setChecked(sp.gridProfile, opts.GridProfile)
	setChecked(sp.gridBand, opts.GridBand)

	sp.mean.set(opts.Mean)
	sp.min.set(opts.Min)
	sp.max.set(opts.Max)
	sp.center.set(opts.Center)

	sp.markerSelect.Selected = opts.Mean.Marker
	sp.markerSelect.Refresh()
	sp.markerSizeSelect.Selected = strconv.Itoa(opts.Mean.MarkerSize)
	sp.markerSizeSelect.Refresh()
}

func lineRow(name string, lc *lineControls) fyne.CanvasObject {
	return container.NewGridWithColumns(4, widget.NewLabel(name), lc.color, lc.dash, lc.width)
}

func setEntryText(e *widget.Entry, text string) {
	if e.Text == text {
		return
	}
	e.Text = text
	e.Refresh()
}

func setChecked(c *widget.Check, on bool) {
	c.Checked = on
	c.Refresh()
}

func numberChoices(lo, hi int) []string {
	var out []string
	for n := lo; n <= hi; n++ {
		out = append(out, strconv.Itoa(n))
	}
	return out
}
