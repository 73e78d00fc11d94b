package panels

import (
	goimage "image"

	"intensity-profiler/internal/app"
	"intensity-profiler/internal/chart"
	"intensity-profiler/internal/image"
	"intensity-profiler/pkg/colorutil"
	"intensity-profiler/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// PreviewPanel shows magnified views of the segment endpoints and a live
// strip of the sampled band.
type PreviewPanel struct {
	state     *app.State
	container fyne.CanvasObject

	p1View    *fynecanvas.Image
	p2View    *fynecanvas.Image
	stripView *fynecanvas.Image
}

// NewPreviewPanel creates the endpoint and band preview panel.
func NewPreviewPanel(state *app.State) *PreviewPanel {
	pp := &PreviewPanel{state: state}

	pp.p1View = newPreviewImage(image.MagnifierSize, image.MagnifierSize)
	pp.p2View = newPreviewImage(image.MagnifierSize, image.MagnifierSize)
	pp.stripView = newPreviewImage(2*image.MagnifierSize, 60)

	p1Box := container.NewVBox(widget.NewLabel("P1"), container.NewCenter(pp.p1View))
	p2Box := container.NewVBox(widget.NewLabel("P2"), container.NewCenter(pp.p2View))

	pp.container = container.NewHBox(
		widget.NewCard("Endpoints", "", container.NewHBox(p1Box, p2Box)),
		widget.NewCard("Band", "", pp.stripView),
	)

	refresh := func(data interface{}) {
		pp.Refresh()
	}
	state.On(app.EventImageLoaded, refresh)
	state.On(app.EventSegmentChanged, refresh)
	state.On(app.EventParamsChanged, refresh)

	return pp
}

// Container returns the panel container.
func (pp *PreviewPanel) Container() fyne.CanvasObject {
	return pp.container
}

// Refresh regenerates the endpoint loupes and the band strip from the
// current state.
func (pp *PreviewPanel) Refresh() {
	src := pp.state.Source
	if src == nil {
		setView(pp.p1View, nil)
		setView(pp.p2View, nil)
		setView(pp.stripView, nil)
		return
	}

	setView(pp.p1View, magnifyAt(src.Image, pp.state.P1, pp.state.HasP1))
	setView(pp.p2View, magnifyAt(src.Image, pp.state.P2, pp.state.HasP2))

	corridor, err := pp.state.Corridor()
	if err != nil {
		setView(pp.stripView, nil)
		return
	}
	setView(pp.stripView, chart.BandStrip(corridor))
}

func newPreviewImage(w, h float32) *fynecanvas.Image {
	img := fynecanvas.NewImageFromImage(nil)
	img.FillMode = fynecanvas.ImageFillContain
	img.ScaleMode = fynecanvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(w, h))
	return img
}

func setView(view *fynecanvas.Image, img goimage.Image) {
	view.Image = img
	view.Refresh()
}

func magnifyAt(src goimage.Image, pt geometry.PointInt, ok bool) goimage.Image {
	if !ok {
		return nil
	}
	return image.Magnify(src, pt, image.MagnifierSize, image.MagnifierZoom, colorutil.Red)
}
