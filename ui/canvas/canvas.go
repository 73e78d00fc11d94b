// Package canvas provides an image canvas with zoom and segment editing.
package canvas

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"intensity-profiler/pkg/geometry"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25

	// Screen-space pick radius for endpoint handles
	grabRadius = 12.0
)

// Endpoint drag states beyond the two handle indices.
const (
	dragIdle = -1
	dragMiss = -2
)

// ImageCanvas displays the scan with the segment overlay and handles
// zooming, segment drawing, and endpoint dragging.
type ImageCanvas struct {
	widget.BaseWidget

	// Displayed image
	img image.Image

	// Measurement overlay
	overlay SegmentOverlay

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Interaction state
	drawMode  bool
	dragIndex int

	// Container
	scroll  *zoomScroll
	content *segmentContent
	imgSize fyne.Size

	// Callbacks
	onZoomChange func(zoom float64)
	onTap        func(pt geometry.PointInt)
	onDragPoint  func(index int, pt geometry.PointInt)
	onHover      func(pt geometry.PointInt)
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ImageCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ImageCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// segmentContent wraps the raster to handle mouse events.
type segmentContent struct {
	widget.BaseWidget
	canvas *ImageCanvas
	raster *fynecanvas.Raster
}

var _ desktop.Hoverable = (*segmentContent)(nil)

func newSegmentContent(ic *ImageCanvas, raster *fynecanvas.Raster) *segmentContent {
	sc := &segmentContent{
		canvas: ic,
		raster: raster,
	}
	sc.ExtendBaseWidget(sc)
	return sc
}

func (sc *segmentContent) CreateRenderer() fyne.WidgetRenderer {
	return &segmentContentRenderer{content: sc}
}

func (sc *segmentContent) MinSize() fyne.Size {
	return sc.raster.MinSize()
}

// contentPosition converts an event position to content coordinates.
// ev positions are relative to the viewport, so add the scroll offset.
func (sc *segmentContent) contentPosition(pos fyne.Position) fyne.Position {
	offset := sc.canvas.scroll.Offset()
	return fyne.Position{X: pos.X + offset.X, Y: pos.Y + offset.Y}
}

// imagePoint converts an event position to image pixel coordinates.
func (sc *segmentContent) imagePoint(pos fyne.Position) geometry.PointInt {
	p := sc.contentPosition(pos)
	return geometry.PointInt{
		X: int(float64(p.X) / sc.canvas.zoom),
		Y: int(float64(p.Y) / sc.canvas.zoom),
	}
}

// Tapped places segment endpoints while draw mode is armed.
func (sc *segmentContent) Tapped(ev *fyne.PointEvent) {
	if !sc.canvas.drawMode || sc.canvas.onTap == nil {
		return
	}

	// Reject clicks outside widget bounds
	size := sc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	sc.canvas.onTap(sc.imagePoint(ev.Position))
}

// Dragged moves an endpoint handle when the drag started on one.
func (sc *segmentContent) Dragged(ev *fyne.DragEvent) {
	if sc.canvas.drawMode {
		return
	}

	pos := sc.contentPosition(ev.Position)
	if sc.canvas.dragIndex == dragIdle {
		sc.canvas.dragIndex = sc.canvas.hitTestHandle(pos)
	}
	if sc.canvas.dragIndex < 0 {
		return
	}

	if sc.canvas.onDragPoint != nil {
		sc.canvas.onDragPoint(sc.canvas.dragIndex, sc.imagePoint(ev.Position))
	}
}

func (sc *segmentContent) DragEnd() {
	sc.canvas.dragIndex = dragIdle
}

func (sc *segmentContent) Scrolled(ev *fyne.ScrollEvent) {
	// Use mouse wheel for zooming
	if ev.Scrolled.DY > 0 {
		sc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		sc.canvas.ZoomOut()
	}
}

func (sc *segmentContent) MouseIn(*desktop.MouseEvent) {}

func (sc *segmentContent) MouseMoved(ev *desktop.MouseEvent) {
	if sc.canvas.onHover != nil {
		sc.canvas.onHover(sc.imagePoint(ev.Position))
	}
}

func (sc *segmentContent) MouseOut() {}

type segmentContentRenderer struct {
	content *segmentContent
}

func (r *segmentContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *segmentContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *segmentContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *segmentContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *segmentContentRenderer) Destroy() {}

// NewImageCanvas creates a new image canvas.
func NewImageCanvas() *ImageCanvas {
	ic := &ImageCanvas{
		zoom:      1.0,
		dragIndex: dragIdle,
		imgSize:   fyne.NewSize(400, 300),
	}

	// Create the raster for drawing
	ic.raster = fynecanvas.NewRaster(ic.draw)
	ic.raster.ScaleMode = fynecanvas.ImageScalePixels
	ic.raster.SetMinSize(ic.imgSize)

	// Wrap raster in event-handling content
	ic.content = newSegmentContent(ic, ic.raster)

	// Zoomable scroll container (wheel = zoom, scrollbars = pan)
	ic.scroll = newZoomScroll(ic.content, ic)

	ic.ExtendBaseWidget(ic)
	return ic
}

// Container returns the canvas container for embedding in layouts.
func (ic *ImageCanvas) Container() fyne.CanvasObject {
	return ic.scroll
}

// SetImage sets the displayed image. A nil image clears the canvas.
func (ic *ImageCanvas) SetImage(img image.Image) {
	ic.img = img
	ic.updateContentSize()
}

// Image returns the displayed image.
func (ic *ImageCanvas) Image() image.Image {
	return ic.img
}

// SetOverlay replaces the segment overlay.
func (ic *ImageCanvas) SetOverlay(o SegmentOverlay) {
	ic.overlay = o
	ic.Refresh()
}

// SetDrawMode arms or disarms two-tap segment placement.
func (ic *ImageCanvas) SetDrawMode(draw bool) {
	ic.drawMode = draw
	ic.dragIndex = dragIdle
}

// SetZoom sets the zoom level.
func (ic *ImageCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	ic.zoom = zoom
	ic.updateContentSize()

	if ic.onZoomChange != nil {
		ic.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (ic *ImageCanvas) Zoom() float64 {
	return ic.zoom
}

// ZoomIn increases the zoom level.
func (ic *ImageCanvas) ZoomIn() {
	ic.SetZoom(ic.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (ic *ImageCanvas) ZoomOut() {
	ic.SetZoom(ic.zoom / zoomStep)
}

// OnZoomChange sets a callback for zoom changes.
func (ic *ImageCanvas) OnZoomChange(callback func(zoom float64)) {
	ic.onZoomChange = callback
}

// OnTap sets the callback for draw-mode taps. Coordinates are image pixels.
func (ic *ImageCanvas) OnTap(callback func(pt geometry.PointInt)) {
	ic.onTap = callback
}

// OnDragPoint sets the callback for endpoint drags: index 0 is P1, 1 is P2.
func (ic *ImageCanvas) OnDragPoint(callback func(index int, pt geometry.PointInt)) {
	ic.onDragPoint = callback
}

// OnHover sets the callback for pointer movement over the image.
func (ic *ImageCanvas) OnHover(callback func(pt geometry.PointInt)) {
	ic.onHover = callback
}

// Refresh refreshes the canvas display.
func (ic *ImageCanvas) Refresh() {
	ic.raster.Refresh()
}

// hitTestHandle returns the handle index at a content position, or dragMiss.
func (ic *ImageCanvas) hitTestHandle(pos fyne.Position) int {
	handles := []struct {
		pt  geometry.PointInt
		has bool
	}{
		{ic.overlay.P1, ic.overlay.HasP1},
		{ic.overlay.P2, ic.overlay.HasP2},
	}

	for i, h := range handles {
		if !h.has {
			continue
		}
		hx := float64(h.pt.X) * ic.zoom
		hy := float64(h.pt.Y) * ic.zoom
		if math.Hypot(float64(pos.X)-hx, float64(pos.Y)-hy) <= grabRadius {
			return i
		}
	}
	return dragMiss
}

// updateContentSize updates the content size from the image and zoom.
func (ic *ImageCanvas) updateContentSize() {
	if ic.img == nil {
		ic.imgSize = fyne.NewSize(400, 300)
	} else {
		bounds := ic.img.Bounds()
		width := float32(float64(bounds.Dx()) * ic.zoom)
		height := float32(float64(bounds.Dy()) * ic.zoom)
		ic.imgSize = fyne.NewSize(width, height)
	}

	ic.raster.SetMinSize(ic.imgSize)
	ic.raster.Resize(ic.imgSize)
	if ic.content != nil {
		ic.content.Resize(ic.imgSize)
		ic.content.Refresh()
	}
	ic.raster.Refresh()
	if ic.scroll != nil {
		ic.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (ic *ImageCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// Black background
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}

	if ic.img != nil {
		ic.drawImage(output, w, h)
	}
	ic.overlay.draw(output, ic.zoom)

	return output
}

// drawImage paints the zoomed image with nearest-neighbor sampling.
func (ic *ImageCanvas) drawImage(output *image.RGBA, w, h int) {
	src := ic.img
	bounds := src.Bounds()

	for y := 0; y < h; y++ {
		sy := bounds.Min.Y + int(float64(y)/ic.zoom)
		if sy < bounds.Min.Y || sy >= bounds.Max.Y {
			continue
		}
		for x := 0; x < w; x++ {
			sx := bounds.Min.X + int(float64(x)/ic.zoom)
			if sx < bounds.Min.X || sx >= bounds.Max.X {
				continue
			}
			output.Set(x, y, src.At(sx, sy))
		}
	}
}

// CreateRenderer implements fyne.Widget.
func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &imageCanvasRenderer{canvas: ic}
}

type imageCanvasRenderer struct {
	canvas *ImageCanvas
}

func (r *imageCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	} else if r.canvas.content != nil {
		r.canvas.content.Resize(size)
	}
}

func (r *imageCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *imageCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *imageCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.canvas.scroll != nil {
		return []fyne.CanvasObject{r.canvas.scroll}
	}
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *imageCanvasRenderer) Destroy() {}
