package image

import (
	"image"
	"image/color"
	stddraw "image/draw"

	xdraw "golang.org/x/image/draw"

	"intensity-profiler/pkg/geometry"
)

// Default loupe geometry for the endpoint magnifiers.
const (
	MagnifierSize = 120
	MagnifierZoom = 4
)

// magnifierBackdrop fills the parts of the loupe that fall outside the
// source image.
var magnifierBackdrop = color.RGBA{40, 40, 40, 255}

// Magnify renders a size-by-size loupe centered on a plane coordinate,
// scaled up by zoom with nearest-neighbor sampling so individual pixels stay
// visible, and draws a one-pixel crosshair through the center in the given
// color. Regions of the loupe beyond the image edges show the backdrop.
func Magnify(src image.Image, center geometry.PointInt, size, zoom int, cross color.Color) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	stddraw.Draw(dst, dst.Bounds(), &image.Uniform{magnifierBackdrop}, image.Point{}, stddraw.Src)
	if src == nil || size <= 0 || zoom <= 0 {
		return dst
	}

	half := size / (2 * zoom)
	if half < 1 {
		half = 1
	}

	// Field of view in source coordinates, clipped to the image.
	bounds := src.Bounds()
	field := image.Rect(center.X-half, center.Y-half, center.X+half, center.Y+half).Add(bounds.Min)
	visible := field.Intersect(bounds)
	if !visible.Empty() {
		// Map the visible part of the field onto the loupe.
		fw := field.Dx()
		dstRect := image.Rect(
			(visible.Min.X-field.Min.X)*size/fw,
			(visible.Min.Y-field.Min.Y)*size/fw,
			(visible.Max.X-field.Min.X)*size/fw,
			(visible.Max.Y-field.Min.Y)*size/fw,
		)
		xdraw.NearestNeighbor.Scale(dst, dstRect, src, visible, xdraw.Src, nil)
	}

	mid := size / 2
	for i := 0; i < size; i++ {
		dst.Set(mid, i, cross)
		dst.Set(i, mid, cross)
	}
	return dst
}
