// Package canvas provides the segment overlay drawn over the scan.
package canvas

import (
	"image"
	"math"

	"intensity-profiler/pkg/colorutil"
	"intensity-profiler/pkg/geometry"
)

const (
	segmentThickness  = 3
	bandLineThickness = 1
	handleRadius      = 5
)

// SegmentOverlay is the measurement geometry drawn over the scan: the
// segment with its endpoint handles, and the band boundaries at
// ±HalfBand along the segment's clockwise perpendicular. Coordinates are
// in image pixels; draw scales them by the current zoom.
type SegmentOverlay struct {
	P1       geometry.PointInt
	P2       geometry.PointInt
	HasP1    bool
	HasP2    bool
	HalfBand int
}

func (o SegmentOverlay) draw(output *image.RGBA, zoom float64) {
	if o.HasP1 && o.HasP2 {
		x1 := int(float64(o.P1.X) * zoom)
		y1 := int(float64(o.P1.Y) * zoom)
		x2 := int(float64(o.P2.X) * zoom)
		y2 := int(float64(o.P2.Y) * zoom)

		// Band boundaries first so the segment draws over them
		o.drawBandLines(output, zoom)
		drawLine(output, x1, y1, x2, y2, colorutil.Red, segmentThickness)
	}

	if o.HasP1 {
		drawFilledCircle(output, int(float64(o.P1.X)*zoom), int(float64(o.P1.Y)*zoom), handleRadius, colorutil.Red)
	}
	if o.HasP2 {
		drawFilledCircle(output, int(float64(o.P2.X)*zoom), int(float64(o.P2.Y)*zoom), handleRadius, colorutil.Red)
	}
}

// drawBandLines draws the two green band boundaries. The offsets run along
// the unit perpendicular (dy, -dx)/|segment|, matching the sampler's walk.
func (o SegmentOverlay) drawBandLines(output *image.RGBA, zoom float64) {
	if o.HalfBand <= 0 {
		return
	}

	dx := float64(o.P2.X - o.P1.X)
	dy := float64(o.P2.Y - o.P1.Y)
	segLen := math.Hypot(dx, dy)
	if segLen == 0 {
		return
	}
	perpX := dy / segLen
	perpY := -dx / segLen

	for _, off := range []float64{-float64(o.HalfBand), float64(o.HalfBand)} {
		bx1 := int((float64(o.P1.X) + perpX*off) * zoom)
		by1 := int((float64(o.P1.Y) + perpY*off) * zoom)
		bx2 := int((float64(o.P2.X) + perpX*off) * zoom)
		by2 := int((float64(o.P2.Y) + perpY*off) * zoom)
		drawLine(output, bx1, by1, bx2, by2, colorutil.Green, bandLineThickness)
	}
}
