package chart

import (
	"image"

	"intensity-profiler/internal/profile"
)

// BandStrip renders a corridor as a grayscale strip, transposed so the
// segment runs left to right: x is the longitudinal position and y is the
// perpendicular offset, with offset -HalfBand on the top row.
func BandStrip(c *profile.Corridor) *image.Gray {
	if c == nil || c.Length == 0 {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}
	cols := c.Cols()
	strip := image.NewGray(image.Rect(0, 0, c.Length, cols))
	for y := 0; y < cols; y++ {
		for x := 0; x < c.Length; x++ {
			strip.Pix[y*strip.Stride+x] = c.Samples[x*cols+y]
		}
	}
	return strip
}
