// Package profile implements corridor sampling and statistical downsampling
// of pixel intensities along a line segment in an image. The corridor sampler
// walks evenly spaced centers between two endpoints and reads a perpendicular
// band of nearest-neighbor samples at each one; the aggregator folds the
// per-row statistics into fixed-size bins for compact display.
package profile

import (
	"fmt"
	"image"
	"strings"

	"intensity-profiler/pkg/geometry"
)

// Channel selects how a color pixel is reduced to a single intensity value.
type Channel int

const (
	ChannelGray Channel = iota
	ChannelRed
	ChannelGreen
	ChannelBlue
)

// String returns the display name of the channel.
func (c Channel) String() string {
	switch c {
	case ChannelRed:
		return "Red"
	case ChannelGreen:
		return "Green"
	case ChannelBlue:
		return "Blue"
	default:
		return "Gray"
	}
}

// Short returns the abbreviated channel name used in figure titles.
func (c Channel) Short() string {
	switch c {
	case ChannelRed:
		return "R"
	case ChannelGreen:
		return "G"
	case ChannelBlue:
		return "B"
	default:
		return "Gray"
	}
}

// ParseChannel maps a channel name to its value. Full names and single-letter
// abbreviations are accepted, case-insensitively.
func ParseChannel(name string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gray", "grey", "v", "value":
		return ChannelGray, nil
	case "red", "r":
		return ChannelRed, nil
	case "green", "g":
		return ChannelGreen, nil
	case "blue", "b":
		return ChannelBlue, nil
	default:
		return ChannelGray, fmt.Errorf("%w: unknown channel %q", ErrInvalidConfiguration, name)
	}
}

// Channels lists the selectable channels in display order.
func Channels() []Channel {
	return []Channel{ChannelGray, ChannelRed, ChannelGreen, ChannelBlue}
}

// Plane is a single-channel intensity image: H rows of W unsigned 8-bit
// samples, row-major, origin at the top-left. A Plane is immutable once
// built for an analysis.
type Plane struct {
	W, H int
	Pix  []uint8
}

// NewPlane extracts one channel of an image into a Plane. Gray is the floor
// of the unweighted mean of the three color components, so a grayscale
// source (which decodes with R=G=B) yields the same plane for every channel.
func NewPlane(src image.Image, ch Channel) *Plane {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	p := &Plane{W: w, H: h, Pix: make([]uint8, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			var v uint32
			switch ch {
			case ChannelRed:
				v = r >> 8
			case ChannelGreen:
				v = g >> 8
			case ChannelBlue:
				v = b >> 8
			default:
				v = ((r >> 8) + (g >> 8) + (b >> 8)) / 3
			}
			p.Pix[y*w+x] = uint8(v)
		}
	}
	return p
}

// NewUniform builds a plane filled with a constant value.
func NewUniform(w, h int, v uint8) *Plane {
	p := &Plane{W: w, H: h, Pix: make([]uint8, w*h)}
	for i := range p.Pix {
		p.Pix[i] = v
	}
	return p
}

// At returns the sample at (x, y), or 0 when the coordinate lies outside the
// plane. The zero fill is the corridor sampler's out-of-bounds policy: border
// samples contribute zeros to the statistics rather than being clamped to the
// edge or excluded.
func (p *Plane) At(x, y int) uint8 {
	if x < 0 || x >= p.W || y < 0 || y >= p.H {
		return 0
	}
	return p.Pix[y*p.W+x]
}

// Set writes the sample at (x, y). Out-of-bounds writes are ignored.
func (p *Plane) Set(x, y int, v uint8) {
	if x < 0 || x >= p.W || y < 0 || y >= p.H {
		return
	}
	p.Pix[y*p.W+x] = v
}

// Clamp clamps a point into the plane's bounds. Segment endpoints must be
// clamped before sampling; the sampler itself only bounds-checks the
// individual band samples.
func (p *Plane) Clamp(pt geometry.PointInt) geometry.PointInt {
	return pt.Clamp(p.W, p.H)
}
