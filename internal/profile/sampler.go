package profile

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"intensity-profiler/pkg/geometry"
)

var (
	// ErrDegenerateSegment reports a segment too short to sample: the
	// endpoints coincide, or they are close enough that the rounded length
	// is zero.
	ErrDegenerateSegment = errors.New("degenerate segment")

	// ErrInvalidConfiguration reports an analysis parameter outside its
	// valid range.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Corridor holds the samples and per-row statistics of one corridor walk.
// Samples is row-major: Length rows of Cols() band samples each, ordered
// from offset -HalfBand to +HalfBand, so column HalfBand is the centerline.
type Corridor struct {
	Length   int
	HalfBand int
	Samples  []uint8
	RowMean  []float64
	RowStd   []float64
}

// Cols returns the band width in samples, 2*HalfBand+1.
func (c *Corridor) Cols() int {
	return 2*c.HalfBand + 1
}

// Row returns the band samples of row i, from offset -HalfBand to +HalfBand.
func (c *Corridor) Row(i int) []uint8 {
	cols := c.Cols()
	return c.Samples[i*cols : (i+1)*cols]
}

// At returns the sample at row i and signed perpendicular offset o.
func (c *Corridor) At(i, o int) uint8 {
	return c.Samples[i*c.Cols()+o+c.HalfBand]
}

// SegmentLength returns the number of rows a corridor over p1..p2 has: the
// Euclidean segment length rounded to the nearest integer.
func SegmentLength(p1, p2 geometry.PointInt) int {
	return int(math.Round(p1.Distance(p2)))
}

// SampleCorridor walks the corridor of half-width halfBand around the
// segment p1..p2 and returns the samples with per-row statistics.
//
// The row count is the Euclidean segment length rounded to the nearest
// integer. Row centers are evenly spaced from p1 to p2 inclusive; a
// single-row corridor sits at p1. Each row reads 2*halfBand+1 samples along
// the unit perpendicular (dy, -dx)/|segment|, which points 90 degrees
// clockwise from the walk direction in image coordinates. Sample positions
// truncate toward zero to the nearest pixel, and positions outside the plane
// read as zero. RowMean and RowStd are the mean and population standard
// deviation of each row's band.
func SampleCorridor(plane *Plane, p1, p2 geometry.PointInt, halfBand int) (*Corridor, error) {
	if plane == nil {
		return nil, fmt.Errorf("nil plane")
	}
	if halfBand < 0 {
		return nil, fmt.Errorf("%w: band half-width %d is negative", ErrInvalidConfiguration, halfBand)
	}

	dx := float64(p2.X - p1.X)
	dy := float64(p2.Y - p1.Y)
	segLen := math.Hypot(dx, dy)
	length := SegmentLength(p1, p2)
	if segLen == 0 || length == 0 {
		return nil, fmt.Errorf("%w: (%d,%d) to (%d,%d)", ErrDegenerateSegment, p1.X, p1.Y, p2.X, p2.Y)
	}

	// Unit perpendicular to the segment. Offset -halfBand lies on the
	// counterclockwise side of the walk direction.
	perpX := dy / segLen
	perpY := -dx / segLen

	cols := 2*halfBand + 1
	c := &Corridor{
		Length:   length,
		HalfBand: halfBand,
		Samples:  make([]uint8, length*cols),
		RowMean:  make([]float64, length),
		RowStd:   make([]float64, length),
	}

	row := make([]float64, cols)
	for i := 0; i < length; i++ {
		t := 0.0
		if length > 1 {
			t = float64(i) / float64(length-1)
		}
		cx := float64(p1.X) + dx*t
		cy := float64(p1.Y) + dy*t

		for o := -halfBand; o <= halfBand; o++ {
			bx := int(cx + perpX*float64(o))
			by := int(cy + perpY*float64(o))
			v := plane.At(bx, by)
			c.Samples[i*cols+o+halfBand] = v
			row[o+halfBand] = float64(v)
		}
		c.RowMean[i] = stat.Mean(row, nil)
		c.RowStd[i] = stat.PopStdDev(row, nil)
	}
	return c, nil
}
