package profile

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Bin is one aggregated block of corridor rows.
//
// Position is the block's center in pixels along the segment. Mean averages
// the per-row means of the block and StdDev averages the per-row standard
// deviations, so StdDev measures typical cross-band spread rather than the
// spread of the pooled samples. Min and Max are the true extrema over every
// raw sample in the block, including zeros from out-of-bounds reads.
type Bin struct {
	Position float64
	Mean     float64
	StdDev   float64
	Min      uint8
	Max      uint8
}

// Aggregate folds a corridor into blocks of binSize consecutive rows. Only
// complete blocks are produced; up to binSize-1 trailing rows are discarded.
// A corridor shorter than one block yields no bins, which is a valid empty
// result rather than an error.
func Aggregate(c *Corridor, binSize int) ([]Bin, error) {
	if c == nil {
		return nil, fmt.Errorf("nil corridor")
	}
	if binSize <= 0 {
		return nil, fmt.Errorf("%w: bin size %d must be positive", ErrInvalidConfiguration, binSize)
	}

	nBins := c.Length / binSize
	if nBins == 0 {
		return nil, nil
	}

	cols := c.Cols()
	bins := make([]Bin, 0, nBins)
	for j := 0; j < nBins; j++ {
		start := j * binSize
		end := start + binSize
		b := Bin{
			Position: (float64(j) + 0.5) * float64(binSize),
			Mean:     stat.Mean(c.RowMean[start:end], nil),
			StdDev:   stat.Mean(c.RowStd[start:end], nil),
		}
		block := c.Samples[start*cols : end*cols]
		b.Min, b.Max = block[0], block[0]
		for _, v := range block[1:] {
			if v < b.Min {
				b.Min = v
			}
			if v > b.Max {
				b.Max = v
			}
		}
		bins = append(bins, b)
	}
	return bins, nil
}
