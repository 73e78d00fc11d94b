package profile

import (
	"fmt"
	"image"

	"intensity-profiler/pkg/geometry"
)

// ChannelProfile is the outcome of one channel's corridor analysis.
type ChannelProfile struct {
	Channel  Channel
	Corridor *Corridor
	Bins     []Bin
}

// multiChannelOrder fixes the report order of the per-channel runs.
var multiChannelOrder = []Channel{ChannelRed, ChannelGreen, ChannelBlue, ChannelGray}

// MultiChannel runs the corridor analysis once per channel over the same
// segment and parameters. Each run extracts its own plane from the source
// image, so the channels are independent; a failure in any channel aborts
// the whole analysis.
func MultiChannel(src image.Image, p1, p2 geometry.PointInt, halfBand, binSize int) ([]ChannelProfile, error) {
	if src == nil {
		return nil, fmt.Errorf("nil image")
	}

	profiles := make([]ChannelProfile, 0, len(multiChannelOrder))
	for _, ch := range multiChannelOrder {
		plane := NewPlane(src, ch)
		corr, err := SampleCorridor(plane, p1, p2, halfBand)
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", ch, err)
		}
		bins, err := Aggregate(corr, binSize)
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", ch, err)
		}
		profiles = append(profiles, ChannelProfile{Channel: ch, Corridor: corr, Bins: bins})
	}
	return profiles, nil
}
