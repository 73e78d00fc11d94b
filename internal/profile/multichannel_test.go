package profile

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestMultiChannelOrderAndValues(t *testing.T) {
	t.Parallel()

	src := flatRGBA(12, 3, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	profiles, err := MultiChannel(src, pt(0, 1), pt(11, 1), 0, 5)
	require.NoError(t, err)
	require.Len(t, profiles, 4)

	wantOrder := []Channel{ChannelRed, ChannelGreen, ChannelBlue, ChannelGray}
	wantValue := []uint8{200, 100, 50, 116}
	for i, p := range profiles {
		assert.Equal(t, wantOrder[i], p.Channel)
		require.NotNil(t, p.Corridor)
		assert.Equal(t, 11, p.Corridor.Length)

		require.Len(t, p.Bins, 2, "channel %s", p.Channel)
		for _, b := range p.Bins {
			assert.Equal(t, float64(wantValue[i]), b.Mean, "channel %s", p.Channel)
			assert.Equal(t, 0.0, b.StdDev)
			assert.Equal(t, wantValue[i], b.Min)
			assert.Equal(t, wantValue[i], b.Max)
		}
	}
}

func TestMultiChannelDegenerate(t *testing.T) {
	t.Parallel()

	src := flatRGBA(8, 8, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	profiles, err := MultiChannel(src, pt(3, 3), pt(3, 3), 1, 2)
	assert.ErrorIs(t, err, ErrDegenerateSegment)
	assert.Nil(t, profiles)
}

func TestMultiChannelInvalidBinSize(t *testing.T) {
	t.Parallel()

	src := flatRGBA(8, 8, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	profiles, err := MultiChannel(src, pt(0, 4), pt(7, 4), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Nil(t, profiles)
}

func TestMultiChannelNilImage(t *testing.T) {
	t.Parallel()

	profiles, err := MultiChannel(nil, pt(0, 0), pt(5, 0), 1, 2)
	assert.Error(t, err)
	assert.Nil(t, profiles)
}
