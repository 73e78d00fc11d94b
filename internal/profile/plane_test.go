package profile

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intensity-profiler/pkg/geometry"
)

func TestParseChannel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want Channel
	}{
		{"gray", "Gray", ChannelGray},
		{"grey spelling", "grey", ChannelGray},
		{"red", "Red", ChannelRed},
		{"red short", "r", ChannelRed},
		{"green upper", "GREEN", ChannelGreen},
		{"blue padded", " blue ", ChannelBlue},
		{"blue short", "B", ChannelBlue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseChannel(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	got, err := ParseChannel("chartreuse")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Equal(t, ChannelGray, got)
}

func TestChannelString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Gray", ChannelGray.String())
	assert.Equal(t, "Red", ChannelRed.String())
	assert.Equal(t, "Green", ChannelGreen.String())
	assert.Equal(t, "Blue", ChannelBlue.String())
}

func TestNewPlaneChannels(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	cases := []struct {
		ch   Channel
		want uint8
	}{
		{ChannelRed, 200},
		{ChannelGreen, 100},
		{ChannelBlue, 50},
		// Gray is the floor of the unweighted mean: (200+100+50)/3 = 116.
		{ChannelGray, 116},
	}
	for _, tc := range cases {
		t.Run(tc.ch.String(), func(t *testing.T) {
			p := NewPlane(src, tc.ch)
			require.Equal(t, 4, p.W)
			require.Equal(t, 3, p.H)
			for _, v := range p.Pix {
				assert.Equal(t, tc.want, v)
			}
		})
	}
}

func TestNewPlaneGrayscaleSource(t *testing.T) {
	t.Parallel()

	// A grayscale source decodes with R=G=B, so every channel extracts the
	// same plane.
	src := image.NewGray(image.Rect(0, 0, 5, 5))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}

	gray := NewPlane(src, ChannelGray)
	for _, ch := range []Channel{ChannelRed, ChannelGreen, ChannelBlue} {
		assert.Equal(t, gray.Pix, NewPlane(src, ch).Pix, "channel %s", ch)
	}
}

func TestNewPlaneOffsetBounds(t *testing.T) {
	t.Parallel()

	// Sub-images have nonzero bounds origins; the plane must index from the
	// bounds minimum, not from (0, 0).
	src := image.NewRGBA(image.Rect(10, 20, 13, 22))
	src.Set(10, 20, color.RGBA{R: 9, G: 9, B: 9, A: 255})
	src.Set(12, 21, color.RGBA{R: 33, G: 33, B: 33, A: 255})

	p := NewPlane(src, ChannelGray)
	require.Equal(t, 3, p.W)
	require.Equal(t, 2, p.H)
	assert.Equal(t, uint8(9), p.At(0, 0))
	assert.Equal(t, uint8(33), p.At(2, 1))
	assert.Equal(t, uint8(0), p.At(1, 0))
}

func TestPlaneAtZeroFill(t *testing.T) {
	t.Parallel()

	p := NewUniform(4, 4, 77)
	assert.Equal(t, uint8(77), p.At(0, 0))
	assert.Equal(t, uint8(77), p.At(3, 3))

	outside := []geometry.PointInt{
		{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 4, Y: 0}, {X: 0, Y: 4}, {X: -5, Y: 9},
	}
	for _, pt := range outside {
		assert.Equal(t, uint8(0), p.At(pt.X, pt.Y), "at (%d,%d)", pt.X, pt.Y)
	}
}

func TestPlaneSet(t *testing.T) {
	t.Parallel()

	p := NewUniform(3, 3, 0)
	p.Set(1, 2, 42)
	assert.Equal(t, uint8(42), p.At(1, 2))

	p.Set(-1, 0, 99)
	p.Set(3, 0, 99)
	for _, v := range p.Pix {
		assert.NotEqual(t, uint8(99), v)
	}
}

func TestPlaneClamp(t *testing.T) {
	t.Parallel()

	p := NewUniform(10, 8, 0)
	assert.Equal(t, geometry.PointInt{X: 4, Y: 5}, p.Clamp(geometry.PointInt{X: 4, Y: 5}))
	assert.Equal(t, geometry.PointInt{X: 0, Y: 0}, p.Clamp(geometry.PointInt{X: -3, Y: -1}))
	assert.Equal(t, geometry.PointInt{X: 9, Y: 7}, p.Clamp(geometry.PointInt{X: 12, Y: 99}))
}
