package chart

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intensity-profiler/internal/profile"
	"intensity-profiler/pkg/geometry"
)

func testCorridor(t *testing.T) (*profile.Corridor, []profile.Bin) {
	t.Helper()

	p := profile.NewUniform(64, 64, 100)
	c, err := profile.SampleCorridor(p, geometry.PointInt{X: 5, Y: 30}, geometry.PointInt{X: 55, Y: 30}, 2)
	require.NoError(t, err)
	bins, err := profile.Aggregate(c, 10)
	require.NoError(t, err)
	require.NotEmpty(t, bins)
	return c, bins
}

func TestRenderProfile(t *testing.T) {
	t.Parallel()

	c, bins := testCorridor(t)
	img, err := RenderProfile(c, bins, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Greater(t, img.Bounds().Dx(), 0)
	assert.Greater(t, img.Bounds().Dy(), 0)
}

func TestRenderProfileVariants(t *testing.T) {
	t.Parallel()

	c, bins := testCorridor(t)

	cases := []struct {
		name string
		mod  func(*Options)
	}{
		{"markers only", func(o *Options) {
			o.Mean.Width = 0
			o.Mean.Marker = "Circle"
		}},
		{"no extras", func(o *Options) {
			o.ShowMinMax = false
			o.ShowError = false
			o.GridProfile = false
			o.GridBand = false
		}},
		{"centerline dashed", func(o *Options) {
			o.ShowCenter = true
			o.Center.Dash = "Dashed"
		}},
		{"styled extrema", func(o *Options) {
			o.Min.Dash = "Dotted"
			o.Max.Dash = "Dash-Dot"
			o.Mean.Marker = "Triangle"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			tc.mod(&opts)
			img, err := RenderProfile(c, bins, opts)
			require.NoError(t, err)
			assert.NotNil(t, img)
		})
	}
}

func TestRenderProfileEmptyBins(t *testing.T) {
	t.Parallel()

	p := profile.NewUniform(16, 16, 50)
	c, err := profile.SampleCorridor(p, geometry.PointInt{X: 0, Y: 8}, geometry.PointInt{X: 5, Y: 8}, 1)
	require.NoError(t, err)
	bins, err := profile.Aggregate(c, 100)
	require.NoError(t, err)
	require.Empty(t, bins)

	img, err := RenderProfile(c, bins, DefaultOptions())
	require.NoError(t, err)
	assert.NotNil(t, img)
}

func TestRenderProfileNilCorridor(t *testing.T) {
	t.Parallel()

	_, err := RenderProfile(nil, nil, DefaultOptions())
	assert.Error(t, err)
}

func TestSaveProfilePNG(t *testing.T) {
	t.Parallel()

	c, bins := testCorridor(t)
	path := filepath.Join(t.TempDir(), "profile.png")
	require.NoError(t, SaveProfilePNG(path, c, bins, DefaultOptions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data[:8])
}

func multiProfiles(t *testing.T) []profile.ChannelProfile {
	t.Helper()

	src := image.NewRGBA(image.Rect(0, 0, 64, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 64; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 3), G: 100, B: 50, A: 255})
		}
	}
	profiles, err := profile.MultiChannel(src, geometry.PointInt{X: 2, Y: 8}, geometry.PointInt{X: 60, Y: 8}, 2, 10)
	require.NoError(t, err)
	return profiles
}

func TestRenderMultiChannel(t *testing.T) {
	t.Parallel()

	img, err := RenderMultiChannel(multiProfiles(t), DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Greater(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestRenderMultiChannelEmpty(t *testing.T) {
	t.Parallel()

	_, err := RenderMultiChannel(nil, DefaultOptions())
	assert.Error(t, err)
}

func TestSaveMultiChannelPNG(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "channels.png")
	require.NoError(t, SaveMultiChannelPNG(path, multiProfiles(t), DefaultOptions()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
