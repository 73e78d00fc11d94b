package app

import (
	goimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intensity-profiler/internal/chart"
	"intensity-profiler/internal/image"
	"intensity-profiler/internal/preset"
	"intensity-profiler/internal/profile"
	"intensity-profiler/pkg/geometry"
)

// stateWithImage returns a State with a 20x10 uniform gray source attached,
// bypassing file loading.
func stateWithImage(t *testing.T, value uint8) *State {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			img.SetRGBA(x, y, color.RGBA{R: value, G: value, B: value, A: 255})
		}
	}
	s := NewState()
	s.Source = &image.Source{Path: "test.png", Format: "png", Image: img}
	return s
}

func pt(x, y int) geometry.PointInt {
	return geometry.PointInt{X: x, Y: y}
}

func TestNewStateDefaults(t *testing.T) {
	t.Parallel()

	s := NewState()
	assert.Equal(t, profile.ChannelGray, s.Channel)
	assert.Equal(t, DefaultBandWidth, s.BandWidth)
	assert.Equal(t, DefaultBinSize, s.BinSize)
	assert.Empty(t, cmp.Diff(chart.DefaultOptions(), s.Options))

	_, _, ok := s.Segment()
	assert.False(t, ok)
	assert.False(t, s.IsDrawing())
	assert.Nil(t, s.Source)
}

func TestHalfBandDerivation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bandWidth int
		halfBand  int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{5, 2},
		{200, 100},
	}
	for _, tt := range tests {
		s := NewState()
		s.SetBandWidth(tt.bandWidth)
		assert.Equal(t, tt.halfBand, s.HalfBand(), "band width %d", tt.bandWidth)
	}
}

func TestParamClamping(t *testing.T) {
	t.Parallel()

	s := NewState()

	s.SetBandWidth(-4)
	assert.Equal(t, MinBandWidth, s.BandWidth)
	s.SetBandWidth(999)
	assert.Equal(t, MaxBandWidth, s.BandWidth)

	s.SetBinSize(0)
	assert.Equal(t, MinBinSize, s.BinSize)
	s.SetBinSize(5000)
	assert.Equal(t, MaxBinSize, s.BinSize)
}

func TestEventsFire(t *testing.T) {
	t.Parallel()

	s := NewState()

	var params, style, segment, presets int
	s.On(EventParamsChanged, func(interface{}) { params++ })
	s.On(EventStyleChanged, func(interface{}) { style++ })
	s.On(EventSegmentChanged, func(interface{}) { segment++ })
	s.On(EventPresetLoaded, func(interface{}) { presets++ })

	s.SetChannel(profile.ChannelRed)
	s.SetBandWidth(10)
	s.SetBinSize(20)
	assert.Equal(t, 3, params)

	s.SetOptions(chart.DefaultOptions())
	assert.Equal(t, 1, style)
	assert.Equal(t, 3, params, "style change must not fire params")

	s.SetEndpoints(pt(0, 0), pt(5, 5))
	s.ClearSegment()
	assert.Equal(t, 2, segment)

	s.ApplyPreset(&preset.Preset{})
	assert.Equal(t, 1, presets)
}

func TestDrawingSequence(t *testing.T) {
	t.Parallel()

	s := stateWithImage(t, 100)
	s.SetDrawing(true)
	require.True(t, s.IsDrawing())

	s.SetSegmentPoint(pt(2, 3))
	assert.True(t, s.HasP1)
	assert.False(t, s.HasP2)
	assert.True(t, s.IsDrawing())

	s.SetSegmentPoint(pt(8, 3))
	p1, p2, ok := s.Segment()
	require.True(t, ok)
	assert.Equal(t, pt(2, 3), p1)
	assert.Equal(t, pt(8, 3), p2)
	assert.False(t, s.IsDrawing(), "second point leaves drawing mode")

	// A further point starts a fresh segment
	s.SetSegmentPoint(pt(4, 4))
	assert.True(t, s.HasP1)
	assert.False(t, s.HasP2)
	assert.Equal(t, pt(4, 4), s.P1)
}

func TestEndpointClamping(t *testing.T) {
	t.Parallel()

	s := stateWithImage(t, 100)
	s.SetEndpoints(pt(-5, 3), pt(100, 100))

	p1, p2, ok := s.Segment()
	require.True(t, ok)
	assert.Equal(t, pt(0, 3), p1)
	assert.Equal(t, pt(19, 9), p2)

	s.SetSegmentPoint(pt(-1, -1))
	assert.Equal(t, pt(0, 0), s.P1)
}

func TestMoveEndpoint(t *testing.T) {
	t.Parallel()

	s := stateWithImage(t, 100)
	s.SetEndpoints(pt(1, 1), pt(10, 1))

	s.MoveEndpoint(0, pt(2, 2))
	s.MoveEndpoint(1, pt(50, 2))

	p1, p2, _ := s.Segment()
	assert.Equal(t, pt(2, 2), p1)
	assert.Equal(t, pt(19, 2), p2)
}

func TestSegmentLength(t *testing.T) {
	t.Parallel()

	s := stateWithImage(t, 100)
	assert.Equal(t, 0, s.SegmentLength())

	s.SetEndpoints(pt(0, 0), pt(3, 4))
	assert.Equal(t, 5, s.SegmentLength())
}

func TestCorridorRequiresInputs(t *testing.T) {
	t.Parallel()

	s := NewState()
	_, err := s.Corridor()
	assert.ErrorIs(t, err, ErrNoImage)
	_, err = s.MultiChannel()
	assert.ErrorIs(t, err, ErrNoImage)

	s = stateWithImage(t, 100)
	_, err = s.Corridor()
	assert.ErrorIs(t, err, ErrNoSegment)
	_, _, err = s.Profile()
	assert.ErrorIs(t, err, ErrNoSegment)
	_, err = s.MultiChannel()
	assert.ErrorIs(t, err, ErrNoSegment)
}

func TestProfileRecomputesFromCurrentState(t *testing.T) {
	t.Parallel()

	s := stateWithImage(t, 100)
	s.SetEndpoints(pt(2, 5), pt(12, 5))
	s.SetBinSize(5)

	c, bins, err := s.Profile()
	require.NoError(t, err)
	assert.Equal(t, 10, c.Length)
	assert.Len(t, bins, 2)
	assert.Equal(t, 100.0, bins[0].Mean)

	// No caching: a parameter change is visible on the next call
	s.SetBinSize(2)
	_, bins, err = s.Profile()
	require.NoError(t, err)
	assert.Len(t, bins, 5)

	s.SetBandWidth(4)
	c, _, err = s.Profile()
	require.NoError(t, err)
	assert.Equal(t, 5, c.Cols())
}

func TestMultiChannelFromState(t *testing.T) {
	t.Parallel()

	img := goimage.NewRGBA(goimage.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 90, G: 60, B: 30, A: 255})
		}
	}
	s := NewState()
	s.Source = &image.Source{Image: img}
	s.SetEndpoints(pt(1, 4), pt(13, 4))
	s.SetBinSize(4)

	profiles, err := s.MultiChannel()
	require.NoError(t, err)
	require.Len(t, profiles, 4)
	assert.Equal(t, profile.ChannelRed, profiles[0].Channel)
	assert.Equal(t, 90.0, profiles[0].Bins[0].Mean)
	assert.Equal(t, 60.0, profiles[1].Bins[0].Mean)
	assert.Equal(t, 30.0, profiles[2].Bins[0].Mean)
	assert.Equal(t, 60.0, profiles[3].Bins[0].Mean)
}

func TestPresetRoundTripThroughState(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	s := NewState()
	s.SetChannel(profile.ChannelBlue)
	s.SetBandWidth(14)
	s.SetBinSize(25)
	opts := s.Options
	opts.Mean.Color = "Magenta"
	s.SetOptions(opts)

	require.NoError(t, s.SavePreset(path, preset.AllSections()))

	other := NewState()
	require.NoError(t, other.LoadPreset(path))
	assert.Equal(t, profile.ChannelBlue, other.Channel)
	assert.Equal(t, 14, other.BandWidth)
	assert.Equal(t, 25, other.BinSize)
	assert.Equal(t, "Magenta", other.Options.Mean.Color)
}

func TestLoadImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "input.png")
	img := goimage.NewRGBA(goimage.Rect(0, 0, 6, 4))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	s := NewState()
	s.SetEndpoints(pt(0, 0), pt(3, 3))

	var loaded int
	s.On(EventImageLoaded, func(interface{}) { loaded++ })

	require.NoError(t, s.LoadImage(path))
	assert.Equal(t, 1, loaded)
	assert.Equal(t, 6, s.Source.Width())

	_, _, ok := s.Segment()
	assert.False(t, ok, "loading an image clears the segment")

	assert.Error(t, s.LoadImage(filepath.Join(dir, "missing.png")))
}
