package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intensity-profiler/pkg/colorutil"
)

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	assert.Equal(t, LineStyle{Color: "Black", Dash: "Solid", Width: 2, Marker: "None", MarkerSize: 6}, opts.Mean)
	assert.Equal(t, LineStyle{Color: "Red", Dash: "Solid", Width: 2}, opts.Min)
	assert.Equal(t, LineStyle{Color: "Blue", Dash: "Solid", Width: 2}, opts.Max)
	assert.Equal(t, LineStyle{Color: "Black", Dash: "Solid", Width: 2}, opts.Center)
	assert.True(t, opts.ShowMinMax)
	assert.True(t, opts.ShowError)
	assert.False(t, opts.ShowCenter)
	assert.True(t, opts.GridProfile)
	assert.True(t, opts.GridBand)
	assert.Equal(t, "Binning & Error Bars", opts.Labels.ProfileTitle)
	assert.Equal(t, "Rectified Band", opts.Labels.BandTitle)
}

func TestStyleNameTables(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"Solid", "Dashed", "Dotted", "Dash-Dot"}, LineStyleNames())
	require.Equal(t, []string{"None", "Circle", "Square", "Triangle", "Plus", "Cross"}, MarkerNames())

	for _, name := range LineStyleNames() {
		assert.True(t, IsLineStyle(name), name)
	}
	for _, name := range MarkerNames() {
		assert.True(t, IsMarker(name), name)
	}
	assert.False(t, IsLineStyle("Wavy"))
	assert.False(t, IsMarker("Starburst"))
}

func TestLineStyleResolution(t *testing.T) {
	t.Parallel()

	s := LineStyle{Color: "Magenta", Dash: "Dashed", Width: 3, Marker: "Circle", MarkerSize: 6}
	assert.Equal(t, colorutil.Magenta, s.rgba())
	assert.NotEmpty(t, s.dashes())

	g, ok := s.glyph()
	assert.True(t, ok)
	assert.NotNil(t, g)

	solid := LineStyle{Color: "Black", Dash: "Solid", Width: 2, Marker: "None"}
	assert.Nil(t, solid.dashes())
	_, ok = solid.glyph()
	assert.False(t, ok)

	// Unknown names degrade to black solid with no marker.
	odd := LineStyle{Color: "Vermilion", Dash: "Wavy", Marker: "Starburst"}
	assert.Equal(t, colorutil.Black, odd.rgba())
	assert.Nil(t, odd.dashes())
	_, ok = odd.glyph()
	assert.False(t, ok)
}
