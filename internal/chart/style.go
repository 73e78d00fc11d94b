// Package chart renders profile charts and band strips with gonum/plot.
package chart

import (
	"image/color"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"intensity-profiler/pkg/colorutil"
)

// LineStyle names the visual attributes of one plotted series. Attributes
// are stored by display name so they round-trip through presets unchanged;
// resolution to drawing primitives happens at render time. A width of zero
// hides the line without hiding its markers.
type LineStyle struct {
	Color      string
	Dash       string
	Width      int
	Marker     string
	MarkerSize int
}

// Labels holds the editable figure texts.
type Labels struct {
	ProfileTitle  string
	ProfileXLabel string
	ProfileYLabel string
	BandTitle     string
	BandXLabel    string
	BandYLabel    string
}

// DefaultLabels returns the stock figure texts.
func DefaultLabels() Labels {
	return Labels{
		ProfileTitle:  "Binning & Error Bars",
		ProfileXLabel: "Pos segm",
		ProfileYLabel: "Intensity",
		BandTitle:     "Rectified Band",
		BandXLabel:    "Pos seg",
		BandYLabel:    "Offset",
	}
}

// Options selects what the profile chart draws and how.
type Options struct {
	Mean   LineStyle
	Min    LineStyle
	Max    LineStyle
	Center LineStyle

	ShowMinMax  bool
	ShowError   bool
	ShowCenter  bool
	GridProfile bool
	GridBand    bool

	Labels Labels
}

// DefaultOptions returns the chart defaults: black mean line with optional
// markers off, red minimum, blue maximum, error bars and extrema shown,
// centerline hidden, grids on.
func DefaultOptions() Options {
	return Options{
		Mean:        LineStyle{Color: "Black", Dash: "Solid", Width: 2, Marker: "None", MarkerSize: 6},
		Min:         LineStyle{Color: "Red", Dash: "Solid", Width: 2},
		Max:         LineStyle{Color: "Blue", Dash: "Solid", Width: 2},
		Center:      LineStyle{Color: "Black", Dash: "Solid", Width: 2},
		ShowMinMax:  true,
		ShowError:   true,
		ShowCenter:  false,
		GridProfile: true,
		GridBand:    true,
		Labels:      DefaultLabels(),
	}
}

// lineDashes maps dash style names to vg dash patterns.
var lineDashes = map[string][]vg.Length{
	"Solid":    nil,
	"Dashed":   {vg.Points(6), vg.Points(4)},
	"Dotted":   {vg.Points(1.5), vg.Points(2.5)},
	"Dash-Dot": {vg.Points(6), vg.Points(3), vg.Points(1.5), vg.Points(3)},
}

var lineDashOrder = []string{"Solid", "Dashed", "Dotted", "Dash-Dot"}

// markers maps marker names to glyph drawers. "None" maps to nil.
var markers = map[string]draw.GlyphDrawer{
	"None":     nil,
	"Circle":   draw.CircleGlyph{},
	"Square":   draw.BoxGlyph{},
	"Triangle": draw.PyramidGlyph{},
	"Plus":     draw.PlusGlyph{},
	"Cross":    draw.CrossGlyph{},
}

var markerOrder = []string{"None", "Circle", "Square", "Triangle", "Plus", "Cross"}

// LineStyleNames returns the selectable dash styles in display order.
func LineStyleNames() []string {
	names := make([]string, len(lineDashOrder))
	copy(names, lineDashOrder)
	return names
}

// MarkerNames returns the selectable marker shapes in display order.
func MarkerNames() []string {
	names := make([]string, len(markerOrder))
	copy(names, markerOrder)
	return names
}

// IsLineStyle reports whether name is a selectable dash style.
func IsLineStyle(name string) bool {
	_, ok := lineDashes[name]
	return ok
}

// IsMarker reports whether name is a selectable marker shape.
func IsMarker(name string) bool {
	_, ok := markers[name]
	return ok
}

// rgba resolves the style's color name.
func (s LineStyle) rgba() color.RGBA {
	return colorutil.ParseLineColor(s.Color)
}

// dashes resolves the style's dash pattern. Unknown names draw solid.
func (s LineStyle) dashes() []vg.Length {
	return lineDashes[s.Dash]
}

// glyph resolves the style's marker shape. The second return is false when
// no marker should be drawn.
func (s LineStyle) glyph() (draw.GlyphDrawer, bool) {
	g, ok := markers[s.Marker]
	if !ok || g == nil {
		return nil, false
	}
	return g, true
}
