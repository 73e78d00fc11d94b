// Package colorutil provides shared color utilities for the intensity profiler.
package colorutil

import (
	"image/color"
)

// Common colors used by canvas overlays and chart styling.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Orange  = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	Gray    = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// lineColors maps the selectable chart color names to their values.
var lineColors = map[string]color.RGBA{
	"Black":   Black,
	"Red":     Red,
	"Blue":    Blue,
	"Green":   Green,
	"Magenta": Magenta,
	"Cyan":    Cyan,
	"Orange":  Orange,
	"Gray":    Gray,
}

// lineColorOrder is the display order for color pickers.
var lineColorOrder = []string{"Black", "Red", "Blue", "Green", "Magenta", "Cyan", "Orange", "Gray"}

// LineColorNames returns the selectable chart line colors in display order.
func LineColorNames() []string {
	names := make([]string, len(lineColorOrder))
	copy(names, lineColorOrder)
	return names
}

// ParseLineColor maps a color name to its RGBA value.
// Unknown names fall back to black.
func ParseLineColor(name string) color.RGBA {
	if c, ok := lineColors[name]; ok {
		return c
	}
	return Black
}

// IsLineColor reports whether name is a selectable chart color.
func IsLineColor(name string) bool {
	_, ok := lineColors[name]
	return ok
}
