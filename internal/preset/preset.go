// Package preset saves and loads named analysis configurations as JSON.
// A preset holds only the sections the user selected at save time, and
// loading applies only the keys present in the file, leaving everything
// else untouched.
package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"intensity-profiler/internal/chart"
	"intensity-profiler/internal/profile"
	"intensity-profiler/pkg/colorutil"
)

// Preset mirrors the preset file schema. Nil fields were not saved.
type Preset struct {
	Channel   *string `json:"channel,omitempty"`
	Bandwidth *int    `json:"bandwidth,omitempty"`
	Bin       *int    `json:"bin,omitempty"`

	ShowMinMax *bool `json:"show_minmax,omitempty"`
	ShowError  *bool `json:"show_error,omitempty"`

	MeanLineColor  *string `json:"mean_line_color,omitempty"`
	MeanLineStyle  *string `json:"mean_line_style,omitempty"`
	MeanLineThick  *int    `json:"mean_line_thick,omitempty"`
	MeanMarker     *string `json:"mean_marker,omitempty"`
	MeanMarkerSize *int    `json:"mean_marker_size,omitempty"`

	MinLineColor *string `json:"min_line_color,omitempty"`
	MinLineStyle *string `json:"min_line_style,omitempty"`
	MinLineThick *int    `json:"min_line_thick,omitempty"`

	MaxLineColor *string `json:"max_line_color,omitempty"`
	MaxLineStyle *string `json:"max_line_style,omitempty"`
	MaxLineThick *int    `json:"max_line_thick,omitempty"`

	CenterColor *string `json:"center_color,omitempty"`
	CenterStyle *string `json:"center_style,omitempty"`
	CenterThick *int    `json:"center_thick,omitempty"`
}

// Sections selects which settings a preset captures, matching the
// checkboxes of the save dialog.
type Sections struct {
	Channel      bool
	Bandwidth    bool
	BinSize      bool
	ShowMinMax   bool
	ShowErrorbar bool
	Styling      bool
}

// AllSections selects everything.
func AllSections() Sections {
	return Sections{
		Channel:      true,
		Bandwidth:    true,
		BinSize:      true,
		ShowMinMax:   true,
		ShowErrorbar: true,
		Styling:      true,
	}
}

func ptr[T any](v T) *T {
	return &v
}

// Collect builds a preset from the current settings, capturing only the
// selected sections.
func Collect(channel profile.Channel, bandwidth, binSize int, opts chart.Options, sec Sections) *Preset {
	p := &Preset{}
	if sec.Channel {
		p.Channel = ptr(channel.String())
	}
	if sec.Bandwidth {
		p.Bandwidth = ptr(bandwidth)
	}
	if sec.BinSize {
		p.Bin = ptr(binSize)
	}
	if sec.ShowMinMax {
		p.ShowMinMax = ptr(opts.ShowMinMax)
	}
	if sec.ShowErrorbar {
		p.ShowError = ptr(opts.ShowError)
	}
	if sec.Styling {
		p.MeanLineColor = ptr(opts.Mean.Color)
		p.MeanLineStyle = ptr(opts.Mean.Dash)
		p.MeanLineThick = ptr(opts.Mean.Width)
		p.MeanMarker = ptr(opts.Mean.Marker)
		p.MeanMarkerSize = ptr(opts.Mean.MarkerSize)
		p.MinLineColor = ptr(opts.Min.Color)
		p.MinLineStyle = ptr(opts.Min.Dash)
		p.MinLineThick = ptr(opts.Min.Width)
		p.MaxLineColor = ptr(opts.Max.Color)
		p.MaxLineStyle = ptr(opts.Max.Dash)
		p.MaxLineThick = ptr(opts.Max.Width)
		p.CenterColor = ptr(opts.Center.Color)
		p.CenterStyle = ptr(opts.Center.Dash)
		p.CenterThick = ptr(opts.Center.Width)
	}
	return p
}

// Apply writes the preset's present fields onto the given settings. Unknown
// channel or style names and out-of-range numbers are skipped rather than
// failing, so a stale or hand-edited preset degrades gracefully.
func (p *Preset) Apply(channel *profile.Channel, bandwidth, binSize *int, opts *chart.Options) {
	if p.Channel != nil {
		if ch, err := profile.ParseChannel(*p.Channel); err == nil {
			*channel = ch
		}
	}
	if p.Bandwidth != nil && *p.Bandwidth >= 0 {
		*bandwidth = *p.Bandwidth
	}
	if p.Bin != nil && *p.Bin >= 1 {
		*binSize = *p.Bin
	}
	if p.ShowMinMax != nil {
		opts.ShowMinMax = *p.ShowMinMax
	}
	if p.ShowError != nil {
		opts.ShowError = *p.ShowError
	}

	applyColor(p.MeanLineColor, &opts.Mean.Color)
	applyDash(p.MeanLineStyle, &opts.Mean.Dash)
	applyWidth(p.MeanLineThick, &opts.Mean.Width)
	applyMarker(p.MeanMarker, &opts.Mean.Marker)
	applyWidth(p.MeanMarkerSize, &opts.Mean.MarkerSize)
	applyColor(p.MinLineColor, &opts.Min.Color)
	applyDash(p.MinLineStyle, &opts.Min.Dash)
	applyWidth(p.MinLineThick, &opts.Min.Width)
	applyColor(p.MaxLineColor, &opts.Max.Color)
	applyDash(p.MaxLineStyle, &opts.Max.Dash)
	applyWidth(p.MaxLineThick, &opts.Max.Width)
	applyColor(p.CenterColor, &opts.Center.Color)
	applyDash(p.CenterStyle, &opts.Center.Dash)
	applyWidth(p.CenterThick, &opts.Center.Width)
}

func applyColor(from *string, to *string) {
	if from != nil && colorutil.IsLineColor(*from) {
		*to = *from
	}
}

func applyDash(from *string, to *string) {
	if from != nil && chart.IsLineStyle(*from) {
		*to = *from
	}
}

func applyMarker(from *string, to *string) {
	if from != nil && chart.IsMarker(*from) {
		*to = *from
	}
}

func applyWidth(from *int, to *int) {
	if from != nil && *from >= 0 {
		*to = *from
	}
}

// Save writes the preset as indented JSON.
func Save(path string, p *Preset) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preset: %w", err)
	}
	return nil
}

// Load reads a preset file.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}
	p := &Preset{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse preset: %w", err)
	}
	return p, nil
}

// DefaultDir returns the per-user preset directory
// (~/.config/intensity-profiler/presets on Linux).
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "intensity-profiler", "presets")
}

// List returns the preset file names in a directory, in directory order.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
