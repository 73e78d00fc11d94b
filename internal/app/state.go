// Package app provides application state, settings, and events.
package app

import (
	"errors"
	"sync"

	"intensity-profiler/internal/chart"
	"intensity-profiler/internal/image"
	"intensity-profiler/internal/preset"
	"intensity-profiler/internal/profile"
	"intensity-profiler/pkg/geometry"
)

// Spin ranges and defaults for the measurement controls.
const (
	MinBandWidth     = 0
	MaxBandWidth     = 200
	DefaultBandWidth = 2

	MinBinSize     = 1
	MaxBinSize     = 1000
	DefaultBinSize = 10
)

// Errors returned when an analysis is requested before its inputs exist.
var (
	ErrNoImage   = errors.New("no image loaded")
	ErrNoSegment = errors.New("no segment drawn")
)

// State holds the application state including the loaded image, the
// measurement segment, and the analysis settings.
type State struct {
	mu sync.RWMutex

	// Loaded image
	Source *image.Source

	// Measurement segment endpoints in image pixel coordinates
	P1    geometry.PointInt
	P2    geometry.PointInt
	HasP1 bool
	HasP2 bool

	// Drawing mode: the next two canvas taps place P1 and P2
	Drawing bool

	// Sampling parameters. BandWidth is the full band width in pixels;
	// the sampled corridor spans BandWidth/2 to each side of the segment.
	Channel   profile.Channel
	BandWidth int
	BinSize   int

	// Chart styling and toggles
	Options chart.Options

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventSegmentChanged
	EventParamsChanged
	EventStyleChanged
	EventPresetLoaded
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState() *State {
	return &State{
		Channel:   profile.ChannelGray,
		BandWidth: DefaultBandWidth,
		BinSize:   DefaultBinSize,
		Options:   chart.DefaultOptions(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// LoadImage loads the image at path and clears the current segment.
func (s *State) LoadImage(path string) error {
	src, err := image.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.Source = src
	s.HasP1 = false
	s.HasP2 = false
	s.Drawing = false
	s.mu.Unlock()

	s.Emit(EventImageLoaded, src)
	return nil
}

// HalfBand returns the corridor half-width derived from the band width.
func (s *State) HalfBand() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.BandWidth / 2
}

// SetDrawing arms or disarms segment drawing mode.
func (s *State) SetDrawing(drawing bool) {
	s.mu.Lock()
	s.Drawing = drawing
	s.mu.Unlock()

	s.Emit(EventSegmentChanged, nil)
}

// IsDrawing reports whether drawing mode is armed.
func (s *State) IsDrawing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Drawing
}

// SetSegmentPoint places the next endpoint while drawing. The first call
// sets P1 and clears P2; the second sets P2 and leaves drawing mode. Points
// are clamped to the image bounds.
func (s *State) SetSegmentPoint(pt geometry.PointInt) {
	s.mu.Lock()
	pt = s.clampLocked(pt)
	if !s.HasP1 || s.HasP2 {
		s.P1 = pt
		s.HasP1 = true
		s.HasP2 = false
	} else {
		s.P2 = pt
		s.HasP2 = true
		s.Drawing = false
	}
	s.mu.Unlock()

	s.Emit(EventSegmentChanged, nil)
}

// SetEndpoints replaces both endpoints at once (manual coordinate entry).
func (s *State) SetEndpoints(p1, p2 geometry.PointInt) {
	s.mu.Lock()
	s.P1 = s.clampLocked(p1)
	s.P2 = s.clampLocked(p2)
	s.HasP1 = true
	s.HasP2 = true
	s.Drawing = false
	s.mu.Unlock()

	s.Emit(EventSegmentChanged, nil)
}

// MoveEndpoint moves one endpoint of a placed segment: index 0 is P1,
// index 1 is P2. Used while dragging a handle.
func (s *State) MoveEndpoint(index int, pt geometry.PointInt) {
	s.mu.Lock()
	pt = s.clampLocked(pt)
	switch index {
	case 0:
		s.P1 = pt
	case 1:
		s.P2 = pt
	}
	s.mu.Unlock()

	s.Emit(EventSegmentChanged, nil)
}

// ClearSegment removes both endpoints.
func (s *State) ClearSegment() {
	s.mu.Lock()
	s.HasP1 = false
	s.HasP2 = false
	s.mu.Unlock()

	s.Emit(EventSegmentChanged, nil)
}

// Segment returns the current endpoints. ok is false until both are placed.
func (s *State) Segment() (p1, p2 geometry.PointInt, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.P1, s.P2, s.HasP1 && s.HasP2
}

// SegmentLength returns the row count of the current segment's corridor,
// or 0 while the segment is incomplete.
func (s *State) SegmentLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.HasP1 || !s.HasP2 {
		return 0
	}
	return profile.SegmentLength(s.P1, s.P2)
}

// SetChannel selects the sampled channel.
func (s *State) SetChannel(ch profile.Channel) {
	s.mu.Lock()
	s.Channel = ch
	s.mu.Unlock()

	s.Emit(EventParamsChanged, nil)
}

// SetBandWidth sets the full band width in pixels, clamped to the spin range.
func (s *State) SetBandWidth(w int) {
	if w < MinBandWidth {
		w = MinBandWidth
	}
	if w > MaxBandWidth {
		w = MaxBandWidth
	}

	s.mu.Lock()
	s.BandWidth = w
	s.mu.Unlock()

	s.Emit(EventParamsChanged, nil)
}

// SetBinSize sets the bin size in rows, clamped to the spin range.
func (s *State) SetBinSize(n int) {
	if n < MinBinSize {
		n = MinBinSize
	}
	if n > MaxBinSize {
		n = MaxBinSize
	}

	s.mu.Lock()
	s.BinSize = n
	s.mu.Unlock()

	s.Emit(EventParamsChanged, nil)
}

// SetOptions replaces the chart styling options.
func (s *State) SetOptions(opts chart.Options) {
	s.mu.Lock()
	s.Options = opts
	s.mu.Unlock()

	s.Emit(EventStyleChanged, nil)
}

// Corridor samples the band around the current segment on the selected
// channel. The result is recomputed from the current inputs on every call.
func (s *State) Corridor() (*profile.Corridor, error) {
	s.mu.RLock()
	src := s.Source
	ch := s.Channel
	p1, p2 := s.P1, s.P2
	ok := s.HasP1 && s.HasP2
	halfBand := s.BandWidth / 2
	s.mu.RUnlock()

	if src == nil {
		return nil, ErrNoImage
	}
	if !ok {
		return nil, ErrNoSegment
	}

	plane := profile.NewPlane(src.Image, ch)
	return profile.SampleCorridor(plane, p1, p2, halfBand)
}

// Profile runs the single-channel pipeline: corridor sampling plus binned
// statistics.
func (s *State) Profile() (*profile.Corridor, []profile.Bin, error) {
	c, err := s.Corridor()
	if err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	binSize := s.BinSize
	s.mu.RUnlock()

	bins, err := profile.Aggregate(c, binSize)
	if err != nil {
		return nil, nil, err
	}
	return c, bins, nil
}

// MultiChannel runs the pipeline on the red, green, blue, and gray planes of
// the loaded image over the current segment.
func (s *State) MultiChannel() ([]profile.ChannelProfile, error) {
	s.mu.RLock()
	src := s.Source
	p1, p2 := s.P1, s.P2
	ok := s.HasP1 && s.HasP2
	halfBand := s.BandWidth / 2
	binSize := s.BinSize
	s.mu.RUnlock()

	if src == nil {
		return nil, ErrNoImage
	}
	if !ok {
		return nil, ErrNoSegment
	}

	return profile.MultiChannel(src.Image, p1, p2, halfBand, binSize)
}

// CollectPreset snapshots the settings selected by sec into a preset.
func (s *State) CollectPreset(sec preset.Sections) *preset.Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return preset.Collect(s.Channel, s.BandWidth, s.BinSize, s.Options, sec)
}

// ApplyPreset applies the fields present in p to the current settings.
func (s *State) ApplyPreset(p *preset.Preset) {
	s.mu.Lock()
	p.Apply(&s.Channel, &s.BandWidth, &s.BinSize, &s.Options)
	s.mu.Unlock()

	s.Emit(EventPresetLoaded, nil)
}

// SavePreset writes the settings selected by sec to a preset file.
func (s *State) SavePreset(path string, sec preset.Sections) error {
	return preset.Save(path, s.CollectPreset(sec))
}

// LoadPreset reads a preset file and applies it.
func (s *State) LoadPreset(path string) error {
	p, err := preset.Load(path)
	if err != nil {
		return err
	}
	s.ApplyPreset(p)
	return nil
}

func (s *State) clampLocked(pt geometry.PointInt) geometry.PointInt {
	if s.Source == nil {
		return pt
	}
	return pt.Clamp(s.Source.Width(), s.Source.Height())
}
