// Package image provides image loading and pixel helpers for the profiler.
package image

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"intensity-profiler/pkg/geometry"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Source is a loaded analysis image.
type Source struct {
	Path   string      // Original file path
	Format string      // Decoded format name ("png", "tiff", ...)
	Image  image.Image // Decoded pixel data
	DPI    float64     // Detected resolution, 0 when unknown
}

// Load reads and decodes an image file. TIFF files additionally get their
// resolution tags probed so physical sizes can be reported; a failed probe
// leaves DPI at zero and is not an error.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	src := &Source{
		Path:   path,
		Format: format,
		Image:  img,
	}
	if format == "tiff" {
		if dpi, err := probeTIFFDPI(data); err == nil {
			src.DPI = dpi
		}
	}
	return src, nil
}

// Width returns the image width in pixels.
func (s *Source) Width() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (s *Source) Height() int {
	if s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

// Size returns the image dimensions.
func (s *Source) Size() geometry.Size {
	return geometry.Size{
		Width:  float64(s.Width()),
		Height: float64(s.Height()),
	}
}

// WidthInches returns the image width in inches if DPI is known.
func (s *Source) WidthInches() float64 {
	if s.DPI == 0 {
		return 0
	}
	return float64(s.Width()) / s.DPI
}

// HeightInches returns the image height in inches if DPI is known.
func (s *Source) HeightInches() float64 {
	if s.DPI == 0 {
		return 0
	}
	return float64(s.Height()) / s.DPI
}

// PixelAt returns the color at plane coordinates (x, y), counted from the
// image's top-left corner regardless of its bounds origin. Out-of-bounds
// reads return black.
func (s *Source) PixelAt(x, y int) color.Color {
	if s.Image == nil {
		return color.Black
	}
	bounds := s.Image.Bounds()
	px := bounds.Min.X + x
	py := bounds.Min.Y + y
	if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
		return color.Black
	}
	return s.Image.At(px, py)
}

// TIFF IFD tags and field types used by the DPI probe.
const (
	tagXResolution    = 282
	tagYResolution    = 283
	tagResolutionUnit = 296

	typeShort    = 3
	typeRational = 5
)

// probeTIFFDPI walks the first IFD of an in-memory TIFF for its resolution
// tags. Returns an error when the file carries no usable resolution.
func probeTIFFDPI(data []byte) (float64, error) {
	if len(data) < 8 {
		return 0, fmt.Errorf("truncated TIFF header")
	}

	var order binary.ByteOrder
	switch {
	case data[0] == 'I' && data[1] == 'I':
		order = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		order = binary.BigEndian
	default:
		return 0, fmt.Errorf("not a valid TIFF file")
	}

	ifd := int64(order.Uint32(data[4:8]))
	if ifd+2 > int64(len(data)) {
		return 0, fmt.Errorf("IFD offset past end of file")
	}
	numEntries := int(order.Uint16(data[ifd : ifd+2]))

	var xRes, yRes float64
	resUnit := uint16(2) // inches unless the file says otherwise

	for i := 0; i < numEntries; i++ {
		off := ifd + 2 + int64(i)*12
		if off+12 > int64(len(data)) {
			break
		}
		entry := data[off : off+12]
		tag := order.Uint16(entry[0:2])
		fieldType := order.Uint16(entry[2:4])
		value := order.Uint32(entry[8:12])

		switch tag {
		case tagXResolution:
			if fieldType == typeRational {
				xRes = readRational(data, value, order)
			}
		case tagYResolution:
			if fieldType == typeRational {
				yRes = readRational(data, value, order)
			}
		case tagResolutionUnit:
			if fieldType == typeShort {
				resUnit = uint16(value)
			}
		}
	}

	dpi := xRes
	if dpi == 0 {
		dpi = yRes
	}
	if resUnit == 3 {
		// Resolution stored per centimeter.
		dpi *= 2.54
	}
	if dpi == 0 {
		return 0, fmt.Errorf("no resolution tags found")
	}
	return dpi, nil
}

// readRational reads a RATIONAL value (two uint32s) at the given offset.
func readRational(data []byte, offset uint32, order binary.ByteOrder) float64 {
	end := int64(offset) + 8
	if end > int64(len(data)) {
		return 0
	}
	num := order.Uint32(data[offset : offset+4])
	den := order.Uint32(data[offset+4 : offset+8])
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// SupportedFormats returns the list of supported image file extensions.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// FileFilter returns a description of the supported formats for dialogs.
func FileFilter() string {
	return "Image Files (*.png, *.jpg, *.jpeg, *.bmp, *.tif, *.tiff)"
}
