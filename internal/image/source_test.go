package image

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 20), A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestLoadPNG(t *testing.T) {
	t.Parallel()

	path := writeTestPNG(t, 6, 4)
	src, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, src.Path)
	assert.Equal(t, "png", src.Format)
	assert.Equal(t, 6, src.Width())
	assert.Equal(t, 4, src.Height())
	assert.Equal(t, 0.0, src.DPI)
	assert.Equal(t, 0.0, src.WidthInches())
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	src, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
	assert.Nil(t, src)
}

func TestLoadNotAnImage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not pixels"), 0644))

	src, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, src)
}

// tiffWithDPI assembles a minimal single-IFD TIFF carrying resolution tags.
func tiffWithDPI(t *testing.T, order binary.ByteOrder, xres, yres uint32, unit uint16) []byte {
	t.Helper()

	var buf bytes.Buffer
	if order == binary.LittleEndian {
		buf.WriteString("II")
	} else {
		buf.WriteString("MM")
	}
	require.NoError(t, binary.Write(&buf, order, uint16(42)))
	require.NoError(t, binary.Write(&buf, order, uint32(8))) // first IFD offset

	// IFD: 3 entries, then the next-IFD terminator, then rational data.
	// Entries span bytes 10..46, the terminator 46..50, so the two
	// rationals land at offsets 50 and 58.
	require.NoError(t, binary.Write(&buf, order, uint16(3)))
	writeEntry := func(tag, fieldType uint16, value uint32) {
		require.NoError(t, binary.Write(&buf, order, tag))
		require.NoError(t, binary.Write(&buf, order, fieldType))
		require.NoError(t, binary.Write(&buf, order, uint32(1))) // count
		require.NoError(t, binary.Write(&buf, order, value))
	}
	writeEntry(tagXResolution, typeRational, 50)
	writeEntry(tagYResolution, typeRational, 58)
	writeEntry(tagResolutionUnit, typeShort, uint32(unit))
	require.NoError(t, binary.Write(&buf, order, uint32(0)))

	require.NoError(t, binary.Write(&buf, order, xres))
	require.NoError(t, binary.Write(&buf, order, uint32(1)))
	require.NoError(t, binary.Write(&buf, order, yres))
	require.NoError(t, binary.Write(&buf, order, uint32(1)))
	return buf.Bytes()
}

func TestProbeTIFFDPI(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		order binary.ByteOrder
		xres  uint32
		yres  uint32
		unit  uint16
		want  float64
	}{
		{"little endian inches", binary.LittleEndian, 300, 300, 2, 300},
		{"big endian inches", binary.BigEndian, 600, 600, 2, 600},
		{"per centimeter", binary.LittleEndian, 100, 100, 3, 254},
		{"x missing falls back to y", binary.LittleEndian, 0, 96, 2, 96},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := tiffWithDPI(t, tc.order, tc.xres, tc.yres, tc.unit)
			dpi, err := probeTIFFDPI(data)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, dpi, 1e-9)
		})
	}
}

func TestProbeTIFFDPIErrors(t *testing.T) {
	t.Parallel()

	_, err := probeTIFFDPI([]byte("short"))
	assert.Error(t, err)

	_, err = probeTIFFDPI([]byte("XX\x00\x2a\x00\x00\x00\x08"))
	assert.Error(t, err)

	// Valid header but zero resolutions.
	data := tiffWithDPI(t, binary.LittleEndian, 0, 0, 2)
	_, err = probeTIFFDPI(data)
	assert.Error(t, err)
}

func TestPixelAt(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(5, 5, 8, 8))
	img.Set(5, 5, color.RGBA{R: 11, A: 255})
	img.Set(7, 7, color.RGBA{G: 22, A: 255})
	src := &Source{Image: img}

	// Plane coordinates count from the bounds origin.
	assert.Equal(t, color.RGBA{R: 11, A: 255}, src.PixelAt(0, 0))
	assert.Equal(t, color.RGBA{G: 22, A: 255}, src.PixelAt(2, 2))
	assert.Equal(t, color.Black, src.PixelAt(-1, 0))
	assert.Equal(t, color.Black, src.PixelAt(3, 0))

	empty := &Source{}
	assert.Equal(t, color.Black, empty.PixelAt(0, 0))
	assert.Equal(t, 0, empty.Width())
	assert.Equal(t, 0, empty.Height())
}

func TestIsSupportedFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want bool
	}{
		{"scan.png", true},
		{"scan.JPG", true},
		{"scan.jpeg", true},
		{"scan.bmp", true},
		{"scan.tif", true},
		{"SCAN.TIFF", true},
		{"scan.gif", false},
		{"scan", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsSupportedFormat(tc.path), tc.path)
	}
}
