// Command profiletest runs the single-channel intensity profile pipeline on
// an image and outputs the binned results.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"

	"intensity-profiler/internal/chart"
	"intensity-profiler/internal/image"
	"intensity-profiler/internal/profile"
	"intensity-profiler/internal/version"
	"intensity-profiler/pkg/geometry"
)

func main() {
	imagePath := flag.String("image", "", "Path to image (PNG, JPEG, BMP, or TIFF)")
	channel := flag.String("channel", "gray", "Channel: red, green, blue, or gray")
	x1 := flag.Int("x1", 0, "Segment start X")
	y1 := flag.Int("y1", 0, "Segment start Y")
	x2 := flag.Int("x2", 0, "Segment end X")
	y2 := flag.Int("y2", 0, "Segment end Y")
	band := flag.Int("band", 2, "Full band width in pixels")
	bin := flag.Int("bin", 10, "Bin size in rows")
	chartOut := flag.String("chart", "", "Write the profile figure to this PNG file")
	stripOut := flag.String("strip", "", "Write the band strip to this PNG file")
	csvOut := flag.String("csv", "", "Write the bin table to this CSV file")
	flag.Parse()

	fmt.Printf("profiletest %s\n", version.String())

	if *imagePath == "" {
		fmt.Println("Usage: profiletest -image <path> -x1 <n> -y1 <n> -x2 <n> -y2 <n> [-channel gray] [-band 2] [-bin 10] [-chart out.png] [-strip out.png] [-csv out.csv]")
		os.Exit(1)
	}

	src, err := image.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s image: %dx%d pixels\n", src.Format, src.Width(), src.Height())
	if src.DPI > 0 {
		fmt.Printf("DPI: %.0f (%.2f x %.2f inches)\n", src.DPI, src.WidthInches(), src.HeightInches())
	}

	ch, err := profile.ParseChannel(*channel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	p1 := geometry.PointInt{X: *x1, Y: *y1}.Clamp(src.Width(), src.Height())
	p2 := geometry.PointInt{X: *x2, Y: *y2}.Clamp(src.Width(), src.Height())

	fmt.Printf("Channel: %s\n", ch)
	fmt.Printf("Segment: (%d,%d) -> (%d,%d)\n", p1.X, p1.Y, p2.X, p2.Y)
	fmt.Printf("Band width: %d px (half-band %d)\n", *band, *band/2)
	fmt.Printf("Bin size: %d rows\n", *bin)

	plane := profile.NewPlane(src.Image, ch)
	corridor, err := profile.SampleCorridor(plane, p1, p2, *band/2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sampling failed: %v\n", err)
		os.Exit(1)
	}

	bins, err := profile.Aggregate(corridor, *bin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Aggregation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nProfile: %d rows x %d cols, %d bins\n", corridor.Length, corridor.Cols(), len(bins))

	fmt.Printf("\n%-10s %10s %10s %8s %8s\n", "Position", "Mean", "StdDev", "Min", "Max")
	fmt.Println(strings.Repeat("-", 50))
	for _, b := range bins {
		fmt.Printf("%-10.1f %10.3f %10.3f %8d %8d\n", b.Position, b.Mean, b.StdDev, b.Min, b.Max)
	}

	if *chartOut != "" {
		if err := chart.SaveProfilePNG(*chartOut, corridor, bins, chart.DefaultOptions()); err != nil {
			fmt.Fprintf(os.Stderr, "Chart export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nChart written to %s\n", *chartOut)
	}

	if *stripOut != "" {
		if err := writeStripPNG(*stripOut, corridor); err != nil {
			fmt.Fprintf(os.Stderr, "Strip export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Strip written to %s\n", *stripOut)
	}

	if *csvOut != "" {
		if err := writeCSV(*csvOut, bins); err != nil {
			fmt.Fprintf(os.Stderr, "CSV export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("CSV written to %s\n", *csvOut)
	}
}

// writeStripPNG saves the transposed band strip as a grayscale PNG.
func writeStripPNG(path string, c *profile.Corridor) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, chart.BandStrip(c))
}

// writeCSV saves the bin table with one row per bin.
func writeCSV(path string, bins []profile.Bin) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"position", "mean", "std_dev", "band_min", "band_max"}); err != nil {
		return err
	}
	for _, b := range bins {
		record := []string{
			strconv.FormatFloat(b.Position, 'f', 1, 64),
			strconv.FormatFloat(b.Mean, 'f', 6, 64),
			strconv.FormatFloat(b.StdDev, 'f', 6, 64),
			strconv.Itoa(int(b.Min)),
			strconv.Itoa(int(b.Max)),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
