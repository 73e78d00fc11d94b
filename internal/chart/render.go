package chart

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"intensity-profiler/internal/profile"
	"intensity-profiler/pkg/colorutil"
)

// Figure dimensions, matching the original tool's layouts. Both figures
// stack the profile axes over the band strip at a 3:1 height ratio.
const (
	profileFigWidth  = 8 * vg.Inch
	profileFigHeight = 6 * vg.Inch
	multiFigWidth    = 16 * vg.Inch
	multiFigHeight   = 6 * vg.Inch
)

// RenderProfile draws the single-channel figure: binned mean intensity with
// optional error bars and band extrema on top, the rectified band strip
// below.
func RenderProfile(c *profile.Corridor, bins []profile.Bin, opts Options) (image.Image, error) {
	canvas, err := renderProfile(c, bins, opts)
	if err != nil {
		return nil, err
	}
	return canvas.Image(), nil
}

// SaveProfilePNG renders the single-channel figure to a PNG file.
func SaveProfilePNG(path string, c *profile.Corridor, bins []profile.Bin, opts Options) error {
	canvas, err := renderProfile(c, bins, opts)
	if err != nil {
		return err
	}
	return writePNG(path, canvas)
}

// RenderMultiChannel draws the channel-grid figure: one profile-over-strip
// column per channel.
func RenderMultiChannel(profiles []profile.ChannelProfile, opts Options) (image.Image, error) {
	canvas, err := renderMultiChannel(profiles, opts)
	if err != nil {
		return nil, err
	}
	return canvas.Image(), nil
}

// SaveMultiChannelPNG renders the channel-grid figure to a PNG file.
func SaveMultiChannelPNG(path string, profiles []profile.ChannelProfile, opts Options) error {
	canvas, err := renderMultiChannel(profiles, opts)
	if err != nil {
		return err
	}
	return writePNG(path, canvas)
}

func renderProfile(c *profile.Corridor, bins []profile.Bin, opts Options) (*vgimg.Canvas, error) {
	if c == nil {
		return nil, fmt.Errorf("nil corridor")
	}
	top, err := profilePlot(bins, c.Length, opts)
	if err != nil {
		return nil, err
	}
	bottom, err := bandPlot(c, opts, opts.Labels.BandTitle, true)
	if err != nil {
		return nil, err
	}

	canvas := vgimg.New(profileFigWidth, profileFigHeight)
	split := profileFigHeight / 4
	top.Draw(draw.Canvas{Canvas: canvas, Rectangle: vg.Rectangle{
		Min: vg.Point{X: 0, Y: split},
		Max: vg.Point{X: profileFigWidth, Y: profileFigHeight},
	}})
	bottom.Draw(draw.Canvas{Canvas: canvas, Rectangle: vg.Rectangle{
		Min: vg.Point{X: 0, Y: 0},
		Max: vg.Point{X: profileFigWidth, Y: split},
	}})
	return canvas, nil
}

func renderMultiChannel(profiles []profile.ChannelProfile, opts Options) (*vgimg.Canvas, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no channel profiles")
	}

	canvas := vgimg.New(multiFigWidth, multiFigHeight)
	colWidth := multiFigWidth / vg.Length(len(profiles))
	split := multiFigHeight / 4
	for i, cp := range profiles {
		if cp.Corridor == nil {
			return nil, fmt.Errorf("%s channel: nil corridor", cp.Channel)
		}
		top, err := channelProfilePlot(cp, opts)
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", cp.Channel, err)
		}
		bottom, err := bandPlot(cp.Corridor, opts, cp.Channel.Short()+" Band", false)
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", cp.Channel, err)
		}

		x0 := vg.Length(i) * colWidth
		top.Draw(draw.Canvas{Canvas: canvas, Rectangle: vg.Rectangle{
			Min: vg.Point{X: x0, Y: split},
			Max: vg.Point{X: x0 + colWidth, Y: multiFigHeight},
		}})
		bottom.Draw(draw.Canvas{Canvas: canvas, Rectangle: vg.Rectangle{
			Min: vg.Point{X: x0, Y: 0},
			Max: vg.Point{X: x0 + colWidth, Y: split},
		}})
	}
	return canvas, nil
}

// profilePlot builds the binned-statistics axes.
func profilePlot(bins []profile.Bin, length int, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Labels.ProfileTitle
	p.X.Label.Text = opts.Labels.ProfileXLabel
	p.Y.Label.Text = opts.Labels.ProfileYLabel
	p.X.Min = 0
	p.X.Max = float64(length)
	if opts.GridProfile {
		p.Add(plotter.NewGrid())
	}
	if len(bins) == 0 {
		// Nothing to plot when the segment is shorter than one bin; pin the
		// intensity axis so the empty axes still draw.
		p.Y.Min = 0
		p.Y.Max = 255
		return p, nil
	}

	xys := binXYs(bins, func(b profile.Bin) float64 { return b.Mean })

	if opts.Mean.Width > 0 {
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("mean line: %w", err)
		}
		line.Color = opts.Mean.rgba()
		line.Width = vg.Points(float64(opts.Mean.Width))
		line.Dashes = opts.Mean.dashes()
		p.Add(line)
		p.Legend.Add("Mean intensity", line)
	}
	if g, ok := opts.Mean.glyph(); ok {
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("mean markers: %w", err)
		}
		scatter.GlyphStyle.Shape = g
		scatter.GlyphStyle.Color = opts.Mean.rgba()
		scatter.GlyphStyle.Radius = vg.Points(float64(opts.Mean.MarkerSize) / 2)
		p.Add(scatter)
		if opts.Mean.Width <= 0 {
			p.Legend.Add("Mean intensity", scatter)
		}
	}
	if opts.ShowError {
		if err := addErrorBars(p, bins); err != nil {
			return nil, err
		}
	}
	if opts.ShowMinMax {
		minLine, err := styledLine(bins, func(b profile.Bin) float64 { return float64(b.Min) }, opts.Min)
		if err != nil {
			return nil, fmt.Errorf("min line: %w", err)
		}
		p.Add(minLine)
		p.Legend.Add("Min (band)", minLine)

		maxLine, err := styledLine(bins, func(b profile.Bin) float64 { return float64(b.Max) }, opts.Max)
		if err != nil {
			return nil, fmt.Errorf("max line: %w", err)
		}
		p.Add(maxLine)
		p.Legend.Add("Max (band)", maxLine)
	}
	return p, nil
}

// channelProfilePlot builds one column's statistics axes of the grid
// figure. The mean line carries the channel's own color and the extrema
// are not drawn.
func channelProfilePlot(cp profile.ChannelProfile, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = cp.Channel.Short() + " Channel"
	if opts.GridProfile {
		p.Add(plotter.NewGrid())
	}
	if len(cp.Bins) == 0 {
		p.X.Min = 0
		p.X.Max = float64(cp.Corridor.Length)
		p.Y.Min = 0
		p.Y.Max = 255
		return p, nil
	}

	line, err := plotter.NewLine(binXYs(cp.Bins, func(b profile.Bin) float64 { return b.Mean }))
	if err != nil {
		return nil, fmt.Errorf("mean line: %w", err)
	}
	line.Color = ChannelColor(cp.Channel)
	p.Add(line)

	if opts.ShowError {
		if err := addErrorBars(p, cp.Bins); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// bandPlot builds the rectified strip axes. The strip spans the segment
// horizontally and the perpendicular offsets vertically, offset -HalfBand
// on top. full enables the axis labels and the optional centerline of the
// single-channel figure.
func bandPlot(c *profile.Corridor, opts Options, title string, full bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	if full {
		p.X.Label.Text = opts.Labels.BandXLabel
		p.Y.Label.Text = opts.Labels.BandYLabel
	}

	hb := float64(c.HalfBand)
	if hb == 0 {
		// A single-row band would collapse the vertical extent.
		hb = 0.5
	}
	p.Add(plotter.NewImage(BandStrip(c), 0, -hb, float64(c.Length), hb))
	if opts.GridBand {
		p.Add(plotter.NewGrid())
	}
	if full && opts.ShowCenter {
		center, err := plotter.NewLine(plotter.XYs{
			{X: 0, Y: 0},
			{X: float64(c.Length), Y: 0},
		})
		if err != nil {
			return nil, fmt.Errorf("centerline: %w", err)
		}
		center.Color = opts.Center.rgba()
		center.Width = vg.Points(float64(opts.Center.Width))
		center.Dashes = opts.Center.dashes()
		p.Add(center)
	}

	p.X.Min = 0
	p.X.Max = float64(c.Length)
	p.Y.Min = -hb
	p.Y.Max = hb
	return p, nil
}

// binXYs projects one bin statistic onto plot points at the bin centroids.
func binXYs(bins []profile.Bin, value func(profile.Bin) float64) plotter.XYs {
	xys := make(plotter.XYs, len(bins))
	for i, b := range bins {
		xys[i].X = b.Position
		xys[i].Y = value(b)
	}
	return xys
}

func styledLine(bins []profile.Bin, value func(profile.Bin) float64, style LineStyle) (*plotter.Line, error) {
	line, err := plotter.NewLine(binXYs(bins, value))
	if err != nil {
		return nil, err
	}
	line.Color = style.rgba()
	line.Width = vg.Points(float64(style.Width))
	line.Dashes = style.dashes()
	return line, nil
}

// addErrorBars overlays gray one-standard-deviation bars on the mean points.
func addErrorBars(p *plot.Plot, bins []profile.Bin) error {
	data := struct {
		plotter.XYs
		plotter.YErrors
	}{
		XYs:     make(plotter.XYs, len(bins)),
		YErrors: make(plotter.YErrors, len(bins)),
	}
	for i, b := range bins {
		data.XYs[i].X = b.Position
		data.XYs[i].Y = b.Mean
		data.YErrors[i].Low = b.StdDev
		data.YErrors[i].High = b.StdDev
	}

	bars, err := plotter.NewYErrorBars(data)
	if err != nil {
		return fmt.Errorf("error bars: %w", err)
	}
	bars.LineStyle.Color = colorutil.Gray
	bars.LineStyle.Width = vg.Points(1)
	bars.CapWidth = vg.Points(3)
	p.Add(bars)
	return nil
}

// ChannelColor is the conventional display color of a channel's series.
func ChannelColor(ch profile.Channel) color.RGBA {
	switch ch {
	case profile.ChannelRed:
		return colorutil.Red
	case profile.ChannelGreen:
		return colorutil.Green
	case profile.ChannelBlue:
		return colorutil.Blue
	default:
		return colorutil.Black
	}
}

func writePNG(path string, canvas *vgimg.Canvas) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
