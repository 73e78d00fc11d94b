// Package report writes interactive HTML reports of multi-channel profile
// analyses using go-echarts.
package report

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"intensity-profiler/internal/chart"
	"intensity-profiler/internal/profile"
)

// WriteMultiChannel renders the analysis as a self-describing HTML page: an
// overview chart with every channel's binned mean, then one detail chart per
// channel with its mean, spread and extrema.
func WriteMultiChannel(w io.Writer, profiles []profile.ChannelProfile) error {
	if len(profiles) == 0 {
		return fmt.Errorf("no channel profiles")
	}

	page := components.NewPage()
	page.AddCharts(overviewChart(profiles))
	for _, cp := range profiles {
		page.AddCharts(channelChart(cp))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// SaveMultiChannel writes the HTML report to a file.
func SaveMultiChannel(path string, profiles []profile.ChannelProfile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return WriteMultiChannel(f, profiles)
}

func overviewChart(profiles []profile.ChannelProfile) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Intensity Profile Report", Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Mean intensity by channel",
			Subtitle: fmt.Sprintf("%d bins over a %d px corridor", len(profiles[0].Bins), profiles[0].Corridor.Length),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Position (px)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Intensity"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	line.SetXAxis(positions(profiles[0].Bins))
	for _, cp := range profiles {
		line.AddSeries(cp.Channel.String(), series(cp.Bins, func(b profile.Bin) float64 { return b.Mean }),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(chart.ChannelColor(cp.Channel))}),
		)
	}
	return line
}

func channelChart(cp profile.ChannelProfile) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    cp.Channel.String() + " channel",
			Subtitle: fmt.Sprintf("band width %d px", cp.Corridor.Cols()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Position (px)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Intensity"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	main := hexColor(chart.ChannelColor(cp.Channel))
	line.SetXAxis(positions(cp.Bins))
	line.AddSeries("Mean", series(cp.Bins, func(b profile.Bin) float64 { return b.Mean }),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: main}),
	)
	line.AddSeries("Mean +1σ", series(cp.Bins, func(b profile.Bin) float64 { return b.Mean + b.StdDev }),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#9e9e9e", Type: "dashed"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#9e9e9e"}),
	)
	line.AddSeries("Mean -1σ", series(cp.Bins, func(b profile.Bin) float64 { return b.Mean - b.StdDev }),
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#9e9e9e", Type: "dashed"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#9e9e9e"}),
	)
	line.AddSeries("Min", series(cp.Bins, func(b profile.Bin) float64 { return float64(b.Min) }),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#e53935"}),
	)
	line.AddSeries("Max", series(cp.Bins, func(b profile.Bin) float64 { return float64(b.Max) }),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#1e88e5"}),
	)
	return line
}

func positions(bins []profile.Bin) []string {
	xs := make([]string, len(bins))
	for i, b := range bins {
		xs[i] = strconv.FormatFloat(b.Position, 'f', 1, 64)
	}
	return xs
}

func series(bins []profile.Bin, value func(profile.Bin) float64) []opts.LineData {
	data := make([]opts.LineData, len(bins))
	for i, b := range bins {
		data[i] = opts.LineData{Value: value(b)}
	}
	return data
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
