package render

import (
	"io"

	"f1acleaderboard/pkg/model"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ComparisonChart writes an HTML page with the average lap times per circuit
// as grouped bars, in seconds.
func ComparisonChart(w io.Writer, rows []model.ComparisonRow) error {
	names := make([]string, 0, len(rows))
	f1 := make([]opts.BarData, 0, len(rows))
	ac := make([]opts.BarData, 0, len(rows))
	diff := make([]opts.BarData, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.CircuitName)
		f1 = append(f1, opts.BarData{Value: r.F1AvgLapMS / 1000})
		ac = append(ac, opts.BarData{Value: r.ACAvgLapMS / 1000})
		diff = append(diff, opts.BarData{Value: r.DiffMS / 1000})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "F1 vs Assetto Corsa", Width: "1200px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: "F1 vs Assetto Corsa", Subtitle: "average lap (s) per circuit"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "s"}),
	)
	bar.SetXAxis(names).
		AddSeries("F1", f1).
		AddSeries("Assetto Corsa", ac).
		AddSeries("AC - F1", diff)

	return bar.Render(w)
}
