package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Standing is the tally of one bot over an experiment.
type Standing struct {
	Bot    string
	Wins   int
	Losses int
	Draws  int
}

// WriteStandingsChart renders a stacked bar chart of wins, losses and draws
// per bot into results.html.
func (w *Writer) WriteStandingsChart(title string, standings []Standing) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d bots", len(standings)),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	bots := make([]string, 0, len(standings))
	wins := make([]opts.BarData, 0, len(standings))
	losses := make([]opts.BarData, 0, len(standings))
	draws := make([]opts.BarData, 0, len(standings))
	for _, s := range standings {
		bots = append(bots, s.Bot)
		wins = append(wins, opts.BarData{Value: s.Wins})
		losses = append(losses, opts.BarData{Value: s.Losses})
		draws = append(draws, opts.BarData{Value: s.Draws})
	}

	bar.SetXAxis(bots).
		AddSeries("wins", wins).
		AddSeries("losses", losses).
		AddSeries("draws", draws)

	page := components.NewPage()
	page.AddCharts(bar)

	f, err := os.Create(filepath.Join(w.baseDir, "results.html"))
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
