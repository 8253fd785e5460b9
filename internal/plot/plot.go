// Package plot renders the four-panel feature count visualization.
package plot

import (
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/inodb/gffstats/internal/summary"
)

// Render draws the four panels into a single PNG at path:
// gene counts, gene density, per-chromosome counts for all feature types,
// and the stacked density composition.
func Render(rows []summary.Row, path string) error {
	if len(rows) == 0 {
		return fmt.Errorf("render chart: no summary rows")
	}

	counts, err := geneCountPanel(rows)
	if err != nil {
		return fmt.Errorf("gene count panel: %w", err)
	}
	density, err := geneDensityPanel(rows)
	if err != nil {
		return fmt.Errorf("gene density panel: %w", err)
	}
	features, err := featureCountPanel(rows)
	if err != nil {
		return fmt.Errorf("feature count panel: %w", err)
	}
	stacked, err := stackedDensityPanel(rows)
	if err != nil {
		return fmt.Errorf("stacked density panel: %w", err)
	}

	img := vgimg.New(14*vg.Inch, 10*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2,
		Cols: 2,
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}

	plots := [][]*plot.Plot{
		{counts, density},
		{features, stacked},
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

// geneCountPanel is a bar chart of gene counts, smallest first.
func geneCountPanel(rows []summary.Row) (*plot.Plot, error) {
	sorted := sortedBy(rows, func(a, b summary.Row) bool { return a.Genes < b.Genes })

	values := make(plotter.Values, len(sorted))
	names := make([]string, len(sorted))
	for i, r := range sorted {
		values[i] = float64(r.Genes)
		names[i] = r.Chrom
	}

	p := plot.New()
	p.Title.Text = "Gene Counts per Chromosome"
	p.Y.Label.Text = "Number of Genes"

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, err
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// geneDensityPanel is a bar chart of gene density per Mb, smallest first.
func geneDensityPanel(rows []summary.Row) (*plot.Plot, error) {
	sorted := sortedBy(rows, func(a, b summary.Row) bool { return a.GenePerMb < b.GenePerMb })

	values := make(plotter.Values, len(sorted))
	names := make([]string, len(sorted))
	for i, r := range sorted {
		values[i] = r.GenePerMb
		names[i] = r.Chrom
	}

	p := plot.New()
	p.Title.Text = "Gene Density per Chromosome"
	p.Y.Label.Text = "Gene Density (per Mb)"

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, err
	}
	bars.Color = plotutil.Color(1)
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// featureCountPanel plots all four feature counts across chromosomes in
// identifier order.
func featureCountPanel(rows []summary.Row) (*plot.Plot, error) {
	sorted := sortedBy(rows, func(a, b summary.Row) bool { return a.Chrom < b.Chrom })

	p := plot.New()
	p.Title.Text = "Feature Counts Across Chromosomes"
	p.Y.Label.Text = "Feature Count"

	series := []struct {
		name   string
		values func(summary.Row) float64
	}{
		{"Genes", func(r summary.Row) float64 { return float64(r.Genes) }},
		{"Exons", func(r summary.Row) float64 { return float64(r.UniqueExons) }},
		{"tRNA", func(r summary.Row) float64 { return float64(r.TRNAs) }},
		{"snoRNA", func(r summary.Row) float64 { return float64(r.SnoRNAs) }},
	}

	names := make([]string, len(sorted))
	for i, r := range sorted {
		names[i] = r.Chrom
	}

	for si, s := range series {
		xys := make(plotter.XYs, len(sorted))
		for i, r := range sorted {
			xys[i].X = float64(i)
			xys[i].Y = s.values(r)
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(si)
		line.Width = vg.Points(1.5)
		points.Color = plotutil.Color(si)
		points.Shape = plotutil.Shape(si)

		p.Add(line, points)
		p.Legend.Add(s.name, line, points)
	}

	p.NominalX(names...)
	p.Legend.Top = true
	return p, nil
}

// stackedDensityPanel stacks the four per-Mb densities per chromosome.
func stackedDensityPanel(rows []summary.Row) (*plot.Plot, error) {
	sorted := sortedBy(rows, func(a, b summary.Row) bool { return a.Chrom < b.Chrom })

	p := plot.New()
	p.Title.Text = "Feature Density Composition per Chromosome"
	p.Y.Label.Text = "Density (per Mb)"

	series := []struct {
		name   string
		values func(summary.Row) float64
	}{
		{"Gene", func(r summary.Row) float64 { return r.GenePerMb }},
		{"Exon", func(r summary.Row) float64 { return r.ExonPerMb }},
		{"tRNA", func(r summary.Row) float64 { return r.TRNAPerMb }},
		{"snoRNA", func(r summary.Row) float64 { return r.SnoRNAPerMb }},
	}

	var prev *plotter.BarChart
	for si, s := range series {
		values := make(plotter.Values, len(sorted))
		for i, r := range sorted {
			values[i] = s.values(r)
		}
		bars, err := plotter.NewBarChart(values, vg.Points(14))
		if err != nil {
			return nil, err
		}
		bars.Color = plotutil.Color(si)
		bars.LineStyle.Width = 0
		if prev != nil {
			bars.StackOn(prev)
		}
		prev = bars

		p.Add(bars)
		p.Legend.Add(s.name, bars)
	}

	names := make([]string, len(sorted))
	for i, r := range sorted {
		names[i] = r.Chrom
	}
	p.NominalX(names...)
	p.Legend.Top = true
	return p, nil
}

// sortedBy returns a copy of rows ordered by less.
func sortedBy(rows []summary.Row, less func(a, b summary.Row) bool) []summary.Row {
	sorted := make([]summary.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}
