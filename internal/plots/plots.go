// Package plots dibuja los gráficos del análisis como archivos PNG.
package plots

/*
Salidas (dentro de Renderer.Dir)
--------------------------------
  correlation_heatmap.png      matriz de correlación anotada
  preference_histograms.png    6 histogramas (2x3), uno por preferencia
  match_scores.png             histograma de mejores scores + línea de media
  feature_importance.png       barras en orden de inserción con etiquetas %
*/

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"neighborfit/internal/analysis"
	"neighborfit/internal/dataset"
)

const (
	HeatmapFile     = "correlation_heatmap.png"
	PreferencesFile = "preference_histograms.png"
	MatchFile       = "match_scores.png"
	ImportanceFile  = "feature_importance.png"
)

var (
	barFill  = color.RGBA{R: 70, G: 130, B: 180, A: 180}
	meanLine = color.RGBA{R: 220, A: 255}
)

type Renderer struct {
	Dir  string
	Bins int
}

func (r Renderer) path(name string) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("plots: create %s: %w", r.Dir, err)
	}
	return filepath.Join(r.Dir, name), nil
}

func (r Renderer) bins() int {
	if r.Bins <= 0 {
		return 20
	}
	return r.Bins
}

// ---- heatmap ----

type corrGrid struct {
	c *analysis.Correlation
}

func (g corrGrid) Dims() (c, r int)   { n := len(g.c.Columns); return n, n }
func (g corrGrid) Z(c, r int) float64 { return g.c.At(r, c) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

func (r Renderer) CorrelationHeatmap(c *analysis.Correlation) (string, error) {
	p := plot.New()
	p.Title.Text = "Neighborhood Characteristics Correlation Matrix"

	pal := moreland.SmoothBlueRed()
	pal.SetMin(-1)
	pal.SetMax(1)
	hm := plotter.NewHeatMap(corrGrid{c: c}, pal.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 200}
	p.Add(hm)

	n := len(c.Columns)
	xys := make(plotter.XYs, 0, n*n)
	labels := make([]string, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			xys = append(xys, plotter.XY{X: float64(j), Y: float64(i)})
			labels = append(labels, fmt.Sprintf("%.2f", c.At(i, j)))
		}
	}
	annot, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return "", fmt.Errorf("plots: heatmap labels: %w", err)
	}
	p.Add(annot)
	p.NominalX(c.Columns...)
	p.NominalY(c.Columns...)

	out, err := r.path(HeatmapFile)
	if err != nil {
		return "", err
	}
	if err := p.Save(12*vg.Inch, 10*vg.Inch, out); err != nil {
		return "", fmt.Errorf("plots: save heatmap: %w", err)
	}
	return out, nil
}

// ---- histogramas ----

func (r Renderer) histogram(values []float64, title, xLabel string) (*plot.Plot, *plotter.Histogram, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(values), r.bins())
	if err != nil {
		return nil, nil, err
	}
	h.FillColor = barFill
	p.Add(h)
	return p, h, nil
}

// PreferenceHistograms dibuja un histograma por columna de preferencia en una grilla 2x3.
func (r Renderer) PreferenceHistograms(u *dataset.UserTable) (string, error) {
	const rows, cols = 2, 3
	prefCols := u.PrefColumns()

	plots := make([][]*plot.Plot, rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, cols)
	}
	for i, c := range prefCols {
		if i >= rows*cols {
			break
		}
		col, err := u.Column(c)
		if err != nil {
			return "", err
		}
		p, _, err := r.histogram(col, titleCase(c)+" Distribution", "Preference Score (1-10)")
		if err != nil {
			return "", fmt.Errorf("plots: histogram %s: %w", c, err)
		}
		plots[i/cols][i%cols] = p
	}

	img := vgimg.New(15*vg.Inch, 10*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter, PadY: vg.Millimeter,
		PadTop: vg.Points(4), PadBottom: vg.Points(4),
		PadLeft: vg.Points(4), PadRight: vg.Points(4),
	}
	canvases := plot.Align(plots, tiles, dc)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			if plots[j][i] != nil {
				plots[j][i].Draw(canvases[j][i])
			}
		}
	}

	out, err := r.path(PreferencesFile)
	if err != nil {
		return "", err
	}
	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("plots: %w", err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return "", fmt.Errorf("plots: write %s: %w", out, err)
	}
	return out, nil
}

// MatchHistogram dibuja la distribución de mejores scores con la media punteada.
func (r Renderer) MatchHistogram(mv *analysis.MatchValidation) (string, error) {
	p, h, err := r.histogram(mv.Scores, "Distribution of Best Match Scores", "Match Score")
	if err != nil {
		return "", fmt.Errorf("plots: match histogram: %w", err)
	}

	top := 0.0
	for _, b := range h.Bins {
		top = math.Max(top, b.Weight)
	}
	line, err := plotter.NewLine(plotter.XYs{{X: mv.Mean, Y: 0}, {X: mv.Mean, Y: top}})
	if err != nil {
		return "", fmt.Errorf("plots: mean line: %w", err)
	}
	line.LineStyle.Color = meanLine
	line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("Mean: %.2f", mv.Mean), line)

	out, err := r.path(MatchFile)
	if err != nil {
		return "", err
	}
	if err := p.Save(10*vg.Inch, 6*vg.Inch, out); err != nil {
		return "", fmt.Errorf("plots: save match histogram: %w", err)
	}
	return out, nil
}

// ImportanceBars dibuja la tabla de importancia en orden de inserción.
func (r Renderer) ImportanceBars(im *analysis.Importance) (string, error) {
	ordered := im.Ordered()
	names := make([]string, len(ordered))
	vals := make(plotter.Values, len(ordered))
	xys := make(plotter.XYs, len(ordered))
	labels := make([]string, len(ordered))
	for i, fw := range ordered {
		names[i] = fw.Feature
		vals[i] = fw.Weight
		xys[i] = plotter.XY{X: float64(i), Y: fw.Weight + 0.005}
		labels[i] = fmt.Sprintf("%.1f%%", fw.Weight*100)
	}

	p := plot.New()
	p.Title.Text = "Feature Importance in Neighborhood Matching"
	p.X.Label.Text = "Features"
	p.Y.Label.Text = "Importance Score"

	bars, err := plotter.NewBarChart(vals, vg.Points(40))
	if err != nil {
		return "", fmt.Errorf("plots: bars: %w", err)
	}
	bars.Color = barFill
	p.Add(bars)

	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return "", fmt.Errorf("plots: bar labels: %w", err)
	}
	p.Add(lbl)
	p.NominalX(names...)

	out, err := r.path(ImportanceFile)
	if err != nil {
		return "", err
	}
	if err := p.Save(10*vg.Inch, 6*vg.Inch, out); err != nil {
		return "", fmt.Errorf("plots: save importance: %w", err)
	}
	return out, nil
}

// titleCase: "family_friendly_pref" -> "Family Friendly Pref".
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
