// Package pipeline ejecuta las etapas del análisis en orden e imprime la
// salida de cada una.
package pipeline

/*
Etapas
------
  load → correlate → cluster → users → validate → importance → report

Cada etapa es un método exportado para que los subcomandos puedan correrla
sola. Run encadena todas, mide cada una con utils.Timer y devuelve Results.
*/

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"neighborfit/internal/analysis"
	"neighborfit/internal/config"
	"neighborfit/internal/console"
	"neighborfit/internal/dataset"
	"neighborfit/utils"
)

// Charts dibuja los gráficos de cada etapa y devuelve la ruta escrita.
type Charts interface {
	CorrelationHeatmap(c *analysis.Correlation) (string, error)
	PreferenceHistograms(u *dataset.UserTable) (string, error)
	MatchHistogram(mv *analysis.MatchValidation) (string, error)
	ImportanceBars(im *analysis.Importance) (string, error)
}

// NopCharts no dibuja nada (--no-plots).
type NopCharts struct{}

func (NopCharts) CorrelationHeatmap(*analysis.Correlation) (string, error) { return "", nil }
func (NopCharts) PreferenceHistograms(*dataset.UserTable) (string, error)  { return "", nil }
func (NopCharts) MatchHistogram(*analysis.MatchValidation) (string, error) { return "", nil }
func (NopCharts) ImportanceBars(*analysis.Importance) (string, error)      { return "", nil }

type Results struct {
	RunID       string
	Table       *dataset.Table
	Correlation *analysis.Correlation
	Clusters    *analysis.ClusterSelection
	Profiles    []analysis.ClusterProfile
	Users       *dataset.UserTable
	PrefStats   []analysis.ColumnStat
	Match       *analysis.MatchValidation
	Importance  *analysis.Importance
	Charts      []string
	Laps        []utils.Lap
}

type Pipeline struct {
	cfg    *config.Config
	out    *console.Printer
	charts Charts
	log    *utils.Logger
	runID  string
	timer  *utils.Timer
	drawn  []string
}

func New(cfg *config.Config, out io.Writer, charts Charts, log *utils.Logger) *Pipeline {
	if charts == nil {
		charts = NopCharts{}
	}
	if log == nil {
		log = utils.NewNopLogger()
	}
	runID := uuid.NewString()
	return &Pipeline{
		cfg:    cfg,
		out:    console.New(out),
		charts: charts,
		log:    log.With("run", runID),
		runID:  runID,
		timer:  utils.NewTimer(),
	}
}

func (p *Pipeline) RunID() string { return p.runID }

func (p *Pipeline) chart(name string, draw func() (string, error)) error {
	path, err := draw()
	if err != nil {
		return fmt.Errorf("%s chart: %w", name, err)
	}
	if path != "" {
		p.drawn = append(p.drawn, path)
		p.log.Debug("chart written: %s", path)
	}
	return nil
}

func (p *Pipeline) lap(stage string) {
	d := p.timer.Lap(stage)
	p.log.Info("stage %s done in %s", stage, d)
}

// ---- etapas ----

// Load devuelve la tabla fija de barrios ya validada.
func (p *Pipeline) Load() (*dataset.Table, error) {
	t := dataset.LoadNeighborhoods()
	if err := dataset.Validate(t); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	p.lap("load")
	return t, nil
}

func (p *Pipeline) Correlate(t *dataset.Table) (*analysis.Correlation, error) {
	p.out.Header("CORRELATION ANALYSIS", true)
	c, err := analysis.Correlate(t, dataset.NumericColumns)
	if err != nil {
		return nil, fmt.Errorf("correlate: %w", err)
	}
	for i, col := range c.Columns {
		if math.IsNaN(c.At(i, i)) {
			p.log.Warn("column %s has zero variance, its correlations are NaN", col)
		}
	}
	if err := p.chart("correlation", func() (string, error) { return p.charts.CorrelationHeatmap(c) }); err != nil {
		return nil, err
	}

	p.out.Blank()
	p.out.Section(fmt.Sprintf("Key Correlations (|r| > %g):", p.cfg.Correlation.Threshold))
	for _, pr := range c.Pairs(p.cfg.Correlation.Threshold) {
		p.out.Line("%s vs %s: %.3f", pr.A, pr.B, pr.R)
	}
	p.lap("correlate")
	return c, p.out.Err()
}

// Cluster estandariza, elige k por silhouette y etiqueta la tabla.
func (p *Pipeline) Cluster(ctx context.Context, t *dataset.Table) (*analysis.ClusterSelection, []analysis.ClusterProfile, error) {
	p.out.Header("CLUSTER ANALYSIS", false)
	x, _, err := analysis.ClusterFeatures(t)
	if err != nil {
		return nil, nil, fmt.Errorf("cluster: %w", err)
	}
	cc := p.cfg.Clustering
	sel, err := analysis.SelectK(ctx, x, analysis.ClusterOptions{
		KMin: cc.KMin, KMax: cc.KMax, NInit: cc.NInit, MaxIter: cc.MaxIter,
		Tol: cc.Tolerance, Seed: p.cfg.Seed, Workers: cc.Workers,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("cluster: %w", err)
	}
	for _, ks := range sel.Scores {
		p.out.Line("K=%d: Silhouette Score = %.3f", ks.K, ks.Silhouette)
	}
	p.out.Blank()
	p.out.Success("Optimal number of clusters: %d", sel.BestK)

	if err := t.SetClusters(sel.Result.Labels); err != nil {
		return nil, nil, fmt.Errorf("cluster: %w", err)
	}
	profiles, err := analysis.Profiles(t, sel.Result.Labels, sel.BestK)
	if err != nil {
		return nil, nil, fmt.Errorf("cluster: %w", err)
	}

	p.out.Blank()
	p.out.Section("Cluster Analysis:")
	for _, cp := range profiles {
		p.out.Blank()
		p.out.Line("Cluster %d (%d neighborhoods):", cp.ID, len(cp.Members))
		p.out.Line("Neighborhoods: %s", strings.Join(cp.Members, ", "))
		p.out.Line("Average characteristics:")
		for i, f := range dataset.ScoreFeatures {
			p.out.Line("  %s: %.1f", f, cp.Means[i])
		}
	}
	p.log.Debug("k-means inertia=%.4f iterations=%d", sel.Result.Inertia, sel.Result.Iter)
	p.lap("cluster")
	return sel, profiles, p.out.Err()
}

// Users genera la población sintética e imprime sus estadísticas.
func (p *Pipeline) Users() (*dataset.UserTable, []analysis.ColumnStat, error) {
	p.out.Header("USER PREFERENCE ANALYSIS", false)
	uc := p.cfg.Users
	u, err := dataset.GenerateUsers(uc.Count, p.cfg.Seed, uc.Preferences, uc.Budget)
	if err != nil {
		return nil, nil, fmt.Errorf("users: %w", err)
	}
	stats, err := analysis.PreferenceStats(u)
	if err != nil {
		return nil, nil, fmt.Errorf("users: %w", err)
	}

	p.out.Section("User Preference Statistics:")
	for _, s := range stats {
		if s.Column == "budget" {
			p.out.Line("%s: Mean=$%.0f, Std=$%.0f", s.Column, s.Mean, s.Std)
			continue
		}
		p.out.Line("%s: Mean=%.2f, Std=%.2f", s.Column, s.Mean, s.Std)
	}
	if err := p.chart("preferences", func() (string, error) { return p.charts.PreferenceHistograms(u) }); err != nil {
		return nil, nil, err
	}
	p.lap("users")
	return u, stats, p.out.Err()
}

// ValidateMatching muestrea usuarios y resume sus mejores scores.
func (p *Pipeline) ValidateMatching(t *dataset.Table, u *dataset.UserTable) (*analysis.MatchValidation, error) {
	p.out.Header("ALGORITHM VALIDATION", false)
	mv, err := analysis.ValidateMatching(t, u, p.cfg.Validation.SampleSize, p.cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	p.out.Line("Average match score: %.2f", mv.Mean)
	p.out.Line("Match score std: %.2f", mv.Std)
	p.out.Line("Min match score: %.2f", mv.Min)
	p.out.Line("Max match score: %.2f", mv.Max)

	p.out.Blank()
	p.out.Section("Best match wins per neighborhood:")
	for _, name := range winOrder(t, mv.Wins) {
		p.out.Line("%s: %d", name, mv.Wins[name])
	}
	if err := p.chart("match", func() (string, error) { return p.charts.MatchHistogram(mv) }); err != nil {
		return nil, err
	}
	p.lap("validate")
	return mv, p.out.Err()
}

// winOrder: más victorias primero, empates en orden de tabla; omite los barrios sin victorias.
func winOrder(t *dataset.Table, wins map[string]int) []string {
	names := make([]string, 0, len(wins))
	for _, n := range t.Names() {
		if wins[n] > 0 {
			names = append(names, n)
		}
	}
	sort.SliceStable(names, func(i, j int) bool { return wins[names[i]] > wins[names[j]] })
	return names
}

func (p *Pipeline) Importance() (*analysis.Importance, error) {
	p.out.Header("FEATURE IMPORTANCE ANALYSIS", false)
	im := analysis.FeatureImportance()
	p.out.Section("Feature Importance in Matching Algorithm:")
	for _, fw := range im.Sorted() {
		p.out.Line("%s: %.1f%%", fw.Feature, fw.Weight*100)
	}
	if err := p.chart("importance", func() (string, error) { return p.charts.ImportanceBars(im) }); err != nil {
		return nil, err
	}
	p.lap("importance")
	return im, p.out.Err()
}

func (p *Pipeline) Report(t *dataset.Table, c *analysis.Correlation, mv *analysis.MatchValidation) error {
	if err := p.out.Err(); err != nil {
		return err
	}
	err := analysis.WriteReport(p.out.Writer(), analysis.ReportInput{
		RunID:           p.runID,
		Neighborhoods:   t.Len(),
		Correlation:     c,
		Match:           mv,
		StrongThreshold: p.cfg.Correlation.ReportThreshold,
	})
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	p.lap("report")
	return nil
}

// Run ejecuta todas las etapas en orden.
func (p *Pipeline) Run(ctx context.Context) (*Results, error) {
	res := &Results{RunID: p.runID}
	p.log.Info("starting analysis (seed=%d, users=%d, sample=%d)", p.cfg.Seed, p.cfg.Users.Count, p.cfg.Validation.SampleSize)

	p.out.Line("Starting NeighborFit Data Analysis...")
	p.out.Rule()

	var err error
	if res.Table, err = p.Load(); err != nil {
		return nil, err
	}
	p.out.Line("Loaded data for %d neighborhoods", res.Table.Len())
	p.out.Blank()

	if res.Correlation, err = p.Correlate(res.Table); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if res.Clusters, res.Profiles, err = p.Cluster(ctx, res.Table); err != nil {
		return nil, err
	}
	if res.Users, res.PrefStats, err = p.Users(); err != nil {
		return nil, err
	}
	if res.Match, err = p.ValidateMatching(res.Table, res.Users); err != nil {
		return nil, err
	}
	if res.Importance, err = p.Importance(); err != nil {
		return nil, err
	}
	if err := p.Report(res.Table, res.Correlation, res.Match); err != nil {
		return nil, err
	}

	p.out.Blank()
	p.out.Rule()
	p.out.Success("Analysis complete! Check the generated plots and insights above.")
	p.out.Rule()
	if len(p.drawn) > 0 {
		p.out.Note("Charts written: %s", strings.Join(p.drawn, ", "))
	}

	res.Charts = append([]string(nil), p.drawn...)
	res.Laps = p.timer.Laps()
	p.log.Info("analysis finished in %s", p.timer.Elapsed())
	return res, p.out.Err()
}
