package analysis

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"neighborfit/internal/dataset"
)

type ClusterOptions struct {
	KMin    int
	KMax    int
	NInit   int
	MaxIter int
	Tol     float64
	Seed    uint64
	Workers int
}

type KScore struct {
	K          int
	Silhouette float64
}

type ClusterSelection struct {
	Scores []KScore
	BestK  int
	Result *KMeansResult
}

type ClusterProfile struct {
	ID      int
	Members []string
	Means   []float64 // orden de dataset.ScoreFeatures
}

// SelectK prueba k en [KMin, KMax] y se queda con el de mayor silhouette
// (el primero gana en empates). Con la misma semilla el reajuste con el k
// elegido da exactamente el mismo modelo, así que se reutiliza.
func SelectK(ctx context.Context, x *mat.Dense, opts ClusterOptions) (*ClusterSelection, error) {
	n, _ := x.Dims()
	if opts.KMin < 2 || opts.KMax < opts.KMin || opts.KMax > n-1 {
		return nil, fmt.Errorf("select k: %w: range [%d,%d] for %d rows", ErrInvalidK, opts.KMin, opts.KMax, n)
	}

	sel := &ClusterSelection{}
	var bestScore float64
	for k := opts.KMin; k <= opts.KMax; k++ {
		km := KMeans{K: k, NInit: opts.NInit, MaxIter: opts.MaxIter, Tol: opts.Tol, Seed: opts.Seed, Workers: opts.Workers}
		res, err := km.Fit(ctx, x)
		if err != nil {
			return nil, err
		}
		s, err := Silhouette(x, res.Labels)
		if err != nil {
			return nil, fmt.Errorf("select k=%d: %w", k, err)
		}
		sel.Scores = append(sel.Scores, KScore{K: k, Silhouette: s})
		if sel.Result == nil || s > bestScore {
			bestScore = s
			sel.BestK = k
			sel.Result = res
		}
	}
	return sel, nil
}

// ClusterFeatures estandariza las seis columnas de puntaje de la tabla.
func ClusterFeatures(t *dataset.Table) (*mat.Dense, *Scaler, error) {
	rows, err := t.Columns(dataset.ScoreFeatures)
	if err != nil {
		return nil, nil, err
	}
	sc := &Scaler{}
	x, err := sc.FitTransform(rows)
	if err != nil {
		return nil, nil, err
	}
	return x, sc, nil
}

// Profiles resume cada cluster con sus miembros y la media (sin estandarizar)
// de cada atributo.
func Profiles(t *dataset.Table, labels []int, k int) ([]ClusterProfile, error) {
	if len(labels) != t.Len() {
		return nil, fmt.Errorf("profiles: %w", dataset.ErrColumnLength)
	}
	out := make([]ClusterProfile, k)
	for c := range out {
		out[c] = ClusterProfile{ID: c, Means: make([]float64, len(dataset.ScoreFeatures))}
	}

	members := make([][][]float64, k)
	for i, r := range t.Rows {
		l := labels[i]
		if l < 0 || l >= k {
			return nil, fmt.Errorf("profiles: label %d outside [0,%d)", l, k)
		}
		out[l].Members = append(out[l].Members, r.Name)
		members[l] = append(members[l], r.Scores.Vector())
	}

	col := []float64{}
	for c := range out {
		if len(members[c]) == 0 {
			continue
		}
		for j := range dataset.ScoreFeatures {
			col = col[:0]
			for _, v := range members[c] {
				col = append(col, v[j])
			}
			out[c].Means[j] = stat.Mean(col, nil)
		}
	}
	return out, nil
}
