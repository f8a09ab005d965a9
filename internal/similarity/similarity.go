// Package similarity compara barrios entre sí y devuelve los Top-K vecinos
// de cada uno.
package similarity

/*
COSENO sobre los seis puntajes:
    cos(a,b) = a·b / (|a| |b|)

JACCARD sobre atributos fuertes (puntaje >= StrongScore):
    J(A,B) = |A ∩ B| / |A ∪ B|    (0 si ambos conjuntos están vacíos)

Top-K por barrio: mayor similitud primero, empates por nombre.
*/

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"neighborfit/internal/dataset"
)

const StrongScore = 80.0

var ErrUnknownMetric = errors.New("unknown similarity metric")

type Metric string

const (
	Cosine  Metric = "cosine"
	Jaccard Metric = "jaccard"
)

type Neighbor struct {
	Name string
	Sim  float64
}

type pair struct {
	j int
	s float64
}

// mezcla ordenada de Top-K vecinos
func topMerge(curr, add []pair, k int, names []string) []pair {
	curr = append(curr, add...)
	sort.Slice(curr, func(a, b int) bool {
		if curr[a].s != curr[b].s {
			return curr[a].s > curr[b].s
		}
		return names[curr[a].j] < names[curr[b].j]
	})
	if len(curr) > k {
		curr = curr[:k]
	}
	return curr
}

func CosineSim(a, b []float64) float64 {
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// StrongSet devuelve los atributos con puntaje >= StrongScore.
func StrongSet(n dataset.Neighborhood) map[string]struct{} {
	set := map[string]struct{}{}
	for i, v := range n.Scores.Vector() {
		if v >= StrongScore {
			set[dataset.ScoreFeatures[i]] = struct{}{}
		}
	}
	return set
}

func JaccardSim(a, b map[string]struct{}) float64 {
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// TopK devuelve, para cada barrio (en orden de tabla), sus k vecinos más similares.
func TopK(t *dataset.Table, metric Metric, k int) (map[string][]Neighbor, error) {
	if t == nil || t.Len() == 0 {
		return nil, fmt.Errorf("similarity: %w", dataset.ErrEmptyTable)
	}
	if k <= 0 {
		return nil, fmt.Errorf("similarity: k must be positive, got %d", k)
	}

	var sim func(i, j int) float64
	switch metric {
	case Cosine:
		vecs := make([][]float64, t.Len())
		for i, r := range t.Rows {
			vecs[i] = r.Scores.Vector()
		}
		sim = func(i, j int) float64 { return CosineSim(vecs[i], vecs[j]) }
	case Jaccard:
		sets := make([]map[string]struct{}, t.Len())
		for i, r := range t.Rows {
			sets[i] = StrongSet(r)
		}
		sim = func(i, j int) float64 { return JaccardSim(sets[i], sets[j]) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}

	names := t.Names()
	top := make([][]pair, t.Len())
	for i := 0; i < t.Len(); i++ {
		for j := i + 1; j < t.Len(); j++ {
			s := sim(i, j)
			top[i] = topMerge(top[i], []pair{{j: j, s: s}}, k, names)
			top[j] = topMerge(top[j], []pair{{j: i, s: s}}, k, names)
		}
	}

	out := make(map[string][]Neighbor, t.Len())
	for i, lst := range top {
		nb := make([]Neighbor, len(lst))
		for x, p := range lst {
			nb[x] = Neighbor{Name: names[p.j], Sim: p.s}
		}
		out[names[i]] = nb
	}
	return out, nil
}
