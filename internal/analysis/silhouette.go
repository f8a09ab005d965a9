package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var ErrSilhouette = errors.New("silhouette needs 2 <= clusters <= n-1")

// Silhouette devuelve la media de s(i) = (b-a)/max(a,b), con distancia
// euclídea. Puntos en clusters de un solo miembro aportan 0.
func Silhouette(x *mat.Dense, labels []int) (float64, error) {
	n, _ := x.Dims()
	if len(labels) != n {
		return 0, fmt.Errorf("silhouette: %d labels for %d rows", len(labels), n)
	}

	sizes := map[int]int{}
	for _, l := range labels {
		sizes[l]++
	}
	if len(sizes) < 2 || len(sizes) > n-1 {
		return 0, fmt.Errorf("%w: %d clusters, %d rows", ErrSilhouette, len(sizes), n)
	}

	var total float64
	for i := 0; i < n; i++ {
		own := labels[i]
		if sizes[own] == 1 {
			continue
		}
		sums := map[int]float64{}
		pi := x.RawRowView(i)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			sums[labels[j]] += floats.Distance(pi, x.RawRowView(j), 2)
		}

		a := sums[own] / float64(sizes[own]-1)
		b := -1.0
		for l, s := range sums {
			if l == own {
				continue
			}
			m := s / float64(sizes[l])
			if b < 0 || m < b {
				b = m
			}
		}

		den := a
		if b > den {
			den = b
		}
		if den > 0 {
			total += (b - a) / den
		}
	}
	return total / float64(n), nil
}
