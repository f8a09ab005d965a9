package analysis

/*
K-MEANS (k-means++ + Lloyd) con reinicios concurrentes.

Parámetros
----------
  K        número de clusters
  NInit    reinicios; se queda el de menor inercia (empate => menor índice)
  MaxIter  iteraciones máximas por reinicio
  Tol      tolerancia relativa: corta cuando Σ desplazamiento² de centroides
           <= Tol · media(varianza por columna)
  Seed     semilla; el reinicio r usa PCG(Seed, r+1)
  Workers  tamaño del pool de reinicios

Los resultados se indexan por reinicio, así que el resultado no depende del
orden en que terminan los workers. Las etiquetas se renumeran por orden de
primera aparición (el cluster 0 contiene la fila 0).
*/

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var ErrInvalidK = errors.New("invalid number of clusters")

type KMeans struct {
	K       int
	NInit   int
	MaxIter int
	Tol     float64
	Seed    uint64
	Workers int
}

type KMeansResult struct {
	K         int
	Labels    []int
	Centroids [][]float64
	Inertia   float64
	Iter      int
}

func (km KMeans) withDefaults() KMeans {
	if km.NInit <= 0 {
		km.NInit = 10
	}
	if km.MaxIter <= 0 {
		km.MaxIter = 300
	}
	if km.Tol < 0 {
		km.Tol = 0
	}
	if km.Workers <= 0 {
		km.Workers = 1
	}
	return km
}

// Fit corre NInit reinicios sobre x (filas = observaciones).
func (km KMeans) Fit(ctx context.Context, x *mat.Dense) (*KMeansResult, error) {
	km = km.withDefaults()
	n, _ := x.Dims()
	if km.K < 1 || km.K > n {
		return nil, fmt.Errorf("kmeans: %w: k=%d for %d rows", ErrInvalidK, km.K, n)
	}

	points := make([][]float64, n)
	for i := range points {
		points[i] = x.RawRowView(i)
	}
	tol := km.Tol * meanColumnVariance(x)

	results := make([]*KMeansResult, km.NInit)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(km.Workers)
	for r := 0; r < km.NInit; r++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(km.Seed, uint64(r)+1))
			results[r] = lloyd(points, km.K, km.MaxIter, tol, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("kmeans: %w", err)
	}

	best := results[0]
	for _, res := range results[1:] {
		if res.Inertia < best.Inertia {
			best = res
		}
	}
	canonicalize(best)
	return best, nil
}

func meanColumnVariance(x *mat.Dense) float64 {
	n, c := x.Dims()
	if c == 0 || n == 0 {
		return 0
	}
	col := make([]float64, n)
	var sum float64
	for j := 0; j < c; j++ {
		mat.Col(col, j, x)
		_, v := stat.PopMeanVariance(col, nil)
		sum += v
	}
	return sum / float64(c)
}

func lloyd(points [][]float64, k, maxIter int, tol float64, rng *rand.Rand) *KMeansResult {
	centroids := seedPlusPlus(points, k, rng)
	labels := make([]int, len(points))
	dim := len(points[0])

	iter := 0
	for iter < maxIter {
		iter++
		assign(points, centroids, labels)

		next := make([][]float64, k)
		counts := make([]int, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, p := range points {
			floats.Add(next[labels[i]], p)
			counts[labels[i]]++
		}
		taken := map[int]bool{}
		for c := range next {
			if counts[c] == 0 {
				// cluster vacío: se reubica en el punto más lejano a su centroide
				far := farthestPoint(points, centroids, labels, taken)
				taken[far] = true
				copy(next[c], points[far])
				continue
			}
			floats.Scale(1/float64(counts[c]), next[c])
		}

		var shift float64
		for c := range next {
			d := floats.Distance(next[c], centroids[c], 2)
			shift += d * d
		}
		centroids = next
		if shift <= tol {
			break
		}
	}

	inertia := assign(points, centroids, labels)
	return &KMeansResult{K: k, Labels: labels, Centroids: centroids, Inertia: inertia, Iter: iter}
}

// seedPlusPlus elige centroides iniciales con probabilidad ∝ D².
func seedPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	centroids := make([][]float64, 0, k)
	first := points[rng.IntN(n)]
	centroids = append(centroids, append([]float64(nil), first...))

	d2 := make([]float64, n)
	for len(centroids) < k {
		var total float64
		for i, p := range points {
			best := math.Inf(1)
			for _, c := range centroids {
				d := floats.Distance(p, c, 2)
				if d*d < best {
					best = d * d
				}
			}
			d2[i] = best
			total += best
		}

		idx := 0
		if total == 0 {
			idx = rng.IntN(n)
		} else {
			target := rng.Float64() * total
			var acc float64
			for i, v := range d2 {
				if v == 0 {
					continue
				}
				idx = i
				acc += v
				if acc >= target {
					break
				}
			}
		}
		centroids = append(centroids, append([]float64(nil), points[idx]...))
	}
	return centroids
}

// assign etiqueta cada punto con su centroide más cercano y devuelve la inercia.
func assign(points, centroids [][]float64, labels []int) float64 {
	var inertia float64
	for i, p := range points {
		best, bestD := 0, math.Inf(1)
		for c, ctr := range centroids {
			d := floats.Distance(p, ctr, 2)
			if d < bestD {
				best, bestD = c, d
			}
		}
		labels[i] = best
		inertia += bestD * bestD
	}
	return inertia
}

func farthestPoint(points, centroids [][]float64, labels []int, taken map[int]bool) int {
	far, farD := 0, -1.0
	for i, p := range points {
		if taken[i] {
			continue
		}
		d := floats.Distance(p, centroids[labels[i]], 2)
		if d > farD {
			far, farD = i, d
		}
	}
	return far
}

func canonicalize(res *KMeansResult) {
	remap := make(map[int]int, res.K)
	for _, l := range res.Labels {
		if _, ok := remap[l]; !ok {
			remap[l] = len(remap)
		}
	}
	// clusters sin miembros quedan al final
	for c := 0; c < res.K; c++ {
		if _, ok := remap[c]; !ok {
			remap[c] = len(remap)
		}
	}
	for i, l := range res.Labels {
		res.Labels[i] = remap[l]
	}
	cents := make([][]float64, res.K)
	for old, nw := range remap {
		cents[nw] = res.Centroids[old]
	}
	res.Centroids = cents
}
