// Package analysis implementa las etapas estadísticas del análisis de barrios:
// correlación, estandarización, k-means con selección por silhouette,
// validación del matching, importancia de atributos y el reporte final.
package analysis

/*
CORRELACIÓN DE PEARSON entre columnas de la tabla de barrios.

  r(x,y) = Σ(x-mx)(y-my) / sqrt(Σ(x-mx)² · Σ(y-my)²)

- Matriz simétrica (mat.SymDense), diagonal 1.
- Columna con varianza 0 => fila/columna NaN (igual que pandas).
- Pairs(umbral) devuelve los pares i<j con |r| > umbral, en orden de columnas.
*/

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"neighborfit/internal/dataset"
)

type Correlation struct {
	Columns []string
	M       *mat.SymDense
}

type CorrPair struct {
	A, B string
	R    float64
}

// Correlate calcula la matriz de Pearson para las columnas dadas.
func Correlate(t *dataset.Table, columns []string) (*Correlation, error) {
	if t == nil || t.Len() < 2 {
		return nil, fmt.Errorf("correlate: %w: need at least 2 rows", dataset.ErrEmptyTable)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("correlate: no columns")
	}

	cols := make([][]float64, len(columns))
	for i, c := range columns {
		v, err := t.Column(c)
		if err != nil {
			return nil, fmt.Errorf("correlate: %w", err)
		}
		cols[i] = v
	}

	n := len(columns)
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		_, vi := stat.PopMeanVariance(cols[i], nil)
		if vi == 0 {
			m.SetSym(i, i, math.NaN())
		} else {
			m.SetSym(i, i, 1)
		}
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, stat.Correlation(cols[i], cols[j], nil))
		}
	}

	return &Correlation{Columns: append([]string(nil), columns...), M: m}, nil
}

func (c *Correlation) At(i, j int) float64 { return c.M.At(i, j) }

// Lookup devuelve r por nombre de columnas.
func (c *Correlation) Lookup(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, name := range c.Columns {
		if name == a {
			ia = i
		}
		if name == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return c.M.At(ia, ib), true
}

// Pairs devuelve los pares (i<j) con |r| estrictamente mayor al umbral.
func (c *Correlation) Pairs(threshold float64) []CorrPair {
	var out []CorrPair
	n := len(c.Columns)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := c.M.At(i, j)
			if math.IsNaN(r) {
				continue
			}
			if math.Abs(r) > threshold {
				out = append(out, CorrPair{A: c.Columns[i], B: c.Columns[j], R: r})
			}
		}
	}
	return out
}
