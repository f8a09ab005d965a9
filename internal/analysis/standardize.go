package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"neighborfit/internal/dataset"
)

// Scaler es un z-score por columna con desvío poblacional. Columnas
// constantes usan escala 1.
type Scaler struct {
	Mean  []float64
	Scale []float64
}

// FitTransform ajusta el scaler sobre rows (filas = observaciones) y devuelve
// la matriz estandarizada.
func (s *Scaler) FitTransform(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("standardize: %w", dataset.ErrEmptyTable)
	}
	c := len(rows[0])
	for i, r := range rows {
		if len(r) != c {
			return nil, fmt.Errorf("standardize: row %d: %w", i, dataset.ErrColumnLength)
		}
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	col := make([]float64, len(rows))
	for j := 0; j < c; j++ {
		for i := range rows {
			col[i] = rows[i][j]
		}
		m, v := stat.PopMeanVariance(col, nil)
		s.Mean[j] = m
		s.Scale[j] = math.Sqrt(v)
		if s.Scale[j] == 0 {
			s.Scale[j] = 1
		}
	}
	return s.Transform(rows)
}

func (s *Scaler) Transform(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("standardize: %w", dataset.ErrEmptyTable)
	}
	c := len(s.Mean)
	out := mat.NewDense(len(rows), c, nil)
	for i, r := range rows {
		if len(r) != c {
			return nil, fmt.Errorf("standardize: row %d: %w", i, dataset.ErrColumnLength)
		}
		for j, v := range r {
			out.Set(i, j, (v-s.Mean[j])/s.Scale[j])
		}
	}
	return out, nil
}
