package analysis

/*
VALIDACIÓN DEL MATCHING (muestreo de usuarios)

Para cada usuario muestreado:
  w_f   = pref_f / 10                    (f en los seis atributos)
  s(n)  = (1/6) Σ_f score_f(n) · w_f      para cada barrio n
  best  = max_n s(n)

Salida: media, desvío poblacional, mínimo y máximo de best, más el barrio
ganador de cada usuario.
*/

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"neighborfit/internal/dataset"
)

type MatchValidation struct {
	Users  []int     // índices de la tabla de usuarios
	Scores []float64 // mejor score por usuario
	Best   []int     // índice del barrio ganador por usuario
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
	Wins   map[string]int
}

// MatchScore es la media de los productos puntaje × peso.
func MatchScore(n dataset.Neighborhood, weights [6]float64) float64 {
	return floats.Dot(n.Scores.Vector(), weights[:]) / float64(len(weights))
}

// NeighborhoodScores calcula el score del usuario contra cada barrio.
func NeighborhoodScores(t *dataset.Table, u dataset.UserPrefs) []float64 {
	w := u.Weights()
	out := make([]float64, t.Len())
	for i, n := range t.Rows {
		out[i] = MatchScore(n, w)
	}
	return out
}

// BestMatch devuelve el barrio de mayor score (primero en empates).
func BestMatch(t *dataset.Table, u dataset.UserPrefs) (int, float64, error) {
	if t == nil || t.Len() == 0 {
		return -1, 0, fmt.Errorf("best match: %w", dataset.ErrEmptyTable)
	}
	scores := NeighborhoodScores(t, u)
	idx := floats.MaxIdx(scores)
	return idx, scores[idx], nil
}

// ValidateMatching muestrea sampleSize usuarios distintos y resume sus mejores scores.
func ValidateMatching(t *dataset.Table, users *dataset.UserTable, sampleSize int, seed uint64) (*MatchValidation, error) {
	if err := dataset.Validate(t); err != nil {
		return nil, fmt.Errorf("validate matching: %w", err)
	}
	if err := dataset.ValidateUsers(users); err != nil {
		return nil, fmt.Errorf("validate matching: %w", err)
	}
	idx, err := dataset.Sample(users.Len(), sampleSize, seed)
	if err != nil {
		return nil, fmt.Errorf("validate matching: %w", err)
	}

	mv := &MatchValidation{
		Users:  idx,
		Scores: make([]float64, len(idx)),
		Best:   make([]int, len(idx)),
		Wins:   make(map[string]int),
	}
	for i, ui := range idx {
		b, s, err := BestMatch(t, users.Row(ui))
		if err != nil {
			return nil, err
		}
		mv.Scores[i] = s
		mv.Best[i] = b
		mv.Wins[t.Rows[b].Name]++
	}

	mean, variance := stat.PopMeanVariance(mv.Scores, nil)
	mv.Mean = mean
	mv.Std = math.Sqrt(variance)
	mv.Min = floats.Min(mv.Scores)
	mv.Max = floats.Max(mv.Scores)
	return mv, nil
}
