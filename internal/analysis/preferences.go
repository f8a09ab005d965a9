package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"neighborfit/internal/dataset"
)

type ColumnStat struct {
	Column string
	Mean   float64
	Std    float64 // muestral (n-1)
}

// PreferenceStats devuelve media y desvío muestral de cada columna de la
// tabla de usuarios, budget incluido, en orden de columnas.
func PreferenceStats(u *dataset.UserTable) ([]ColumnStat, error) {
	if err := dataset.ValidateUsers(u); err != nil {
		return nil, fmt.Errorf("preference stats: %w", err)
	}
	out := make([]ColumnStat, 0, len(u.Columns))
	for _, c := range u.Columns {
		col, err := u.Column(c)
		if err != nil {
			return nil, err
		}
		m, s := stat.MeanStdDev(col, nil)
		out = append(out, ColumnStat{Column: c, Mean: m, Std: s})
	}
	return out, nil
}
