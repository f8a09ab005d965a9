package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTable    = errors.New("empty table")
	ErrColumnLength  = errors.New("column length mismatch")
	ErrDuplicateName = errors.New("duplicate neighborhood name")
	ErrOutOfRange    = errors.New("value out of range")
)

// Validate revisa la tabla de barrios antes de analizarla:
//   - al menos una fila, nombres únicos y no vacíos
//   - puntajes en [0,100]
//   - edad, ingreso, renta y población positivos
func Validate(t *Table) error {
	if t == nil || len(t.Rows) == 0 {
		return ErrEmptyTable
	}
	seen := make(map[string]struct{}, len(t.Rows))
	for i, r := range t.Rows {
		if r.Name == "" {
			return fmt.Errorf("row %d: %w: empty name", i, ErrOutOfRange)
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, r.Name)
		}
		seen[r.Name] = struct{}{}

		for j, v := range r.Scores.Vector() {
			if v < 0 || v > 100 {
				return fmt.Errorf("%s.%s=%v: %w", r.Name, ScoreFeatures[j], v, ErrOutOfRange)
			}
		}
		for _, c := range []string{"median_age", "median_income", "average_rent", "population"} {
			v, _ := r.Value(c)
			if v <= 0 {
				return fmt.Errorf("%s.%s=%v: %w", r.Name, c, v, ErrOutOfRange)
			}
		}
	}
	return nil
}

// ValidateUsers revisa largos de columna y límites de recorte.
func ValidateUsers(u *UserTable) error {
	if u == nil || u.n == 0 {
		return ErrEmptyTable
	}
	for _, c := range u.Columns {
		col, ok := u.Data[c]
		if !ok || len(col) != u.n {
			return fmt.Errorf("%w: column %q", ErrColumnLength, c)
		}
		lo, hi := PrefMin, PrefMax
		if c == "budget" {
			lo, hi = u.budgetMin, u.budgetMax
		}
		for i, v := range col {
			if v < lo || v > hi {
				return fmt.Errorf("user %d %s=%v: %w", i, c, v, ErrOutOfRange)
			}
		}
	}
	return nil
}
