package dataset

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	PrefMin   = 1.0
	PrefMax   = 10.0
	BudgetMin = 1000.0
	BudgetMax = 5000.0
)

// PrefDist describe la normal (antes de recortar) de una columna de preferencia.
type PrefDist struct {
	Feature string  `yaml:"feature"`
	Mean    float64 `yaml:"mean"`
	Std     float64 `yaml:"std"`
}

// Column devuelve el nombre de columna de la tabla de usuarios.
func (d PrefDist) Column() string { return d.Feature + "_pref" }

type BudgetDist struct {
	Mean float64 `yaml:"mean"`
	Std  float64 `yaml:"std"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// DefaultPrefDists sigue el orden de ScoreFeatures.
func DefaultPrefDists() []PrefDist {
	return []PrefDist{
		{Feature: "walkability", Mean: 7, Std: 2},
		{Feature: "safety", Mean: 8, Std: 1.5},
		{Feature: "affordability", Mean: 6, Std: 2.5},
		{Feature: "nightlife", Mean: 5, Std: 3},
		{Feature: "family_friendly", Mean: 6, Std: 2.8},
		{Feature: "transit", Mean: 6.5, Std: 2.2},
	}
}

func DefaultBudgetDist() BudgetDist {
	return BudgetDist{Mean: 2500, Std: 800, Min: BudgetMin, Max: BudgetMax}
}

// UserPrefs: seis preferencias 1-10 (orden de ScoreFeatures) + presupuesto.
type UserPrefs struct {
	Prefs  [6]float64
	Budget float64
}

// Weights normaliza las preferencias a 0-1.
func (u UserPrefs) Weights() [6]float64 {
	var w [6]float64
	for i, p := range u.Prefs {
		w[i] = p / 10
	}
	return w
}

// UserTable guarda los usuarios por columnas, igual que la tabla original.
type UserTable struct {
	Columns []string // <feature>_pref ... + "budget"
	Data    map[string][]float64

	budgetMin, budgetMax float64
	n                    int
}

func (u *UserTable) Len() int { return u.n }

func (u *UserTable) Column(name string) ([]float64, error) {
	col, ok := u.Data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, nil
}

// PrefColumns devuelve las columnas de preferencia (sin budget).
func (u *UserTable) PrefColumns() []string {
	out := make([]string, 0, len(u.Columns))
	for _, c := range u.Columns {
		if c != "budget" {
			out = append(out, c)
		}
	}
	return out
}

// Row arma el usuario i.
func (u *UserTable) Row(i int) UserPrefs {
	var up UserPrefs
	for j, c := range u.PrefColumns() {
		if j >= len(up.Prefs) {
			break
		}
		up.Prefs[j] = u.Data[c][i]
	}
	up.Budget = u.Data["budget"][i]
	return up
}

// GenerateUsers dibuja n usuarios con una fuente sembrada. Las columnas se
// generan en orden, todas de la misma fuente: misma semilla => misma tabla.
func GenerateUsers(n int, seed uint64, prefs []PrefDist, budget BudgetDist) (*UserTable, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: user count %d", ErrEmptyTable, n)
	}
	if len(prefs) != len(ScoreFeatures) {
		return nil, fmt.Errorf("%w: %d preference distributions, want %d", ErrColumnLength, len(prefs), len(ScoreFeatures))
	}
	if budget.Min > budget.Max {
		return nil, fmt.Errorf("%w: budget bounds [%v,%v]", ErrOutOfRange, budget.Min, budget.Max)
	}

	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	ut := &UserTable{
		Data:      make(map[string][]float64, len(prefs)+1),
		budgetMin: budget.Min,
		budgetMax: budget.Max,
		n:         n,
	}

	for _, d := range prefs {
		if d.Std <= 0 {
			return nil, fmt.Errorf("%w: std %v for %s", ErrOutOfRange, d.Std, d.Feature)
		}
		dist := distuv.Normal{Mu: d.Mean, Sigma: d.Std, Src: src}
		ut.Columns = append(ut.Columns, d.Column())
		ut.Data[d.Column()] = draw(dist, n, PrefMin, PrefMax)
	}

	if budget.Std <= 0 {
		return nil, fmt.Errorf("%w: budget std %v", ErrOutOfRange, budget.Std)
	}
	bd := distuv.Normal{Mu: budget.Mean, Sigma: budget.Std, Src: src}
	ut.Columns = append(ut.Columns, "budget")
	ut.Data["budget"] = draw(bd, n, budget.Min, budget.Max)

	return ut, nil
}

func draw(d distuv.Normal, n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = clip(d.Rand(), lo, hi)
	}
	return out
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Sample elige k índices distintos de [0,n) con una fuente sembrada.
func Sample(n, k int, seed uint64) ([]int, error) {
	if k <= 0 || k > n {
		return nil, fmt.Errorf("%w: sample %d of %d", ErrOutOfRange, k, n)
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	perm := r.Perm(n)
	return perm[:k], nil
}
