// Package recommend puntúa barrios contra un perfil de preferencias completo
// (estilo de vida, prioridades y presupuesto) y arma el ranking.
package recommend

/*
SCORE POR PERFIL

  w_f        = pref_f / 10                      (walkability, safety, nightlife, family, transit)
  w_afford   = max(0.3, 1 - min(budget/5000, 1)·0.7)
  cat_f      = score_f · w_f · mult_f(lifestyle)
  overall    = mean(cat_f) + Σ bonus(prioridad)  ; bonus = 10% del score del atributo
  overall    = round(min(overall, 100))

Confianza = round(min(85 + 2·mean|pref-5| + 10, 95)).
Razones: categorías >= 80, presupuesto (renta <= 1.1·budget) y estilo de vida; máximo 4.
*/

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"neighborfit/internal/dataset"
)

var ErrInvalidPreferences = errors.New("invalid preferences")

const (
	DefaultLimit = 10
	maxReasons   = 4
)

type Lifestyle string

const (
	YoungProfessional Lifestyle = "young-professional"
	Family            Lifestyle = "family"
	Student           Lifestyle = "student"
	Retiree           Lifestyle = "retiree"
	RemoteWorker      Lifestyle = "remote-worker"
)

// Prioridades reconocidas y el atributo que bonifican.
var priorityFeature = map[string]string{
	"Low cost of living":    "affordability",
	"Walkable amenities":    "walkability",
	"Safe neighborhood":     "safety",
	"Good schools":          "family_friendly",
	"Nightlife & dining":    "nightlife",
	"Public transportation": "transit",
}

var categoryLabel = map[string]string{
	"walkability":     "walkability",
	"safety":          "safety",
	"affordability":   "affordability",
	"nightlife":       "nightlife and dining",
	"family_friendly": "family-friendly amenities",
	"transit":         "public transportation",
}

type Preferences struct {
	Budget         float64   `json:"budget" yaml:"budget"`
	Walkability    float64   `json:"walkability" yaml:"walkability"`
	Safety         float64   `json:"safety" yaml:"safety"`
	Nightlife      float64   `json:"nightlife" yaml:"nightlife"`
	FamilyFriendly float64   `json:"family_friendly" yaml:"family_friendly"`
	Transit        float64   `json:"transit" yaml:"transit"`
	Lifestyle      Lifestyle `json:"lifestyle" yaml:"lifestyle"`
	Priorities     []string  `json:"priorities" yaml:"priorities"`
}

func (p Preferences) Validate() error {
	if math.IsNaN(p.Budget) || math.IsInf(p.Budget, 0) || p.Budget <= 0 {
		return fmt.Errorf("%w: budget must be a positive number, got %v", ErrInvalidPreferences, p.Budget)
	}
	for name, v := range map[string]float64{
		"walkability":     p.Walkability,
		"safety":          p.Safety,
		"nightlife":       p.Nightlife,
		"family_friendly": p.FamilyFriendly,
		"transit":         p.Transit,
	} {
		if math.IsNaN(v) || v < 0 || v > 10 {
			return fmt.Errorf("%w: %s=%v outside [0,10]", ErrInvalidPreferences, name, v)
		}
	}
	return nil
}

// Multipliers en orden de dataset.ScoreFeatures.
type Multipliers [6]float64

// Known indica si l tiene multiplicadores propios.
func (l Lifestyle) Known() bool {
	switch l {
	case YoungProfessional, Family, Student, Retiree, RemoteWorker:
		return true
	}
	return false
}

func LifestyleMultipliers(l Lifestyle) Multipliers {
	m := Multipliers{1, 1, 1, 1, 1, 1}
	switch l {
	case YoungProfessional:
		m[3], m[5], m[4] = 1.2, 1.1, 0.8
	case Family:
		m[4], m[1], m[3] = 1.3, 1.2, 0.7
	case Student:
		m[2], m[5], m[3] = 1.4, 1.2, 1.1
	case Retiree:
		m[1], m[0], m[3] = 1.3, 1.1, 0.6
	case RemoteWorker:
		m[2], m[0] = 1.1, 1.2
	}
	return m
}

// AffordabilityWeight: a mayor presupuesto, menos peso a la asequibilidad.
func AffordabilityWeight(budget float64) float64 {
	normalized := math.Min(budget/5000, 1)
	return math.Max(0.3, 1-normalized*0.7)
}

func (p Preferences) weights() [6]float64 {
	return [6]float64{
		p.Walkability / 10,
		p.Safety / 10,
		AffordabilityWeight(p.Budget),
		p.Nightlife / 10,
		p.FamilyFriendly / 10,
		p.Transit / 10,
	}
}

type Scores struct {
	Overall    int
	Categories map[string]int
	raw        [6]float64
}

type Match struct {
	Neighborhood dataset.Neighborhood
	Overall      int
	Categories   map[string]int
	Reasons      []string
	Confidence   int
}

// Score calcula el puntaje global y por categoría.
func Score(n dataset.Neighborhood, p Preferences) Scores {
	w := p.weights()
	m := LifestyleMultipliers(p.Lifestyle)
	vec := n.Scores.Vector()

	var s Scores
	s.Categories = make(map[string]int, len(vec))
	var sum float64
	for i, f := range dataset.ScoreFeatures {
		s.raw[i] = vec[i] * w[i] * m[i]
		s.Categories[f] = int(math.Round(s.raw[i]))
		sum += s.raw[i]
	}
	overall := sum/float64(len(vec)) + PriorityBonus(n, p.Priorities)
	s.Overall = int(math.Round(math.Min(overall, 100)))
	return s
}

// PriorityBonus suma 10% del atributo por cada prioridad reconocida.
func PriorityBonus(n dataset.Neighborhood, priorities []string) float64 {
	var bonus float64
	for _, pr := range priorities {
		f, ok := priorityFeature[pr]
		if !ok {
			continue
		}
		v, _ := n.Value(f)
		bonus += v * 0.1
	}
	return bonus
}

func Reasons(n dataset.Neighborhood, p Preferences, s Scores) []string {
	var out []string
	for _, f := range dataset.ScoreFeatures {
		if c := s.Categories[f]; c >= 80 {
			out = append(out, fmt.Sprintf("Excellent %s (%d%% match)", categoryLabel[f], c))
		}
	}
	if n.AverageRent <= p.Budget*1.1 {
		out = append(out, fmt.Sprintf("Within your budget range ($%.0f/month)", n.AverageRent))
	}
	if p.Lifestyle == YoungProfessional && n.Scores.Nightlife >= 80 {
		out = append(out, "Perfect for young professionals with vibrant social scene")
	}
	if p.Lifestyle == Family && n.Scores.FamilyFriendly >= 80 {
		out = append(out, "Excellent family-friendly environment with good schools and parks")
	}
	if len(out) > maxReasons {
		out = out[:maxReasons]
	}
	return out
}

// Confidence depende solo de qué tan marcadas son las preferencias.
func Confidence(p Preferences) int {
	vals := []float64{p.Walkability, p.Safety, p.Nightlife, p.FamilyFriendly, p.Transit}
	var strength float64
	for _, v := range vals {
		strength += math.Abs(v - 5)
	}
	strength /= float64(len(vals))
	c := 85 + strength*2 + 10
	return int(math.Min(math.Round(c), 95))
}

// Rank puntúa todos los barrios y devuelve los mejores limit (orden estable).
func Rank(t *dataset.Table, p Preferences, limit int) ([]Match, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if t == nil || t.Len() == 0 {
		return nil, fmt.Errorf("rank: %w", dataset.ErrEmptyTable)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	conf := Confidence(p)
	out := make([]Match, 0, t.Len())
	for _, n := range t.Rows {
		s := Score(n, p)
		out = append(out, Match{
			Neighborhood: n,
			Overall:      s.Overall,
			Categories:   s.Categories,
			Reasons:      Reasons(n, p, s),
			Confidence:   conf,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Overall > out[j].Overall })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
