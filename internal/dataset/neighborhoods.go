// Package dataset contiene la tabla fija de barrios y el generador de
// usuarios sintéticos sobre los que corre el análisis.
package dataset

import (
	"errors"
	"fmt"
)

// Columnas de puntaje (0-100) usadas por clustering y matching, en orden.
var ScoreFeatures = []string{
	"walkability",
	"safety",
	"affordability",
	"nightlife",
	"family_friendly",
	"transit",
}

// Columnas numéricas para la matriz de correlación.
var NumericColumns = []string{
	"walkability",
	"safety",
	"affordability",
	"nightlife",
	"family_friendly",
	"transit",
	"median_age",
	"median_income",
	"average_rent",
}

var ErrUnknownColumn = errors.New("unknown column")

// Scores agrupa los seis atributos 0-100 de un barrio.
type Scores struct {
	Walkability    float64 `json:"walkability"`
	Safety         float64 `json:"safety"`
	Affordability  float64 `json:"affordability"`
	Nightlife      float64 `json:"nightlife"`
	FamilyFriendly float64 `json:"family_friendly"`
	Transit        float64 `json:"transit"`
}

// Vector devuelve los puntajes en el orden de ScoreFeatures.
func (s Scores) Vector() []float64 {
	return []float64{s.Walkability, s.Safety, s.Affordability, s.Nightlife, s.FamilyFriendly, s.Transit}
}

type Neighborhood struct {
	Name         string   `json:"name"`
	City         string   `json:"city"`
	Description  string   `json:"description"`
	Scores       Scores   `json:"scores"`
	MedianAge    float64  `json:"median_age"`
	MedianIncome float64  `json:"median_income"`
	AverageRent  float64  `json:"average_rent"`
	Population   float64  `json:"population"`
	KeyFeatures  []string `json:"key_features"`

	// -1 hasta que el clustering asigna etiquetas.
	Cluster int `json:"cluster"`
}

// Value devuelve el valor de una columna por nombre.
func (n Neighborhood) Value(column string) (float64, error) {
	switch column {
	case "walkability":
		return n.Scores.Walkability, nil
	case "safety":
		return n.Scores.Safety, nil
	case "affordability":
		return n.Scores.Affordability, nil
	case "nightlife":
		return n.Scores.Nightlife, nil
	case "family_friendly":
		return n.Scores.FamilyFriendly, nil
	case "transit":
		return n.Scores.Transit, nil
	case "median_age":
		return n.MedianAge, nil
	case "median_income":
		return n.MedianIncome, nil
	case "average_rent":
		return n.AverageRent, nil
	case "population":
		return n.Population, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
}

type Table struct {
	Rows []Neighborhood
}

func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) Names() []string {
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Name
	}
	return out
}

// Column devuelve una copia de la columna pedida.
func (t *Table) Column(name string) ([]float64, error) {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		v, err := r.Value(name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Columns arma una matriz fila-mayor (filas = barrios) con las columnas pedidas.
func (t *Table) Columns(names []string) ([][]float64, error) {
	out := make([][]float64, len(t.Rows))
	for i, r := range t.Rows {
		row := make([]float64, len(names))
		for j, c := range names {
			v, err := r.Value(c)
			if err != nil {
				return nil, err
			}
			row[j] = v
		}
		out[i] = row
	}
	return out, nil
}

// SetClusters agrega la columna cluster. Es la única mutación de la tabla.
func (t *Table) SetClusters(labels []int) error {
	if len(labels) != len(t.Rows) {
		return fmt.Errorf("%w: %d labels for %d rows", ErrColumnLength, len(labels), len(t.Rows))
	}
	for i := range t.Rows {
		t.Rows[i].Cluster = labels[i]
	}
	return nil
}

// ByName busca un barrio (sensible a mayúsculas).
func (t *Table) ByName(name string) (Neighborhood, bool) {
	for _, r := range t.Rows {
		if r.Name == name {
			return r, true
		}
	}
	return Neighborhood{}, false
}

// LoadNeighborhoods devuelve la tabla fija de 8 barrios de Seattle.
func LoadNeighborhoods() *Table {
	const city = "Seattle, WA"
	rows := []Neighborhood{
		{
			Name:        "Capitol Hill",
			Description: "Vibrant arts district with excellent nightlife, walkable streets, and a strong coffee culture.",
			Scores:      Scores{95, 75, 60, 90, 65, 85},
			MedianAge:   29, MedianIncome: 75000, AverageRent: 2800, Population: 28000,
			KeyFeatures: []string{"Vibrant nightlife", "Walkable streets", "Arts scene", "Coffee culture"},
		},
		{
			Name:        "Fremont",
			Description: "Quirky neighborhood known for its local character, Sunday market, and family-friendly atmosphere.",
			Scores:      Scores{85, 85, 70, 70, 80, 75},
			MedianAge:   35, MedianIncome: 82000, AverageRent: 2400, Population: 15000,
			KeyFeatures: []string{"Quirky character", "Local businesses", "Family-friendly", "Sunday market"},
		},
		{
			Name:        "Ballard",
			Description: "Historic maritime neighborhood with a thriving brewery scene and waterfront access.",
			Scores:      Scores{80, 80, 65, 85, 75, 70},
			MedianAge:   32, MedianIncome: 78000, AverageRent: 2600, Population: 22000,
			KeyFeatures: []string{"Historic charm", "Brewery scene", "Waterfront", "Nordic heritage"},
		},
		{
			Name:        "Queen Anne",
			Description: "Upscale neighborhood with stunning city views, close to Seattle Center and cultural attractions.",
			Scores:      Scores{75, 90, 55, 60, 85, 80},
			MedianAge:   38, MedianIncome: 95000, AverageRent: 3200, Population: 18000,
			KeyFeatures: []string{"Upscale living", "Seattle Center proximity", "Great views", "Low crime"},
		},
		{
			Name:        "Georgetown",
			Description: "Industrial-chic neighborhood with affordable housing, art studios, and an emerging food scene.",
			Scores:      Scores{65, 70, 85, 75, 60, 65},
			MedianAge:   31, MedianIncome: 65000, AverageRent: 1900, Population: 8000,
			KeyFeatures: []string{"Industrial charm", "Affordable", "Art studios", "Emerging area"},
		},
		{
			Name:        "Wallingford",
			Description: "Residential neighborhood with tree-lined streets, local shops, and strong community feel.",
			Scores:      Scores{78, 88, 68, 65, 90, 72},
			MedianAge:   36, MedianIncome: 85000, AverageRent: 2500, Population: 19000,
			KeyFeatures: []string{"Tree-lined streets", "Community feel", "Good schools", "Local shops"},
		},
		{
			Name:        "Belltown",
			Description: "Dense downtown neighborhood with high-rise living, late-night venues, and fast transit.",
			Scores:      Scores{88, 72, 45, 95, 55, 90},
			MedianAge:   33, MedianIncome: 88000, AverageRent: 3000, Population: 12000,
			KeyFeatures: []string{"Downtown access", "Late-night venues", "High-rise living", "Waterfront"},
		},
		{
			Name:        "Green Lake",
			Description: "Quiet residential area around the lake loop with parks, trails, and top family ratings.",
			Scores:      Scores{82, 92, 75, 55, 95, 68},
			MedianAge:   37, MedianIncome: 79000, AverageRent: 2300, Population: 16000,
			KeyFeatures: []string{"Lake loop trail", "Family-friendly", "Outdoor recreation", "Quiet streets"},
		},
	}
	for i := range rows {
		rows[i].City = city
		rows[i].Cluster = -1
	}
	return &Table{Rows: rows}
}
