package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Search devuelve los barrios cuyo nombre, descripción o key features contienen query
// (sin distinguir mayúsculas). Query vacía devuelve todos, en orden de tabla.
func Search(t *Table, query string) []Neighborhood {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Neighborhood, 0, t.Len())
	for _, n := range t.Rows {
		if q == "" || matches(n, q) {
			out = append(out, n)
		}
	}
	return out
}

func matches(n Neighborhood, q string) bool {
	if strings.Contains(strings.ToLower(n.Name), q) ||
		strings.Contains(strings.ToLower(n.Description), q) {
		return true
	}
	for _, f := range n.KeyFeatures {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// ascendingColumns se ordenan de menor a mayor (la renta más barata primero).
var ascendingColumns = map[string]bool{"average_rent": true}

// SortBy ordena en el lugar: "name" ascendente, "rent"/"average_rent"
// ascendente, el resto de columnas numéricas descendente (empates por nombre).
func SortBy(rows []Neighborhood, key string) error {
	if key == "" || key == "name" {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
		return nil
	}
	if key == "rent" {
		key = "average_rent"
	}
	if len(rows) > 0 {
		if _, err := rows[0].Value(key); err != nil {
			return fmt.Errorf("sort: %w", err)
		}
	}
	asc := ascendingColumns[key]
	sort.SliceStable(rows, func(i, j int) bool {
		a, _ := rows[i].Value(key)
		b, _ := rows[j].Value(key)
		if a != b {
			return (a < b) == asc
		}
		return rows[i].Name < rows[j].Name
	})
	return nil
}
