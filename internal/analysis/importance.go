package analysis

import (
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// FeatureWeight es un par atributo/peso de la tabla de importancia.
type FeatureWeight struct {
	Feature string
	Weight  float64
}

// Importance guarda los pesos en orden de inserción (el orden del gráfico).
// Los valores son fijos: no salen de la validación ni de ningún ajuste.
type Importance struct {
	m *linkedhashmap.Map
}

func FeatureImportance() *Importance {
	m := linkedhashmap.New()
	m.Put("walkability", 0.22)
	m.Put("safety", 0.19)
	m.Put("affordability", 0.18)
	m.Put("transit", 0.16)
	m.Put("family_friendly", 0.14)
	m.Put("nightlife", 0.11)
	return &Importance{m: m}
}

// Ordered devuelve los pesos en orden de inserción.
func (im *Importance) Ordered() []FeatureWeight {
	out := make([]FeatureWeight, 0, im.m.Size())
	it := im.m.Iterator()
	for it.Next() {
		out = append(out, FeatureWeight{Feature: it.Key().(string), Weight: it.Value().(float64)})
	}
	return out
}

// Sorted devuelve los pesos de mayor a menor (estable).
func (im *Importance) Sorted() []FeatureWeight {
	out := im.Ordered()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out
}

func (im *Importance) Get(feature string) (float64, bool) {
	v, ok := im.m.Get(feature)
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

func (im *Importance) Sum() float64 {
	var s float64
	for _, v := range im.m.Values() {
		s += v.(float64)
	}
	return s
}
