package model

import "math"

// Selection maps ingredient ids to chosen quantities. Absence from the map
// means "not selected": membership is determined entirely by quantity sign,
// there is no separate selected flag.
type Selection map[string]float64

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{}
}

// SetQuantity upserts the entry when quantity is a positive number and
// removes it otherwise. Both unchecking an ingredient and typing a
// non-positive quantity flow through this single rule.
func (s Selection) SetQuantity(id string, quantity float64) {
	if quantity > 0 && !math.IsNaN(quantity) && !math.IsInf(quantity, 0) {
		s[id] = quantity
		return
	}
	delete(s, id)
}

// Clear empties the selection.
func (s Selection) Clear() {
	for id := range s {
		delete(s, id)
	}
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for id, qty := range s {
		out[id] = qty
	}
	return out
}
