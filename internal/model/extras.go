package model

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ExtraLineItem is a miscellaneous priced item outside the ingredient
// catalog (packaging, decorations, and the like).
type ExtraLineItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	TotalCost float64 `json:"total_cost"`
}

// ExtraLedger stores extra line items keyed by id. The map is unordered;
// aggregate cost is order-independent and display code sorts as needed.
type ExtraLedger map[string]ExtraLineItem

// NewExtraLedger returns an empty ledger.
func NewExtraLedger() ExtraLedger {
	return ExtraLedger{}
}

func validateExtraItem(name string, unitPrice float64, quantity int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return Validationf("item name is required")
	}
	if _, err := strconv.ParseFloat(name, 64); err == nil {
		return Validationf("item name must not be purely numeric")
	}
	if unitPrice <= 0 {
		return Validationf("unit price must be positive")
	}
	if quantity < 1 {
		return Validationf("quantity must be at least 1")
	}
	return nil
}

// Add validates and stores a new item under a fresh id.
func (e ExtraLedger) Add(name string, unitPrice float64, quantity int) (ExtraLineItem, error) {
	if err := validateExtraItem(name, unitPrice, quantity); err != nil {
		return ExtraLineItem{}, err
	}
	item := ExtraLineItem{
		ID:        uuid.New().String()[:8],
		Name:      strings.TrimSpace(name),
		UnitPrice: unitPrice,
		Quantity:  quantity,
		TotalCost: unitPrice * float64(quantity),
	}
	e[item.ID] = item
	return item, nil
}

// Edit replaces the fields of an existing item and recomputes its total.
// Returns ErrNotFound if the id does not exist.
func (e ExtraLedger) Edit(id, name string, unitPrice float64, quantity int) error {
	item, ok := e[id]
	if !ok {
		return ErrNotFound
	}
	if err := validateExtraItem(name, unitPrice, quantity); err != nil {
		return err
	}
	item.Name = strings.TrimSpace(name)
	item.UnitPrice = unitPrice
	item.Quantity = quantity
	item.TotalCost = unitPrice * float64(quantity)
	e[id] = item
	return nil
}

// Remove deletes an item. Unknown ids are a no-op.
func (e ExtraLedger) Remove(id string) {
	delete(e, id)
}

// TotalCost sums the total cost of all items.
func (e ExtraLedger) TotalCost() float64 {
	var total float64
	for _, item := range e {
		total += item.TotalCost
	}
	return total
}

// Clone returns an independent copy.
func (e ExtraLedger) Clone() ExtraLedger {
	out := make(ExtraLedger, len(e))
	for id, item := range e {
		out[id] = item
	}
	return out
}
