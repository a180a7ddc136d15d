package model

import (
	"fmt"
	"sort"
)

// LineItem is one row of the cost breakdown.
type LineItem struct {
	Label           string  `json:"label"`
	QuantityDisplay string  `json:"quantity_display"`
	Cost            float64 `json:"cost"`
}

// Summary is the full recomputed cost picture: the line items in display
// order, their sum, and the suggested sale price derived from the profit
// margin. An empty Summary (no items, zero total) is a valid "no data yet"
// state.
type Summary struct {
	Items          []LineItem `json:"items"`
	GrandTotal     float64    `json:"grand_total"`
	ProfitMargin   float64    `json:"profit_margin"`
	SuggestedPrice float64    `json:"suggested_price"`
}

// LineCost computes the proportional cost of a chosen quantity of one
// ingredient: quantity / referenceQty * unitPrice.
func LineCost(def IngredientDefinition, quantity float64) float64 {
	return quantity / def.ReferenceQty * def.UnitPrice
}

// ComputeSummary recomputes the breakdown from current state. It is a pure
// read: selected ingredients appear first in catalog order (built-ins, then
// customs in insertion order), followed by a single aggregate fuel line when
// any fuel cost accrued, followed by the extra items sorted by name.
// Selection entries whose id no longer resolves in the catalog are skipped.
func ComputeSummary(cat Catalog, sel Selection, fuel FuelLedger, extras ExtraLedger, profitMargin float64) Summary {
	sum := Summary{ProfitMargin: profitMargin}

	appendIngredient := func(def IngredientDefinition) {
		qty, ok := sel[def.ID]
		if !ok || qty <= 0 {
			return
		}
		sum.Items = append(sum.Items, LineItem{
			Label:           def.Name,
			QuantityDisplay: fmt.Sprintf("%g %s", qty, def.Unit),
			Cost:            LineCost(def, qty),
		})
	}
	for _, def := range cat.BuiltIns {
		appendIngredient(def)
	}
	for _, def := range cat.Customs {
		appendIngredient(def)
	}

	if fuelCost := fuel.TotalCost(); fuelCost > 0 {
		sum.Items = append(sum.Items, LineItem{
			Label:           "Gas (oven)",
			QuantityDisplay: fmt.Sprintf("%d use(s)", len(fuel)),
			Cost:            fuelCost,
		})
	}

	extraItems := make([]ExtraLineItem, 0, len(extras))
	for _, item := range extras {
		extraItems = append(extraItems, item)
	}
	sort.Slice(extraItems, func(i, j int) bool {
		if extraItems[i].Name != extraItems[j].Name {
			return extraItems[i].Name < extraItems[j].Name
		}
		return extraItems[i].ID < extraItems[j].ID
	})
	for _, item := range extraItems {
		sum.Items = append(sum.Items, LineItem{
			Label:           item.Name,
			QuantityDisplay: fmt.Sprintf("x%d", item.Quantity),
			Cost:            item.TotalCost,
		})
	}

	for _, item := range sum.Items {
		sum.GrandTotal += item.Cost
	}
	sum.SuggestedPrice = sum.GrandTotal * profitMargin
	return sum
}

// Percentage returns the share of the grand total contributed by the item
// at index i, in [0,100]. Returns 0 when the grand total is zero; with no
// line items there is no distribution to render.
func (s Summary) Percentage(i int) float64 {
	if s.GrandTotal == 0 || i < 0 || i >= len(s.Items) {
		return 0
	}
	return s.Items[i].Cost / s.GrandTotal * 100
}
