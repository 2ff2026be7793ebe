package engine

import "github.com/google/uuid"

// laborLine builds a labor row from corrected hours. Hours are snapped to
// quarter-hour steps before pricing so the total follows the visible quantity.
func laborLine(scope, description string, hours float64, settings Settings) LineItem {
	qty := roundQuarter(hours)
	return LineItem{
		ID:          uuid.New(),
		Scope:       scope,
		Description: description,
		Unit:        "uur",
		Quantity:    qty,
		UnitPrice:   round2(settings.HourlyRate),
		Total:       round2(qty * settings.HourlyRate),
		Kind:        KindLabor,
	}
}

// materialLine builds a material row. The product's wastage percentage
// inflates the consumed quantity before rounding and pricing.
func materialLine(scope string, product Product, quantity float64) LineItem {
	qty := round2(quantity * (1 + product.WastagePercent/100))
	return LineItem{
		ID:          uuid.New(),
		Scope:       scope,
		Description: product.Name,
		Unit:        product.Unit,
		Quantity:    qty,
		UnitPrice:   round2(product.SellPrice),
		Total:       round2(qty * product.SellPrice),
		Kind:        KindMaterial,
	}
}

// pricedLine builds a material row priced outside the product catalog, used
// for foundation layers and package kits whose prices live in the engine
// configuration.
func pricedLine(scope, description, unit string, quantity, unitPrice float64) LineItem {
	qty := round2(quantity)
	return LineItem{
		ID:          uuid.New(),
		Scope:       scope,
		Description: description,
		Unit:        unit,
		Quantity:    qty,
		UnitPrice:   round2(unitPrice),
		Total:       round2(qty * unitPrice),
		Kind:        KindMaterial,
	}
}

// machineLine builds an equipment-rental row in whole days. Wastage does not
// apply to rentals.
func machineLine(scope string, product Product, days float64) LineItem {
	qty := round2(days)
	return LineItem{
		ID:          uuid.New(),
		Scope:       scope,
		Description: product.Name + " (huur)",
		Unit:        product.Unit,
		Quantity:    qty,
		UnitPrice:   round2(product.SellPrice),
		Total:       round2(qty * product.SellPrice),
		Kind:        KindMachine,
	}
}

// withMargin stamps a margin override on every line in place and returns the
// slice for chaining.
func withMargin(items []LineItem, percent float64) []LineItem {
	for i := range items {
		p := percent
		items[i].MarginOverridePercent = &p
	}
	return items
}
