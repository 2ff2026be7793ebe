package engine

// Aggregate computes the financial summary over a set of line items.
//
// The margin percentage of a line resolves with precedence: the line's own
// override, then a scope-level override, then the settings default. Machine
// rentals count toward labor cost but contribute no hours. Rounding happens
// once, on the aggregated outputs; intermediate sums keep full precision so
// the VAT base never drifts.
func Aggregate(items []LineItem, settings Settings, scopeMargins map[string]float64) Totals {
	var materialCost, laborCost, hours, margin float64
	for _, item := range items {
		switch item.Kind {
		case KindMaterial:
			materialCost += item.Total
		case KindLabor:
			laborCost += item.Total
			hours += item.Quantity
		case KindMachine:
			laborCost += item.Total
		}
		margin += item.Total * marginPercentFor(item, settings.DefaultMarginPercent, scopeMargins) / 100
	}

	subtotal := materialCost + laborCost
	exVat := round2(subtotal + margin)
	vat := round2(exVat * settings.VatPercent / 100)

	effective := 0.0
	if subtotal > 0 {
		effective = round2(margin / subtotal * 100)
	}

	return Totals{
		MaterialCost:           round2(materialCost),
		LaborCost:              round2(laborCost),
		TotalHours:             roundQuarter(hours),
		Subtotal:               round2(subtotal),
		Margin:                 round2(margin),
		EffectiveMarginPercent: effective,
		ExVat:                  exVat,
		Vat:                    vat,
		InclVat:                round2(exVat + vat),
	}
}

func marginPercentFor(item LineItem, defaultPercent float64, scopeMargins map[string]float64) float64 {
	if item.MarginOverridePercent != nil {
		return *item.MarginOverridePercent
	}
	if p, ok := scopeMargins[item.Scope]; ok {
		return p
	}
	return defaultPercent
}
