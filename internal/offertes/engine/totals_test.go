package engine

import "testing"

func ptr(v float64) *float64 { return &v }

func TestAggregate_MarginPrecedenceAndCostBuckets(t *testing.T) {
	settings := Settings{HourlyRate: 60, DefaultMarginPercent: 20, VatPercent: 21}
	items := []LineItem{
		{Scope: "a", Kind: KindLabor, Quantity: 10, UnitPrice: 60, Total: 600},
		{Scope: "a", Kind: KindMaterial, Quantity: 5, UnitPrice: 50, Total: 250},
		{Scope: "b", Kind: KindMachine, Quantity: 1, UnitPrice: 150, Total: 150},
		{Scope: "b", Kind: KindLabor, Quantity: 2, UnitPrice: 60, Total: 120, MarginOverridePercent: ptr(70)},
	}

	totals := Aggregate(items, settings, map[string]float64{"a": 10})

	if totals.MaterialCost != 250 {
		t.Fatalf("materialCost = %v, want 250", totals.MaterialCost)
	}
	// Machine rental counts as labor cost.
	if totals.LaborCost != 870 {
		t.Fatalf("laborCost = %v, want 870", totals.LaborCost)
	}
	// But contributes no hours.
	if totals.TotalHours != 12 {
		t.Fatalf("totalHours = %v, want 12", totals.TotalHours)
	}
	if totals.Subtotal != 1120 {
		t.Fatalf("subtotal = %v, want 1120", totals.Subtotal)
	}
	// Scope a at 10%: 60 + 25. Scope b machine falls back to the default
	// 20%: 30. The line override wins over both: 120 × 70% = 84.
	if totals.Margin != 199 {
		t.Fatalf("margin = %v, want 199", totals.Margin)
	}
	if totals.EffectiveMarginPercent != 17.77 {
		t.Fatalf("effectiveMarginPercent = %v, want 17.77", totals.EffectiveMarginPercent)
	}
	if totals.ExVat != 1319 {
		t.Fatalf("exVat = %v, want 1319", totals.ExVat)
	}
	if totals.Vat != 276.99 {
		t.Fatalf("vat = %v, want 276.99", totals.Vat)
	}
	if totals.InclVat != 1595.99 {
		t.Fatalf("inclVat = %v, want 1595.99", totals.InclVat)
	}
}

func TestAggregate_VatInvariants(t *testing.T) {
	settings := Settings{DefaultMarginPercent: 15, VatPercent: 21}
	items := []LineItem{
		{Scope: "x", Kind: KindLabor, Quantity: 7.25, UnitPrice: 62.5, Total: 453.13},
		{Scope: "x", Kind: KindMaterial, Quantity: 3.2, UnitPrice: 17.35, Total: 55.52},
	}

	totals := Aggregate(items, settings, nil)

	if totals.ExVat != round2(totals.Subtotal+totals.Margin) {
		t.Fatalf("exVat %v != subtotal %v + margin %v", totals.ExVat, totals.Subtotal, totals.Margin)
	}
	if totals.Vat != round2(totals.ExVat*21/100) {
		t.Fatalf("vat %v != 21%% of exVat %v", totals.Vat, totals.ExVat)
	}
	if totals.InclVat != round2(totals.ExVat+totals.Vat) {
		t.Fatalf("inclVat %v != exVat %v + vat %v", totals.InclVat, totals.ExVat, totals.Vat)
	}
	if totals.Subtotal != round2(totals.MaterialCost+totals.LaborCost) {
		t.Fatalf("subtotal %v != material %v + labor %v", totals.Subtotal, totals.MaterialCost, totals.LaborCost)
	}
}

func TestAggregate_EmptyQuote(t *testing.T) {
	totals := Aggregate(nil, Settings{DefaultMarginPercent: 20, VatPercent: 21}, nil)

	if totals != (Totals{}) {
		t.Fatalf("empty quote should aggregate to zero totals, got %+v", totals)
	}
}

func TestAggregate_EffectiveMarginIsRatioOfSums(t *testing.T) {
	settings := Settings{DefaultMarginPercent: 0, VatPercent: 21}
	items := []LineItem{
		{Scope: "x", Kind: KindMaterial, Total: 100, MarginOverridePercent: ptr(70)},
		{Scope: "x", Kind: KindMaterial, Total: 300},
	}

	totals := Aggregate(items, settings, nil)

	// 70 over a quarter of the subtotal: 70 / 400 = 17.5%, not the average
	// of the two line percentages.
	if totals.Margin != 70 {
		t.Fatalf("margin = %v, want 70", totals.Margin)
	}
	if totals.EffectiveMarginPercent != 17.5 {
		t.Fatalf("effectiveMarginPercent = %v, want 17.5", totals.EffectiveMarginPercent)
	}
}

func TestPreparationAndWarrantyLines(t *testing.T) {
	e := testEngine()
	settings := Settings{HourlyRate: 60}

	prep := e.PreparationLine(settings)
	if prep.Kind != KindLabor || prep.Scope != ScopeGeneral {
		t.Fatalf("preparation line = %+v", prep)
	}
	if prep.Quantity != 2 || prep.Total != 120 {
		t.Fatalf("preparation = %v uur = %v, want 2 uur = 120", prep.Quantity, prep.Total)
	}
	if prep.Description != "Voorbereiding en opruimen" {
		t.Fatalf("preparation description = %q", prep.Description)
	}

	warranty := e.WarrantyLine()
	if warranty.Kind != KindMaterial || warranty.Quantity != 1 || warranty.Total != 95 {
		t.Fatalf("warranty line = %+v, want 1 stuk = 95", warranty)
	}
}
