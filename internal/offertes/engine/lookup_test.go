package engine

import (
	"math"
	"testing"
)

func TestResolveFactor(t *testing.T) {
	factors := []CorrectionFactor{
		{Type: FactorAccessibility, Value: "beperkt", Factor: 1.15},
		{Type: FactorAccessibility, Value: "slecht", Factor: 1.3},
		{Type: FactorCuttingComplexity, Value: "hoog", Factor: 1.25},
	}

	tests := []struct {
		name       string
		factorType string
		value      string
		want       float64
	}{
		{"match", FactorAccessibility, "beperkt", 1.15},
		{"match is case-insensitive", FactorAccessibility, "Beperkt", 1.15},
		{"type and value must both match", FactorCuttingComplexity, "beperkt", 1.0},
		{"unknown value is neutral", FactorAccessibility, "onbereikbaar", 1.0},
		{"unknown type is neutral", "weer", "regen", 1.0},
		{"empty value is neutral", FactorAccessibility, "", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveFactor(factors, tt.factorType, tt.value); got != tt.want {
				t.Fatalf("ResolveFactor(%q, %q) = %v, want %v", tt.factorType, tt.value, got, tt.want)
			}
		})
	}

	if got := ResolveFactor(nil, FactorAccessibility, "slecht"); got != 1.0 {
		t.Fatalf("empty table should be neutral, got %v", got)
	}
}

func TestCombineFactors(t *testing.T) {
	if got := CombineFactors(); got != 1.0 {
		t.Fatalf("no factors should combine to 1.0, got %v", got)
	}
	if got := CombineFactors(1.3, 1.4); math.Abs(got-1.82) > 1e-9 {
		t.Fatalf("factors should compound to 1.82, got %v", got)
	}
	if got := CombineFactors(0.9, 1.15, 1.5); math.Abs(got-1.5525) > 1e-9 {
		t.Fatalf("factors should compound to 1.5525, got %v", got)
	}
}

func TestApplySurchargePoints_AddsPointsWithoutCompounding(t *testing.T) {
	// 20 + 15 points on 100 hours is 135, not 100 × 1.20 × 1.15 = 138.
	if got := applySurchargePoints(100, 20+15); got != 135 {
		t.Fatalf("expected 135 hours, got %v", got)
	}
	if got := applySurchargePoints(100, 0); got != 100 {
		t.Fatalf("zero points should be a no-op, got %v", got)
	}
}

func TestFindStandardHour_SubstringFirstMatchWins(t *testing.T) {
	hours := []StandardHour{
		{Scope: ScopeExcavation, Activity: "Ontgraven licht", HoursPerUnit: 0.3},
		{Scope: ScopeExcavation, Activity: "Ontgraven standaard", HoursPerUnit: 0.5},
		{Scope: ScopePaving, Activity: "Zandbed aanbrengen", HoursPerUnit: 0.1},
	}

	got, ok := FindStandardHour(hours, ScopeExcavation, "STANDAARD")
	if !ok || got.Activity != "Ontgraven standaard" {
		t.Fatalf("case-insensitive substring should match, got %+v ok=%v", got, ok)
	}

	// Ambiguous needle: the first table entry wins.
	got, ok = FindStandardHour(hours, ScopeExcavation, "ontgraven")
	if !ok || got.Activity != "Ontgraven licht" {
		t.Fatalf("expected first match to win, got %+v ok=%v", got, ok)
	}

	if _, ok := FindStandardHour(hours, ScopePaving, "ontgraven"); ok {
		t.Fatal("scope must match exactly, cross-scope match found")
	}
	if _, ok := FindStandardHour(hours, ScopeExcavation, "frezen"); ok {
		t.Fatal("unexpected match for unknown activity")
	}
	if _, ok := FindStandardHour(hours, ScopeExcavation, "  "); ok {
		t.Fatal("blank needle must not match")
	}
}

func TestFindProduct_ExactNameOnly(t *testing.T) {
	products := []Product{
		{Name: "Graszaad", SellPrice: 12},
		{Name: "Graszoden", SellPrice: 4.25},
	}

	got, ok := FindProduct(products, "graszaad")
	if !ok || got.SellPrice != 12 {
		t.Fatalf("expected case-insensitive exact match, got %+v ok=%v", got, ok)
	}
	if _, ok := FindProduct(products, "Gras"); ok {
		t.Fatal("product lookup must not match on substring")
	}
}

func TestFactorFrom(t *testing.T) {
	m := map[string]float64{"taxus": 1.4, "kapot": 0}
	if got := factorFrom(m, "taxus"); got != 1.4 {
		t.Fatalf("got %v, want 1.4", got)
	}
	if got := factorFrom(m, "beuk"); got != 1.0 {
		t.Fatalf("unknown key should be neutral, got %v", got)
	}
	if got := factorFrom(m, "kapot"); got != 1.0 {
		t.Fatalf("non-positive factor should be neutral, got %v", got)
	}
}
