package engine

import "strings"

// ResolveFactor finds the multiplier for a factor type/value pair. Unknown
// pairs resolve to the neutral 1.0 so an incomplete correction table can
// never fail or skew a calculation.
func ResolveFactor(factors []CorrectionFactor, factorType, value string) float64 {
	if value == "" {
		return 1.0
	}
	for _, f := range factors {
		if strings.EqualFold(f.Type, factorType) && strings.EqualFold(f.Value, value) {
			return f.Factor
		}
	}
	return 1.0
}

// CombineFactors multiplies a set of correction factors into one. Factors
// compound; use surcharge points for additive adjustments.
func CombineFactors(factors ...float64) float64 {
	combined := 1.0
	for _, f := range factors {
		combined *= f
	}
	return combined
}

// applySurchargePoints applies additive percentage points on top of already
// factor-corrected hours: hours × (1 + points/100). Two 20-point surcharges
// add 40%, they do not compound.
func applySurchargePoints(hours float64, points float64) float64 {
	if points <= 0 {
		return hours
	}
	return hours * (1 + points/100)
}

// factorFrom resolves a multiplier from a config map, neutral on a miss.
func factorFrom(m map[string]float64, key string) float64 {
	if f, ok := m[key]; ok && f > 0 {
		return f
	}
	return 1.0
}

// FindStandardHour matches activity by case-insensitive substring, first
// match wins in table order. Seed data relies on this: "ontgraven" matches
// "Ontgraven standaard". Scope must match exactly; an empty activity matches
// nothing.
func FindStandardHour(hours []StandardHour, scope, activity string) (StandardHour, bool) {
	needle := strings.ToLower(strings.TrimSpace(activity))
	if needle == "" {
		return StandardHour{}, false
	}
	for _, h := range hours {
		if h.Scope != scope {
			continue
		}
		if strings.Contains(strings.ToLower(h.Activity), needle) {
			return h, true
		}
	}
	return StandardHour{}, false
}

// FindProduct matches the product name case-insensitively and exactly.
// Products are referenced by their configured names, not fuzzy-searched.
func FindProduct(products []Product, name string) (Product, bool) {
	for _, p := range products {
		if strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name)) {
			return p, true
		}
	}
	return Product{}, false
}
