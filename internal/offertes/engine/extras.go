package engine

// ScopeGeneral marks quote-wide lines that belong to no single work scope.
const ScopeGeneral = "algemeen"

// PreparationLine is the fixed site preparation and cleanup overhead every
// quote carries. It is created outside scope dispatch so it appears exactly
// once regardless of how many scopes were selected.
func (e *Engine) PreparationLine(settings Settings) LineItem {
	return laborLine(ScopeGeneral, "Voorbereiding en opruimen", e.cfg.PreparationHours, settings)
}

// WarrantyLine is the optional one-year maintenance warranty at a fixed
// price, offered on acceptance-ready quotes.
func (e *Engine) WarrantyLine() LineItem {
	return pricedLine(ScopeGeneral, "Garantiepakket onderhoud (1 jaar)", "stuk", 1, e.cfg.WarrantyPrice)
}
