package engine

import (
	"encoding/json"
	"sort"
)

// Engine dispatches scope payloads to their calculators. Construct one with
// New and share it freely; it holds only immutable configuration.
type Engine struct {
	cfg         Config
	calculators map[registryKey]calculatorFunc
}

type registryKey struct {
	quoteType QuoteType
	scopeID   string
}

// calculatorFunc is the type-erased registry entry: raw scope JSON in, line
// items out.
type calculatorFunc func(raw json.RawMessage, ctx *Context) []LineItem

// register binds a typed calculator to a (quote type, scope id) pair. The
// wrapper decodes the raw payload; malformed payloads yield no lines, the
// same as absent ones.
func register[T any](e *Engine, quoteType QuoteType, scopeID string, calc func(T, *Context) []LineItem) {
	e.calculators[registryKey{quoteType, scopeID}] = func(raw json.RawMessage, ctx *Context) []LineItem {
		var data T
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil
		}
		return calc(data, ctx)
	}
}

// New builds an engine with every scope calculator registered.
func New(cfg Config) *Engine {
	e := &Engine{cfg: cfg, calculators: make(map[registryKey]calculatorFunc)}

	register(e, QuoteTypeConstruction, ScopeExcavation, e.calcExcavation)
	register(e, QuoteTypeConstruction, ScopePaving, e.calcPaving)
	register(e, QuoteTypeConstruction, ScopeLawnInstall, e.calcLawnInstall)
	register(e, QuoteTypeConstruction, ScopePlanting, e.calcPlanting)
	register(e, QuoteTypeConstruction, ScopeHedgeInstall, e.calcHedgeInstall)
	register(e, QuoteTypeConstruction, ScopeFencing, e.calcFencing)
	register(e, QuoteTypeConstruction, ScopePond, e.calcPond)
	register(e, QuoteTypeConstruction, ScopeDecking, e.calcDecking)
	register(e, QuoteTypeConstruction, ScopeBorderInstall, e.calcBorderInstall)

	register(e, QuoteTypeMaintenance, ScopeLawnMaintenance, e.calcLawnMaintenance)
	register(e, QuoteTypeMaintenance, ScopeHedgeMaintenance, e.calcHedgeMaintenance)
	register(e, QuoteTypeMaintenance, ScopeHedgeMaintenanceExtended, e.calcHedgeMaintenanceExtended)
	register(e, QuoteTypeMaintenance, ScopeShrubPruning, e.calcShrubPruning)
	register(e, QuoteTypeMaintenance, ScopeTreePruning, e.calcTreePruning)
	register(e, QuoteTypeMaintenance, ScopeWeedControl, e.calcWeedControl)
	register(e, QuoteTypeMaintenance, ScopeFertilization, e.calcFertilization)
	register(e, QuoteTypeMaintenance, ScopeMoleControl, e.calcMoleControl)
	register(e, QuoteTypeMaintenance, ScopeScarifying, e.calcScarifying)

	return e
}

// Generate runs the calculators for every requested scope, in request order,
// and concatenates their line items. Scopes without a payload and scope ids
// unknown for the quote type are skipped silently; a wizard step the user
// never filled in must not block the rest of the quote.
func (e *Engine) Generate(req Request, ctx *Context) []LineItem {
	items := make([]LineItem, 0, len(req.ScopeIDs)*2)
	for _, scopeID := range req.ScopeIDs {
		raw, ok := req.ScopeData[scopeID]
		if !ok || len(raw) == 0 {
			continue
		}
		calc, ok := e.calculators[registryKey{req.QuoteType, scopeID}]
		if !ok {
			continue
		}
		items = append(items, calc(raw, ctx)...)
	}
	return items
}

// SupportedScopes lists the scope ids registered for a quote type, sorted.
func (e *Engine) SupportedScopes(quoteType QuoteType) []string {
	scopes := make([]string, 0, len(e.calculators))
	for key := range e.calculators {
		if key.quoteType == quoteType {
			scopes = append(scopes, key.scopeID)
		}
	}
	sort.Strings(scopes)
	return scopes
}

// Config returns the engine's pricing configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
