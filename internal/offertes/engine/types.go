// Package engine derives priced quote line items from a declarative scope
// description and a set of reference rate tables (standard hours, correction
// factors, products, settings). It is pure calculation: no I/O, no
// persistence, no shared mutable state, safe for concurrent use.
package engine

import (
	"encoding/json"

	"github.com/google/uuid"
)

// QuoteType distinguishes new-build from recurring maintenance work.
type QuoteType string

const (
	QuoteTypeConstruction QuoteType = "aanleg"
	QuoteTypeMaintenance  QuoteType = "onderhoud"
)

// Kind classifies a line item.
type Kind string

const (
	KindLabor    Kind = "labor"
	KindMaterial Kind = "material"
	KindMachine  Kind = "machine"
)

// Correction factor categories as stored in the correctiefactoren table.
const (
	FactorAccessibility     = "bereikbaarheid"
	FactorCuttingComplexity = "snijcomplexiteit"
	FactorBacklog           = "achterstalligheid"
)

// Construction scope ids.
const (
	ScopeExcavation  = "excavation"
	ScopePaving      = "paving"
	ScopeLawnInstall = "lawn-install"
	ScopePlanting    = "planting"
	ScopeHedgeInstall = "hedge-install"
	ScopeFencing     = "fencing"
	ScopePond        = "pond"
	ScopeDecking     = "decking"
	ScopeBorderInstall = "border-install"
)

// Maintenance scope ids.
const (
	ScopeLawnMaintenance          = "lawn-maintenance"
	ScopeHedgeMaintenance         = "hedge-maintenance"
	ScopeHedgeMaintenanceExtended = "hedge-maintenance-extended"
	ScopeShrubPruning             = "shrub-pruning"
	ScopeTreePruning              = "tree-pruning"
	ScopeWeedControl              = "weed-control"
	ScopeFertilization            = "fertilization"
	ScopeMoleControl              = "mole-control"
	ScopeScarifying               = "scarifying"
)

// StandardHour ("normuur") is the reference rate of labor hours per unit of
// work for a named activity within a scope.
type StandardHour struct {
	Scope        string  `json:"scope"`
	Activity     string  `json:"activity"`
	HoursPerUnit float64 `json:"hoursPerUnit"`
	Unit         string  `json:"unit"`
}

// CorrectionFactor ("correctiefactor") is a multiplier keyed by a factor
// category and its selected value.
type CorrectionFactor struct {
	Type   string  `json:"type"`
	Value  string  `json:"value"`
	Factor float64 `json:"factor"`
}

// Product is a priced material. WastagePercent inflates the consumed quantity
// before pricing ("derving"). Machine rentals are products with unit "dag".
type Product struct {
	Name           string  `json:"name"`
	SellPrice      float64 `json:"sellPrice"`
	Unit           string  `json:"unit"`
	WastagePercent float64 `json:"wastagePercent"`
}

// Settings holds the tenant-wide pricing defaults.
type Settings struct {
	HourlyRate           float64 `json:"hourlyRate"`
	DefaultMarginPercent float64 `json:"defaultMarginPercent"`
	VatPercent           float64 `json:"vatPercent"`
}

// LineItem ("offerteregel") is one priced row on a quote.
//
// Invariants: Total == round2(Quantity × UnitPrice); labor quantities are
// multiples of 0.25 (quarter hours); material quantities already include the
// product's wastage inflation.
type LineItem struct {
	ID                    uuid.UUID `json:"id"`
	Scope                 string    `json:"scope"`
	Description           string    `json:"description"`
	Unit                  string    `json:"unit"`
	Quantity              float64   `json:"quantity"`
	UnitPrice             float64   `json:"unitPrice"`
	Total                 float64   `json:"total"`
	Kind                  Kind      `json:"kind"`
	MarginOverridePercent *float64  `json:"marginOverridePercent,omitempty"`
}

// Context bundles the four reference tables plus the per-request site
// conditions. It is constructed once per calculation and read-only during
// scope dispatch.
type Context struct {
	StandardHours     []StandardHour
	CorrectionFactors []CorrectionFactor
	Products          []Product
	Settings          Settings

	// Accessibility is the selected site-accessibility value
	// ("goed", "beperkt", "slecht"); always applied to labor hours.
	Accessibility string
	// BacklogSeverity is the optional maintenance-backlog value
	// ("geen", "licht", "ernstig"); empty means not applicable.
	BacklogSeverity string
}

// Request is the caller's declarative description of the work to quote.
// ScopeData carries one JSON object per scope id; entries for ids that are
// not requested are ignored, requested ids without data are skipped.
type Request struct {
	QuoteType QuoteType                  `json:"quoteType"`
	ScopeIDs  []string                   `json:"scopeIds"`
	ScopeData map[string]json.RawMessage `json:"scopeData"`
}

// Totals is the aggregated financial summary of a set of line items.
type Totals struct {
	MaterialCost           float64 `json:"materialCost"`
	LaborCost              float64 `json:"laborCost"`
	TotalHours             float64 `json:"totalHours"`
	Subtotal               float64 `json:"subtotal"`
	Margin                 float64 `json:"margin"`
	EffectiveMarginPercent float64 `json:"effectiveMarginPercent"`
	ExVat                  float64 `json:"exVat"`
	Vat                    float64 `json:"vat"`
	InclVat                float64 `json:"inclVat"`
}

func (c *Context) accessibilityFactor() float64 {
	return ResolveFactor(c.CorrectionFactors, FactorAccessibility, c.Accessibility)
}

func (c *Context) backlogFactor() float64 {
	if c.BacklogSeverity == "" {
		return 1.0
	}
	return ResolveFactor(c.CorrectionFactors, FactorBacklog, c.BacklogSeverity)
}
