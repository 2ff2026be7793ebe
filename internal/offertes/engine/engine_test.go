package engine

import (
	"encoding/json"
	"testing"
)

// testContext builds a rate-table set large enough to price every scope the
// engine knows. Numbers are chosen so expected values stay hand-checkable.
func testContext() *Context {
	return &Context{
		StandardHours: []StandardHour{
			{Scope: ScopeExcavation, Activity: "Ontgraven licht", HoursPerUnit: 0.3, Unit: "m²"},
			{Scope: ScopeExcavation, Activity: "Ontgraven standaard", HoursPerUnit: 0.5, Unit: "m²"},
			{Scope: ScopeExcavation, Activity: "Ontgraven zwaar", HoursPerUnit: 0.8, Unit: "m²"},
			{Scope: ScopeExcavation, Activity: "Grond afvoeren", HoursPerUnit: 0.25, Unit: "m³"},
			{Scope: ScopePaving, Activity: "Bestrating leggen tegels", HoursPerUnit: 0.75, Unit: "m²"},
			{Scope: ScopePaving, Activity: "Bestrating leggen klinkers", HoursPerUnit: 0.9, Unit: "m²"},
			{Scope: ScopePaving, Activity: "Bestrating leggen natuursteen", HoursPerUnit: 1.2, Unit: "m²"},
			{Scope: ScopePaving, Activity: "Zandbed aanbrengen", HoursPerUnit: 0.1, Unit: "m²"},
			{Scope: ScopePaving, Activity: "Opsluitbanden plaatsen", HoursPerUnit: 0.25, Unit: "m"},
			{Scope: ScopeLawnInstall, Activity: "Gazon zoden leggen", HoursPerUnit: 0.12, Unit: "m²"},
			{Scope: ScopeLawnInstall, Activity: "Gazon inzaaien", HoursPerUnit: 0.05, Unit: "m²"},
			{Scope: ScopeLawnInstall, Activity: "Grond egaliseren", HoursPerUnit: 0.08, Unit: "m²"},
			{Scope: ScopePlanting, Activity: "Planten klein", HoursPerUnit: 0.1, Unit: "stuk"},
			{Scope: ScopePlanting, Activity: "Planten middel", HoursPerUnit: 0.25, Unit: "stuk"},
			{Scope: ScopePlanting, Activity: "Planten groot", HoursPerUnit: 0.75, Unit: "stuk"},
			{Scope: ScopePlanting, Activity: "Grond verbeteren", HoursPerUnit: 0.05, Unit: "m²"},
			{Scope: ScopeHedgeInstall, Activity: "Haag planten", HoursPerUnit: 0.5, Unit: "m"},
			{Scope: ScopeFencing, Activity: "Schutting plaatsen", HoursPerUnit: 0.4, Unit: "m"},
			{Scope: ScopeFencing, Activity: "Poort plaatsen", HoursPerUnit: 1.5, Unit: "stuk"},
			{Scope: ScopePond, Activity: "Vijver uitgraven", HoursPerUnit: 1.2, Unit: "m³"},
			{Scope: ScopePond, Activity: "Vijverrand afwerken", HoursPerUnit: 0.5, Unit: "m"},
			{Scope: ScopeDecking, Activity: "Vlonder onderbouw", HoursPerUnit: 0.4, Unit: "m²"},
			{Scope: ScopeDecking, Activity: "Vlonder leggen hardhout", HoursPerUnit: 0.6, Unit: "m²"},
			{Scope: ScopeDecking, Activity: "Vlonder leggen composiet", HoursPerUnit: 0.5, Unit: "m²"},
			{Scope: ScopeBorderInstall, Activity: "Border aanleggen", HoursPerUnit: 0.3, Unit: "m²"},
			{Scope: ScopeBorderInstall, Activity: "Borderrand plaatsen", HoursPerUnit: 0.2, Unit: "m"},
			{Scope: ScopeLawnMaintenance, Activity: "Gazon maaien", HoursPerUnit: 0.015, Unit: "m²"},
			{Scope: ScopeHedgeMaintenance, Activity: "Haag knippen", HoursPerUnit: 0.2, Unit: "m"},
			{Scope: ScopeHedgeMaintenanceExtended, Activity: "Haag snoeien top", HoursPerUnit: 0.4, Unit: "m³"},
			{Scope: ScopeHedgeMaintenanceExtended, Activity: "Haag snoeien zijden", HoursPerUnit: 0.5, Unit: "m³"},
			{Scope: ScopeHedgeMaintenanceExtended, Activity: "Haag snoeien beide", HoursPerUnit: 0.6, Unit: "m³"},
			{Scope: ScopeShrubPruning, Activity: "Struik snoeien", HoursPerUnit: 0.5, Unit: "stuk"},
			{Scope: ScopeTreePruning, Activity: "Boom snoeien laag", HoursPerUnit: 1.5, Unit: "stuk"},
			{Scope: ScopeTreePruning, Activity: "Boom snoeien middel", HoursPerUnit: 2.5, Unit: "stuk"},
			{Scope: ScopeTreePruning, Activity: "Boom snoeien hoog", HoursPerUnit: 4, Unit: "stuk"},
			{Scope: ScopeWeedControl, Activity: "Onkruid verwijderen handmatig", HoursPerUnit: 0.05, Unit: "m²"},
			{Scope: ScopeWeedControl, Activity: "Onkruid branden", HoursPerUnit: 0.03, Unit: "m²"},
			{Scope: ScopeWeedControl, Activity: "Onkruid heetwater", HoursPerUnit: 0.02, Unit: "m²"},
			{Scope: ScopeFertilization, Activity: "Bemesten", HoursPerUnit: 0.01, Unit: "m²"},
			{Scope: ScopeScarifying, Activity: "Verticuteren", HoursPerUnit: 0.02, Unit: "m²"},
		},
		CorrectionFactors: []CorrectionFactor{
			{Type: FactorAccessibility, Value: "goed", Factor: 1.0},
			{Type: FactorAccessibility, Value: "beperkt", Factor: 1.15},
			{Type: FactorAccessibility, Value: "slecht", Factor: 1.3},
			{Type: FactorCuttingComplexity, Value: "laag", Factor: 1.0},
			{Type: FactorCuttingComplexity, Value: "gemiddeld", Factor: 1.1},
			{Type: FactorCuttingComplexity, Value: "hoog", Factor: 1.25},
			{Type: FactorBacklog, Value: "geen", Factor: 1.0},
			{Type: FactorBacklog, Value: "licht", Factor: 1.2},
			{Type: FactorBacklog, Value: "ernstig", Factor: 1.5},
		},
		Products: []Product{
			{Name: "Afvoer grond (stort)", SellPrice: 35, Unit: "m³"},
			{Name: "Straatzand", SellPrice: 36, Unit: "m³"},
			{Name: "Opsluitband beton", SellPrice: 8.5, Unit: "m"},
			{Name: "Graszoden", SellPrice: 4.25, Unit: "m²", WastagePercent: 5},
			{Name: "Graszaad", SellPrice: 12, Unit: "kg"},
			{Name: "Compost", SellPrice: 48, Unit: "m³"},
			{Name: "Plant klein", SellPrice: 3.5, Unit: "stuk"},
			{Name: "Plant middel", SellPrice: 9.75, Unit: "stuk"},
			{Name: "Plant groot", SellPrice: 32.5, Unit: "stuk"},
			{Name: "Haagplant", SellPrice: 4.5, Unit: "stuk"},
			{Name: "Haagplant taxus", SellPrice: 8.95, Unit: "stuk"},
			{Name: "Schuttingscherm hout", SellPrice: 42.5, Unit: "stuk"},
			{Name: "Schuttingscherm composiet", SellPrice: 89, Unit: "stuk"},
			{Name: "Schuttingpaal", SellPrice: 18.5, Unit: "stuk"},
			{Name: "Tuinpoort", SellPrice: 185, Unit: "stuk"},
			{Name: "EPDM vijverfolie", SellPrice: 11.5, Unit: "m²", WastagePercent: 10},
			{Name: "PVC vijverfolie", SellPrice: 7.25, Unit: "m²", WastagePercent: 10},
			{Name: "Vlonderregel", SellPrice: 3.1, Unit: "m"},
			{Name: "Vlonderplank hardhout", SellPrice: 52, Unit: "m²", WastagePercent: 8},
			{Name: "Vlonderplank composiet", SellPrice: 68, Unit: "m²", WastagePercent: 8},
			{Name: "Tuinaarde", SellPrice: 38, Unit: "m³"},
			{Name: "Borderrand staal", SellPrice: 12.5, Unit: "m"},
			{Name: "Afvoer groenafval", SellPrice: 27.5, Unit: "m³"},
			{Name: "Afvoer snoeisel", SellPrice: 27.5, Unit: "m³"},
			{Name: "Organische meststof", SellPrice: 1.1, Unit: "kg"},
			{Name: "Kunstmest", SellPrice: 1.45, Unit: "kg"},
			{Name: "Mollengaas", SellPrice: 6.5, Unit: "m²", WastagePercent: 5},
			{Name: "Minigraver", SellPrice: 180, Unit: "dag"},
			{Name: "Hoogwerker", SellPrice: 225, Unit: "dag"},
			{Name: "Versnipperaar", SellPrice: 95, Unit: "dag"},
			{Name: "Heetwaterunit", SellPrice: 140, Unit: "dag"},
			{Name: "Verticuteermachine", SellPrice: 85, Unit: "dag"},
		},
		Settings: Settings{
			HourlyRate:           60,
			DefaultMarginPercent: 20,
			VatPercent:           21,
		},
		Accessibility: "goed",
	}
}

func testEngine() *Engine {
	return New(DefaultConfig())
}

func findLine(t *testing.T, items []LineItem, description string) LineItem {
	t.Helper()
	for _, item := range items {
		if item.Description == description {
			return item
		}
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Description
	}
	t.Fatalf("no line %q, have %v", description, names)
	return LineItem{}
}

func hasLine(items []LineItem, description string) bool {
	for _, item := range items {
		if item.Description == description {
			return true
		}
	}
	return false
}

func rawScope(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal scope data: %v", err)
	}
	return raw
}

func TestGenerate_PreservesScopeOrder(t *testing.T) {
	e := testEngine()
	req := Request{
		QuoteType: QuoteTypeConstruction,
		ScopeIDs:  []string{ScopePaving, ScopeExcavation},
		ScopeData: map[string]json.RawMessage{
			ScopeExcavation: rawScope(t, ExcavationData{Area: 20}),
			ScopePaving:     rawScope(t, PavingData{Area: 20, PavingType: "tegel"}),
		},
	}

	items := e.Generate(req, testContext())
	if len(items) == 0 {
		t.Fatal("expected line items")
	}

	sawExcavation := false
	for _, item := range items {
		if item.Scope == ScopeExcavation {
			sawExcavation = true
		}
		if item.Scope == ScopePaving && sawExcavation {
			t.Fatalf("paving line after excavation lines, scope order not preserved")
		}
	}
	if !sawExcavation {
		t.Fatal("expected excavation lines")
	}
}

func TestGenerate_SkipsScopeWithoutData(t *testing.T) {
	e := testEngine()
	req := Request{
		QuoteType: QuoteTypeConstruction,
		ScopeIDs:  []string{ScopeExcavation, ScopePaving},
		ScopeData: map[string]json.RawMessage{
			ScopePaving: rawScope(t, PavingData{Area: 10, PavingType: "tegel"}),
		},
	}

	items := e.Generate(req, testContext())
	for _, item := range items {
		if item.Scope == ScopeExcavation {
			t.Fatalf("got excavation line %q without excavation data", item.Description)
		}
	}
	if len(items) == 0 {
		t.Fatal("expected paving lines")
	}
}

func TestGenerate_SkipsUnknownScope(t *testing.T) {
	e := testEngine()
	req := Request{
		QuoteType: QuoteTypeConstruction,
		ScopeIDs:  []string{"sneeuwruimen", ScopeExcavation},
		ScopeData: map[string]json.RawMessage{
			"sneeuwruimen":  rawScope(t, map[string]float64{"area": 100}),
			ScopeExcavation: rawScope(t, ExcavationData{Area: 10}),
		},
	}

	items := e.Generate(req, testContext())
	if len(items) == 0 {
		t.Fatal("expected excavation lines despite unknown scope id")
	}
	for _, item := range items {
		if item.Scope != ScopeExcavation {
			t.Fatalf("unexpected scope %q", item.Scope)
		}
	}
}

func TestGenerate_ScopeBoundToQuoteType(t *testing.T) {
	e := testEngine()
	req := Request{
		QuoteType: QuoteTypeConstruction,
		ScopeIDs:  []string{ScopeFertilization},
		ScopeData: map[string]json.RawMessage{
			ScopeFertilization: rawScope(t, FertilizationData{Area: 100, FertilizerType: "organisch"}),
		},
	}

	if items := e.Generate(req, testContext()); len(items) != 0 {
		t.Fatalf("maintenance scope priced on a construction quote: %d items", len(items))
	}
}

func TestGenerate_MalformedPayloadYieldsNoLines(t *testing.T) {
	e := testEngine()
	req := Request{
		QuoteType: QuoteTypeConstruction,
		ScopeIDs:  []string{ScopeExcavation},
		ScopeData: map[string]json.RawMessage{
			ScopeExcavation: json.RawMessage(`"tachtig vierkante meter"`),
		},
	}

	if items := e.Generate(req, testContext()); len(items) != 0 {
		t.Fatalf("expected no items for malformed payload, got %d", len(items))
	}
}

func TestGenerate_EmptyPayloadsProduceNoLines(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	for _, quoteType := range []QuoteType{QuoteTypeConstruction, QuoteTypeMaintenance} {
		for _, scopeID := range e.SupportedScopes(quoteType) {
			req := Request{
				QuoteType: quoteType,
				ScopeIDs:  []string{scopeID},
				ScopeData: map[string]json.RawMessage{scopeID: json.RawMessage(`{}`)},
			}
			if items := e.Generate(req, ctx); len(items) != 0 {
				t.Errorf("%s/%s: zero-quantity payload produced %d items", quoteType, scopeID, len(items))
			}
		}
	}
}

func TestGenerate_LineInvariantsHoldAcrossAllScopes(t *testing.T) {
	e := testEngine()
	ctx := testContext()
	ctx.Accessibility = "beperkt"
	ctx.BacklogSeverity = "licht"

	construction := Request{
		QuoteType: QuoteTypeConstruction,
		ScopeIDs: []string{
			ScopeExcavation, ScopePaving, ScopeLawnInstall, ScopePlanting,
			ScopeHedgeInstall, ScopeFencing, ScopePond, ScopeDecking, ScopeBorderInstall,
		},
		ScopeData: map[string]json.RawMessage{
			ScopeExcavation:    rawScope(t, ExcavationData{Area: 37, Depth: "heavy", HaulAway: true}),
			ScopePaving:        rawScope(t, PavingData{Area: 23, PavingType: "natuursteen", JointCutting: "hoog", Edging: true, Foundation: "terrain"}),
			ScopeLawnInstall:   rawScope(t, LawnInstallData{Area: 41, Method: "zaaien", GroundLeveling: true, SoilImprovement: true}),
			ScopePlanting:      rawScope(t, PlantingData{Count: 17, Size: "middel", Area: 9, SoilImprovement: true}),
			ScopeHedgeInstall:  rawScope(t, HedgeInstallData{Length: 13, Species: "taxus", SoilImprovement: true}),
			ScopeFencing:       rawScope(t, FencingData{Length: 11, Material: "composiet", Gates: 2}),
			ScopePond:          rawScope(t, PondData{Area: 7, Depth: 0.9, LinerType: "pvc"}),
			ScopeDecking:       rawScope(t, DeckingData{Area: 19, Material: "composiet"}),
			ScopeBorderInstall: rawScope(t, BorderInstallData{Area: 14, Edging: true}),
		},
	}
	maintenance := Request{
		QuoteType: QuoteTypeMaintenance,
		ScopeIDs: []string{
			ScopeLawnMaintenance, ScopeHedgeMaintenance, ScopeHedgeMaintenanceExtended,
			ScopeShrubPruning, ScopeTreePruning, ScopeWeedControl, ScopeFertilization,
			ScopeMoleControl, ScopeScarifying,
		},
		ScopeData: map[string]json.RawMessage{
			ScopeLawnMaintenance:          rawScope(t, LawnMaintenanceData{Area: 230, Visits: 14, HaulAway: true}),
			ScopeHedgeMaintenance:         rawScope(t, HedgeMaintenanceData{Length: 27, Height: 2.4, Frequency: 2}),
			ScopeHedgeMaintenanceExtended: rawScope(t, HedgeMaintenanceExtendedData{Length: 21, Height: 4.3, Breadth: 0.9, Pruning: "zijden", Species: "conifeer", Substrate: "border", Frequency: 2, HaulAway: true, NearStreet: true, NearCables: true}),
			ScopeShrubPruning:             rawScope(t, ShrubPruningData{Count: 9, Complexity: "gemiddeld", HaulAway: true}),
			ScopeTreePruning:              rawScope(t, TreePruningData{Count: 7, HeightClass: "middel", HaulAway: true, NearStreet: true}),
			ScopeWeedControl:              rawScope(t, WeedControlData{Area: 310, Method: "heetwater"}),
			ScopeFertilization:            rawScope(t, FertilizationData{Area: 230, FertilizerType: "kunstmest"}),
			ScopeMoleControl:              rawScope(t, MoleControlData{Package: "premium-plus", Area: 230, LawnRepair: true, PreventiveMesh: true, ReturnVisit: true}),
			ScopeScarifying:               rawScope(t, ScarifyingData{Area: 460, HaulAway: true}),
		},
	}

	items := e.Generate(construction, ctx)
	items = append(items, e.Generate(maintenance, ctx)...)
	if len(items) < 30 {
		t.Fatalf("expected a full quote, got %d items", len(items))
	}

	for _, item := range items {
		if item.Total != round2(item.Quantity*item.UnitPrice) {
			t.Errorf("%s/%q: total %v != round2(%v × %v)", item.Scope, item.Description, item.Total, item.Quantity, item.UnitPrice)
		}
		if item.Kind == KindLabor {
			if steps := item.Quantity * 4; steps != float64(int64(steps)) {
				t.Errorf("%s/%q: labor hours %v not on a quarter-hour step", item.Scope, item.Description, item.Quantity)
			}
			if item.Unit != "uur" {
				t.Errorf("%s/%q: labor line with unit %q", item.Scope, item.Description, item.Unit)
			}
		}
		if item.Quantity <= 0 {
			t.Errorf("%s/%q: non-positive quantity %v", item.Scope, item.Description, item.Quantity)
		}
	}
}

func TestSupportedScopes(t *testing.T) {
	e := testEngine()

	construction := e.SupportedScopes(QuoteTypeConstruction)
	maintenance := e.SupportedScopes(QuoteTypeMaintenance)
	if len(construction) != 9 {
		t.Fatalf("expected 9 construction scopes, got %d: %v", len(construction), construction)
	}
	if len(maintenance) != 9 {
		t.Fatalf("expected 9 maintenance scopes, got %d: %v", len(maintenance), maintenance)
	}
	for i := 1; i < len(construction); i++ {
		if construction[i-1] >= construction[i] {
			t.Fatalf("scope list not sorted: %v", construction)
		}
	}
}
