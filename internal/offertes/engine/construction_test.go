package engine

import "testing"

func TestCalcExcavation_StandardDepthWithHaulAway(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	items := e.calcExcavation(ExcavationData{Area: 100, Depth: "standard", HaulAway: true}, ctx)

	dig := findLine(t, items, "Ontgraven standaard")
	if dig.Kind != KindLabor || dig.Quantity != 50 || dig.Total != 3000 {
		t.Fatalf("dig line = %+v, want 50 uur at 60 = 3000", dig)
	}

	// Haul-away volume is area × 0.4 m for the standard depth class.
	haul := findLine(t, items, "Grond afvoeren")
	if haul.Kind != KindLabor || haul.Quantity != 10 {
		t.Fatalf("haul labor = %+v, want 10 uur", haul)
	}
	soil := findLine(t, items, "Afvoer grond (stort)")
	if soil.Kind != KindMaterial || soil.Quantity != 40 || soil.Unit != "m³" || soil.Total != 1400 {
		t.Fatalf("disposal line = %+v, want 40 m³ at 35 = 1400", soil)
	}

	// 100 m² is past the digger threshold: ceil(100/60) rental days.
	digger := findLine(t, items, "Minigraver (huur)")
	if digger.Kind != KindMachine || digger.Quantity != 2 || digger.Total != 360 {
		t.Fatalf("digger line = %+v, want 2 dagen at 180", digger)
	}

	if len(items) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(items))
	}
}

func TestCalcExcavation_DepthClassOnlyAffectsHaulVolumeAndActivity(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	light := e.calcExcavation(ExcavationData{Area: 10, Depth: "light", HaulAway: true}, ctx)
	heavy := e.calcExcavation(ExcavationData{Area: 10, Depth: "heavy", HaulAway: true}, ctx)

	if l := findLine(t, light, "Ontgraven licht"); l.Quantity != 3 {
		t.Fatalf("light dig = %+v, want 10 × 0.3 = 3 uur", l)
	}
	if h := findLine(t, heavy, "Ontgraven zwaar"); h.Quantity != 8 {
		t.Fatalf("heavy dig = %+v, want 10 × 0.8 = 8 uur", h)
	}
	if l := findLine(t, light, "Afvoer grond (stort)"); l.Quantity != 2 {
		t.Fatalf("light haul volume = %v, want 10 × 0.2 = 2 m³", l.Quantity)
	}
	if h := findLine(t, heavy, "Afvoer grond (stort)"); h.Quantity != 6 {
		t.Fatalf("heavy haul volume = %v, want 10 × 0.6 = 6 m³", h.Quantity)
	}
}

func TestCalcExcavation_UnknownDepthFallsBackToStandard(t *testing.T) {
	e := testEngine()

	items := e.calcExcavation(ExcavationData{Area: 10, Depth: "bodemloos"}, testContext())
	if !hasLine(items, "Ontgraven standaard") {
		t.Fatalf("expected standard dig line, got %+v", items)
	}
}

func TestCalcExcavation_MissingRateEntriesOmitLines(t *testing.T) {
	e := testEngine()
	ctx := testContext()
	ctx.StandardHours = nil
	ctx.Products = nil

	items := e.calcExcavation(ExcavationData{Area: 100, Depth: "standard", HaulAway: true}, ctx)
	if len(items) != 0 {
		t.Fatalf("expected no lines without rate tables, got %+v", items)
	}
}

func TestCalcPaving_FullScope(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	items := e.calcPaving(PavingData{
		Area:         25,
		PavingType:   "tegel",
		JointCutting: "hoog",
		Edging:       true,
		Foundation:   "driveway",
	}, ctx)

	// 25 × 0.75 × 1.25 cutting complexity = 23.4375 -> 23.5 quarter hours.
	lay := findLine(t, items, "Bestrating leggen tegels")
	if lay.Quantity != 23.5 {
		t.Fatalf("lay labor = %v uur, want 23.5", lay.Quantity)
	}

	sandBed := findLine(t, items, "Zandbed aanbrengen")
	if sandBed.Quantity != 2.5 {
		t.Fatalf("sand bed labor = %v uur, want 2.5", sandBed.Quantity)
	}
	sand := findLine(t, items, "Straatzand")
	if sand.Quantity != 1.25 || sand.Total != 45 {
		t.Fatalf("sand = %+v, want 1.25 m³ at 36 = 45", sand)
	}

	// Perimeter of a square 25 m² zone is 20 m.
	edgeLabor := findLine(t, items, "Opsluitbanden plaatsen")
	if edgeLabor.Quantity != 5 {
		t.Fatalf("edging labor = %v uur, want 20 × 0.25 = 5", edgeLabor.Quantity)
	}
	edge := findLine(t, items, "Opsluitband beton")
	if edge.Quantity != 20 || edge.Total != 170 {
		t.Fatalf("edging = %+v, want 20 m at 8.50 = 170", edge)
	}

	granulate := findLine(t, items, "Fundering menggranulaat")
	if granulate.Quantity != 6.25 || granulate.Total != 203.13 {
		t.Fatalf("granulate layer = %+v, want 6.25 m³ = 203.13", granulate)
	}
	crusher := findLine(t, items, "Fundering brekerzand")
	if crusher.Quantity != 1.25 || crusher.Total != 48.13 {
		t.Fatalf("crusher sand layer = %+v, want 1.25 m³ = 48.13", crusher)
	}
}

func TestCalcPaving_FoundationPerSubZone(t *testing.T) {
	e := testEngine()

	items := e.calcPaving(PavingData{
		Area:       40,
		PavingType: "klinker",
		Foundation: "driveway",
		SubZones: []SubZone{
			{Name: "oprit", Area: 30},
			{Name: "pad", Area: 10},
			{Name: "leeg", Area: 0},
		},
	}, testContext())

	oprit := findLine(t, items, "Fundering menggranulaat (oprit)")
	if oprit.Quantity != 7.5 || oprit.Total != 243.75 {
		t.Fatalf("oprit granulate = %+v, want 7.5 m³ = 243.75", oprit)
	}
	pad := findLine(t, items, "Fundering menggranulaat (pad)")
	if pad.Quantity != 2.5 || pad.Total != 81.25 {
		t.Fatalf("pad granulate = %+v, want 2.5 m³ = 81.25", pad)
	}
	if hasLine(items, "Fundering menggranulaat (leeg)") {
		t.Fatal("zero-area sub-zone must not produce foundation lines")
	}
	if hasLine(items, "Fundering menggranulaat") {
		t.Fatal("whole-area foundation must not appear when sub-zones are given")
	}
}

func TestCalcPaving_UnknownTypeSkipsLayLaborOnly(t *testing.T) {
	e := testEngine()

	items := e.calcPaving(PavingData{Area: 10, PavingType: "goudbaksteen"}, testContext())
	for _, item := range items {
		if item.Kind == KindLabor && item.Description != "Zandbed aanbrengen" {
			t.Fatalf("unexpected labor line %q for unknown paving type", item.Description)
		}
	}
	if !hasLine(items, "Zandbed aanbrengen") || !hasLine(items, "Straatzand") {
		t.Fatalf("sand bed must always be present, got %+v", items)
	}
}

func TestCalcLawnInstall_TurfAndSeedMethods(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	turf := e.calcLawnInstall(LawnInstallData{Area: 50, Method: "zoden"}, ctx)
	lay := findLine(t, turf, "Gazon zoden leggen")
	if lay.Quantity != 6 {
		t.Fatalf("turf labor = %v uur, want 6", lay.Quantity)
	}
	// 5% wastage on 50 m² of turf.
	rolls := findLine(t, turf, "Graszoden")
	if rolls.Quantity != 52.5 || rolls.Total != 223.13 {
		t.Fatalf("turf rolls = %+v, want 52.5 m² = 223.13", rolls)
	}
	if hasLine(turf, "Graszaad") {
		t.Fatal("turf method must not add seed")
	}

	seed := e.calcLawnInstall(LawnInstallData{Area: 50, Method: "zaaien", GroundLeveling: true, SoilImprovement: true}, ctx)
	bag := findLine(t, seed, "Graszaad")
	if bag.Quantity != 1.5 || bag.Total != 18 {
		t.Fatalf("seed = %+v, want 1.5 kg at 12 = 18", bag)
	}
	if l := findLine(t, seed, "Grond egaliseren"); l.Quantity != 4 {
		t.Fatalf("leveling labor = %v uur, want 4", l.Quantity)
	}
	if c := findLine(t, seed, "Compost"); c.Quantity != 0.5 {
		t.Fatalf("compost = %v m³, want 0.5", c.Quantity)
	}
}

func TestCalcPlanting_CountDriven(t *testing.T) {
	e := testEngine()

	items := e.calcPlanting(PlantingData{Count: 20, Size: "klein", Area: 10, SoilImprovement: true}, testContext())

	if l := findLine(t, items, "Planten klein"); l.Quantity != 2 {
		t.Fatalf("planting labor = %v uur, want 2", l.Quantity)
	}
	if p := findLine(t, items, "Plant klein"); p.Quantity != 20 || p.Total != 70 {
		t.Fatalf("plants = %+v, want 20 stuks at 3.50 = 70", p)
	}
	if l := findLine(t, items, "Grond verbeteren"); l.Quantity != 0.5 {
		t.Fatalf("soil labor = %v uur, want 0.5", l.Quantity)
	}
	if c := findLine(t, items, "Compost"); c.Quantity != 0.15 {
		t.Fatalf("compost = %v m³, want 0.15", c.Quantity)
	}
}

func TestCalcHedgeInstall_SpeciesSelectsPlantProduct(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	items := e.calcHedgeInstall(HedgeInstallData{Length: 12, Species: "taxus", SoilImprovement: true}, ctx)

	if l := findLine(t, items, "Haag planten"); l.Quantity != 6 {
		t.Fatalf("planting labor = %v uur, want 6", l.Quantity)
	}
	plants := findLine(t, items, "Haagplant taxus")
	if plants.Quantity != 48 || plants.Total != 429.6 {
		t.Fatalf("hedge plants = %+v, want 48 stuks at 8.95 = 429.60", plants)
	}
	if c := findLine(t, items, "Compost"); c.Quantity != 0.24 {
		t.Fatalf("compost = %v m³, want 0.24", c.Quantity)
	}

	// Unknown species: no plant product in the catalog, labor still priced.
	unknown := e.calcHedgeInstall(HedgeInstallData{Length: 12, Species: "beuk"}, ctx)
	if !hasLine(unknown, "Haag planten") {
		t.Fatal("labor line missing for unknown species")
	}
	for _, item := range unknown {
		if item.Kind == KindMaterial {
			t.Fatalf("unexpected material %q for species without product", item.Description)
		}
	}
}

func TestCalcFencing_PanelsPostsAndGates(t *testing.T) {
	e := testEngine()

	items := e.calcFencing(FencingData{Length: 9, Material: "hout", Gates: 1}, testContext())

	if l := findLine(t, items, "Schutting plaatsen"); l.Quantity != 3.5 {
		t.Fatalf("placement labor = %v uur, want 3.5", l.Quantity)
	}
	// ceil(9 / 1.8) = 5 panels, posts are panels + 1.
	if p := findLine(t, items, "Schuttingscherm hout"); p.Quantity != 5 || p.Total != 212.5 {
		t.Fatalf("panels = %+v, want 5 stuks = 212.50", p)
	}
	if p := findLine(t, items, "Schuttingpaal"); p.Quantity != 6 || p.Total != 111 {
		t.Fatalf("posts = %+v, want 6 stuks = 111", p)
	}
	if g := findLine(t, items, "Tuinpoort"); g.Quantity != 1 || g.Total != 185 {
		t.Fatalf("gate = %+v, want 1 stuk = 185", g)
	}
	if l := findLine(t, items, "Poort plaatsen"); l.Quantity != 1.5 {
		t.Fatalf("gate labor = %v uur, want 1.5", l.Quantity)
	}
}

func TestCalcPond_LinerCoversSides(t *testing.T) {
	e := testEngine()

	items := e.calcPond(PondData{Area: 9, Depth: 1, LinerType: "epdm"}, testContext())

	if l := findLine(t, items, "Vijver uitgraven"); l.Quantity != 10.75 {
		t.Fatalf("dig labor = %v uur, want 9 m³ × 1.2 -> 10.75", l.Quantity)
	}
	// 9 m² × 1.4 liner factor × 10% wastage = 13.86 m².
	liner := findLine(t, items, "EPDM vijverfolie")
	if liner.Quantity != 13.86 || liner.Total != 159.39 {
		t.Fatalf("liner = %+v, want 13.86 m² = 159.39", liner)
	}
	if l := findLine(t, items, "Vijverrand afwerken"); l.Quantity != 6 {
		t.Fatalf("rim labor = %v uur, want 6", l.Quantity)
	}
}

func TestCalcDecking_MaterialPicksBoardsAndLabor(t *testing.T) {
	e := testEngine()

	items := e.calcDecking(DeckingData{Area: 15, Material: "hardhout"}, testContext())

	if l := findLine(t, items, "Vlonder onderbouw"); l.Quantity != 6 {
		t.Fatalf("subframe labor = %v uur, want 6", l.Quantity)
	}
	if j := findLine(t, items, "Vlonderregel"); j.Quantity != 45 || j.Total != 139.5 {
		t.Fatalf("joists = %+v, want 45 m = 139.50", j)
	}
	if l := findLine(t, items, "Vlonder leggen hardhout"); l.Quantity != 9 {
		t.Fatalf("lay labor = %v uur, want 9", l.Quantity)
	}
	// 8% wastage on the boards.
	boards := findLine(t, items, "Vlonderplank hardhout")
	if boards.Quantity != 16.2 || boards.Total != 842.4 {
		t.Fatalf("boards = %+v, want 16.2 m² = 842.40", boards)
	}
}

func TestCalcBorderInstall_WithEdging(t *testing.T) {
	e := testEngine()

	items := e.calcBorderInstall(BorderInstallData{Area: 16, Edging: true}, testContext())

	if l := findLine(t, items, "Border aanleggen"); l.Quantity != 4.75 {
		t.Fatalf("border labor = %v uur, want 4.75", l.Quantity)
	}
	if s := findLine(t, items, "Tuinaarde"); s.Quantity != 0.8 || s.Total != 30.4 {
		t.Fatalf("soil = %+v, want 0.8 m³ = 30.40", s)
	}
	if l := findLine(t, items, "Borderrand plaatsen"); l.Quantity != 3.25 {
		t.Fatalf("edging labor = %v uur, want 3.25", l.Quantity)
	}
	if m := findLine(t, items, "Borderrand staal"); m.Quantity != 16 || m.Total != 200 {
		t.Fatalf("edging = %+v, want 16 m = 200", m)
	}
}

func TestConstruction_AccessibilityAppliesToAllLabor(t *testing.T) {
	e := testEngine()
	ctx := testContext()
	ctx.Accessibility = "slecht"

	items := e.calcExcavation(ExcavationData{Area: 10, Depth: "light"}, ctx)
	dig := findLine(t, items, "Ontgraven licht")
	// 10 × 0.3 × 1.3 = 3.9 -> 4.0 quarter hours.
	if dig.Quantity != 4 {
		t.Fatalf("dig labor = %v uur, want 4 with slecht accessibility", dig.Quantity)
	}
}
