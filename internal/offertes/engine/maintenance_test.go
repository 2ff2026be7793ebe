package engine

import "testing"

func TestCalcHedgeMaintenanceExtended_VolumeDriven(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	items := e.calcHedgeMaintenanceExtended(HedgeMaintenanceExtendedData{
		Length: 10, Height: 3, Breadth: 1,
		Pruning:  "beide",
		HaulAway: true,
	}, ctx)

	// Volume 10 × 3 × 1 = 30 m³ at 0.6 h/m³, height 3 m is over the 2 m
	// threshold so hours take the 1.3 height factor: 18 × 1.3 -> 23.5.
	prune := findLine(t, items, "Haag snoeien beide")
	if prune.Quantity != 23.5 || prune.Total != 1410 {
		t.Fatalf("prune labor = %+v, want 23.5 uur = 1410", prune)
	}

	// Clippings are a configured share of hedge volume.
	waste := findLine(t, items, "Afvoer snoeisel")
	if waste.Quantity != 4.5 || waste.Total != 123.75 {
		t.Fatalf("clippings = %+v, want 4.5 m³ = 123.75", waste)
	}

	if hasLine(items, "Hoogwerker (huur)") {
		t.Fatal("no aerial platform below 4 m")
	}
}

func TestCalcHedgeMaintenanceExtended_SpeciesAndSubstrateFactors(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	taxus := e.calcHedgeMaintenanceExtended(HedgeMaintenanceExtendedData{
		Length: 10, Height: 3, Breadth: 1, Pruning: "beide", Species: "taxus",
	}, ctx)
	// 18 × 1.3 height × 1.4 taxus = 32.76 -> 32.75 quarter hours.
	if l := findLine(t, taxus, "Haag snoeien beide"); l.Quantity != 32.75 {
		t.Fatalf("taxus labor = %v uur, want 32.75", l.Quantity)
	}

	fast := e.calcHedgeMaintenanceExtended(HedgeMaintenanceExtendedData{
		Length: 10, Height: 1.5, Breadth: 1, Pruning: "top", Species: "liguster",
	}, ctx)
	// 15 m³ × 0.4 × 0.8 fast-growing discount = 4.8 -> 4.75.
	if l := findLine(t, fast, "Haag snoeien top"); l.Quantity != 4.75 {
		t.Fatalf("liguster labor = %v uur, want 4.75", l.Quantity)
	}

	paved := e.calcHedgeMaintenanceExtended(HedgeMaintenanceExtendedData{
		Length: 10, Height: 1.5, Breadth: 1, Pruning: "top", Substrate: "verharding",
	}, ctx)
	// 15 m³ × 0.4 × 1.15 hard-surface cleanup = 6.9 -> 7.0.
	if l := findLine(t, paved, "Haag snoeien top"); l.Quantity != 7 {
		t.Fatalf("substrate labor = %v uur, want 7", l.Quantity)
	}
}

func TestCalcHedgeMaintenanceExtended_SurchargesAddBeforeApplying(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	items := e.calcHedgeMaintenanceExtended(HedgeMaintenanceExtendedData{
		Length: 10, Height: 3, Breadth: 1, Pruning: "beide",
		NearStreet: true, NearCables: true,
	}, ctx)

	// 23.4 corrected hours × (1 + (20+15)/100) = 31.59 -> 31.5. Compounding
	// the two surcharges instead would give 32.25.
	if l := findLine(t, items, "Haag snoeien beide"); l.Quantity != 31.5 {
		t.Fatalf("surcharged labor = %v uur, want 31.5", l.Quantity)
	}
}

func TestCalcHedgeMaintenanceExtended_TallHedgeNeedsPlatform(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	items := e.calcHedgeMaintenanceExtended(HedgeMaintenanceExtendedData{
		Length: 25, Height: 4.5, Breadth: 1, Pruning: "zijden", Frequency: 2,
	}, ctx)

	// ceil(25 m / 10 m per day) = 3 days, twice a year.
	platform := findLine(t, items, "Hoogwerker (huur)")
	if platform.Kind != KindMachine || platform.Quantity != 6 || platform.Total != 1350 {
		t.Fatalf("platform = %+v, want 6 dagen at 225 = 1350", platform)
	}
}

func TestCalcHedgeMaintenanceExtended_FrequencyScalesAndClamps(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	twice := e.calcHedgeMaintenanceExtended(HedgeMaintenanceExtendedData{
		Length: 10, Height: 3, Breadth: 1, Pruning: "beide", Frequency: 2,
	}, ctx)
	// Hours double before quarter rounding: 46.8 -> 46.75.
	if l := findLine(t, twice, "Haag snoeien beide (2x per jaar)"); l.Quantity != 46.75 {
		t.Fatalf("twice-a-year labor = %v uur, want 46.75", l.Quantity)
	}

	clamped := e.calcHedgeMaintenanceExtended(HedgeMaintenanceExtendedData{
		Length: 10, Height: 3, Breadth: 1, Pruning: "beide", Frequency: 9,
	}, ctx)
	if !hasLine(clamped, "Haag snoeien beide (3x per jaar)") {
		t.Fatalf("frequency should clamp to 3, got %+v", clamped)
	}
}

func TestCalcHedgeMaintenance_BasicTrimByLength(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	items := e.calcHedgeMaintenance(HedgeMaintenanceData{Length: 20, Height: 2.5, Frequency: 2}, ctx)

	// 20 m × 0.2 h/m × 1.3 height factor × 2 visits = 10.4 -> 10.5.
	trim := findLine(t, items, "Haag knippen (2x per jaar)")
	if trim.Quantity != 10.5 {
		t.Fatalf("trim labor = %v uur, want 10.5", trim.Quantity)
	}
	if len(items) != 1 {
		t.Fatalf("basic variant should only produce labor, got %+v", items)
	}
}

func TestCalcLawnMaintenance_VisitsScaleTheSeason(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	items := e.calcLawnMaintenance(LawnMaintenanceData{Area: 200, Visits: 12, HaulAway: true}, ctx)

	mow := findLine(t, items, "Gazon maaien (12x per jaar)")
	if mow.Quantity != 36 || mow.Total != 2160 {
		t.Fatalf("mow labor = %+v, want 36 uur = 2160", mow)
	}
	waste := findLine(t, items, "Afvoer groenafval")
	if waste.Quantity != 4.8 || waste.Total != 132 {
		t.Fatalf("clippings = %+v, want 4.8 m³ = 132", waste)
	}

	single := e.calcLawnMaintenance(LawnMaintenanceData{Area: 200}, ctx)
	if l := findLine(t, single, "Gazon maaien"); l.Quantity != 3 {
		t.Fatalf("unset visit count should mean one visit, got %v uur", l.Quantity)
	}
}

func TestCalcLawnMaintenance_BacklogFactorApplies(t *testing.T) {
	e := testEngine()
	ctx := testContext()
	ctx.BacklogSeverity = "ernstig"

	items := e.calcLawnMaintenance(LawnMaintenanceData{Area: 200}, ctx)
	if l := findLine(t, items, "Gazon maaien"); l.Quantity != 4.5 {
		t.Fatalf("neglected lawn labor = %v uur, want 3 × 1.5 = 4.5", l.Quantity)
	}
}

func TestCalcShrubPruning_ComplexityAndBacklog(t *testing.T) {
	e := testEngine()
	ctx := testContext()
	ctx.BacklogSeverity = "licht"

	items := e.calcShrubPruning(ShrubPruningData{Count: 10, Complexity: "hoog", HaulAway: true}, ctx)

	// 10 × 0.5 × 1.2 backlog × 1.25 complexity = 7.5.
	prune := findLine(t, items, "Struik snoeien")
	if prune.Quantity != 7.5 {
		t.Fatalf("prune labor = %v uur, want 7.5", prune.Quantity)
	}
	waste := findLine(t, items, "Afvoer groenafval")
	if waste.Quantity != 1 || waste.Total != 27.5 {
		t.Fatalf("clippings = %+v, want 1 m³ = 27.50", waste)
	}
}

func TestCalcTreePruning_HeightClassAndSafetySurcharges(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	items := e.calcTreePruning(TreePruningData{
		Count: 6, HeightClass: "hoog", HaulAway: true,
		NearStreet: true, NearBuilding: true, NearCables: true,
	}, ctx)

	// 6 × 4 h = 24, all three surcharges add 45 points: 34.8 -> 34.75.
	prune := findLine(t, items, "Boom snoeien hoog")
	if prune.Quantity != 34.75 {
		t.Fatalf("prune labor = %v uur, want 34.75", prune.Quantity)
	}
	waste := findLine(t, items, "Afvoer groenafval")
	if waste.Quantity != 2.4 || waste.Total != 66 {
		t.Fatalf("waste = %+v, want 2.4 m³ = 66", waste)
	}
	chipper := findLine(t, items, "Versnipperaar (huur)")
	if chipper.Quantity != 1 || chipper.Total != 95 {
		t.Fatalf("chipper = %+v, want 1 dag = 95", chipper)
	}

	small := e.calcTreePruning(TreePruningData{Count: 4, HeightClass: "laag"}, ctx)
	if hasLine(small, "Versnipperaar (huur)") {
		t.Fatal("no chipper below the tree-count threshold")
	}
}

func TestCalcWeedControl_MethodPicksLaborAndMachine(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	hotWater := e.calcWeedControl(WeedControlData{Area: 800, Method: "heetwater"}, ctx)
	if l := findLine(t, hotWater, "Onkruid heetwater"); l.Quantity != 16 {
		t.Fatalf("hot water labor = %v uur, want 16", l.Quantity)
	}
	unit := findLine(t, hotWater, "Heetwaterunit (huur)")
	if unit.Quantity != 2 || unit.Total != 280 {
		t.Fatalf("hot water unit = %+v, want 2 dagen = 280", unit)
	}

	manual := e.calcWeedControl(WeedControlData{Area: 800, Method: "handmatig"}, ctx)
	if l := findLine(t, manual, "Onkruid verwijderen handmatig"); l.Quantity != 40 {
		t.Fatalf("manual labor = %v uur, want 40", l.Quantity)
	}
	if hasLine(manual, "Heetwaterunit (huur)") {
		t.Fatal("manual weeding must not rent the hot water unit")
	}
}

func TestCalcFertilization_EveryLineCarriesTheFixedMargin(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	items := e.calcFertilization(FertilizationData{Area: 200, FertilizerType: "organisch"}, ctx)

	if len(items) != 2 {
		t.Fatalf("expected labor + fertilizer, got %+v", items)
	}
	spread := findLine(t, items, "Bemesten")
	if spread.Quantity != 2 || spread.Total != 120 {
		t.Fatalf("spread labor = %+v, want 2 uur = 120", spread)
	}
	feed := findLine(t, items, "Organische meststof")
	if feed.Quantity != 5 || feed.Total != 5.5 {
		t.Fatalf("fertilizer = %+v, want 5 kg = 5.50", feed)
	}
	for _, item := range items {
		if item.MarginOverridePercent == nil || *item.MarginOverridePercent != 70 {
			t.Fatalf("line %q missing the 70%% margin override: %+v", item.Description, item.MarginOverridePercent)
		}
	}
}

func TestCalcMoleControl_PackageTiers(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	premium := e.calcMoleControl(MoleControlData{Package: "premium"}, ctx)

	visits := findLine(t, premium, "Mollenbestrijding Premium (4 bezoeken)")
	if visits.Quantity != 6 || visits.Total != 360 {
		t.Fatalf("visits = %+v, want 6 uur = 360", visits)
	}
	kit := findLine(t, premium, "Materiaalpakket Premium")
	if kit.Kind != KindMaterial || kit.Quantity != 1 || kit.Total != 75 {
		t.Fatalf("kit = %+v, want 1 stuk = 75", kit)
	}
	checks := findLine(t, premium, "Tussentijdse controle (2x)")
	if checks.Quantity != 1 {
		t.Fatalf("checks = %v uur, want 1", checks.Quantity)
	}

	basic := e.calcMoleControl(MoleControlData{Package: "basic"}, ctx)
	if len(basic) != 2 {
		t.Fatalf("basic tier has no interim checks, got %+v", basic)
	}
	if l := findLine(t, basic, "Mollenbestrijding Basis (2 bezoeken)"); l.Quantity != 3 {
		t.Fatalf("basic visits = %v uur, want 3", l.Quantity)
	}
}

func TestCalcMoleControl_AddOnsIndependentOfTier(t *testing.T) {
	e := testEngine()
	ctx := testContext()
	data := MoleControlData{Area: 150, LawnRepair: true, PreventiveMesh: true, ReturnVisit: true}

	assertAddOns := func(t *testing.T, items []LineItem) {
		t.Helper()
		if l := findLine(t, items, "Gazon herstellen"); l.Quantity != 3 {
			t.Fatalf("lawn repair = %v uur, want 3", l.Quantity)
		}
		if s := findLine(t, items, "Graszaad"); s.Quantity != 3.75 || s.Total != 45 {
			t.Fatalf("seed = %+v, want 3.75 kg = 45", s)
		}
		if m := findLine(t, items, "Mollengaas"); m.Quantity != 157.5 || m.Total != 1023.75 {
			t.Fatalf("mesh = %+v, want 157.5 m² = 1023.75", m)
		}
		if l := findLine(t, items, "Mollengaas aanbrengen"); l.Quantity != 7.5 {
			t.Fatalf("mesh labor = %v uur, want 7.5", l.Quantity)
		}
		if l := findLine(t, items, "Nacontrole bezoek"); l.Quantity != 1 {
			t.Fatalf("return visit = %v uur, want 1", l.Quantity)
		}
	}

	withoutPackage := e.calcMoleControl(data, ctx)
	if len(withoutPackage) != 5 {
		t.Fatalf("expected 5 add-on lines without a package, got %+v", withoutPackage)
	}
	assertAddOns(t, withoutPackage)

	data.Package = "premium-plus"
	withPackage := e.calcMoleControl(data, ctx)
	assertAddOns(t, withPackage)
	if !hasLine(withPackage, "Mollenbestrijding Premium Plus (6 bezoeken)") {
		t.Fatalf("missing premium-plus bundle, got %+v", withPackage)
	}
}

func TestCalcScarifying_MachineAboveAreaThreshold(t *testing.T) {
	e := testEngine()
	ctx := testContext()

	large := e.calcScarifying(ScarifyingData{Area: 400, HaulAway: true}, ctx)
	if l := findLine(t, large, "Verticuteren"); l.Quantity != 8 {
		t.Fatalf("scarify labor = %v uur, want 8", l.Quantity)
	}
	machine := findLine(t, large, "Verticuteermachine (huur)")
	if machine.Quantity != 1 || machine.Total != 85 {
		t.Fatalf("machine = %+v, want 1 dag = 85", machine)
	}
	felt := findLine(t, large, "Afvoer groenafval")
	if felt.Quantity != 1.2 || felt.Total != 33 {
		t.Fatalf("felt disposal = %+v, want 1.2 m³ = 33", felt)
	}

	small := e.calcScarifying(ScarifyingData{Area: 250}, ctx)
	if hasLine(small, "Verticuteermachine (huur)") {
		t.Fatal("no machine rental below the area threshold")
	}
}
