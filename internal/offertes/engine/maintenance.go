package engine

import "fmt"

// Maintenance ("onderhoud") scope calculators. On top of the construction
// recipe these apply the maintenance-backlog factor and scale recurring work
// by an annual visit count.

// clampVisits bounds an annual visit count to at least one and at most max.
func clampVisits(v, max int) int {
	if v < 1 {
		return 1
	}
	if max > 0 && v > max {
		return max
	}
	return v
}

// perYear annotates a recurring line's description with its annual count.
func perYear(description string, times int) string {
	if times <= 1 {
		return description
	}
	return fmt.Sprintf("%s (%dx per jaar)", description, times)
}

// calcLawnMaintenance prices recurring mowing over a season, with optional
// clippings disposal.
func (e *Engine) calcLawnMaintenance(data LawnMaintenanceData, ctx *Context) []LineItem {
	if data.Area <= 0 {
		return nil
	}
	cfg := e.cfg.LawnMaintenance
	visits := clampVisits(data.Visits, cfg.MaxVisits)
	items := make([]LineItem, 0, 2)

	if norm, found := FindStandardHour(ctx.StandardHours, ScopeLawnMaintenance, cfg.Activity); found {
		perVisit := data.Area * norm.HoursPerUnit * CombineFactors(ctx.accessibilityFactor(), ctx.backlogFactor())
		hours := perVisit * float64(visits)
		items = append(items, laborLine(ScopeLawnMaintenance, perYear(norm.Activity, visits), hours, ctx.Settings))
	}
	if data.HaulAway {
		if product, found := FindProduct(ctx.Products, cfg.WasteProduct); found {
			items = append(items, materialLine(ScopeLawnMaintenance, product, data.Area*cfg.WasteM3PerM2*float64(visits)))
		}
	}
	return items
}

// calcHedgeMaintenance prices the basic length-driven hedge trim. Hedges
// above the height threshold take proportionally longer.
func (e *Engine) calcHedgeMaintenance(data HedgeMaintenanceData, ctx *Context) []LineItem {
	if data.Length <= 0 {
		return nil
	}
	cfg := e.cfg.HedgeMaintenance
	freq := clampVisits(data.Frequency, cfg.MaxFrequency)
	items := make([]LineItem, 0, 1)

	if norm, found := FindStandardHour(ctx.StandardHours, ScopeHedgeMaintenance, cfg.TrimActivity); found {
		height := 1.0
		if data.Height > cfg.HeightThresholdM {
			height = cfg.HeightFactor
		}
		perVisit := data.Length * norm.HoursPerUnit * CombineFactors(ctx.accessibilityFactor(), ctx.backlogFactor(), height)
		hours := perVisit * float64(freq)
		items = append(items, laborLine(ScopeHedgeMaintenance, perYear(norm.Activity, freq), hours, ctx.Settings))
	}
	return items
}

// calcHedgeMaintenanceExtended prices hedge pruning from the full hedge
// volume (length × height × breadth). Hours are corrected multiplicatively
// for accessibility, backlog, height, species and substrate, then surcharged
// additively for work near traffic, buildings or utility lines, and finally
// scaled by the annual pruning frequency. Hedges above the machine threshold
// need an aerial platform for the days the length dictates.
func (e *Engine) calcHedgeMaintenanceExtended(data HedgeMaintenanceExtendedData, ctx *Context) []LineItem {
	volume := data.Length * data.Height * data.Breadth
	if volume <= 0 {
		return nil
	}
	cfg := e.cfg.HedgeMaintenance
	freq := clampVisits(data.Frequency, cfg.MaxFrequency)
	items := make([]LineItem, 0, 3)

	activity := cfg.PruneActivityPrefix
	if data.Pruning != "" {
		activity += " " + data.Pruning
	}
	if norm, found := FindStandardHour(ctx.StandardHours, ScopeHedgeMaintenanceExtended, activity); found {
		height := 1.0
		if data.Height > cfg.HeightThresholdM {
			height = cfg.HeightFactor
		}
		factor := CombineFactors(
			ctx.accessibilityFactor(),
			ctx.backlogFactor(),
			height,
			factorFrom(cfg.SpeciesFactors, data.Species),
			factorFrom(cfg.SubstrateFactors, data.Substrate),
		)
		hours := volume * norm.HoursPerUnit * factor
		hours = applySurchargePoints(hours, e.cfg.Surcharges.points(data.NearStreet, data.NearBuilding, data.NearCables))
		items = append(items, laborLine(ScopeHedgeMaintenanceExtended, perYear(norm.Activity, freq), hours*float64(freq), ctx.Settings))
	}

	if cfg.Machine.Threshold > 0 && data.Height > cfg.Machine.Threshold {
		if product, found := FindProduct(ctx.Products, cfg.Machine.Product); found {
			days := cfg.Machine.days(data.Length) * float64(freq)
			items = append(items, machineLine(ScopeHedgeMaintenanceExtended, product, days))
		}
	}

	if data.HaulAway {
		if product, found := FindProduct(ctx.Products, cfg.WasteProduct); found {
			items = append(items, materialLine(ScopeHedgeMaintenanceExtended, product, volume*cfg.WasteFraction*float64(freq)))
		}
	}
	return items
}

// calcShrubPruning prices pruning shrubs by piece, corrected for cutting
// complexity, with optional clippings disposal.
func (e *Engine) calcShrubPruning(data ShrubPruningData, ctx *Context) []LineItem {
	if data.Count <= 0 {
		return nil
	}
	cfg := e.cfg.ShrubPruning
	count := float64(data.Count)
	items := make([]LineItem, 0, 2)

	if norm, found := FindStandardHour(ctx.StandardHours, ScopeShrubPruning, cfg.Activity); found {
		complexity := ResolveFactor(ctx.CorrectionFactors, FactorCuttingComplexity, data.Complexity)
		hours := count * norm.HoursPerUnit * CombineFactors(ctx.accessibilityFactor(), ctx.backlogFactor(), complexity)
		items = append(items, laborLine(ScopeShrubPruning, norm.Activity, hours, ctx.Settings))
	}
	if data.HaulAway {
		if product, found := FindProduct(ctx.Products, cfg.WasteProduct); found {
			items = append(items, materialLine(ScopeShrubPruning, product, count*cfg.WasteM3PerShrub))
		}
	}
	return items
}

// calcTreePruning prices pruning trees by piece and height class. Work near
// traffic, buildings or utility lines takes the additive safety surcharge;
// larger jobs add a chipper rental and disposal volume follows the count.
func (e *Engine) calcTreePruning(data TreePruningData, ctx *Context) []LineItem {
	if data.Count <= 0 {
		return nil
	}
	cfg := e.cfg.TreePruning
	count := float64(data.Count)
	items := make([]LineItem, 0, 3)

	if activity, ok := cfg.Activities[data.HeightClass]; ok {
		if norm, found := FindStandardHour(ctx.StandardHours, ScopeTreePruning, activity); found {
			hours := count * norm.HoursPerUnit * CombineFactors(ctx.accessibilityFactor(), ctx.backlogFactor())
			hours = applySurchargePoints(hours, e.cfg.Surcharges.points(data.NearStreet, data.NearBuilding, data.NearCables))
			items = append(items, laborLine(ScopeTreePruning, norm.Activity, hours, ctx.Settings))
		}
	}

	if data.HaulAway {
		if product, found := FindProduct(ctx.Products, cfg.WasteProduct); found {
			items = append(items, materialLine(ScopeTreePruning, product, count*cfg.WasteM3PerTree))
		}
	}
	if cfg.Chipper.Threshold > 0 && count >= cfg.Chipper.Threshold {
		if product, found := FindProduct(ctx.Products, cfg.Chipper.Product); found {
			items = append(items, machineLine(ScopeTreePruning, product, cfg.Chipper.days(count)))
		}
	}
	return items
}

// calcWeedControl prices weed removal by area and method. The hot-water
// method brings its own machine rental.
func (e *Engine) calcWeedControl(data WeedControlData, ctx *Context) []LineItem {
	if data.Area <= 0 {
		return nil
	}
	cfg := e.cfg.WeedControl
	items := make([]LineItem, 0, 2)

	if activity, ok := cfg.Activities[data.Method]; ok {
		if norm, found := FindStandardHour(ctx.StandardHours, ScopeWeedControl, activity); found {
			hours := data.Area * norm.HoursPerUnit * CombineFactors(ctx.accessibilityFactor(), ctx.backlogFactor())
			items = append(items, laborLine(ScopeWeedControl, norm.Activity, hours, ctx.Settings))
		}
	}
	if data.Method == cfg.MachineMethod {
		if product, found := FindProduct(ctx.Products, cfg.Machine.Product); found {
			items = append(items, machineLine(ScopeWeedControl, product, cfg.Machine.days(data.Area)))
		}
	}
	return items
}

// calcFertilization prices one fertilization round: spreading labor plus the
// fertilizer itself by type. Fertilization carries a fixed margin override on
// every line, the one scope priced outside the default margin model.
func (e *Engine) calcFertilization(data FertilizationData, ctx *Context) []LineItem {
	if data.Area <= 0 {
		return nil
	}
	cfg := e.cfg.Fertilization
	items := make([]LineItem, 0, 2)

	if norm, found := FindStandardHour(ctx.StandardHours, ScopeFertilization, cfg.Activity); found {
		hours := data.Area * norm.HoursPerUnit * CombineFactors(ctx.accessibilityFactor(), ctx.backlogFactor())
		items = append(items, laborLine(ScopeFertilization, norm.Activity, hours, ctx.Settings))
	}
	if name, ok := cfg.Products[data.FertilizerType]; ok {
		if product, found := FindProduct(ctx.Products, name); found {
			items = append(items, materialLine(ScopeFertilization, product, data.Area*cfg.KgPerM2))
		}
	}
	return withMargin(items, cfg.MarginPercent)
}

// calcMoleControl prices a fixed service package (visits, materials kit,
// interim checks) plus optional add-ons. Packages and add-on rates are fixed
// tariffs from configuration, not norm-table entries, and add-ons price off
// the lawn area and flags alone, independent of the chosen package tier.
func (e *Engine) calcMoleControl(data MoleControlData, ctx *Context) []LineItem {
	cfg := e.cfg.MoleControl
	accessibility := ctx.accessibilityFactor()
	items := make([]LineItem, 0, 6)

	if pkg, ok := cfg.Packages[data.Package]; ok {
		visitHours := float64(pkg.Visits) * pkg.HoursPerVisit * accessibility
		items = append(items, laborLine(ScopeMoleControl,
			fmt.Sprintf("Mollenbestrijding %s (%d bezoeken)", pkg.Label, pkg.Visits),
			visitHours, ctx.Settings))
		items = append(items, pricedLine(ScopeMoleControl,
			fmt.Sprintf("Materiaalpakket %s", pkg.Label), "stuk", 1, pkg.KitPrice))
		if pkg.InterimChecks > 0 {
			checkHours := float64(pkg.InterimChecks) * cfg.CheckHours * accessibility
			items = append(items, laborLine(ScopeMoleControl,
				fmt.Sprintf("Tussentijdse controle (%dx)", pkg.InterimChecks),
				checkHours, ctx.Settings))
		}
	}

	add := cfg.AddOns
	if data.LawnRepair && data.Area > 0 {
		items = append(items, laborLine(ScopeMoleControl, "Gazon herstellen",
			data.Area*add.LawnRepairHoursPerM2*accessibility, ctx.Settings))
		if product, found := FindProduct(ctx.Products, add.SeedProduct); found {
			items = append(items, materialLine(ScopeMoleControl, product, data.Area*add.SeedKgPerM2))
		}
	}
	if data.PreventiveMesh && data.Area > 0 {
		if product, found := FindProduct(ctx.Products, add.MeshProduct); found {
			items = append(items, materialLine(ScopeMoleControl, product, data.Area))
		}
		items = append(items, laborLine(ScopeMoleControl, "Mollengaas aanbrengen",
			data.Area*add.MeshInstallHoursPerM2*accessibility, ctx.Settings))
	}
	if data.ReturnVisit {
		items = append(items, laborLine(ScopeMoleControl, "Nacontrole bezoek",
			add.ReturnVisitHours*accessibility, ctx.Settings))
	}
	return items
}

// calcScarifying prices dethatching a lawn, with a machine rental above the
// area threshold and optional disposal of the raked-out felt.
func (e *Engine) calcScarifying(data ScarifyingData, ctx *Context) []LineItem {
	if data.Area <= 0 {
		return nil
	}
	cfg := e.cfg.Scarifying
	items := make([]LineItem, 0, 3)

	if norm, found := FindStandardHour(ctx.StandardHours, ScopeScarifying, cfg.Activity); found {
		hours := data.Area * norm.HoursPerUnit * CombineFactors(ctx.accessibilityFactor(), ctx.backlogFactor())
		items = append(items, laborLine(ScopeScarifying, norm.Activity, hours, ctx.Settings))
	}
	if cfg.Machine.Threshold > 0 && data.Area > cfg.Machine.Threshold {
		if product, found := FindProduct(ctx.Products, cfg.Machine.Product); found {
			items = append(items, machineLine(ScopeScarifying, product, cfg.Machine.days(data.Area)))
		}
	}
	if data.HaulAway {
		if product, found := FindProduct(ctx.Products, cfg.WasteProduct); found {
			items = append(items, materialLine(ScopeScarifying, product, data.Area*cfg.WasteM3PerM2))
		}
	}
	return items
}
