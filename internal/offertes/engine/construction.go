package engine

// Construction ("aanleg") scope calculators. Each follows the same recipe:
// validate the quantity driver, look up the standard-hours entry, correct the
// base hours multiplicatively, price labor at the tenant's hourly rate and
// attach the scope's materials and equipment. A missing rate-table entry
// omits its line and never fails the calculation.

// calcExcavation prices digging out an area at a depth class and, when
// requested, hauling the soil off site. The depth class picks both the dig
// activity and the haul-away volume per square meter.
func (e *Engine) calcExcavation(data ExcavationData, ctx *Context) []LineItem {
	if data.Area <= 0 {
		return nil
	}
	cfg := e.cfg.Excavation
	accessibility := ctx.accessibilityFactor()
	items := make([]LineItem, 0, 4)

	depth, ok := cfg.Depths[data.Depth]
	if !ok {
		depth, ok = cfg.Depths["standard"]
	}
	if ok {
		if norm, found := FindStandardHour(ctx.StandardHours, ScopeExcavation, depth.Activity); found {
			hours := data.Area * norm.HoursPerUnit * accessibility
			items = append(items, laborLine(ScopeExcavation, norm.Activity, hours, ctx.Settings))
		}
		if data.HaulAway {
			volume := data.Area * depth.Meters
			if norm, found := FindStandardHour(ctx.StandardHours, ScopeExcavation, cfg.HaulActivity); found {
				hours := volume * norm.HoursPerUnit * accessibility
				items = append(items, laborLine(ScopeExcavation, norm.Activity, hours, ctx.Settings))
			}
			if product, found := FindProduct(ctx.Products, cfg.HaulProduct); found {
				items = append(items, materialLine(ScopeExcavation, product, volume))
			}
		}
	}

	if cfg.Machine.Threshold > 0 && data.Area >= cfg.Machine.Threshold {
		if product, found := FindProduct(ctx.Products, cfg.Machine.Product); found {
			items = append(items, machineLine(ScopeExcavation, product, cfg.Machine.days(data.Area)))
		}
	}
	return items
}

// calcPaving prices laying pavement: the lay labor picked by paving type and
// corrected for joint cutting, the always-present sand bed, optional edging
// on the estimated perimeter and an optional layered foundation build-up,
// once for the whole area or per named sub-zone.
func (e *Engine) calcPaving(data PavingData, ctx *Context) []LineItem {
	if data.Area <= 0 {
		return nil
	}
	cfg := e.cfg.Paving
	accessibility := ctx.accessibilityFactor()
	items := make([]LineItem, 0, 8)

	if activity, ok := cfg.Activities[data.PavingType]; ok {
		if norm, found := FindStandardHour(ctx.StandardHours, ScopePaving, activity); found {
			cutting := ResolveFactor(ctx.CorrectionFactors, FactorCuttingComplexity, data.JointCutting)
			hours := data.Area * norm.HoursPerUnit * CombineFactors(accessibility, cutting)
			items = append(items, laborLine(ScopePaving, norm.Activity, hours, ctx.Settings))
		}
	}

	// Every paved surface gets a leveled sand bed.
	if norm, found := FindStandardHour(ctx.StandardHours, ScopePaving, cfg.SandActivity); found {
		hours := data.Area * norm.HoursPerUnit * accessibility
		items = append(items, laborLine(ScopePaving, norm.Activity, hours, ctx.Settings))
	}
	if product, found := FindProduct(ctx.Products, cfg.SandProduct); found {
		items = append(items, materialLine(ScopePaving, product, data.Area*cfg.SandM3PerM2))
	}

	if data.Edging {
		perimeter := estimatedPerimeter(data.Area)
		if norm, found := FindStandardHour(ctx.StandardHours, ScopePaving, cfg.EdgingActivity); found {
			hours := perimeter * norm.HoursPerUnit * accessibility
			items = append(items, laborLine(ScopePaving, norm.Activity, hours, ctx.Settings))
		}
		if product, found := FindProduct(ctx.Products, cfg.EdgingProduct); found {
			items = append(items, materialLine(ScopePaving, product, perimeter))
		}
	}

	if profile, ok := cfg.FoundationProfiles[data.Foundation]; ok {
		zones := data.SubZones
		if len(zones) == 0 {
			zones = []SubZone{{Area: data.Area}}
		}
		for _, zone := range zones {
			if zone.Area <= 0 {
				continue
			}
			for _, layer := range profile.Layers {
				desc := "Fundering " + layer.Material
				if zone.Name != "" {
					desc += " (" + zone.Name + ")"
				}
				items = append(items, pricedLine(ScopePaving, desc, "m³", zone.Area*layer.ThicknessM, layer.PricePerM3))
			}
		}
	}
	return items
}

// calcLawnInstall prices a new lawn laid as turf or sown from seed, with
// optional ground leveling and soil improvement.
func (e *Engine) calcLawnInstall(data LawnInstallData, ctx *Context) []LineItem {
	if data.Area <= 0 {
		return nil
	}
	cfg := e.cfg.LawnInstall
	accessibility := ctx.accessibilityFactor()
	items := make([]LineItem, 0, 4)

	if activity, ok := cfg.Activities[data.Method]; ok {
		if norm, found := FindStandardHour(ctx.StandardHours, ScopeLawnInstall, activity); found {
			hours := data.Area * norm.HoursPerUnit * accessibility
			items = append(items, laborLine(ScopeLawnInstall, norm.Activity, hours, ctx.Settings))
		}
	}
	switch data.Method {
	case "zoden":
		if product, found := FindProduct(ctx.Products, cfg.TurfProduct); found {
			items = append(items, materialLine(ScopeLawnInstall, product, data.Area))
		}
	case "zaaien":
		if product, found := FindProduct(ctx.Products, cfg.SeedProduct); found {
			items = append(items, materialLine(ScopeLawnInstall, product, data.Area*cfg.SeedKgPerM2))
		}
	}

	if data.GroundLeveling {
		if norm, found := FindStandardHour(ctx.StandardHours, ScopeLawnInstall, cfg.LevelActivity); found {
			hours := data.Area * norm.HoursPerUnit * accessibility
			items = append(items, laborLine(ScopeLawnInstall, norm.Activity, hours, ctx.Settings))
		}
	}
	if data.SoilImprovement {
		if product, found := FindProduct(ctx.Products, cfg.CompostProduct); found {
			items = append(items, materialLine(ScopeLawnInstall, product, data.Area*cfg.CompostM3PerM2))
		}
	}
	return items
}

// calcPlanting prices putting plants in by piece count, sized small to large,
// with optional soil improvement over the bed area.
func (e *Engine) calcPlanting(data PlantingData, ctx *Context) []LineItem {
	if data.Count <= 0 {
		return nil
	}
	cfg := e.cfg.Planting
	accessibility := ctx.accessibilityFactor()
	count := float64(data.Count)
	items := make([]LineItem, 0, 4)

	if activity, ok := cfg.Activities[data.Size]; ok {
		if norm, found := FindStandardHour(ctx.StandardHours, ScopePlanting, activity); found {
			hours := count * norm.HoursPerUnit * accessibility
			items = append(items, laborLine(ScopePlanting, norm.Activity, hours, ctx.Settings))
		}
	}
	if name, ok := cfg.Products[data.Size]; ok {
		if product, found := FindProduct(ctx.Products, name); found {
			items = append(items, materialLine(ScopePlanting, product, count))
		}
	}

	if data.SoilImprovement && data.Area > 0 {
		if norm, found := FindStandardHour(ctx.StandardHours, ScopePlanting, cfg.SoilActivity); found {
			hours := data.Area * norm.HoursPerUnit * accessibility
			items = append(items, laborLine(ScopePlanting, norm.Activity, hours, ctx.Settings))
		}
		if product, found := FindProduct(ctx.Products, cfg.CompostProduct); found {
			items = append(items, materialLine(ScopePlanting, product, data.Area*cfg.CompostM3PerM2))
		}
	}
	return items
}

// calcHedgeInstall prices planting a hedge along a length. The species picks
// the plant product; plant spacing comes from configuration.
func (e *Engine) calcHedgeInstall(data HedgeInstallData, ctx *Context) []LineItem {
	if data.Length <= 0 {
		return nil
	}
	cfg := e.cfg.HedgeInstall
	accessibility := ctx.accessibilityFactor()
	items := make([]LineItem, 0, 3)

	if norm, found := FindStandardHour(ctx.StandardHours, ScopeHedgeInstall, cfg.Activity); found {
		hours := data.Length * norm.HoursPerUnit * accessibility
		items = append(items, laborLine(ScopeHedgeInstall, norm.Activity, hours, ctx.Settings))
	}

	name := cfg.PlantProductPrefix
	if data.Species != "" {
		name += " " + data.Species
	}
	if product, found := FindProduct(ctx.Products, name); found {
		items = append(items, materialLine(ScopeHedgeInstall, product, data.Length*cfg.PlantsPerMeter))
	}

	if data.SoilImprovement {
		if product, found := FindProduct(ctx.Products, cfg.CompostProduct); found {
			items = append(items, materialLine(ScopeHedgeInstall, product, data.Length*cfg.CompostM3PerMeter))
		}
	}
	return items
}

// calcFencing prices a fence run: placement labor over the length, panels in
// whole pieces, one post more than panels, and optional gates with their own
// placement labor.
func (e *Engine) calcFencing(data FencingData, ctx *Context) []LineItem {
	if data.Length <= 0 {
		return nil
	}
	cfg := e.cfg.Fencing
	accessibility := ctx.accessibilityFactor()
	items := make([]LineItem, 0, 5)

	if norm, found := FindStandardHour(ctx.StandardHours, ScopeFencing, cfg.Activity); found {
		hours := data.Length * norm.HoursPerUnit * accessibility
		items = append(items, laborLine(ScopeFencing, norm.Activity, hours, ctx.Settings))
	}

	panels := 0.0
	if cfg.PanelWidthM > 0 {
		panels = ceilDiv(data.Length, cfg.PanelWidthM)
	}
	if panels > 0 {
		if name, ok := cfg.PanelProducts[data.Material]; ok {
			if product, found := FindProduct(ctx.Products, name); found {
				items = append(items, materialLine(ScopeFencing, product, panels))
			}
		}
		if product, found := FindProduct(ctx.Products, cfg.PostProduct); found {
			items = append(items, materialLine(ScopeFencing, product, panels+1))
		}
	}

	if data.Gates > 0 {
		gates := float64(data.Gates)
		if product, found := FindProduct(ctx.Products, cfg.GateProduct); found {
			items = append(items, materialLine(ScopeFencing, product, gates))
		}
		if norm, found := FindStandardHour(ctx.StandardHours, ScopeFencing, cfg.GateActivity); found {
			hours := gates * norm.HoursPerUnit * accessibility
			items = append(items, laborLine(ScopeFencing, norm.Activity, hours, ctx.Settings))
		}
	}
	return items
}

// calcPond prices excavating a pond, lining it and finishing the rim. Liner
// surface covers the sides through a configured factor over the water
// surface.
func (e *Engine) calcPond(data PondData, ctx *Context) []LineItem {
	if data.Area <= 0 {
		return nil
	}
	cfg := e.cfg.Pond
	accessibility := ctx.accessibilityFactor()
	items := make([]LineItem, 0, 3)

	depth := data.Depth
	if depth <= 0 {
		depth = cfg.DefaultDepthM
	}
	if norm, found := FindStandardHour(ctx.StandardHours, ScopePond, cfg.DigActivity); found {
		hours := data.Area * depth * norm.HoursPerUnit * accessibility
		items = append(items, laborLine(ScopePond, norm.Activity, hours, ctx.Settings))
	}

	if name, ok := cfg.LinerProducts[data.LinerType]; ok {
		if product, found := FindProduct(ctx.Products, name); found {
			items = append(items, materialLine(ScopePond, product, data.Area*cfg.LinerFactor))
		}
	}

	if norm, found := FindStandardHour(ctx.StandardHours, ScopePond, cfg.EdgeActivity); found {
		hours := estimatedPerimeter(data.Area) * norm.HoursPerUnit * accessibility
		items = append(items, laborLine(ScopePond, norm.Activity, hours, ctx.Settings))
	}
	return items
}

// calcDecking prices building a deck: the subframe, the deck surface by
// material and the lay labor for both.
func (e *Engine) calcDecking(data DeckingData, ctx *Context) []LineItem {
	if data.Area <= 0 {
		return nil
	}
	cfg := e.cfg.Decking
	accessibility := ctx.accessibilityFactor()
	items := make([]LineItem, 0, 4)

	if norm, found := FindStandardHour(ctx.StandardHours, ScopeDecking, cfg.SubframeActivity); found {
		hours := data.Area * norm.HoursPerUnit * accessibility
		items = append(items, laborLine(ScopeDecking, norm.Activity, hours, ctx.Settings))
	}
	if product, found := FindProduct(ctx.Products, cfg.JoistProduct); found {
		items = append(items, materialLine(ScopeDecking, product, data.Area*cfg.JoistMPerM2))
	}

	if activity, ok := cfg.Activities[data.Material]; ok {
		if norm, found := FindStandardHour(ctx.StandardHours, ScopeDecking, activity); found {
			hours := data.Area * norm.HoursPerUnit * accessibility
			items = append(items, laborLine(ScopeDecking, norm.Activity, hours, ctx.Settings))
		}
	}
	if name, ok := cfg.BoardProducts[data.Material]; ok {
		if product, found := FindProduct(ctx.Products, name); found {
			items = append(items, materialLine(ScopeDecking, product, data.Area))
		}
	}
	return items
}

// calcBorderInstall prices laying out a planting border with fresh soil and
// optional steel edging on the estimated perimeter.
func (e *Engine) calcBorderInstall(data BorderInstallData, ctx *Context) []LineItem {
	if data.Area <= 0 {
		return nil
	}
	cfg := e.cfg.Border
	accessibility := ctx.accessibilityFactor()
	items := make([]LineItem, 0, 4)

	if norm, found := FindStandardHour(ctx.StandardHours, ScopeBorderInstall, cfg.Activity); found {
		hours := data.Area * norm.HoursPerUnit * accessibility
		items = append(items, laborLine(ScopeBorderInstall, norm.Activity, hours, ctx.Settings))
	}
	if product, found := FindProduct(ctx.Products, cfg.SoilProduct); found {
		items = append(items, materialLine(ScopeBorderInstall, product, data.Area*cfg.SoilM3PerM2))
	}

	if data.Edging {
		perimeter := estimatedPerimeter(data.Area)
		if norm, found := FindStandardHour(ctx.StandardHours, ScopeBorderInstall, cfg.EdgingActivity); found {
			hours := perimeter * norm.HoursPerUnit * accessibility
			items = append(items, laborLine(ScopeBorderInstall, norm.Activity, hours, ctx.Settings))
		}
		if product, found := FindProduct(ctx.Products, cfg.EdgingProduct); found {
			items = append(items, materialLine(ScopeBorderInstall, product, perimeter))
		}
	}
	return items
}
