package engine

// Config carries every tunable the scope calculators consult: consumption
// ratios, equipment thresholds, fixed-price tables and the product / activity
// names that tie a calculator to the tenant's rate tables. Nothing in the
// calculators is compiled in; a tenant-specific Config swaps the whole
// pricing model.
type Config struct {
	// Additive surcharge points for working close to hazards. Points sum
	// before they are applied, they never compound.
	Surcharges SurchargePoints

	Excavation   ExcavationConfig
	Paving       PavingConfig
	LawnInstall  LawnInstallConfig
	Planting     PlantingConfig
	HedgeInstall HedgeInstallConfig
	Fencing      FencingConfig
	Pond         PondConfig
	Decking      DeckingConfig
	Border       BorderConfig

	LawnMaintenance LawnMaintenanceConfig
	HedgeMaintenance HedgeMaintenanceConfig
	ShrubPruning    ShrubPruningConfig
	TreePruning     TreePruningConfig
	WeedControl     WeedControlConfig
	Fertilization   FertilizationConfig
	MoleControl     MoleControlConfig
	Scarifying      ScarifyingConfig

	// PreparationHours is the fixed site preparation / cleanup overhead
	// added to every quote outside scope dispatch.
	PreparationHours float64
	// WarrantyPrice is the fixed price of the optional one-year
	// maintenance warranty line.
	WarrantyPrice float64
}

// SurchargePoints are additive percentage points per site hazard.
type SurchargePoints struct {
	NearStreet   float64
	NearBuilding float64
	NearCables   float64
}

// points sums the applicable surcharge points for the given hazard flags.
func (s SurchargePoints) points(street, building, cables bool) float64 {
	total := 0.0
	if street {
		total += s.NearStreet
	}
	if building {
		total += s.NearBuilding
	}
	if cables {
		total += s.NearCables
	}
	return total
}

// MachineRental describes when a scope needs rented equipment and how much
// driver quantity one rental day covers. Product must exist in the product
// table with unit "dag".
type MachineRental struct {
	Product        string
	Threshold      float64
	CoveragePerDay float64
}

// days converts a driver quantity into whole rental days.
func (m MachineRental) days(driver float64) float64 {
	if m.CoveragePerDay <= 0 {
		return 0
	}
	return ceilDiv(driver, m.CoveragePerDay)
}

// ExcavationDepth maps a depth class to its dig activity and the excavation
// depth used for haul-away volume.
type ExcavationDepth struct {
	Activity string
	Meters   float64
}

type ExcavationConfig struct {
	Depths       map[string]ExcavationDepth
	HaulActivity string
	HaulProduct  string
	Machine      MachineRental
}

// FoundationLayer is one fixed-price layer of a paving foundation build-up.
type FoundationLayer struct {
	Material   string
	ThicknessM float64
	PricePerM3 float64
}

type FoundationProfile struct {
	Layers []FoundationLayer
}

type PavingConfig struct {
	Activities      map[string]string // paving type -> lay activity
	SandActivity    string
	SandProduct     string
	SandM3PerM2     float64
	EdgingActivity  string
	EdgingProduct   string
	FoundationProfiles map[string]FoundationProfile
}

type LawnInstallConfig struct {
	Activities    map[string]string // method -> activity
	TurfProduct   string
	SeedProduct   string
	SeedKgPerM2   float64
	LevelActivity string
	CompostProduct string
	CompostM3PerM2 float64
}

type PlantingConfig struct {
	Activities     map[string]string // plant size -> activity
	Products       map[string]string // plant size -> product
	SoilActivity   string
	CompostProduct string
	CompostM3PerM2 float64
}

type HedgeInstallConfig struct {
	Activity           string
	PlantsPerMeter     float64
	PlantProductPrefix string // product = prefix + " " + species
	CompostProduct     string
	CompostM3PerMeter  float64
}

type FencingConfig struct {
	Activity     string
	PanelWidthM  float64
	PanelProducts map[string]string // fence material -> panel product
	PostProduct  string
	GateActivity string
	GateProduct  string
}

type PondConfig struct {
	DigActivity   string
	DefaultDepthM float64           // assumed when the wizard sends no depth
	LinerFactor   float64           // liner m² per pond m², covers sides and overlap
	LinerProducts map[string]string // liner type -> product
	EdgeActivity  string
}

type DeckingConfig struct {
	Activities       map[string]string // deck material -> lay activity
	SubframeActivity string
	JoistProduct     string
	JoistMPerM2      float64
	BoardProducts    map[string]string // deck material -> board product
}

type BorderConfig struct {
	Activity       string
	SoilProduct    string
	SoilM3PerM2    float64
	EdgingActivity string
	EdgingProduct  string
}

type LawnMaintenanceConfig struct {
	Activity     string
	MaxVisits    int
	WasteProduct string
	WasteM3PerM2 float64 // clippings per visit
}

type HedgeMaintenanceConfig struct {
	TrimActivity string // basic variant, length-driven

	// Extended variant, volume-driven.
	PruneActivityPrefix string // activity = prefix + " " + pruning mode
	HeightThresholdM    float64
	HeightFactor        float64
	// SpeciesFactors corrects for growth speed and cutting resistance;
	// unlisted species are neutral.
	SpeciesFactors map[string]float64
	// SubstrateFactors corrects for cleanup effort on hard surfaces or
	// planted borders; unlisted substrates are neutral.
	SubstrateFactors map[string]float64
	Machine          MachineRental // threshold on height (m), coverage on length (m/day)
	WasteProduct     string
	WasteFraction    float64 // clippings volume as a share of hedge volume, per visit
	MaxFrequency     int
}

type ShrubPruningConfig struct {
	Activity       string
	WasteProduct   string
	WasteM3PerShrub float64
}

type TreePruningConfig struct {
	Activities    map[string]string // height class -> activity
	WasteProduct  string
	WasteM3PerTree float64
	Chipper       MachineRental // threshold and coverage in tree count
}

type WeedControlConfig struct {
	Activities    map[string]string // method -> activity
	MachineMethod string
	Machine       MachineRental // coverage in m²/day, triggered by method
}

type FertilizationConfig struct {
	Activity      string
	Products      map[string]string // fertilizer type -> product
	KgPerM2       float64
	MarginPercent float64 // fixed margin override stamped on every line
}

// MolePackage is one fixed service tier.
type MolePackage struct {
	Label         string
	Visits        int
	HoursPerVisit float64
	KitPrice      float64
	InterimChecks int
}

type MoleAddOnsConfig struct {
	LawnRepairHoursPerM2  float64
	SeedProduct           string
	SeedKgPerM2           float64
	MeshProduct           string
	MeshInstallHoursPerM2 float64
	ReturnVisitHours      float64
}

type MoleControlConfig struct {
	Packages   map[string]MolePackage
	CheckHours float64 // labor per interim check
	AddOns     MoleAddOnsConfig
}

type ScarifyingConfig struct {
	Activity     string
	Machine      MachineRental
	WasteProduct string
	WasteM3PerM2 float64
}

// DefaultConfig returns the pricing model the engine ships with. Values stem
// from the norm books the rate tables were built against; tenants override
// them through the instellingen seed.
func DefaultConfig() Config {
	return Config{
		Surcharges: SurchargePoints{
			NearStreet:   20,
			NearBuilding: 10,
			NearCables:   15,
		},
		Excavation: ExcavationConfig{
			Depths: map[string]ExcavationDepth{
				"light":    {Activity: "ontgraven licht", Meters: 0.2},
				"standard": {Activity: "ontgraven standaard", Meters: 0.4},
				"heavy":    {Activity: "ontgraven zwaar", Meters: 0.6},
			},
			HaulActivity: "grond afvoeren",
			HaulProduct:  "Afvoer grond (stort)",
			Machine:      MachineRental{Product: "Minigraver", Threshold: 40, CoveragePerDay: 60},
		},
		Paving: PavingConfig{
			Activities: map[string]string{
				"tegel":       "bestrating leggen tegels",
				"klinker":     "bestrating leggen klinkers",
				"natuursteen": "bestrating leggen natuursteen",
			},
			SandActivity:   "zandbed aanbrengen",
			SandProduct:    "Straatzand",
			SandM3PerM2:    0.05,
			EdgingActivity: "opsluitbanden plaatsen",
			EdgingProduct:  "Opsluitband beton",
			FoundationProfiles: map[string]FoundationProfile{
				"path": {Layers: []FoundationLayer{
					{Material: "menggranulaat", ThicknessM: 0.15, PricePerM3: 32.50},
					{Material: "straatzand", ThicknessM: 0.05, PricePerM3: 36.00},
				}},
				"driveway": {Layers: []FoundationLayer{
					{Material: "menggranulaat", ThicknessM: 0.25, PricePerM3: 32.50},
					{Material: "brekerzand", ThicknessM: 0.05, PricePerM3: 38.50},
				}},
				"terrain": {Layers: []FoundationLayer{
					{Material: "menggranulaat", ThicknessM: 0.30, PricePerM3: 32.50},
					{Material: "brekerzand", ThicknessM: 0.05, PricePerM3: 38.50},
					{Material: "bodemstabilisatie", ThicknessM: 0.10, PricePerM3: 82.00},
				}},
			},
		},
		LawnInstall: LawnInstallConfig{
			Activities: map[string]string{
				"zoden":  "gazon zoden leggen",
				"zaaien": "gazon inzaaien",
			},
			TurfProduct:    "Graszoden",
			SeedProduct:    "Graszaad",
			SeedKgPerM2:    0.03,
			LevelActivity:  "grond egaliseren",
			CompostProduct: "Compost",
			CompostM3PerM2: 0.01,
		},
		Planting: PlantingConfig{
			Activities: map[string]string{
				"klein":  "planten klein",
				"middel": "planten middel",
				"groot":  "planten groot",
			},
			Products: map[string]string{
				"klein":  "Plant klein",
				"middel": "Plant middel",
				"groot":  "Plant groot",
			},
			SoilActivity:   "grond verbeteren",
			CompostProduct: "Compost",
			CompostM3PerM2: 0.015,
		},
		HedgeInstall: HedgeInstallConfig{
			Activity:           "haag planten",
			PlantsPerMeter:     4,
			PlantProductPrefix: "Haagplant",
			CompostProduct:     "Compost",
			CompostM3PerMeter:  0.02,
		},
		Fencing: FencingConfig{
			Activity:    "schutting plaatsen",
			PanelWidthM: 1.8,
			PanelProducts: map[string]string{
				"hout":      "Schuttingscherm hout",
				"composiet": "Schuttingscherm composiet",
			},
			PostProduct:  "Schuttingpaal",
			GateActivity: "poort plaatsen",
			GateProduct:  "Tuinpoort",
		},
		Pond: PondConfig{
			DigActivity:   "vijver uitgraven",
			DefaultDepthM: 0.8,
			LinerFactor:   1.4,
			LinerProducts: map[string]string{
				"epdm": "EPDM vijverfolie",
				"pvc":  "PVC vijverfolie",
			},
			EdgeActivity: "vijverrand afwerken",
		},
		Decking: DeckingConfig{
			Activities: map[string]string{
				"hardhout":  "vlonder leggen hardhout",
				"composiet": "vlonder leggen composiet",
			},
			SubframeActivity: "vlonder onderbouw",
			JoistProduct:     "Vlonderregel",
			JoistMPerM2:      3,
			BoardProducts: map[string]string{
				"hardhout":  "Vlonderplank hardhout",
				"composiet": "Vlonderplank composiet",
			},
		},
		Border: BorderConfig{
			Activity:       "border aanleggen",
			SoilProduct:    "Tuinaarde",
			SoilM3PerM2:    0.05,
			EdgingActivity: "borderrand plaatsen",
			EdgingProduct:  "Borderrand staal",
		},
		LawnMaintenance: LawnMaintenanceConfig{
			Activity:     "gazon maaien",
			MaxVisits:    30,
			WasteProduct: "Afvoer groenafval",
			WasteM3PerM2: 0.002,
		},
		HedgeMaintenance: HedgeMaintenanceConfig{
			TrimActivity:        "haag knippen",
			PruneActivityPrefix: "haag snoeien",
			HeightThresholdM:    2,
			HeightFactor:        1.3,
			SpeciesFactors: map[string]float64{
				"taxus":    1.4,
				"conifeer": 1.3,
				"liguster": 0.8,
				"laurier":  0.8,
			},
			SubstrateFactors: map[string]float64{
				"verharding": 1.15,
				"border":     1.1,
			},
			Machine:       MachineRental{Product: "Hoogwerker", Threshold: 4, CoveragePerDay: 10},
			WasteProduct:  "Afvoer snoeisel",
			WasteFraction: 0.15,
			MaxFrequency:  3,
		},
		ShrubPruning: ShrubPruningConfig{
			Activity:        "struik snoeien",
			WasteProduct:    "Afvoer groenafval",
			WasteM3PerShrub: 0.1,
		},
		TreePruning: TreePruningConfig{
			Activities: map[string]string{
				"laag":   "boom snoeien laag",
				"middel": "boom snoeien middel",
				"hoog":   "boom snoeien hoog",
			},
			WasteProduct:   "Afvoer groenafval",
			WasteM3PerTree: 0.4,
			Chipper:        MachineRental{Product: "Versnipperaar", Threshold: 5, CoveragePerDay: 8},
		},
		WeedControl: WeedControlConfig{
			Activities: map[string]string{
				"handmatig": "onkruid verwijderen handmatig",
				"branden":   "onkruid branden",
				"heetwater": "onkruid heetwater",
			},
			MachineMethod: "heetwater",
			Machine:       MachineRental{Product: "Heetwaterunit", CoveragePerDay: 400},
		},
		Fertilization: FertilizationConfig{
			Activity: "bemesten",
			Products: map[string]string{
				"organisch": "Organische meststof",
				"kunstmest": "Kunstmest",
			},
			KgPerM2:       0.025,
			MarginPercent: 70,
		},
		MoleControl: MoleControlConfig{
			Packages: map[string]MolePackage{
				"basic":        {Label: "Basis", Visits: 2, HoursPerVisit: 1.5, KitPrice: 45, InterimChecks: 0},
				"premium":      {Label: "Premium", Visits: 4, HoursPerVisit: 1.5, KitPrice: 75, InterimChecks: 2},
				"premium-plus": {Label: "Premium Plus", Visits: 6, HoursPerVisit: 1.5, KitPrice: 110, InterimChecks: 4},
			},
			CheckHours: 0.5,
			AddOns: MoleAddOnsConfig{
				LawnRepairHoursPerM2:  0.02,
				SeedProduct:           "Graszaad",
				SeedKgPerM2:           0.025,
				MeshProduct:           "Mollengaas",
				MeshInstallHoursPerM2: 0.05,
				ReturnVisitHours:      1,
			},
		},
		Scarifying: ScarifyingConfig{
			Activity:     "verticuteren",
			Machine:      MachineRental{Product: "Verticuteermachine", Threshold: 300, CoveragePerDay: 750},
			WasteProduct: "Afvoer groenafval",
			WasteM3PerM2: 0.003,
		},
		PreparationHours: 2,
		WarrantyPrice:    95,
	}
}
