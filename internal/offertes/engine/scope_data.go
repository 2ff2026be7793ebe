package engine

// Per-scope input payloads, decoded from the wizard's scopeData JSON. Field
// names follow the wire format; unknown fields are ignored, absent fields
// decode to their zero value and the calculators fall back to neutral
// defaults.

type ExcavationData struct {
	Area     float64 `json:"area"`
	Depth    string  `json:"depth"` // light | standard | heavy
	HaulAway bool    `json:"haulAway"`
}

type PavingData struct {
	Area         float64  `json:"area"`
	PavingType   string   `json:"pavingType"` // tegel | klinker | natuursteen
	JointCutting string   `json:"jointCutting"` // snijcomplexiteit value
	Edging       bool     `json:"edging"`
	Foundation   string   `json:"foundation"` // path | driveway | terrain
	SubZones     []SubZone `json:"subZones"`
}

// SubZone splits a paving foundation over separately named areas.
type SubZone struct {
	Name string  `json:"name"`
	Area float64 `json:"area"`
}

type LawnInstallData struct {
	Area            float64 `json:"area"`
	Method          string  `json:"method"` // zoden | zaaien
	GroundLeveling  bool    `json:"groundLeveling"`
	SoilImprovement bool    `json:"soilImprovement"`
}

type PlantingData struct {
	Count           int     `json:"count"`
	Size            string  `json:"size"` // klein | middel | groot
	Area            float64 `json:"area"`
	SoilImprovement bool    `json:"soilImprovement"`
}

type HedgeInstallData struct {
	Length          float64 `json:"length"`
	Species         string  `json:"species"`
	SoilImprovement bool    `json:"soilImprovement"`
}

type FencingData struct {
	Length   float64 `json:"length"`
	Material string  `json:"material"` // hout | composiet
	Gates    int     `json:"gates"`
}

type PondData struct {
	Area      float64 `json:"area"`
	Depth     float64 `json:"depth"`
	LinerType string  `json:"linerType"` // epdm | pvc
}

type DeckingData struct {
	Area     float64 `json:"area"`
	Material string  `json:"material"` // hardhout | composiet
}

type BorderInstallData struct {
	Area   float64 `json:"area"`
	Edging bool    `json:"edging"`
}

type LawnMaintenanceData struct {
	Area     float64 `json:"area"`
	Visits   int     `json:"visits"`
	HaulAway bool    `json:"haulAway"`
}

type HedgeMaintenanceData struct {
	Length    float64 `json:"length"`
	Height    float64 `json:"height"`
	Frequency int     `json:"frequency"`
}

type HedgeMaintenanceExtendedData struct {
	Length       float64 `json:"length"`
	Height       float64 `json:"height"`
	Breadth      float64 `json:"breadth"`
	Pruning      string  `json:"pruning"` // top | zijden | beide
	Species      string  `json:"species"`
	Substrate    string  `json:"substrate"` // verharding | border | gras
	Frequency    int     `json:"frequency"`
	HaulAway     bool    `json:"haulAway"`
	NearStreet   bool    `json:"nearStreet"`
	NearBuilding bool    `json:"nearBuilding"`
	NearCables   bool    `json:"nearCables"`
}

type ShrubPruningData struct {
	Count      int    `json:"count"`
	Complexity string `json:"complexity"` // snijcomplexiteit value
	HaulAway   bool   `json:"haulAway"`
}

type TreePruningData struct {
	Count        int    `json:"count"`
	HeightClass  string `json:"heightClass"` // laag | middel | hoog
	HaulAway     bool   `json:"haulAway"`
	NearStreet   bool   `json:"nearStreet"`
	NearBuilding bool   `json:"nearBuilding"`
	NearCables   bool   `json:"nearCables"`
}

type WeedControlData struct {
	Area   float64 `json:"area"`
	Method string  `json:"method"` // handmatig | branden | heetwater
}

type FertilizationData struct {
	Area           float64 `json:"area"`
	FertilizerType string  `json:"fertilizerType"` // organisch | kunstmest
}

type MoleControlData struct {
	Package        string  `json:"package"` // basic | premium | premium-plus
	Area           float64 `json:"area"`
	LawnRepair     bool    `json:"lawnRepair"`
	PreventiveMesh bool    `json:"preventiveMesh"`
	ReturnVisit    bool    `json:"returnVisit"`
}

type ScarifyingData struct {
	Area     float64 `json:"area"`
	HaulAway bool    `json:"haulAway"`
}
