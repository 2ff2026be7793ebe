package main

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

func loadFixture(t *testing.T) fixture {
	t.Helper()

	raw, err := os.ReadFile("../../seed/tarieven.yaml")
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	var fix fixture
	if err := yaml.Unmarshal(raw, &fix); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return fix
}

// The resolver treats an unknown (type, waarde) pair as a neutral 1.0, so a
// fixture value outside the vocabulary the calculators send would silently
// disable that factor for every seeded organization.
func TestFixtureFactorVocabulary(t *testing.T) {
	wantValues := map[string][]string{
		"bereikbaarheid":    {"goed", "beperkt", "slecht"},
		"achterstalligheid": {"geen", "licht", "ernstig"},
		"snijcomplexiteit":  {"laag", "gemiddeld", "hoog"},
	}

	fix := loadFixture(t)

	seeded := make(map[string]map[string]bool)
	for _, cf := range fix.CorrectionFactors {
		if _, ok := wantValues[cf.Type]; !ok {
			t.Errorf("unknown factor type %q in fixture", cf.Type)
			continue
		}
		if seeded[cf.Type] == nil {
			seeded[cf.Type] = make(map[string]bool)
		}
		if seeded[cf.Type][cf.Value] {
			t.Errorf("duplicate factor %s/%s", cf.Type, cf.Value)
		}
		seeded[cf.Type][cf.Value] = true
	}

	for factorType, values := range wantValues {
		for _, value := range values {
			if !seeded[factorType][value] {
				t.Errorf("fixture is missing factor %s/%s", factorType, value)
			}
		}
		for value := range seeded[factorType] {
			found := false
			for _, want := range values {
				if value == want {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("factor %s/%s is outside the resolver vocabulary", factorType, value)
			}
		}
	}
}

func TestFixtureRatesArePositive(t *testing.T) {
	fix := loadFixture(t)

	if fix.Instellingen.HourlyRate <= 0 {
		t.Errorf("uurtarief = %v, want > 0", fix.Instellingen.HourlyRate)
	}
	if fix.Instellingen.VatPercent <= 0 {
		t.Errorf("btw_percentage = %v, want > 0", fix.Instellingen.VatPercent)
	}

	for _, sh := range fix.StandardHours {
		if sh.HoursPerUnit <= 0 {
			t.Errorf("normuur %s/%s has uren_per_eenheid %v", sh.Scope, sh.Activity, sh.HoursPerUnit)
		}
		if sh.Scope == "" || sh.Activity == "" || sh.Unit == "" {
			t.Errorf("normuur %s/%s is missing a field", sh.Scope, sh.Activity)
		}
	}

	for _, p := range fix.Products {
		if p.SellPrice <= 0 {
			t.Errorf("product %q has verkoopprijs %v", p.Name, p.SellPrice)
		}
	}

	for _, cf := range fix.CorrectionFactors {
		if cf.Factor <= 0 {
			t.Errorf("factor %s/%s is %v, want > 0", cf.Type, cf.Value, cf.Factor)
		}
	}
}
