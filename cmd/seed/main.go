// Command seed loads the reference rate tables for one organization from a
// YAML fixture. Upserts run on the natural keys, so re-running after an edit
// updates rates in place.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tarievenrepo "offerte-engine-backend/internal/tarieven/repository"
	"offerte-engine-backend/platform/config"
	"offerte-engine-backend/platform/db"
	"offerte-engine-backend/platform/logger"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type fixture struct {
	Instellingen struct {
		HourlyRate           float64 `yaml:"uurtarief"`
		DefaultMarginPercent float64 `yaml:"standaard_marge_percentage"`
		VatPercent           float64 `yaml:"btw_percentage"`
	} `yaml:"instellingen"`

	CorrectionFactors []struct {
		Type   string  `yaml:"type"`
		Value  string  `yaml:"waarde"`
		Factor float64 `yaml:"factor"`
	} `yaml:"correctiefactoren"`

	StandardHours []struct {
		Scope        string  `yaml:"scope"`
		Activity     string  `yaml:"activiteit"`
		HoursPerUnit float64 `yaml:"uren_per_eenheid"`
		Unit         string  `yaml:"eenheid"`
	} `yaml:"normuren"`

	Products []struct {
		Name           string  `yaml:"naam"`
		SellPrice      float64 `yaml:"verkoopprijs"`
		Unit           string  `yaml:"eenheid"`
		WastagePercent float64 `yaml:"derving_percentage"`
	} `yaml:"producten"`
}

func main() {
	orgFlag := flag.String("org", "", "organization id to seed (required)")
	fileFlag := flag.String("file", "seed/tarieven.yaml", "fixture file")
	flag.Parse()

	orgID, err := uuid.Parse(*orgFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed: -org must be a valid uuid")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	raw, err := os.ReadFile(*fileFlag)
	if err != nil {
		log.Error("failed to read fixture", "file", *fileFlag, "error", err)
		os.Exit(1)
	}

	var fix fixture
	if err := yaml.Unmarshal(raw, &fix); err != nil {
		log.Error("failed to parse fixture", "file", *fileFlag, "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := tarievenrepo.New(pool)

	if _, err := repo.UpsertSettings(ctx, tarievenrepo.UpsertSettingsParams{
		OrganizationID:       orgID,
		HourlyRate:           fix.Instellingen.HourlyRate,
		DefaultMarginPercent: fix.Instellingen.DefaultMarginPercent,
		VatPercent:           fix.Instellingen.VatPercent,
	}); err != nil {
		log.Error("failed to seed settings", "error", err)
		os.Exit(1)
	}

	for _, cf := range fix.CorrectionFactors {
		if _, err := repo.UpsertCorrectionFactor(ctx, tarievenrepo.CreateCorrectionFactorParams{
			OrganizationID: orgID,
			Type:           cf.Type,
			Value:          cf.Value,
			Factor:         cf.Factor,
		}); err != nil {
			log.Error("failed to seed correction factor", "type", cf.Type, "waarde", cf.Value, "error", err)
			os.Exit(1)
		}
	}

	for _, sh := range fix.StandardHours {
		if _, err := repo.UpsertStandardHour(ctx, tarievenrepo.CreateStandardHourParams{
			OrganizationID: orgID,
			Scope:          sh.Scope,
			Activity:       sh.Activity,
			HoursPerUnit:   sh.HoursPerUnit,
			Unit:           sh.Unit,
		}); err != nil {
			log.Error("failed to seed standard hour", "scope", sh.Scope, "activiteit", sh.Activity, "error", err)
			os.Exit(1)
		}
	}

	for _, p := range fix.Products {
		if _, err := repo.UpsertProduct(ctx, tarievenrepo.CreateProductParams{
			OrganizationID: orgID,
			Name:           p.Name,
			SellPrice:      p.SellPrice,
			Unit:           p.Unit,
			WastagePercent: p.WastagePercent,
		}); err != nil {
			log.Error("failed to seed product", "naam", p.Name, "error", err)
			os.Exit(1)
		}
	}

	log.Info("seed complete",
		"organizationId", orgID,
		"normuren", len(fix.StandardHours),
		"correctiefactoren", len(fix.CorrectionFactors),
		"producten", len(fix.Products),
	)
}
