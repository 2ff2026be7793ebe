package service

import (
	"testing"

	"offerte-engine-backend/internal/tarieven/repository"
)

func TestNormalizePagingDefaults(t *testing.T) {
	page, pageSize := normalizePaging(0, 0)
	if page != 1 {
		t.Fatalf("expected default page 1, got %d", page)
	}
	if pageSize != 20 {
		t.Fatalf("expected default page size 20, got %d", pageSize)
	}
}

func TestNormalizePagingClampsPageSize(t *testing.T) {
	_, pageSize := normalizePaging(3, 500)
	if pageSize != 100 {
		t.Fatalf("expected page size clamped to 100, got %d", pageSize)
	}
}

func TestTotalPagesForRoundsUp(t *testing.T) {
	if got := totalPagesFor(41, 20); got != 3 {
		t.Fatalf("expected 3 pages for 41 items, got %d", got)
	}
	if got := totalPagesFor(40, 20); got != 2 {
		t.Fatalf("expected 2 pages for 40 items, got %d", got)
	}
	if got := totalPagesFor(0, 20); got != 0 {
		t.Fatalf("expected 0 pages for 0 items, got %d", got)
	}
}

func TestToEngineStandardHoursMapsFields(t *testing.T) {
	rows := []repository.StandardHour{
		{Scope: "excavation", Activity: "ontgraven standaard", HoursPerUnit: 0.5, Unit: "m2"},
		{Scope: "paving", Activity: "bestrating leggen tegel", HoursPerUnit: 0.9, Unit: "m2"},
	}

	mapped := toEngineStandardHours(rows)
	if len(mapped) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(mapped))
	}
	if mapped[0].Scope != "excavation" || mapped[0].Activity != "ontgraven standaard" {
		t.Fatalf("unexpected first entry: %+v", mapped[0])
	}
	if mapped[0].HoursPerUnit != 0.5 || mapped[0].Unit != "m2" {
		t.Fatalf("rate fields not mapped: %+v", mapped[0])
	}
}

func TestToEngineProductsMapsWastage(t *testing.T) {
	rows := []repository.Product{
		{Name: "Graszoden", SellPrice: 4.25, Unit: "m2", WastagePercent: 5},
	}

	mapped := toEngineProducts(rows)
	if len(mapped) != 1 {
		t.Fatalf("expected 1 product, got %d", len(mapped))
	}
	if mapped[0].Name != "Graszoden" || mapped[0].SellPrice != 4.25 {
		t.Fatalf("unexpected product: %+v", mapped[0])
	}
	if mapped[0].WastagePercent != 5 {
		t.Fatalf("expected wastage 5, got %v", mapped[0].WastagePercent)
	}
}

func TestToEngineSettings(t *testing.T) {
	settings := toEngineSettings(repository.Settings{
		HourlyRate:           62.5,
		DefaultMarginPercent: 20,
		VatPercent:           21,
	})

	if settings.HourlyRate != 62.5 {
		t.Fatalf("expected hourly rate 62.5, got %v", settings.HourlyRate)
	}
	if settings.DefaultMarginPercent != 20 {
		t.Fatalf("expected margin 20, got %v", settings.DefaultMarginPercent)
	}
	if settings.VatPercent != 21 {
		t.Fatalf("expected vat 21, got %v", settings.VatPercent)
	}
}

func TestToStandardHourListResponsePagination(t *testing.T) {
	rows := []repository.StandardHour{
		{Scope: "excavation", Activity: "ontgraven standaard", HoursPerUnit: 0.5, Unit: "m2"},
	}

	resp := toStandardHourListResponse(rows, 41, 2, 20)
	if resp.Total != 41 || resp.Page != 2 || resp.PageSize != 20 {
		t.Fatalf("unexpected paging fields: %+v", resp)
	}
	if resp.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", resp.TotalPages)
	}
	if len(resp.Items) != 1 || resp.Items[0].Activity != "ontgraven standaard" {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
}
