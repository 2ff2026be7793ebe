package transport

import (
	"testing"

	"offerte-engine-backend/platform/validator"
)

func validCalculateRequest() CalculateQuoteRequest {
	return CalculateQuoteRequest{
		QuoteType:     "aanleg",
		ScopeIDs:      []string{"excavation"},
		Accessibility: "goed",
	}
}

func TestCalculateQuoteRequestValidation(t *testing.T) {
	val := validator.New()

	tests := []struct {
		name    string
		mutate  func(*CalculateQuoteRequest)
		wantErr bool
	}{
		{"valid minimal", func(r *CalculateQuoteRequest) {}, false},
		{"valid with backlog", func(r *CalculateQuoteRequest) { r.BacklogSeverity = "licht" }, false},
		{"valid with scope margins", func(r *CalculateQuoteRequest) {
			r.ScopeMargins = map[string]float64{"excavation": 35}
		}, false},
		{"missing quote type", func(r *CalculateQuoteRequest) { r.QuoteType = "" }, true},
		{"unknown quote type", func(r *CalculateQuoteRequest) { r.QuoteType = "renovatie" }, true},
		{"empty scope ids", func(r *CalculateQuoteRequest) { r.ScopeIDs = nil }, true},
		{"blank scope id", func(r *CalculateQuoteRequest) { r.ScopeIDs = []string{""} }, true},
		{"missing accessibility", func(r *CalculateQuoteRequest) { r.Accessibility = "" }, true},
		{"unknown accessibility", func(r *CalculateQuoteRequest) { r.Accessibility = "matig" }, true},
		{"unknown backlog severity", func(r *CalculateQuoteRequest) { r.BacklogSeverity = "zwaar" }, true},
		{"margin above 100", func(r *CalculateQuoteRequest) {
			r.ScopeMargins = map[string]float64{"excavation": 150}
		}, true},
		{"negative margin", func(r *CalculateQuoteRequest) {
			r.ScopeMargins = map[string]float64{"excavation": -5}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCalculateRequest()
			tt.mutate(&req)

			err := val.Struct(req)
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestCreateQuoteRequestValidation(t *testing.T) {
	val := validator.New()

	base := CreateQuoteRequest{
		CalculateQuoteRequest: validCalculateRequest(),
		CustomerName:          "J. van den Berg",
		CustomerEmail:         "j.vandenberg@example.nl",
	}

	tests := []struct {
		name    string
		mutate  func(*CreateQuoteRequest)
		wantErr bool
	}{
		{"valid", func(r *CreateQuoteRequest) {}, false},
		{"valid with phone", func(r *CreateQuoteRequest) { r.CustomerPhone = "0612345678" }, false},
		{"missing customer name", func(r *CreateQuoteRequest) { r.CustomerName = "" }, true},
		{"invalid email", func(r *CreateQuoteRequest) { r.CustomerEmail = "geen-email" }, true},
		{"missing email", func(r *CreateQuoteRequest) { r.CustomerEmail = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)

			err := val.Struct(req)
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestUpdateQuoteStatusRequestValidation(t *testing.T) {
	val := validator.New()

	tests := []struct {
		status  QuoteStatus
		wantErr bool
	}{
		{QuoteStatusSent, false},
		{QuoteStatusAccepted, false},
		{QuoteStatusDeclined, false},
		{QuoteStatusDraft, true},
		{QuoteStatusExpired, true},
		{QuoteStatus(""), true},
		{QuoteStatus("gearchiveerd"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			err := val.Struct(UpdateQuoteStatusRequest{Status: tt.status})
			if tt.wantErr && err == nil {
				t.Errorf("status %q: expected validation error, got nil", tt.status)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("status %q: unexpected error: %v", tt.status, err)
			}
		})
	}
}
