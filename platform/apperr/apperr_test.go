package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"not found", NotFound("offerte niet gevonden"), http.StatusNotFound},
		{"validation", Validation("ongeldige invoer"), http.StatusBadRequest},
		{"bad request", BadRequest("ongeldige status"), http.StatusBadRequest},
		{"conflict", Conflict("bestaat al"), http.StatusConflict},
		{"unauthorized", Unauthorized("niet ingelogd"), http.StatusUnauthorized},
		{"gone", Gone("link verlopen"), http.StatusGone},
		{"unknown kind", New(KindUnknown, "iets"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	inner := NotFound("offerte niet gevonden")
	wrapped := fmt.Errorf("get quote: %w", inner)

	var domainErr *Error
	if !errors.As(wrapped, &domainErr) {
		t.Fatalf("errors.As did not find *Error in %v", wrapped)
	}
	if domainErr.Kind != KindNotFound {
		t.Errorf("Kind = %d, want KindNotFound", domainErr.Kind)
	}
	if domainErr.Message != "offerte niet gevonden" {
		t.Errorf("Message = %q", domainErr.Message)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("no rows")
	err := &Error{Kind: KindNotFound, Message: "niet gevonden", Err: cause}

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
}

func TestWithDetails(t *testing.T) {
	err := Validation("ongeldige invoer").WithDetails(map[string]string{"veld": "email"})

	details, ok := err.Details.(map[string]string)
	if !ok {
		t.Fatalf("Details has type %T", err.Details)
	}
	if details["veld"] != "email" {
		t.Errorf("details[veld] = %q, want %q", details["veld"], "email")
	}
}
