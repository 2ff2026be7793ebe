// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"offerte-engine-backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Quote Domain Events
// =============================================================================

// QuoteCreated is published when a quote is calculated and stored.
type QuoteCreated struct {
	BaseEvent
	QuoteID        uuid.UUID `json:"quoteId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	QuoteNumber    string    `json:"quoteNumber"`
	QuoteType      string    `json:"quoteType"`
	LineCount      int       `json:"lineCount"`
	TotalInclVat   float64   `json:"totalInclVat"`
}

func (e QuoteCreated) EventName() string { return "offertes.quote.created" }

// QuoteSent is published when a quote is sent to the customer via magic link.
type QuoteSent struct {
	BaseEvent
	QuoteID        uuid.UUID `json:"quoteId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	QuoteNumber    string    `json:"quoteNumber"`
	PublicToken    string    `json:"publicToken"`
	CustomerName   string    `json:"customerName"`
	CustomerEmail  string    `json:"customerEmail"`
}

func (e QuoteSent) EventName() string { return "offertes.quote.sent" }

// QuoteAccepted is published when the customer accepts the quote.
type QuoteAccepted struct {
	BaseEvent
	QuoteID        uuid.UUID `json:"quoteId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	QuoteNumber    string    `json:"quoteNumber"`
	CustomerName   string    `json:"customerName"`
	CustomerEmail  string    `json:"customerEmail"`
	TotalInclVat   float64   `json:"totalInclVat"`
}

func (e QuoteAccepted) EventName() string { return "offertes.quote.accepted" }

// QuoteDeclined is published when the customer declines the quote.
type QuoteDeclined struct {
	BaseEvent
	QuoteID        uuid.UUID `json:"quoteId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	QuoteNumber    string    `json:"quoteNumber"`
	Reason         string    `json:"reason,omitempty"`
}

func (e QuoteDeclined) EventName() string { return "offertes.quote.declined" }

// QuoteExpired is published by the expiry sweeper when a sent quote passes
// its valid-until date without a response.
type QuoteExpired struct {
	BaseEvent
	QuoteID        uuid.UUID `json:"quoteId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	QuoteNumber    string    `json:"quoteNumber"`
}

func (e QuoteExpired) EventName() string { return "offertes.quote.expired" }

// =============================================================================
// Rates Domain Events
// =============================================================================

// RatesChanged is published when one of the reference tables changes, so
// interested modules can refresh cached snapshots.
type RatesChanged struct {
	BaseEvent
	OrganizationID uuid.UUID `json:"organizationId"`
	Table          string    `json:"table"` // "normuren", "correctiefactoren", "producten" or "instellingen"
}

func (e RatesChanged) EventName() string { return "tarieven.rates.changed" }
