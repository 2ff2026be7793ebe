package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"offerte-engine-backend/internal/events"
	"offerte-engine-backend/internal/offertes/repository"
	"offerte-engine-backend/internal/offertes/transport"
	"offerte-engine-backend/platform/apperr"

	"github.com/google/uuid"
)

const (
	defaultPublicTokenTTL = 30 * 24 * time.Hour

	msgLinkExpired     = "this quote link has expired"
	msgAlreadyAccepted = "this quote has already been accepted"
	msgAlreadyDeclined = "this quote has already been declined"
	msgNotOpen         = "this quote is not open for a decision"
)

func generatePublicToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *Service) resolveToken(ctx context.Context, token string) (*repository.Quote, error) {
	return s.repo.GetByToken(ctx, token)
}

func validateSendableStatus(status string) error {
	if status != string(transport.QuoteStatusDraft) && status != string(transport.QuoteStatusSent) {
		return apperr.BadRequest("only draft or sent quotes can be sent")
	}
	return nil
}

// ensurePublicToken returns the quote's magic-link token, minting one on
// first send. The token lives as long as the quote's validity when set,
// otherwise the default TTL.
func (s *Service) ensurePublicToken(ctx context.Context, quote *repository.Quote, tenantID uuid.UUID) (string, error) {
	if quote.PublicToken != nil && strings.TrimSpace(*quote.PublicToken) != "" {
		return *quote.PublicToken, nil
	}

	token, err := generatePublicToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(defaultPublicTokenTTL)
	if quote.ValidUntil != nil && quote.ValidUntil.After(time.Now()) {
		expiresAt = *quote.ValidUntil
	}
	if err := s.repo.SetPublicToken(ctx, quote.ID, tenantID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) ensureStatusSent(ctx context.Context, quoteID, tenantID uuid.UUID, currentStatus string) error {
	if currentStatus == string(transport.QuoteStatusSent) {
		return nil
	}
	return s.repo.MarkSent(ctx, quoteID, tenantID)
}

// Send publishes the quote to the customer: mints the public token, flips the
// status to verzonden and announces the send on the event bus so the mail
// pipeline picks it up. Resending a sent quote reuses the existing token.
func (s *Service) Send(ctx context.Context, id, tenantID uuid.UUID) (*transport.QuoteResponse, error) {
	quote, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if err := validateSendableStatus(quote.Status); err != nil {
		return nil, err
	}

	token, err := s.ensurePublicToken(ctx, quote, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureStatusSent(ctx, id, tenantID, quote.Status); err != nil {
		return nil, err
	}

	resp, err := s.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	s.log.Info("quote sent",
		"quoteId", id,
		"quoteNumber", quote.QuoteNumber,
		"organizationId", tenantID,
	)
	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.QuoteSent{
			BaseEvent:      events.NewBaseEvent(),
			QuoteID:        id,
			OrganizationID: tenantID,
			QuoteNumber:    quote.QuoteNumber,
			PublicToken:    token,
			CustomerName:   quote.CustomerName,
			CustomerEmail:  quote.CustomerEmail,
		})
	}
	return resp, nil
}

// GetPublicQuoteID maps a public token to a quote UUID, validating expiry.
func (s *Service) GetPublicQuoteID(ctx context.Context, token string) (uuid.UUID, error) {
	quote, err := s.resolveToken(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	if quote.PublicTokenExpAt != nil && quote.PublicTokenExpAt.Before(time.Now()) {
		return uuid.Nil, apperr.Gone(msgLinkExpired)
	}
	return quote.ID, nil
}

// GetPublic returns the customer-facing proposal for a valid token.
func (s *Service) GetPublic(ctx context.Context, token string) (*transport.PublicQuoteResponse, error) {
	quote, err := s.resolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if quote.PublicTokenExpAt != nil && quote.PublicTokenExpAt.Before(time.Now()) {
		return nil, apperr.Gone(msgLinkExpired)
	}

	lines, err := s.repo.GetLinesByQuoteIDNoOrg(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	return buildPublicResponse(quote, lines), nil
}

// AcceptByToken records the customer's acceptance through the magic link.
func (s *Service) AcceptByToken(ctx context.Context, token string, req transport.AcceptQuoteRequest) (*transport.PublicQuoteResponse, error) {
	quote, err := s.resolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if quote.PublicTokenExpAt != nil && quote.PublicTokenExpAt.Before(time.Now()) {
		return nil, apperr.Gone(msgLinkExpired)
	}
	switch quote.Status {
	case string(transport.QuoteStatusAccepted):
		return nil, apperr.BadRequest(msgAlreadyAccepted)
	case string(transport.QuoteStatusDeclined):
		return nil, apperr.BadRequest(msgAlreadyDeclined)
	case string(transport.QuoteStatusExpired):
		return nil, apperr.Gone(msgLinkExpired)
	case string(transport.QuoteStatusSent):
		// open for a decision
	default:
		return nil, apperr.BadRequest(msgNotOpen)
	}

	if err := s.repo.MarkAccepted(ctx, quote.ID, strings.TrimSpace(req.SignatureName)); err != nil {
		return nil, err
	}
	quote, err = s.resolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLinesByQuoteIDNoOrg(ctx, quote.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("quote accepted",
		"quoteId", quote.ID,
		"quoteNumber", quote.QuoteNumber,
		"organizationId", quote.OrganizationID,
	)
	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.QuoteAccepted{
			BaseEvent:      events.NewBaseEvent(),
			QuoteID:        quote.ID,
			OrganizationID: quote.OrganizationID,
			QuoteNumber:    quote.QuoteNumber,
			CustomerName:   quote.CustomerName,
			CustomerEmail:  quote.CustomerEmail,
			TotalInclVat:   quote.InclVat,
		})
	}
	return buildPublicResponse(quote, lines), nil
}

// DeclineByToken records the customer's rejection through the magic link.
func (s *Service) DeclineByToken(ctx context.Context, token string, req transport.DeclineQuoteRequest) (*transport.PublicQuoteResponse, error) {
	quote, err := s.resolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if quote.PublicTokenExpAt != nil && quote.PublicTokenExpAt.Before(time.Now()) {
		return nil, apperr.Gone(msgLinkExpired)
	}
	switch quote.Status {
	case string(transport.QuoteStatusAccepted):
		return nil, apperr.BadRequest(msgAlreadyAccepted)
	case string(transport.QuoteStatusDeclined):
		return nil, apperr.BadRequest(msgAlreadyDeclined)
	case string(transport.QuoteStatusExpired):
		return nil, apperr.Gone(msgLinkExpired)
	case string(transport.QuoteStatusSent):
		// open for a decision
	default:
		return nil, apperr.BadRequest(msgNotOpen)
	}

	reason := nilIfEmpty(req.Reason)
	if err := s.repo.MarkDeclined(ctx, quote.ID, reason); err != nil {
		return nil, err
	}
	quote, err = s.resolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.GetLinesByQuoteIDNoOrg(ctx, quote.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("quote declined",
		"quoteId", quote.ID,
		"quoteNumber", quote.QuoteNumber,
		"organizationId", quote.OrganizationID,
	)
	if s.eventBus != nil {
		s.eventBus.Publish(ctx, events.QuoteDeclined{
			BaseEvent:      events.NewBaseEvent(),
			QuoteID:        quote.ID,
			OrganizationID: quote.OrganizationID,
			QuoteNumber:    quote.QuoteNumber,
			Reason:         req.Reason,
		})
	}
	return buildPublicResponse(quote, lines), nil
}

// ExpireOverdue flips sent quotes past their validity to verlopen and
// publishes an event per quote. Returns the number of quotes expired.
func (s *Service) ExpireOverdue(ctx context.Context) (int, error) {
	expired, err := s.repo.MarkExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	for _, e := range expired {
		if s.eventBus != nil {
			s.eventBus.Publish(ctx, events.QuoteExpired{
				BaseEvent:      events.NewBaseEvent(),
				QuoteID:        e.ID,
				OrganizationID: e.OrganizationID,
				QuoteNumber:    e.QuoteNumber,
			})
		}
	}
	if len(expired) > 0 {
		s.log.Info("quotes expired", "count", len(expired))
	}
	return len(expired), nil
}

func buildPublicResponse(quote *repository.Quote, lines []repository.QuoteLine) *transport.PublicQuoteResponse {
	publicLines := make([]transport.PublicQuoteLineResponse, len(lines))
	for i, line := range lines {
		publicLines[i] = transport.PublicQuoteLineResponse{
			ID:          line.ID,
			Scope:       line.Scope,
			Description: line.Description,
			Unit:        line.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Total:       line.Total,
			Kind:        line.Kind,
			SortOrder:   line.SortOrder,
		}
	}
	return &transport.PublicQuoteResponse{
		QuoteNumber:  quote.QuoteNumber,
		QuoteType:    quote.QuoteType,
		Status:       transport.QuoteStatus(quote.Status),
		CustomerName: quote.CustomerName,
		Notes:        quote.Notes,
		Lines:        publicLines,
		Totals: transport.PublicTotalsResponse{
			ExVat:   quote.ExVat,
			Vat:     quote.Vat,
			InclVat: quote.InclVat,
		},
		ValidUntil: quote.ValidUntil,
		AcceptedAt: quote.AcceptedAt,
		DeclinedAt: quote.DeclinedAt,
	}
}
