// Package adapters contains anti-corruption adapters between domain modules.
// Each adapter implements an interface owned by the consuming module so the
// modules never import each other directly.
package adapters

import (
	"context"

	offertesvc "offerte-engine-backend/internal/offertes/service"
	tarievensvc "offerte-engine-backend/internal/tarieven/service"

	"github.com/google/uuid"
)

// SnapshotProvider is the narrow interface for loading an organization's
// rate tables.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, tenantID uuid.UUID) (tarievensvc.Snapshot, error)
}

// RatesSourceAdapter implements offertes/service.RateSource by reading the
// reference tables through the tarieven service.
type RatesSourceAdapter struct {
	rates SnapshotProvider
}

// NewRatesSourceAdapter creates a new adapter.
func NewRatesSourceAdapter(rates SnapshotProvider) *RatesSourceAdapter {
	return &RatesSourceAdapter{rates: rates}
}

// RateSnapshot loads the four reference tables for the organization.
func (a *RatesSourceAdapter) RateSnapshot(ctx context.Context, orgID uuid.UUID) (*offertesvc.RateSnapshot, error) {
	snap, err := a.rates.Snapshot(ctx, orgID)
	if err != nil {
		return nil, err
	}

	return &offertesvc.RateSnapshot{
		StandardHours:     snap.StandardHours,
		CorrectionFactors: snap.CorrectionFactors,
		Products:          snap.Products,
		Settings:          snap.Settings,
	}, nil
}

// Compile-time check.
var _ offertesvc.RateSource = (*RatesSourceAdapter)(nil)
