package events

import (
	platformevents "offerte-engine-backend/platform/events"
	"offerte-engine-backend/platform/logger"
)

// InMemoryBus aliases the platform implementation so modules only import
// this package.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus constructs the process-wide bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
