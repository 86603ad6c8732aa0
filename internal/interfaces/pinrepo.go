package interfaces

import (
	"context"

	"github.com/khushi71103/travelpin/internal/models"
)

// PinRepository defines the contract for storing and retrieving Pin data.
type PinRepository interface {
	// AddPin persists a new pin and returns the assigned id.
	AddPin(ctx context.Context, pin models.Pin) (string, error)
	// GetAllPins returns every pin record. No ordering is guaranteed.
	GetAllPins(ctx context.Context) ([]models.Pin, error)
	// EnsureIndices creates any collection/table level schema.
	EnsureIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
