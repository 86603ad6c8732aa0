package interfaces

import (
	"context"

	"github.com/khushi71103/travelpin/internal/models"
	"github.com/khushi71103/travelpin/internal/models/dto"
)

// UserService implements the account side of the domain: registration,
// credential verification and user listing.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*dto.AuthPayloadDTO, error)
	Login(ctx context.Context, username, password string) (*dto.AuthPayloadDTO, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// PinService implements pin authoring and browsing.
type PinService interface {
	CreatePin(ctx context.Context, req dto.AddPinRequestDTO) (*models.Pin, error)
	ListPins(ctx context.Context) ([]models.Pin, error)
}
