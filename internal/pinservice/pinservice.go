// pinservice.go
package pinservice

import (
	"context"
	"fmt"
	"time"

	"github.com/khushi71103/travelpin/internal/interfaces"
	"github.com/khushi71103/travelpin/internal/models"
	"github.com/khushi71103/travelpin/internal/models/dto"
	"github.com/khushi71103/travelpin/pkg/helper"
)

// PinService implements pin authoring and browsing over a PinRepository.
//
// CreatePin accepts whatever rating and coordinate values the caller sends,
// and attributes the pin to the caller-supplied username without checking it
// against an account. Both are carried over from the original contract.
type PinService struct {
	PinRepo interfaces.PinRepository
	Logger  interfaces.Logger
	// now is swappable in tests.
	now func() time.Time
}

// NewPinService creates a new PinService instance.
func NewPinService(repo interfaces.PinRepository, logger interfaces.Logger) *PinService {
	return &PinService{
		PinRepo: repo,
		Logger:  logger,
		now:     time.Now,
	}
}

// CreatePin persists a new pin with a server-assigned creation time and
// returns it with its store-assigned id.
func (s *PinService) CreatePin(ctx context.Context, req dto.AddPinRequestDTO) (*models.Pin, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "title", req.Title, "user", req.Username)

	pin := models.Pin{
		Title:     req.Title,
		Desc:      req.Desc,
		Rating:    req.Rating,
		Lat:       req.Lat,
		Long:      req.Long,
		Username:  req.Username,
		CreatedAt: s.now().UTC(),
	}

	pinID, err := s.PinRepo.AddPin(ctx, pin)
	if err != nil {
		s.Logger.Error(ErrFailedToCreatePin, "func", funcName, "title", req.Title, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToCreatePin, err)
	}
	pin.ID = pinID

	s.Logger.Info("Pin created", "func", funcName, "ID", pinID, "user", req.Username)
	s.Logger.Debug("Exiting function", "func", funcName)
	return &pin, nil
}

// ListPins returns every pin. No ordering or pagination is promised.
func (s *PinService) ListPins(ctx context.Context) ([]models.Pin, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName)

	pins, err := s.PinRepo.GetAllPins(ctx)
	if err != nil {
		s.Logger.Error(ErrListingPins, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrListingPins, err)
	}

	return pins, nil
}
