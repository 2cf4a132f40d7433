package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	providerRepo "mindwell/database/repository/provider"
	"mindwell/models"
	"mindwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService manages a psychiatrist's open slots. The HTTP contract
// addresses slots positionally; internally every mutation resolves the index
// to the slot's stable ID first, so a concurrently shifted list fails the
// request instead of hitting a neighbouring slot.
type AvailabilityService interface {
	AddSlot(ctx context.Context, providerID, date, startTime, endTime string) (*models.Slot, error)
	UpdateSlot(ctx context.Context, providerID string, index int, date, startTime, endTime string) (*models.Slot, error)
	RemoveSlot(ctx context.Context, providerID string, index int) error
	ListSlots(ctx context.Context, providerID string) ([]models.Slot, error)
}

// DefaultAvailabilityService is a concrete implementation.
type DefaultAvailabilityService struct {
	ProviderRepo providerRepo.ProviderRepository
	Now          func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AddSlot validates the interval and appends it to the provider's
// availability. Overlap with an existing slot on the same date is rejected.
func (s *DefaultAvailabilityService) AddSlot(ctx context.Context, providerID, date, startTime, endTime string) (*models.Slot, error) {
	provider, err := s.fetchProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	iv, err := s.validateInterval(date, startTime, endTime)
	if err != nil {
		return nil, err
	}
	if err := checkOverlap(provider.Availability, iv, ""); err != nil {
		return nil, err
	}

	slot := models.Slot{ID: uuid.NewString(), Interval: iv}
	if err := s.ProviderRepo.PushSlot(ctx, providerID, slot); err != nil {
		return nil, fmt.Errorf("failed to add availability slot: %w", err)
	}

	utils.GetLogger().Info("availability slot added",
		zap.String("providerID", providerID),
		zap.String("date", iv.Date),
		zap.String("start", iv.StartTime),
		zap.String("end", iv.EndTime))
	return &slot, nil
}

// UpdateSlot replaces the slot at the given position with a new interval,
// applying the same validation as AddSlot.
func (s *DefaultAvailabilityService) UpdateSlot(ctx context.Context, providerID string, index int, date, startTime, endTime string) (*models.Slot, error) {
	provider, err := s.fetchProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(provider.Availability) {
		return nil, &utils.NotFoundError{Message: fmt.Sprintf("availability slot index %d out of range", index)}
	}
	target := provider.Availability[index]

	iv, err := s.validateInterval(date, startTime, endTime)
	if err != nil {
		return nil, err
	}
	if err := checkOverlap(provider.Availability, iv, target.ID); err != nil {
		return nil, err
	}

	updated := models.Slot{ID: target.ID, Interval: iv}
	if err := s.ProviderRepo.ReplaceSlot(ctx, providerID, target.ID, updated); err != nil {
		if errors.Is(err, providerRepo.ErrNoMatch) {
			return nil, &utils.NotFoundError{Message: "availability slot changed concurrently, retry"}
		}
		return nil, fmt.Errorf("failed to update availability slot: %w", err)
	}
	return &updated, nil
}

// RemoveSlot deletes the slot at the given position. Positions shift after a
// removal; callers must not cache indices across mutations.
func (s *DefaultAvailabilityService) RemoveSlot(ctx context.Context, providerID string, index int) error {
	provider, err := s.fetchProvider(ctx, providerID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(provider.Availability) {
		return &utils.NotFoundError{Message: fmt.Sprintf("availability slot index %d out of range", index)}
	}
	target := provider.Availability[index]

	if err := s.ProviderRepo.PullSlot(ctx, providerID, target.ID); err != nil {
		if errors.Is(err, providerRepo.ErrNoMatch) {
			return &utils.NotFoundError{Message: "availability slot changed concurrently, retry"}
		}
		return fmt.Errorf("failed to remove availability slot: %w", err)
	}
	return nil
}

// ListSlots returns the provider's open slots in stored order.
func (s *DefaultAvailabilityService) ListSlots(ctx context.Context, providerID string) ([]models.Slot, error) {
	provider, err := s.fetchProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return provider.Availability, nil
}

func (s *DefaultAvailabilityService) fetchProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if provider == nil {
		return nil, &utils.NotFoundError{Message: "provider not found"}
	}
	return provider, nil
}

func (s *DefaultAvailabilityService) validateInterval(date, startTime, endTime string) (models.Interval, error) {
	iv, err := models.NewInterval(date, startTime, endTime)
	if err != nil {
		return models.Interval{}, &utils.ValidationError{Message: err.Error()}
	}
	if models.IsPastDate(iv.Date, s.now()) {
		return models.Interval{}, &utils.ValidationError{Message: "date is in the past"}
	}
	return iv, nil
}

func checkOverlap(slots []models.Slot, iv models.Interval, excludeID string) error {
	for _, slot := range slots {
		if slot.ID == excludeID {
			continue
		}
		if slot.Overlaps(iv) {
			return &utils.ConflictError{Message: fmt.Sprintf(
				"interval overlaps existing slot %s-%s on %s", slot.StartTime, slot.EndTime, slot.Date)}
		}
	}
	return nil
}

// FindCoveringSlot scans slots in stored order and returns the index of the
// first one that fully contains the requested interval. The tie-break is
// "first in stored order" only.
func FindCoveringSlot(slots []models.Slot, requested models.Interval) (int, bool) {
	for i, slot := range slots {
		if slot.Contains(requested) {
			return i, true
		}
	}
	return -1, false
}
