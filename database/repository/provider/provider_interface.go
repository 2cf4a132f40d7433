package providerRepo

import (
	"context"
	"errors"

	"mindwell/models"
)

// ErrNoMatch is returned by slot mutators when the targeted document or slot
// is no longer present (concurrent removal or a stale index).
var ErrNoMatch = errors.New("no matching slot")

// ProviderRepository defines persistence operations for psychiatrist
// documents and their embedded availability slots.
type ProviderRepository interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	GetByEmail(ctx context.Context, email string) (*models.Provider, error)
	GetAll(ctx context.Context) ([]models.Provider, error)
	Update(ctx context.Context, provider *models.Provider) error
	Delete(ctx context.Context, id string) error
	UpdateTokenHash(ctx context.Context, id, tokenHash string) error

	// Availability slot operations. Each targets a slot by its stable ID and
	// returns ErrNoMatch if the slot has disappeared in the meantime.
	PushSlot(ctx context.Context, providerID string, slot models.Slot) error
	ReplaceSlot(ctx context.Context, providerID, slotID string, updated models.Slot) error
	PullSlot(ctx context.Context, providerID, slotID string) error
}
