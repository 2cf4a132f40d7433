package appointmentRepo

import (
	"context"
	"errors"

	"mindwell/models"
)

var (
	// ErrSlotTaken is returned by Reserve when the covering slot was consumed
	// or changed by a concurrent booking before the transaction committed.
	ErrSlotTaken = errors.New("availability slot no longer present")
	// ErrDuplicate is returned when an identical appointment interval already
	// exists for the provider (unique index violation).
	ErrDuplicate = errors.New("duplicate appointment")
)

// AppointmentRepository defines persistence operations for appointments,
// including the transactional reserve that consumes an availability slot.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	FindByInterval(ctx context.Context, providerID string, iv models.Interval) (*models.Appointment, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Appointment, error)
	ListByRequester(ctx context.Context, requesterID string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, id string) error

	// Reserve atomically inserts the appointment and swaps the consumed slot
	// for its remainders inside one transaction. The provider update is
	// predicated on the slot still being present with the expected bounds;
	// if it is not, nothing is written and ErrSlotTaken is returned.
	Reserve(ctx context.Context, providerID string, slot models.Slot, remainders []models.Slot, appointment *models.Appointment) error
}
