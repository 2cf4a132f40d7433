package booking

import (
	"context"
	"time"

	"mindwell/models"
)

// BookingService owns the appointment lifecycle: reserving an interval out of
// a psychiatrist's availability, moving it through its status transitions,
// and the surrounding queries.
type BookingService interface {
	BookInterval(ctx context.Context, providerID, requesterID, date, startTime, endTime string) (*models.Appointment, error)
	SetStatus(ctx context.Context, appointmentID, callerID, callerRole, newStatus string) (*models.Appointment, error)
	GetAppointment(ctx context.Context, appointmentID, callerID, callerRole string) (*models.Appointment, error)
	ListForRequester(ctx context.Context, requesterID string) ([]models.Appointment, error)
	ListForProvider(ctx context.Context, providerID string) ([]models.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID, callerID, callerRole string) error
}

// ReminderScheduler enqueues a deferred appointment reminder. The production
// implementation is backed by asynq; tests swap in a recorder.
type ReminderScheduler interface {
	Schedule(payload models.ReminderPayload, fireAt time.Time) error
}
