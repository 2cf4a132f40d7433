package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "mindwell/database/repository/appointment"
	providerRepo "mindwell/database/repository/provider"
	userRepo "mindwell/database/repository/user"
	"mindwell/models"
	"mindwell/services/availability"
	"mindwell/services/notification"
	"mindwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the production booking engine.
type DefaultBookingService struct {
	ProviderRepo    providerRepo.ProviderRepository
	UserRepo        userRepo.UserRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	Notifier        notification.NotificationService
	Reminders       ReminderScheduler
	ReminderLead    time.Duration
	Now             func() time.Time

	locks providerLocks
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// BookInterval reserves the requested interval out of the provider's
// availability. The interval must be fully contained within a single open
// slot; partial overlaps are never split across slots. On success exactly one
// appointment is created, the covering slot is swapped for its remainders,
// and the provider is notified.
func (s *DefaultBookingService) BookInterval(ctx context.Context, providerID, requesterID, date, startTime, endTime string) (*models.Appointment, error) {
	logger := utils.GetLogger()

	requester, err := s.UserRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch requester: %w", err)
	}
	if requester == nil {
		return nil, &utils.NotFoundError{Message: "requester not found"}
	}
	if requester.Role != models.RoleStudent {
		return nil, &utils.ForbiddenError{Message: "only students may book appointments"}
	}

	requested, err := models.NewInterval(date, startTime, endTime)
	if err != nil {
		return nil, &utils.ValidationError{Message: err.Error()}
	}

	if existing, err := s.AppointmentRepo.FindByInterval(ctx, providerID, requested); err != nil {
		return nil, fmt.Errorf("failed to check for duplicate appointment: %w", err)
	} else if existing != nil {
		return nil, &utils.ConflictError{Message: "an appointment already exists for this interval"}
	}

	// Serialize per provider so two bookings cannot both read the same
	// covering slot.
	lock := s.locks.get(providerID)
	lock.Lock()
	defer lock.Unlock()

	provider, err := s.ProviderRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if provider == nil {
		return nil, &utils.NotFoundError{Message: "provider not found"}
	}

	idx, ok := availability.FindCoveringSlot(provider.Availability, requested)
	if !ok {
		return nil, &utils.ConflictError{Message: "slot not available"}
	}
	covering := provider.Availability[idx]
	remainderIntervals := covering.SubtractCovering(requested)

	remainders := make([]models.Slot, 0, len(remainderIntervals))
	for _, rem := range remainderIntervals {
		remainders = append(remainders, models.Slot{ID: uuid.NewString(), Interval: rem})
	}

	now := s.now()
	appt := &models.Appointment{
		ID:          uuid.NewString(),
		ProviderID:  providerID,
		RequesterID: requesterID,
		Date:        requested.Date,
		StartTime:   requested.StartTime,
		EndTime:     requested.EndTime,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.AppointmentRepo.Reserve(ctx, providerID, covering, remainders, appt); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrSlotTaken):
			return nil, &utils.ConflictError{Message: "slot not available"}
		case errors.Is(err, appointmentRepo.ErrDuplicate):
			return nil, &utils.ConflictError{Message: "an appointment already exists for this interval"}
		default:
			return nil, fmt.Errorf("failed to reserve appointment: %w", err)
		}
	}

	logger.Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("providerID", providerID),
		zap.String("requesterID", requesterID),
		zap.String("date", appt.Date),
		zap.String("start", appt.StartTime),
		zap.String("end", appt.EndTime))

	msg := fmt.Sprintf("New appointment requested for %s %s-%s", appt.Date, appt.StartTime, appt.EndTime)
	if err := s.Notifier.Notify(ctx, providerID, msg, models.NotificationTypeBooking, appt.ID); err != nil {
		// The booking already committed; a lost notification is logged, not fatal.
		logger.Warn("booking notification failed", zap.String("appointmentID", appt.ID), zap.Error(err))
	}

	return appt, nil
}

// GetAppointment returns an appointment visible to the caller: the requester,
// the provider, or an admin.
func (s *DefaultBookingService) GetAppointment(ctx context.Context, appointmentID, callerID, callerRole string) (*models.Appointment, error) {
	appt, err := s.AppointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, &utils.NotFoundError{Message: "appointment not found"}
	}
	if callerRole != models.RoleAdmin && appt.RequesterID != callerID && appt.ProviderID != callerID {
		return nil, &utils.ForbiddenError{Message: "not a party to this appointment"}
	}
	return appt, nil
}

func (s *DefaultBookingService) ListForRequester(ctx context.Context, requesterID string) ([]models.Appointment, error) {
	return s.AppointmentRepo.ListByRequester(ctx, requesterID)
}

func (s *DefaultBookingService) ListForProvider(ctx context.Context, providerID string) ([]models.Appointment, error) {
	return s.AppointmentRepo.ListByProvider(ctx, providerID)
}

// DeleteAppointment removes an appointment record. Only the original
// requester or an admin may delete. The consumed slot is not restored.
func (s *DefaultBookingService) DeleteAppointment(ctx context.Context, appointmentID, callerID, callerRole string) error {
	appt, err := s.AppointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return &utils.NotFoundError{Message: "appointment not found"}
	}
	if callerRole != models.RoleAdmin && appt.RequesterID != callerID {
		return &utils.ForbiddenError{Message: "only the requester or an admin may delete an appointment"}
	}
	return s.AppointmentRepo.Delete(ctx, appointmentID)
}
