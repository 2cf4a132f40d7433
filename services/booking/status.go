package booking

import (
	"context"
	"fmt"

	"mindwell/models"
	"mindwell/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// validTransitions is the appointment lifecycle: pending may be confirmed or
// canceled, confirmed may be completed or canceled. completed and canceled
// are terminal.
var validTransitions = map[string][]string{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCanceled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCanceled},
}

func transitionAllowed(from, to string) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SetStatus applies a lifecycle transition to an appointment. Only the owning
// provider or an admin may change status. Entering "confirmed" additionally
// mints the shared session token and schedules the pre-start reminder.
func (s *DefaultBookingService) SetStatus(ctx context.Context, appointmentID, callerID, callerRole, newStatus string) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if callerRole != models.RolePsychiatrist && callerRole != models.RoleAdmin {
		return nil, &utils.ForbiddenError{Message: "only the provider or an admin may update appointment status"}
	}

	appt, err := s.AppointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil {
		return nil, &utils.NotFoundError{Message: "appointment not found"}
	}
	if callerRole == models.RolePsychiatrist && appt.ProviderID != callerID {
		return nil, &utils.NotFoundError{Message: "appointment not found"}
	}

	if !transitionAllowed(appt.Status, newStatus) {
		return nil, &utils.InvalidTransitionError{From: appt.Status, To: newStatus}
	}

	appt.Status = newStatus
	appt.UpdatedAt = s.now()
	if newStatus == models.StatusConfirmed {
		appt.SessionToken = uuid.NewString()
	}
	if err := s.AppointmentRepo.UpdateStatus(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to persist status change: %w", err)
	}

	logger.Info("appointment status changed",
		zap.String("appointmentID", appt.ID),
		zap.String("status", newStatus))

	msg := fmt.Sprintf("Your appointment on %s at %s is now %s", appt.Date, appt.StartTime, newStatus)
	if err := s.Notifier.Notify(ctx, appt.RequesterID, msg, models.NotificationTypeStatus, appt.ID); err != nil {
		logger.Warn("status notification failed", zap.String("appointmentID", appt.ID), zap.Error(err))
	}

	if newStatus == models.StatusConfirmed {
		s.scheduleReminder(appt)
	}

	return appt, nil
}

// scheduleReminder enqueues a one-shot reminder shortly before the
// appointment starts. Already-started appointments get no reminder. There is
// no cancel handle; the worker re-checks the appointment status at fire time.
func (s *DefaultBookingService) scheduleReminder(appt *models.Appointment) {
	logger := utils.GetLogger()

	fireAt := models.CombineDateTime(appt.Date, appt.StartTime).Add(-s.ReminderLead)
	if !fireAt.After(s.now()) {
		logger.Debug("reminder window already passed, skipping",
			zap.String("appointmentID", appt.ID))
		return
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		RequesterID:   appt.RequesterID,
		FireDate:      fireAt.Format("2006-01-02 15:04"),
	}
	if err := s.Reminders.Schedule(payload, fireAt); err != nil {
		logger.Error("failed to schedule reminder",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}
