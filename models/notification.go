package models

import "time"

// Notification kinds emitted by the booking core.
const (
	NotificationTypeBooking  = "booking"
	NotificationTypeStatus   = "status"
	NotificationTypeReminder = "reminder"
)

// Notification is an in-app notification record. The core only creates these;
// read-state is mutated by the recipient.
type Notification struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	Type          string    `bson:"type" json:"type"`
	Message       string    `bson:"message" json:"message"`
	AppointmentID string    `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	Read          bool      `bson:"read" json:"read"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// ReminderPayload is the asynq task payload for a scheduled appointment
// reminder. The handler re-reads the appointment at fire time, so the payload
// only needs to identify it.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	RequesterID   string `json:"requesterId"`
	FireDate      string `json:"fireDate"`
}
