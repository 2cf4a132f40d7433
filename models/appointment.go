package models

import "time"

// Appointment lifecycle states.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
	StatusCompleted = "completed"
)

// Appointment represents a booked sub-interval of a psychiatrist's
// availability. (ProviderID, Date, StartTime, EndTime) is unique, enforced by
// a compound index.
type Appointment struct {
	ID           string    `bson:"id" json:"id"`
	ProviderID   string    `bson:"providerId" json:"providerId"`
	RequesterID  string    `bson:"requesterId" json:"requesterId"`
	Date         string    `bson:"date" json:"date"`
	StartTime    string    `bson:"startTime" json:"startTime"`
	EndTime      string    `bson:"endTime" json:"endTime"`
	Status       string    `bson:"status" json:"status"`
	SessionToken string    `bson:"sessionToken,omitempty" json:"sessionToken,omitempty"` // set on confirmation, shared with both parties
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Interval returns the appointment's booked time block.
func (a *Appointment) Interval() Interval {
	return Interval{Date: a.Date, StartTime: a.StartTime, EndTime: a.EndTime}
}

// BookingRequest defines the payload for booking an appointment.
type BookingRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"startTime" binding:"required"`
	EndTime    string `json:"endTime" binding:"required"`
}

// StatusUpdateRequest defines the payload for an appointment status change.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}
