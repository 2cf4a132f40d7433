package models

import "time"

// Slot is one open, unconsumed availability interval published by a
// psychiatrist. Slots carry a stable ID so concurrent mutations cannot
// silently retarget a neighbouring entry; the HTTP layer still accepts
// positional indices and resolves them to IDs.
type Slot struct {
	ID       string `bson:"id" json:"id"`
	Interval `bson:",inline"`
}

// Provider represents a psychiatrist who publishes availability and accepts
// appointment bookings.
type Provider struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Specialty    string    `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Bio          string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Availability []Slot    `bson:"availability" json:"availability"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProviderRegistration defines the payload for registering a psychiatrist.
type ProviderRegistration struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
}

// SlotRequest defines the payload for adding or updating an availability slot.
type SlotRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}
