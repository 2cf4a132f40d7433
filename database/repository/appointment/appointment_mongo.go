package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mindwell/database"
	"mindwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB. It
// holds both collections because reserving an appointment mutates the
// provider document in the same transaction.
type MongoAppointmentRepo struct {
	appointmentColl *mongo.Collection
	providerColl    *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.DB()
	return &MongoAppointmentRepo{
		appointmentColl: db.Collection("appointments"),
		providerColl:    db.Collection("providers"),
	}
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var appt models.Appointment
	if err := r.appointmentColl.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) FindByInterval(ctx context.Context, providerID string, iv models.Interval) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	filter := bson.M{
		"providerId": providerID,
		"date":       iv.Date,
		"startTime":  iv.StartTime,
		"endTime":    iv.EndTime,
	}
	var appt models.Appointment
	if err := r.appointmentColl.FindOne(ctx, filter).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up appointment by interval: %w", err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"providerId": providerID})
}

func (r *MongoAppointmentRepo) ListByRequester(ctx context.Context, requesterID string) ([]models.Appointment, error) {
	return r.list(ctx, bson.M{"requesterId": requesterID})
}

func (r *MongoAppointmentRepo) list(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cursor, err := r.appointmentColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)
	var appointments []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, nil
}

func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, appointment *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	update := bson.M{"$set": bson.M{
		"status":       appointment.Status,
		"sessionToken": appointment.SessionToken,
		"updatedAt":    appointment.UpdatedAt,
	}}
	res, err := r.appointmentColl.UpdateOne(ctx, bson.M{"id": appointment.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment %s: %w", appointment.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("appointment %s not found", appointment.ID)
	}
	return nil
}

func (r *MongoAppointmentRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.appointmentColl.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	return nil
}
