package appointmentRepo

import (
	"context"
	"fmt"

	"mindwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Reserve books an interval atomically: the appointment insert and the
// slot-for-remainders swap on the provider document either both commit or
// neither does. The provider update filter requires the covering slot to
// still exist with the exact bounds the engine read, so a booking that lost
// a race aborts with ErrSlotTaken instead of corrupting the slot list.
func (r *MongoAppointmentRepo) Reserve(
	ctx context.Context,
	providerID string,
	slot models.Slot,
	remainders []models.Slot,
	appointment *models.Appointment,
) error {
	client := r.appointmentColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.appointmentColl.InsertOne(sc, appointment); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert appointment failed: %w", err)
		}

		filter := bson.M{
			"id": providerID,
			"availability": bson.M{
				"$elemMatch": bson.M{
					"id":        slot.ID,
					"date":      slot.Date,
					"startTime": slot.StartTime,
					"endTime":   slot.EndTime,
				},
			},
		}

		// Drop the consumed slot and append the remainders in one pipeline
		// update, keeping the stored order deterministic.
		newSlots := bson.A{}
		for _, rem := range remainders {
			newSlots = append(newSlots, rem)
		}
		pipeline := mongo.Pipeline{
			bson.D{
				{Key: "$set", Value: bson.D{
					{Key: "availability", Value: bson.D{
						{Key: "$concatArrays", Value: bson.A{
							bson.D{
								{Key: "$filter", Value: bson.D{
									{Key: "input", Value: "$availability"},
									{Key: "as", Value: "slot"},
									{Key: "cond", Value: bson.D{
										{Key: "$ne", Value: bson.A{"$$slot.id", slot.ID}},
									}},
								}},
							},
							newSlots,
						}},
					}},
					{Key: "updatedAt", Value: appointment.CreatedAt},
				}},
			},
		}

		res, err := r.providerColl.UpdateOne(sc, filter, pipeline)
		if err != nil {
			return fmt.Errorf("availability update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotTaken
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}

	return nil
}
