package store

import (
	"context"

	"pixeltrack/internal/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventStore interface {
	// Insert fails with ErrDuplicate when the eventId was already recorded.
	Insert(ctx context.Context, evt *models.Event) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error)
	UpdateDelivery(ctx context.Context, id primitive.ObjectID, delivery models.Delivery) error
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type MongoEvents struct {
	coll *mongo.Collection
}

func NewMongoEvents(coll *mongo.Collection) *MongoEvents {
	return &MongoEvents{coll: coll}
}

func (s *MongoEvents) Insert(ctx context.Context, evt *models.Event) error {
	if evt.ID.IsZero() {
		evt.ID = primitive.NewObjectID()
	}

	_, err := s.coll.InsertOne(ctx, evt)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return errors.Wrapf(err, "insert event %s", evt.EventID)
}

func (s *MongoEvents) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	cursor, err := s.coll.Find(
		ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{
			{Key: "eventTime", Value: -1},
			{Key: "_id", Value: -1},
		}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "find events")
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, errors.Wrap(err, "decode events")
	}

	return events, nil
}

func (s *MongoEvents) UpdateDelivery(ctx context.Context, id primitive.ObjectID, delivery models.Delivery) error {
	res, err := s.coll.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"delivery": delivery}},
	)
	if err != nil {
		return errors.Wrap(err, "update event delivery")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoEvents) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"userId": userID})
	return n, errors.Wrap(err, "count events")
}
