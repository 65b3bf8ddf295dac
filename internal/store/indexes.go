package store

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the stores rely on. The unique eventId
// index is what rejects duplicate submissions.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "externalId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("externalId_unique"),
	})
	if err != nil {
		return errors.Wrap(err, "users index")
	}

	_, err = database.Collection("events").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "eventId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("eventId_unique"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "eventTime", Value: -1}},
			Options: options.Index().SetName("userId_eventTime"),
		},
	})
	if err != nil {
		return errors.Wrap(err, "events indexes")
	}

	_, err = database.Collection("audit").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("timestamp_desc"),
	})
	return errors.Wrap(err, "audit index")
}
