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

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateAccessToken(ctx context.Context, id primitive.ObjectID, token string) (*models.User, error)
	SetSelectedPixel(ctx context.Context, id primitive.ObjectID, pixelID string) (*models.User, error)
}

type MongoUsers struct {
	coll *mongo.Collection
}

func NewMongoUsers(coll *mongo.Collection) *MongoUsers {
	return &MongoUsers{coll: coll}
}

func (s *MongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoUsers) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"externalId": externalID})
}

func (s *MongoUsers) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	_, err := s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "insert user")
}

func (s *MongoUsers) UpdateAccessToken(ctx context.Context, id primitive.ObjectID, token string) (*models.User, error) {
	return s.updateOne(ctx, id, bson.M{"accessToken": token})
}

func (s *MongoUsers) SetSelectedPixel(ctx context.Context, id primitive.ObjectID, pixelID string) (*models.User, error) {
	return s.updateOne(ctx, id, bson.M{"selectedPixelId": pixelID})
}

func (s *MongoUsers) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := s.coll.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &u, nil
}

func (s *MongoUsers) updateOne(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	var u models.User
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	return &u, nil
}
