package db

import (
	"context"
	"time"

	"pixeltrack/internal/env"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Ctx = context.Background()
var RDB *redis.Client
var Client *mongo.Client
var Database *mongo.Database

var Users *mongo.Collection
var Events *mongo.Collection
var Audit *mongo.Collection

func InitDB(database string) error {
	var err error

	Client, err = mongo.Connect(
		Ctx,
		options.Client().ApplyURI(env.MONGO_URI),
	)
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(Ctx, 10*time.Second)
	defer cancel()

	err = Client.Ping(pingCtx, nil)
	if err != nil {
		log.WithError(err).Error("could not connect to mongodb")
		return err
	}

	// loading collections
	Database = Client.Database(database)
	Users = GetCollection(database, "users", Client)
	Events = GetCollection(database, "events", Client)
	Audit = GetCollection(database, "audit", Client)

	return nil
}

func GetCollection(database string, collectionName string, client *mongo.Client) *mongo.Collection {
	return client.Database(database).Collection(collectionName)
}

func InitCache() error {
	var err error

	RDB = redis.NewClient(&redis.Options{
		Addr:     env.REDIS_ADDR,
		Password: env.REDIS_PASSWORD,
		DB:       env.REDIS_DB,
	})

	err = RDB.Ping(Ctx).Err()
	if err != nil {
		log.WithError(err).Error("could not connect to redis")
		return err
	}

	return nil
}

func Close(ctx context.Context) {
	if RDB != nil {
		_ = RDB.Close()
	}
	if Client != nil {
		_ = Client.Disconnect(ctx)
	}
}
