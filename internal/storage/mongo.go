package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoKV keeps one document per key in the "blobs" collection.
type MongoKV struct {
	Client *mongo.Client
	Blobs  *mongo.Collection
}

type blobDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func NewMongoKV(uri, database string) (*MongoKV, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	log.Println("Successfully connected to MongoDB!")

	return &MongoKV{
		Client: client,
		Blobs:  client.Database(database).Collection("blobs"),
	}, nil
}

func (m *MongoKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc blobDocument
	err := m.Blobs.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %v", key, err)
	}
	return doc.Value, true, nil
}

func (m *MongoKV) Set(ctx context.Context, key string, value []byte) error {
	doc := blobDocument{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := m.Blobs.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write %s: %v", key, err)
	}
	return nil
}

func (m *MongoKV) Delete(ctx context.Context, key string) error {
	_, err := m.Blobs.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (m *MongoKV) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
