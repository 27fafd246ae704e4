package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shashiranjanraj/bhandar/config"
)

// Mongo is the document store client. Products and invoices live here.
var Mongo *mongo.Database

var mongoClient *mongo.Client

// ConnectMongo dials the document store and verifies the connection.
func ConnectMongo(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.MongoURI()))
	if err != nil {
		return fmt.Errorf("mongo: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, config.HTTPTimeout())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping: %w", err)
	}

	mongoClient = client
	Mongo = client.Database(config.MongoDB())
	return nil
}

// Collection returns a handle to the named collection in the configured database.
func Collection(name string) *mongo.Collection {
	return Mongo.Collection(name)
}

// DisconnectMongo closes the client. Called during graceful shutdown.
func DisconnectMongo(ctx context.Context) error {
	if mongoClient == nil {
		return nil
	}
	return mongoClient.Disconnect(ctx)
}
