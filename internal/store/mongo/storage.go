package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collTableSessions  = "table_sessions"
	collPickupSessions = "pickup_sessions"
	collSales          = "sales"
	collMenus          = "menus"
)

type Storage struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(cfg.Database)

	return &Storage{
		client:   client,
		database: database,
		config:   cfg,
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) Client() *mongo.Client {
	return s.client
}

func (s *Storage) CreateIndexes(ctx context.Context) error {
	// one open session per table per tenant
	tableIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "table_no", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.database.Collection(collTableSessions).Indexes().CreateMany(ctx, tableIndexes); err != nil {
		return fmt.Errorf("failed to create table_sessions indexes: %w", err)
	}

	pickupIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "order_no", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.database.Collection(collPickupSessions).Indexes().CreateMany(ctx, pickupIndexes); err != nil {
		return fmt.Errorf("failed to create pickup_sessions indexes: %w", err)
	}

	salesIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "invoice_no", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "settled_at", Value: 1}},
		},
	}
	if _, err := s.database.Collection(collSales).Indexes().CreateMany(ctx, salesIndexes); err != nil {
		return fmt.Errorf("failed to create sales indexes: %w", err)
	}

	menusIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "venue_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "products.id", Value: 1}},
		},
	}
	if _, err := s.database.Collection(collMenus).Indexes().CreateMany(ctx, menusIndexes); err != nil {
		return fmt.Errorf("failed to create menus indexes: %w", err)
	}

	return nil
}
