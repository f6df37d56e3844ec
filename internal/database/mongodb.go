// Package database provides MongoDB connection and initialization utilities
// #SCHEMA_IMPLEMENTATION: topics, questions and assessments live in one database
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// #INTEGRATION_POINT: Repositories, indexes and the seeder share these collection names
const (
	CollectionTopics      = "topics"
	CollectionQuestions   = "questions"
	CollectionAssessments = "assessments"
)

// Config holds MongoDB connection configuration
type Config struct {
	URI                    string
	Database               string
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

// DefaultConfig returns default MongoDB configuration
func DefaultConfig() Config {
	return Config{
		URI:                    "mongodb://localhost:27017",
		Database:               "riskassess",
		MaxPoolSize:            50,
		MinPoolSize:            5,
		MaxConnIdleTime:        15 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 10 * time.Second,
	}
}

// Client owns the MongoDB connection and the selected database
type Client struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

// NewClient creates a new MongoDB client
func NewClient(cfg Config) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	// #DATA_ASSUMPTION: Questionnaire reads dominate; a small warm pool covers them
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{
		client:   client,
		database: client.Database(cfg.Database),
		config:   cfg,
	}, nil
}

// Database returns the MongoDB database
func (c *Client) Database() *mongo.Database {
	return c.database
}

// Collection returns a MongoDB collection
func (c *Client) Collection(name string) *mongo.Collection {
	return c.database.Collection(name)
}

// Ping verifies the MongoDB connection
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from MongoDB
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// HealthCheck performs a health check on the database connection
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	return nil
}

// EnsureIndexes creates all required database indexes
// #IMPLEMENTATION_DECISION: Indexes created on application startup
// #COMPLETION_DRIVE: Assuming index creation is idempotent
func (c *Client) EnsureIndexes(ctx context.Context, log *zap.Logger) error {
	return NewIndexManager(c.database, log).CreateAllIndexes(ctx)
}

// SeedData seeds the sample questionnaire
// #IMPLEMENTATION_DECISION: Only seeds if data doesn't exist (idempotent)
func (c *Client) SeedData(ctx context.Context, log *zap.Logger) error {
	seeder := NewSeeder(c.database, log)
	return seeder.SeedAll(ctx)
}
