// Package data owns the MongoDB client and the repositories built on it.
package data

import (
	"context"
	"fmt"
	"time"

	"github.com/careercode/jobportal/config"
	"github.com/careercode/jobportal/data/repository"
	"github.com/careercode/jobportal/logging/logger"
	"github.com/careercode/jobportal/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Data encapsulates all data layer dependencies.
type Data struct {
	client    *mongo.Client
	db        *mongo.Database
	collector metrics.Collector

	JobRepo         repository.JobRepository
	ApplicationRepo repository.ApplicationRepository
}

// New connects to MongoDB, verifies the connection and builds the repositories.
func New(ctx context.Context, cfg *config.MongoDB, collector metrics.Collector) (*Data, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	if cfg.Username != "" {
		opts.SetAuth(options.Credential{Username: cfg.Username, Password: cfg.Password})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Infof(ctx, "connected to MongoDB database %s", cfg.Database)

	d := NewWithClient(client, cfg, collector)
	if cfg.EnsureIndexes {
		if err := d.EnsureIndexes(ctx, cfg); err != nil {
			logger.Warnf(ctx, "failed to create indexes: %v", err)
		}
	}
	return d, nil
}

// NewWithClient builds the data layer on an existing client.
func NewWithClient(client *mongo.Client, cfg *config.MongoDB, collector metrics.Collector) *Data {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	db := client.Database(cfg.Database)
	jobs := db.Collection(cfg.JobsCollection)
	apps := db.Collection(cfg.ApplicationsCollection)
	return &Data{
		client:          client,
		db:              db,
		collector:       collector,
		JobRepo:         repository.NewJobRepository(jobs, apps, collector),
		ApplicationRepo: repository.NewApplicationRepository(apps, jobs, collector),
	}
}

// EnsureIndexes creates the lookup indexes used by the listings.
func (d *Data) EnsureIndexes(ctx context.Context, cfg *config.MongoDB) error {
	if _, err := d.db.Collection(cfg.JobsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "hr_email", Value: 1}},
	}); err != nil {
		return fmt.Errorf("jobs.hr_email: %w", err)
	}
	if _, err := d.db.Collection(cfg.ApplicationsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "applicant", Value: 1}}},
		{Keys: bson.D{{Key: "jobId", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("application indexes: %w", err)
	}
	return nil
}

// Ping checks the connection and records the result.
func (d *Data) Ping(ctx context.Context) error {
	err := d.client.Ping(ctx, nil)
	d.collector.HealthCheck("mongodb", err == nil)
	return err
}

// Health reports the store status with its response time.
func (d *Data) Health(ctx context.Context) map[string]any {
	start := time.Now()
	err := d.Ping(ctx)
	mongoStatus := map[string]any{
		"healthy":     err == nil,
		"response_ms": time.Since(start).Milliseconds(),
	}
	status := "healthy"
	if err != nil {
		mongoStatus["error"] = err.Error()
		status = "degraded"
	}
	return map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"services":  map[string]any{"mongodb": mongoStatus},
	}
}

// Close disconnects the client.
func (d *Data) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}
