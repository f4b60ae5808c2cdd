package repository

import (
	"context"
	"errors"
	"time"

	"github.com/careercode/jobportal/ecode"
	"github.com/careercode/jobportal/logging/observes"
	"github.com/careercode/jobportal/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/attribute"
)

// observe runs fn inside a repository span and records its latency.
func observe(ctx context.Context, collector metrics.Collector, coll *mongo.Collection, op string, fn func(context.Context) error) error {
	name := coll.Name()
	ctx, span := observes.StartSpan(ctx, observes.LayerRepo, name+"."+op,
		attribute.String("db.system", "mongodb"),
		attribute.String("db.collection.name", name),
		attribute.String("db.operation.name", op),
	)
	start := time.Now()
	err := fn(ctx)

	// caller errors are not store failures
	var storeErr error
	if err != nil && ecode.CodeOf(err) == ecode.ServerErr {
		storeErr = err
	}
	collector.MongoOperation(name, op, time.Since(start), storeErr)
	observes.EndSpan(span, storeErr)
	return err
}

// storeError wraps a driver failure, mapping a missing document to NotFound.
func storeError(err error, msg string, notFound string) error {
	if errors.Is(err, mongo.ErrNoDocuments) && notFound != "" {
		return ecode.NotFound(notFound)
	}
	return ecode.Wrap(ecode.ServerErr, msg, err)
}
