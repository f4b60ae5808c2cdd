package repository

import (
	"context"
	"fmt"

	"github.com/careercode/jobportal/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// JobRepository defines the interface for job data operations.
type JobRepository interface {
	List(ctx context.Context, hrEmail string) ([]*Job, error)
	FindByID(ctx context.Context, id string) (*Job, error)
	Create(ctx context.Context, job *Job) (*InsertResult, error)
	ListWithApplicationCounts(ctx context.Context, hrEmail string) ([]*Job, error)
}

type jobRepository struct {
	jobs      *mongo.Collection
	apps      *mongo.Collection
	collector metrics.Collector
}

// NewJobRepository creates a job repository; apps is read for application counts.
func NewJobRepository(jobs, apps *mongo.Collection, collector metrics.Collector) JobRepository {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &jobRepository{jobs: jobs, apps: apps, collector: collector}
}

// List returns all jobs, or those owned by hrEmail when it is non-empty.
func (r *jobRepository) List(ctx context.Context, hrEmail string) ([]*Job, error) {
	filter := bson.M{}
	if hrEmail != "" {
		filter["hr_email"] = hrEmail
	}
	jobs := make([]*Job, 0)
	err := observe(ctx, r.collector, r.jobs, "find", func(ctx context.Context) error {
		cur, err := r.jobs.Find(ctx, filter)
		if err != nil {
			return storeError(err, "failed to list jobs", "")
		}
		if err := cur.All(ctx, &jobs); err != nil {
			return storeError(err, "failed to decode jobs", "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// FindByID returns the job with id.
func (r *jobRepository) FindByID(ctx context.Context, id string) (*Job, error) {
	oid, err := ParseObjectID("job id", id)
	if err != nil {
		return nil, err
	}
	var job Job
	err = observe(ctx, r.collector, r.jobs, "findOne", func(ctx context.Context) error {
		if err := r.jobs.FindOne(ctx, bson.M{"_id": oid}).Decode(&job); err != nil {
			return storeError(err, "failed to find job", fmt.Sprintf("job %s not found", id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Create inserts job with a fresh id.
func (r *jobRepository) Create(ctx context.Context, job *Job) (*InsertResult, error) {
	job.ID = primitive.NewObjectID()
	job.ApplicationCount = nil
	err := observe(ctx, r.collector, r.jobs, "insertOne", func(ctx context.Context) error {
		if _, err := r.jobs.InsertOne(ctx, job); err != nil {
			return storeError(err, "failed to create job", "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &InsertResult{Acknowledged: true, InsertedID: job.ID.Hex()}, nil
}

// ListWithApplicationCounts returns hrEmail's jobs, each with application_count,
// counted in the same aggregation.
func (r *jobRepository) ListWithApplicationCounts(ctx context.Context, hrEmail string) ([]*Job, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"hr_email": hrEmail}}},
		{{Key: "$lookup", Value: bson.M{
			"from": r.apps.Name(),
			"let":  bson.M{"jid": bson.M{"$toString": "$_id"}},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$jobId", "$$jid"}}}},
				bson.M{"$count": "n"},
			},
			"as": "_counts",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"application_count": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$_counts.n", 0}}, 0}},
		}}},
		{{Key: "$project", Value: bson.M{"_counts": 0}}},
	}

	jobs := make([]*Job, 0)
	err := observe(ctx, r.collector, r.jobs, "aggregate", func(ctx context.Context) error {
		cur, err := r.jobs.Aggregate(ctx, pipeline)
		if err != nil {
			return storeError(err, "failed to count applications", "")
		}
		if err := cur.All(ctx, &jobs); err != nil {
			return storeError(err, "failed to decode jobs", "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, j := range jobs {
		if j.ApplicationCount == nil {
			var zero int64
			j.ApplicationCount = &zero
		}
	}
	return jobs, nil
}
