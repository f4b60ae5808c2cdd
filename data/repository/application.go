package repository

import (
	"context"
	"fmt"

	"github.com/careercode/jobportal/ecode"
	"github.com/careercode/jobportal/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationRepository defines the interface for application data operations.
type ApplicationRepository interface {
	ListByApplicant(ctx context.Context, email string) ([]*Application, error)
	ListByJob(ctx context.Context, jobID string) ([]*Application, error)
	FindByID(ctx context.Context, id string) (*Application, error)
	Create(ctx context.Context, app *Application) (*InsertResult, error)
	UpdateStatus(ctx context.Context, id, status string) (*UpdateResult, error)
}

type applicationRepository struct {
	apps      *mongo.Collection
	jobs      *mongo.Collection
	collector metrics.Collector
}

// NewApplicationRepository creates an application repository; jobs is joined for enrichment.
func NewApplicationRepository(apps, jobs *mongo.Collection, collector metrics.Collector) ApplicationRepository {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &applicationRepository{apps: apps, jobs: jobs, collector: collector}
}

// enrichedApplication is one row of the applicant listing aggregation.
type enrichedApplication struct {
	Application Application `bson:"application"`
	Job         *struct {
		Company     string `bson:"company"`
		Title       string `bson:"title"`
		CompanyLogo string `bson:"company_logo"`
	} `bson:"job"`
}

// ListByApplicant returns email's applications with company, title and
// company_logo copied from each referenced job. Any application whose job is
// missing fails the call with DanglingReference.
func (r *applicationRepository) ListByApplicant(ctx context.Context, email string) ([]*Application, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"applicant": email}}},
		{{Key: "$lookup", Value: bson.M{
			"from": r.jobs.Name(),
			"let": bson.M{"jid": bson.M{"$convert": bson.M{
				"input": "$jobId", "to": "objectId", "onError": nil, "onNull": nil,
			}}},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$jid"}}}},
				bson.M{"$project": bson.M{"company": 1, "title": 1, "company_logo": 1}},
			},
			"as": "_job",
		}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": bson.M{
			"application": "$$ROOT",
			"job":         bson.M{"$arrayElemAt": bson.A{"$_job", 0}},
		}}}},
		{{Key: "$project", Value: bson.M{"application._job": 0}}},
	}

	var rows []enrichedApplication
	err := observe(ctx, r.collector, r.apps, "aggregate", func(ctx context.Context) error {
		cur, err := r.apps.Aggregate(ctx, pipeline)
		if err != nil {
			return storeError(err, "failed to list applications", "")
		}
		if err := cur.All(ctx, &rows); err != nil {
			return storeError(err, "failed to decode applications", "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	apps := make([]*Application, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		if row.Job == nil {
			return nil, ecode.Newf(ecode.DanglingReference,
				"application %s references missing job %s", row.Application.ID.Hex(), row.Application.JobID)
		}
		app := row.Application
		app.Company = row.Job.Company
		app.Title = row.Job.Title
		app.CompanyLogo = row.Job.CompanyLogo
		apps = append(apps, &app)
	}
	return apps, nil
}

// ListByJob returns the applications referencing jobID as stored.
func (r *applicationRepository) ListByJob(ctx context.Context, jobID string) ([]*Application, error) {
	apps := make([]*Application, 0)
	err := observe(ctx, r.collector, r.apps, "find", func(ctx context.Context) error {
		cur, err := r.apps.Find(ctx, bson.M{"jobId": jobID})
		if err != nil {
			return storeError(err, "failed to list applications", "")
		}
		if err := cur.All(ctx, &apps); err != nil {
			return storeError(err, "failed to decode applications", "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// FindByID returns the application with id.
func (r *applicationRepository) FindByID(ctx context.Context, id string) (*Application, error) {
	oid, err := ParseObjectID("application id", id)
	if err != nil {
		return nil, err
	}
	var app Application
	err = observe(ctx, r.collector, r.apps, "findOne", func(ctx context.Context) error {
		if err := r.apps.FindOne(ctx, bson.M{"_id": oid}).Decode(&app); err != nil {
			return storeError(err, "failed to find application", fmt.Sprintf("application %s not found", id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Create inserts app with a fresh id. Job-derived fields are never stored.
func (r *applicationRepository) Create(ctx context.Context, app *Application) (*InsertResult, error) {
	app.ID = primitive.NewObjectID()
	app.Company, app.Title, app.CompanyLogo = "", "", ""
	err := observe(ctx, r.collector, r.apps, "insertOne", func(ctx context.Context) error {
		if _, err := r.apps.InsertOne(ctx, app); err != nil {
			return storeError(err, "failed to create application", "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &InsertResult{Acknowledged: true, InsertedID: app.ID.Hex()}, nil
}

// UpdateStatus sets status on application id and nothing else.
func (r *applicationRepository) UpdateStatus(ctx context.Context, id, status string) (*UpdateResult, error) {
	oid, err := ParseObjectID("application id", id)
	if err != nil {
		return nil, err
	}
	var res *mongo.UpdateResult
	err = observe(ctx, r.collector, r.apps, "updateOne", func(ctx context.Context) error {
		var uerr error
		res, uerr = r.apps.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
		if uerr != nil {
			return storeError(uerr, "failed to update application", "")
		}
		if res.MatchedCount == 0 {
			return ecode.NotFound(fmt.Sprintf("application %s not found", id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &UpdateResult{Acknowledged: true, MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}
