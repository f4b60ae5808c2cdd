package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/careercode/jobportal/ecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const jobsNS = "jobportal.jobs"

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func newJobRepo(mt *mtest.T) JobRepository {
	return NewJobRepository(mt.DB.Collection("jobs"), mt.DB.Collection("application"), nil)
}

func TestJobList(t *testing.T) {
	mt := newMock(t)

	mt.Run("all jobs", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, jobsNS, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: id},
				{Key: "hr_email", Value: "hr@acme.io"},
				{Key: "title", Value: "Go Engineer"},
				{Key: "salaryRange", Value: bson.D{{Key: "min", Value: 100}, {Key: "max", Value: 150}}},
			},
		))

		jobs, err := newJobRepo(mt).List(context.Background(), "")
		require.NoError(mt, err)
		require.Len(mt, jobs, 1)
		assert.Equal(mt, id, jobs[0].ID)
		assert.Equal(mt, "Go Engineer", jobs[0].Title)
		assert.Contains(mt, jobs[0].Extra, "salaryRange")

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		_, err = filter.LookupErr("hr_email")
		assert.Error(mt, err, "no owner filter without email")
	})

	mt.Run("filtered by owner", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, jobsNS, mtest.FirstBatch))

		jobs, err := newJobRepo(mt).List(context.Background(), "hr@acme.io")
		require.NoError(mt, err)
		assert.NotNil(mt, jobs)
		assert.Empty(mt, jobs)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, "hr@acme.io", filter.Lookup("hr_email").StringValue())
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "boom"}))

		_, err := newJobRepo(mt).List(context.Background(), "")
		assert.True(mt, errors.Is(err, ecode.ErrServer))
	})
}

func TestJobFindByID(t *testing.T) {
	mt := newMock(t)

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, jobsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id}, {Key: "hr_email", Value: "hr@acme.io"}, {Key: "title", Value: "SRE"}},
		))

		job, err := newJobRepo(mt).FindByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "SRE", job.Title)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, jobsNS, mtest.FirstBatch))

		_, err := newJobRepo(mt).FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.True(mt, errors.Is(err, ecode.ErrNotFound))
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		_, err := newJobRepo(mt).FindByID(context.Background(), "not-an-id")
		assert.True(mt, errors.Is(err, ecode.ErrBadRequest))
	})
}

func TestJobCreate(t *testing.T) {
	mt := newMock(t)

	mt.Run("inserted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		job := &Job{HREmail: "hr@acme.io", Title: "Go Engineer", Extra: bson.M{"location": "Remote"}}
		res, err := newJobRepo(mt).Create(context.Background(), job)
		require.NoError(mt, err)
		assert.True(mt, res.Acknowledged)
		assert.Equal(mt, job.ID.Hex(), res.InsertedID)

		doc := mt.GetStartedEvent().Command.Lookup("documents").Array().Index(0).Document()
		assert.Equal(mt, "Remote", doc.Lookup("location").StringValue())
		assert.Equal(mt, job.ID, doc.Lookup("_id").ObjectID())
	})

	mt.Run("store failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 121, Message: "validation failed"}))

		_, err := newJobRepo(mt).Create(context.Background(), &Job{HREmail: "hr@acme.io", Title: "x"})
		assert.True(mt, errors.Is(err, ecode.ErrServer))
	})
}

func TestJobListWithApplicationCounts(t *testing.T) {
	mt := newMock(t)

	mt.Run("counts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, jobsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "hr_email", Value: "hr@acme.io"},
				{Key: "title", Value: "A"}, {Key: "application_count", Value: int32(3)}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "hr_email", Value: "hr@acme.io"},
				{Key: "title", Value: "B"}, {Key: "application_count", Value: int32(0)}},
		))

		jobs, err := newJobRepo(mt).ListWithApplicationCounts(context.Background(), "hr@acme.io")
		require.NoError(mt, err)
		require.Len(mt, jobs, 2)
		require.NotNil(mt, jobs[0].ApplicationCount)
		assert.EqualValues(mt, 3, *jobs[0].ApplicationCount)
		assert.EqualValues(mt, 0, *jobs[1].ApplicationCount)

		started := mt.GetStartedEvent()
		assert.Equal(mt, "aggregate", started.CommandName)
		stages, err := started.Command.Lookup("pipeline").Array().Values()
		require.NoError(mt, err)
		lookup := stages[1].Document().Lookup("$lookup").Document()
		assert.Equal(mt, "application", lookup.Lookup("from").StringValue())
	})

	mt.Run("missing count becomes zero", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, jobsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "hr_email", Value: "hr@acme.io"}, {Key: "title", Value: "A"}},
		))

		jobs, err := newJobRepo(mt).ListWithApplicationCounts(context.Background(), "hr@acme.io")
		require.NoError(mt, err)
		assert.EqualValues(mt, 0, *jobs[0].ApplicationCount)
	})
}
