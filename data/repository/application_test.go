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

const appsNS = "jobportal.application"

func newAppRepo(mt *mtest.T) ApplicationRepository {
	return NewApplicationRepository(mt.DB.Collection("application"), mt.DB.Collection("jobs"), nil)
}

func TestApplicationListByApplicant(t *testing.T) {
	mt := newMock(t)

	mt.Run("enriched", func(mt *mtest.T) {
		jobID := primitive.NewObjectID()
		appID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, appsNS, mtest.FirstBatch,
			bson.D{
				{Key: "application", Value: bson.D{
					{Key: "_id", Value: appID},
					{Key: "jobId", Value: jobID.Hex()},
					{Key: "applicant", Value: "me@mail.io"},
					{Key: "linkedIn", Value: "https://linkedin.com/in/me"},
				}},
				{Key: "job", Value: bson.D{
					{Key: "_id", Value: jobID},
					{Key: "company", Value: "Acme"},
					{Key: "title", Value: "Go Engineer"},
					{Key: "company_logo", Value: "https://acme.io/logo.png"},
				}},
			},
		))

		apps, err := newAppRepo(mt).ListByApplicant(context.Background(), "me@mail.io")
		require.NoError(mt, err)
		require.Len(mt, apps, 1)
		assert.Equal(mt, appID, apps[0].ID)
		assert.Equal(mt, "Acme", apps[0].Company)
		assert.Equal(mt, "Go Engineer", apps[0].Title)
		assert.Equal(mt, "https://acme.io/logo.png", apps[0].CompanyLogo)
		assert.Equal(mt, "https://linkedin.com/in/me", apps[0].Extra["linkedIn"])

		started := mt.GetStartedEvent()
		assert.Equal(mt, "aggregate", started.CommandName)
		stages, err := started.Command.Lookup("pipeline").Array().Values()
		require.NoError(mt, err)
		match := stages[0].Document().Lookup("$match").Document()
		assert.Equal(mt, "me@mail.io", match.Lookup("applicant").StringValue())
		lookup := stages[1].Document().Lookup("$lookup").Document()
		assert.Equal(mt, "jobs", lookup.Lookup("from").StringValue())
	})

	mt.Run("dangling job", func(mt *mtest.T) {
		appID := primitive.NewObjectID()
		missing := primitive.NewObjectID().Hex()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, appsNS, mtest.FirstBatch,
			bson.D{{Key: "application", Value: bson.D{
				{Key: "_id", Value: appID}, {Key: "jobId", Value: missing}, {Key: "applicant", Value: "me@mail.io"},
			}}},
		))

		_, err := newAppRepo(mt).ListByApplicant(context.Background(), "me@mail.io")
		require.Error(mt, err)
		assert.True(mt, errors.Is(err, ecode.ErrDanglingReference))
		assert.Contains(mt, err.Error(), appID.Hex())
		assert.Contains(mt, err.Error(), missing)
	})

	mt.Run("empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, appsNS, mtest.FirstBatch))

		apps, err := newAppRepo(mt).ListByApplicant(context.Background(), "nobody@mail.io")
		require.NoError(mt, err)
		assert.NotNil(mt, apps)
		assert.Empty(mt, apps)
	})
}

func TestApplicationListByJob(t *testing.T) {
	mt := newMock(t)

	mt.Run("raw rows", func(mt *mtest.T) {
		jobID := primitive.NewObjectID().Hex()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, appsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "jobId", Value: jobID}, {Key: "applicant", Value: "a@mail.io"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "jobId", Value: jobID}, {Key: "applicant", Value: "b@mail.io"}},
		))

		apps, err := newAppRepo(mt).ListByJob(context.Background(), jobID)
		require.NoError(mt, err)
		require.Len(mt, apps, 2)
		assert.Empty(mt, apps[0].Company)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(mt, jobID, filter.Lookup("jobId").StringValue())
	})
}

func TestApplicationFindByID(t *testing.T) {
	mt := newMock(t)

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, appsNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: id}, {Key: "jobId", Value: "x"}, {Key: "applicant", Value: "a@mail.io"}, {Key: "status", Value: "pending"}},
		))
		app, err := newAppRepo(mt).FindByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "pending", app.Status)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, appsNS, mtest.FirstBatch))
		_, err := newAppRepo(mt).FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.True(mt, errors.Is(err, ecode.ErrNotFound))
	})
}

func TestApplicationCreate(t *testing.T) {
	mt := newMock(t)

	mt.Run("strips derived fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		app := &Application{JobID: primitive.NewObjectID().Hex(), Applicant: "a@mail.io", Status: "pending", Company: "Injected"}
		res, err := newAppRepo(mt).Create(context.Background(), app)
		require.NoError(mt, err)
		assert.Equal(mt, app.ID.Hex(), res.InsertedID)

		doc := mt.GetStartedEvent().Command.Lookup("documents").Array().Index(0).Document()
		_, err = doc.LookupErr("company")
		assert.Error(mt, err)
		assert.Equal(mt, "pending", doc.Lookup("status").StringValue())
	})
}

func TestApplicationUpdateStatus(t *testing.T) {
	mt := newMock(t)

	mt.Run("updated", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		res, err := newAppRepo(mt).UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), "hired")
		require.NoError(mt, err)
		assert.EqualValues(mt, 1, res.MatchedCount)
		assert.EqualValues(mt, 1, res.ModifiedCount)

		update := mt.GetStartedEvent().Command.Lookup("updates").Array().Index(0).Document().Lookup("u").Document()
		set := update.Lookup("$set").Document()
		assert.Equal(mt, "hired", set.Lookup("status").StringValue())
		elems, err := set.Elements()
		require.NoError(mt, err)
		assert.Len(mt, elems, 1)
	})

	mt.Run("no match", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		_, err := newAppRepo(mt).UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), "hired")
		assert.True(mt, errors.Is(err, ecode.ErrNotFound))
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		_, err := newAppRepo(mt).UpdateStatus(context.Background(), "123", "hired")
		assert.True(mt, errors.Is(err, ecode.ErrBadRequest))
	})
}
