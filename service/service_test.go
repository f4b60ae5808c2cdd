package service

import (
	"context"
	"testing"

	"github.com/careercode/jobportal/config"
	"github.com/careercode/jobportal/data/repository"
	"github.com/careercode/jobportal/ecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	hr    = "hr@acme.io"
	alice = "alice@example.com"
	bob   = "bob@example.com"
)

func appConfig() *config.Application {
	return &config.Application{
		Statuses:      []string{"pending", "reviewing", "interview", "hired", "rejected"},
		DefaultStatus: "pending",
	}
}

type fixture struct {
	jobs *fakeJobs
	apps *fakeApps
	svc  *Service
	job  *repository.Job
	app  *repository.Application
}

func newFixture() *fixture {
	job := &repository.Job{
		ID: primitive.NewObjectID(), HREmail: hr, Title: "Go Engineer", Company: "Acme",
		CompanyLogo: "https://acme.io/logo.png",
	}
	app := &repository.Application{ID: primitive.NewObjectID(), JobID: job.ID.Hex(), Applicant: alice, Status: "pending"}
	jobs := newFakeJobs(job)
	apps := newFakeApps(jobs, app)
	return &fixture{jobs: jobs, apps: apps, svc: New(jobs, apps, appConfig()), job: job, app: app}
}

func codeOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return ecode.CodeOf(err)
}

func TestJobCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	res, err := f.svc.Job.Create(ctx, &repository.Job{HREmail: hr, Title: "SRE"})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.NotEmpty(t, res.InsertedID)

	_, err = f.svc.Job.Create(ctx, &repository.Job{HREmail: "not-an-email"})
	assert.Equal(t, ecode.RequestErr, codeOf(t, err))
	var e *ecode.Error
	require.ErrorAs(t, err, &e)
	assert.Contains(t, e.Fields, "hr_email")
	assert.Contains(t, e.Fields, "title")

	_, err = f.svc.Job.Create(ctx, nil)
	assert.Equal(t, ecode.RequestErr, codeOf(t, err))
	assert.Len(t, f.jobs.created, 1)
}

func TestJobGetAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	job, err := f.svc.Job.Get(ctx, f.job.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Go Engineer", job.Title)

	_, err = f.svc.Job.Get(ctx, "xyz")
	assert.Equal(t, ecode.RequestErr, codeOf(t, err))

	_, err = f.svc.Job.Get(ctx, primitive.NewObjectID().Hex())
	assert.Equal(t, ecode.NothingFound, codeOf(t, err))

	jobs, err := f.svc.Job.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, jobs)

	jobs, err = f.svc.Job.ListForEmployer(ctx, hr)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	_, err = f.svc.Job.ListForEmployer(ctx, "")
	assert.Equal(t, ecode.RequestErr, codeOf(t, err))
}

func TestApplicationCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults status to pending", func(t *testing.T) {
		f := newFixture()
		app := &repository.Application{JobID: f.job.ID.Hex(), Applicant: bob}
		res, err := f.svc.Application.Create(ctx, bob, app)
		require.NoError(t, err)
		assert.NotEmpty(t, res.InsertedID)
		require.Len(t, f.apps.created, 1)
		assert.Equal(t, "pending", f.apps.created[0].Status)
	})

	t.Run("applicant must be caller", func(t *testing.T) {
		f := newFixture()
		app := &repository.Application{JobID: f.job.ID.Hex(), Applicant: alice}
		_, err := f.svc.Application.Create(ctx, bob, app)
		assert.Equal(t, ecode.AccessDenied, codeOf(t, err))
		assert.Empty(t, f.apps.created)
	})

	t.Run("missing job is dangling", func(t *testing.T) {
		f := newFixture()
		app := &repository.Application{JobID: primitive.NewObjectID().Hex(), Applicant: bob}
		_, err := f.svc.Application.Create(ctx, bob, app)
		assert.ErrorIs(t, err, ecode.ErrDanglingReference)
		assert.Empty(t, f.apps.created)
	})

	t.Run("invalid payload", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Application.Create(ctx, bob, &repository.Application{JobID: "nope", Applicant: bob})
		assert.Equal(t, ecode.RequestErr, codeOf(t, err))
		var e *ecode.Error
		require.ErrorAs(t, err, &e)
		assert.Contains(t, e.Fields, "jobId")
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture()
		app := &repository.Application{JobID: f.job.ID.Hex(), Applicant: bob, Status: "ghosted"}
		_, err := f.svc.Application.Create(ctx, bob, app)
		assert.Equal(t, ecode.RequestErr, codeOf(t, err))
	})
}

func TestApplicationListByJob(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	apps, err := f.svc.Application.ListByJob(ctx, hr, f.job.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	_, err = f.svc.Application.ListByJob(ctx, alice, f.job.ID.Hex())
	assert.Equal(t, ecode.AccessDenied, codeOf(t, err))

	_, err = f.svc.Application.ListByJob(ctx, hr, primitive.NewObjectID().Hex())
	assert.Equal(t, ecode.NothingFound, codeOf(t, err))

	_, err = f.svc.Application.ListByJob(ctx, hr, "bad")
	assert.Equal(t, ecode.RequestErr, codeOf(t, err))
}

func TestApplicationUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates", func(t *testing.T) {
		f := newFixture()
		res, err := f.svc.Application.UpdateStatus(ctx, hr, f.app.ID.Hex(), "interview")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.MatchedCount)
		assert.Equal(t, int64(1), res.ModifiedCount)
		assert.Equal(t, "interview", f.apps.updates[f.app.ID.Hex()])
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Application.UpdateStatus(ctx, alice, f.app.ID.Hex(), "hired")
		assert.Equal(t, ecode.AccessDenied, codeOf(t, err))
		assert.Empty(t, f.apps.updates)
	})

	t.Run("status validation", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Application.UpdateStatus(ctx, hr, f.app.ID.Hex(), "")
		assert.Equal(t, ecode.RequestErr, codeOf(t, err))
		_, err = f.svc.Application.UpdateStatus(ctx, hr, f.app.ID.Hex(), "maybe")
		assert.Equal(t, ecode.RequestErr, codeOf(t, err))
		assert.Empty(t, f.apps.updates)
	})

	t.Run("missing application", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Application.UpdateStatus(ctx, hr, primitive.NewObjectID().Hex(), "hired")
		assert.Equal(t, ecode.NothingFound, codeOf(t, err))
	})

	t.Run("dangling job", func(t *testing.T) {
		f := newFixture()
		delete(f.jobs.jobs, f.job.ID.Hex())
		_, err := f.svc.Application.UpdateStatus(ctx, hr, f.app.ID.Hex(), "hired")
		assert.ErrorIs(t, err, ecode.ErrDanglingReference)
	})
}

func TestApplicationGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id := f.app.ID.Hex()

	app, err := f.svc.Application.Get(ctx, alice, id)
	require.NoError(t, err)
	assert.Equal(t, alice, app.Applicant)

	_, err = f.svc.Application.Get(ctx, hr, id)
	require.NoError(t, err)

	_, err = f.svc.Application.Get(ctx, bob, id)
	assert.Equal(t, ecode.AccessDenied, codeOf(t, err))

	apps, err := f.svc.Application.ListByApplicant(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestJobCreateThenList(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	job := &repository.Job{
		HREmail: hr, Title: "SRE", Company: "Acme", CompanyLogo: "https://acme.io/logo.png",
		Extra: bson.M{"location": "Remote"},
	}
	res, err := f.svc.Job.Create(ctx, job)
	require.NoError(t, err)

	for _, email := range []string{hr, ""} {
		jobs, err := f.svc.Job.List(ctx, email)
		require.NoError(t, err)
		var found []*repository.Job
		for _, j := range jobs {
			if j.ID.Hex() == res.InsertedID {
				found = append(found, j)
			}
		}
		require.Len(t, found, 1, "filter %q", email)
		assert.Equal(t, job, found[0])
	}

	jobs, err := f.svc.Job.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestApplicationCreateThenListByApplicant(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	app := &repository.Application{JobID: f.job.ID.Hex(), Applicant: bob, Extra: bson.M{"resume": "https://cv.example.com/bob"}}
	res, err := f.svc.Application.Create(ctx, bob, app)
	require.NoError(t, err)

	apps, err := f.svc.Application.ListByApplicant(ctx, bob)
	require.NoError(t, err)
	require.Len(t, apps, 1)

	want := &repository.Application{
		ID:          app.ID,
		JobID:       f.job.ID.Hex(),
		Applicant:   bob,
		Status:      "pending",
		Company:     "Acme",
		Title:       "Go Engineer",
		CompanyLogo: "https://acme.io/logo.png",
		Extra:       bson.M{"resume": "https://cv.example.com/bob"},
	}
	assert.Equal(t, res.InsertedID, apps[0].ID.Hex())
	assert.Equal(t, want, apps[0])

	// Enrichment is a view; the stored application and Get stay unenriched.
	got, err := f.svc.Application.Get(ctx, bob, res.InsertedID)
	require.NoError(t, err)
	assert.Empty(t, got.Company)
	assert.Empty(t, got.Title)
	assert.Empty(t, got.CompanyLogo)

	delete(f.jobs.jobs, f.job.ID.Hex())
	_, err = f.svc.Application.ListByApplicant(ctx, bob)
	assert.ErrorIs(t, err, ecode.ErrDanglingReference)
}

func TestApplicationUpdateStatusThenGet(t *testing.T) {
	ctx := context.Background()

	for _, status := range appConfig().Statuses {
		t.Run(status, func(t *testing.T) {
			f := newFixture()
			id := f.app.ID.Hex()
			f.apps.apps[id].Extra = bson.M{"note": "strong"}

			before, err := f.svc.Application.Get(ctx, hr, id)
			require.NoError(t, err)

			_, err = f.svc.Application.UpdateStatus(ctx, hr, id, status)
			require.NoError(t, err)

			after, err := f.svc.Application.Get(ctx, hr, id)
			require.NoError(t, err)
			assert.Equal(t, status, after.Status)

			want := *before
			want.Status = status
			assert.Equal(t, &want, after)
		})
	}
}
