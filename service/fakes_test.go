package service

import (
	"context"
	"maps"

	"github.com/careercode/jobportal/data/repository"
	"github.com/careercode/jobportal/ecode"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeJobs struct {
	jobs    map[string]*repository.Job
	created []*repository.Job
}

func newFakeJobs(jobs ...*repository.Job) *fakeJobs {
	f := &fakeJobs{jobs: map[string]*repository.Job{}}
	for _, j := range jobs {
		f.jobs[j.ID.Hex()] = j
	}
	return f
}

// copyJob and copyApp keep stored records apart from what callers hold,
// like documents read back from the store.
func copyJob(j *repository.Job) *repository.Job {
	c := *j
	c.Extra = maps.Clone(j.Extra)
	return &c
}

func copyApp(a *repository.Application) *repository.Application {
	c := *a
	c.Extra = maps.Clone(a.Extra)
	return &c
}

func (f *fakeJobs) List(_ context.Context, hrEmail string) ([]*repository.Job, error) {
	out := []*repository.Job{}
	for _, j := range f.jobs {
		if hrEmail == "" || j.HREmail == hrEmail {
			out = append(out, copyJob(j))
		}
	}
	return out, nil
}

func (f *fakeJobs) FindByID(_ context.Context, id string) (*repository.Job, error) {
	if _, err := repository.ParseObjectID("id", id); err != nil {
		return nil, err
	}
	j, ok := f.jobs[id]
	if !ok {
		return nil, ecode.NotFound(ecode.NotExist("job " + id))
	}
	return copyJob(j), nil
}

func (f *fakeJobs) Create(_ context.Context, job *repository.Job) (*repository.InsertResult, error) {
	job.ID = primitive.NewObjectID()
	f.jobs[job.ID.Hex()] = copyJob(job)
	f.created = append(f.created, copyJob(job))
	return &repository.InsertResult{Acknowledged: true, InsertedID: job.ID.Hex()}, nil
}

func (f *fakeJobs) ListWithApplicationCounts(ctx context.Context, hrEmail string) ([]*repository.Job, error) {
	return f.List(ctx, hrEmail)
}

type fakeApps struct {
	jobs    *fakeJobs
	apps    map[string]*repository.Application
	created []*repository.Application
	updates map[string]string
}

func newFakeApps(jobs *fakeJobs, apps ...*repository.Application) *fakeApps {
	f := &fakeApps{jobs: jobs, apps: map[string]*repository.Application{}, updates: map[string]string{}}
	for _, a := range apps {
		f.apps[a.ID.Hex()] = a
	}
	return f
}

func (f *fakeApps) ListByApplicant(_ context.Context, email string) ([]*repository.Application, error) {
	out := []*repository.Application{}
	for _, a := range f.apps {
		if a.Applicant != email {
			continue
		}
		j, ok := f.jobs.jobs[a.JobID]
		if !ok {
			return nil, ecode.Newf(ecode.DanglingReference, "application %s references missing job %s", a.ID.Hex(), a.JobID)
		}
		c := copyApp(a)
		c.Company, c.Title, c.CompanyLogo = j.Company, j.Title, j.CompanyLogo
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeApps) ListByJob(_ context.Context, jobID string) ([]*repository.Application, error) {
	out := []*repository.Application{}
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, copyApp(a))
		}
	}
	return out, nil
}

func (f *fakeApps) FindByID(_ context.Context, id string) (*repository.Application, error) {
	if _, err := repository.ParseObjectID("id", id); err != nil {
		return nil, err
	}
	a, ok := f.apps[id]
	if !ok {
		return nil, ecode.NotFound(ecode.NotExist("application " + id))
	}
	return copyApp(a), nil
}

func (f *fakeApps) Create(_ context.Context, app *repository.Application) (*repository.InsertResult, error) {
	app.ID = primitive.NewObjectID()
	f.apps[app.ID.Hex()] = copyApp(app)
	f.created = append(f.created, copyApp(app))
	return &repository.InsertResult{Acknowledged: true, InsertedID: app.ID.Hex()}, nil
}

func (f *fakeApps) UpdateStatus(_ context.Context, id, status string) (*repository.UpdateResult, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, ecode.NotFound(ecode.NotExist("application " + id))
	}
	modified := int64(0)
	if a.Status != status {
		modified = 1
	}
	a.Status = status
	f.updates[id] = status
	return &repository.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: modified}, nil
}
