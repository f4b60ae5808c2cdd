package repository

import (
	"encoding/json"

	"github.com/careercode/jobportal/ecode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job is a posting in the jobs collection. Fields other than the named ones
// are kept in Extra and round-trip unchanged.
type Job struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	HREmail          string             `bson:"hr_email" json:"hr_email" validate:"required,email"`
	Title            string             `bson:"title" json:"title" validate:"required"`
	Company          string             `bson:"company,omitempty" json:"company,omitempty"`
	CompanyLogo      string             `bson:"company_logo,omitempty" json:"company_logo,omitempty" validate:"omitempty,url"`
	ApplicationCount *int64             `bson:"application_count,omitempty" json:"application_count,omitempty"`
	Extra            bson.M             `bson:",inline" json:"-"`
}

// Application is a candidate's application to a Job. Company, Title and
// CompanyLogo are filled from the job on applicant listings only.
type Application struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	JobID       string             `bson:"jobId" json:"jobId" validate:"required,objectid"`
	Applicant   string             `bson:"applicant" json:"applicant" validate:"required,email"`
	Status      string             `bson:"status,omitempty" json:"status,omitempty"`
	Company     string             `bson:"company,omitempty" json:"company,omitempty"`
	Title       string             `bson:"title,omitempty" json:"title,omitempty"`
	CompanyLogo string             `bson:"company_logo,omitempty" json:"company_logo,omitempty"`
	Extra       bson.M             `bson:",inline" json:"-"`
}

// InsertResult is returned by create operations.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult is returned by update operations.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// UnmarshalJSON accepts any object; _id and application_count are ignored.
func (j *Job) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	delete(raw, "_id")
	delete(raw, "application_count")

	var out Job
	if out.HREmail, err = takeString(raw, "hr_email"); err != nil {
		return err
	}
	if out.Title, err = takeString(raw, "title"); err != nil {
		return err
	}
	if out.Company, err = takeString(raw, "company"); err != nil {
		return err
	}
	if out.CompanyLogo, err = takeString(raw, "company_logo"); err != nil {
		return err
	}
	out.Extra = extras(raw)
	*j = out
	return nil
}

// MarshalJSON emits one flat object.
func (j Job) MarshalJSON() ([]byte, error) {
	known := map[string]any{
		"hr_email": j.HREmail,
		"title":    j.Title,
	}
	if !j.ID.IsZero() {
		known["_id"] = j.ID.Hex()
	}
	if j.Company != "" {
		known["company"] = j.Company
	}
	if j.CompanyLogo != "" {
		known["company_logo"] = j.CompanyLogo
	}
	if j.ApplicationCount != nil {
		known["application_count"] = *j.ApplicationCount
	}
	return json.Marshal(flatten(j.Extra, known))
}

// UnmarshalJSON accepts any object; _id and the job-derived fields are ignored.
func (a *Application) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	for _, k := range []string{"_id", "company", "title", "company_logo"} {
		delete(raw, k)
	}

	var out Application
	if out.JobID, err = takeString(raw, "jobId"); err != nil {
		return err
	}
	if out.Applicant, err = takeString(raw, "applicant"); err != nil {
		return err
	}
	if out.Status, err = takeString(raw, "status"); err != nil {
		return err
	}
	out.Extra = extras(raw)
	*a = out
	return nil
}

// MarshalJSON emits one flat object.
func (a Application) MarshalJSON() ([]byte, error) {
	known := map[string]any{
		"jobId":     a.JobID,
		"applicant": a.Applicant,
	}
	if !a.ID.IsZero() {
		known["_id"] = a.ID.Hex()
	}
	for k, v := range map[string]string{
		"status":       a.Status,
		"company":      a.Company,
		"title":        a.Title,
		"company_logo": a.CompanyLogo,
	} {
		if v != "" {
			known[k] = v
		}
	}
	return json.Marshal(flatten(a.Extra, known))
}

// ParseObjectID converts a hex id; a malformed id is a BadRequest naming field.
func ParseObjectID(field, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ecode.Newf(ecode.RequestErr, "%s %q is not a valid id", field, id)
	}
	return oid, nil
}
