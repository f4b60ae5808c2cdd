// Package ecode defines the business error codes returned by the API and the
// typed error used to carry them from the data layer up to the HTTP handlers.
//
// # Error Code Convention
//
//   - 0: Success (OK)
//   - -100 to -199: Authentication errors
//   - -400 to -499: Request and resource errors
//   - -500+: Server errors
//   - -1000 and below: Job portal specific errors
//
// # Typed Errors
//
// Repositories and services return *ecode.Error values. Errors compare by code,
// so any error carrying AccessDenied matches ErrForbidden:
//
//	job, err := svc.Job.Get(ctx, id)
//	if errors.Is(err, ecode.ErrNotFound) {
//	    // 404
//	}
//
// Use Wrap to attach a cause without losing the code:
//
//	return ecode.Wrap(ecode.ServerErr, "failed to list jobs", err)
//
// # HTTP Status Mapping
//
//	ecode.ToHTTPStatus(ecode.NothingFound) // 404
//	ecode.ToHTTPStatus(ecode.DanglingReference) // 409
package ecode
