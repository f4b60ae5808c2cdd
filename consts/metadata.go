// Package consts holds header, query and context key names shared across layers.
package consts

// AuthorizationKey Authorization header key
const AuthorizationKey string = "Authorization"

// BearerKey Bearer token prefix
const BearerKey string = "Bearer "

// TraceKey request id header, echoed on the response
const TraceKey string = "X-Request-ID"

// EmailQueryKey query parameter the ownership check compares against
const EmailQueryKey = "email"

// JobIDParam route parameter naming a job
const JobIDParam = "job_id"

// IDParam route parameter naming a document
const IDParam = "id"
