// Package resp writes the API's JSON responses.
//
// Successful responses carry the payload as the raw body so clients receive
// arrays and documents unwrapped:
//
//	resp.Success(w, jobs)
//	resp.WithStatusCode(w, http.StatusCreated, result)
//
// Failures use a fixed envelope:
//
//	{
//	  "code": -404,
//	  "message": "job not found",
//	  "errors": {...}   // per-field validation messages, when present
//	}
//
// Handlers normally translate service errors with FromError:
//
//	if err != nil {
//	    resp.Fail(c.Writer, resp.FromError(err))
//	    return
//	}
package resp
