package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// tour does not exist in the record store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service and form functions when input fails
// business rule validation (e.g. missing required field, end date before
// start date, disallowed image type).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUpload is returned by the image store when the object store rejects an
// upload or the network call fails. Callers use it to tell an upload failure
// apart from a record store failure, since a failed upload must abort the
// whole submission before any create or update is attempted.
var ErrUpload = errors.New("upload failed")
