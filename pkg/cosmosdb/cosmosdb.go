package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error represents an error response from the service: a non-2xx status
// code plus the parsed {code, message} body.
type Error struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsErrorStatusCode returns true if err is a service Error with the given
// status code.
func IsErrorStatusCode(err error, statusCode int) bool {
	cerr, ok := err.(*Error)
	return ok && cerr.StatusCode == statusCode
}

// ErrNoMoreResults is returned by an iterator's Next once all pages have
// been consumed.
var ErrNoMoreResults = errors.New("no more results")

// ErrLinkUnknown is returned when a resource is addressed through the link
// cache and the cache has no entry for it.
var ErrLinkUnknown = errors.New("link not known to the link cache")

// ErrReadOnly is returned, before any network traffic, when a write is
// attempted through an authorizer configured with read-only access.
var ErrReadOnly = errors.New("write not permitted: authorizer is read-only")

// PermissionError is returned when a delegated resource token cannot serve
// a request: the resource kind only accepts master-key authorization, or
// the permission provider declined.
type PermissionError struct {
	ResourceType ResourceType
	Reason       string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission error on %q: %s", e.ResourceType, e.Reason)
}

// RetryOnPreconditionFailed calls f and replays it while it fails with a 412
// response, for optimistic-concurrency read-modify-write loops.  This is the
// only retry helper in the package and it is strictly caller opt-in; the
// request pipeline itself never retries, including on 429.
func RetryOnPreconditionFailed(f func() error) (err error) {
	timeout := time.After(time.Minute)

	for {
		err = f()
		if !IsErrorStatusCode(err, http.StatusPreconditionFailed) {
			return
		}

		select {
		case <-timeout:
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}
