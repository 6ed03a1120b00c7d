package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"errors"
	"net/http"
	"testing"
)

func TestError(t *testing.T) {
	for _, tt := range []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "bare status code",
			err:  &Error{StatusCode: http.StatusNotFound},
			want: "404 : ",
		},
		{
			name: "parsed body",
			err:  &Error{StatusCode: http.StatusConflict, Code: "Conflict", Message: "Entity already exists."},
			want: "409 Conflict: Entity already exists.",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Error(got)
			}
		})
	}
}

func TestIsErrorStatusCode(t *testing.T) {
	if !IsErrorStatusCode(&Error{StatusCode: http.StatusNotFound}, http.StatusNotFound) {
		t.Error("matching status code not detected")
	}
	if IsErrorStatusCode(&Error{StatusCode: http.StatusNotFound}, http.StatusConflict) {
		t.Error("mismatched status code detected")
	}
	if IsErrorStatusCode(errors.New("random"), http.StatusNotFound) {
		t.Error("non-service error detected")
	}
}

func TestRetryOnPreconditionFailed(t *testing.T) {
	t.Run("passes through success", func(t *testing.T) {
		calls := 0
		err := RetryOnPreconditionFailed(func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Error(err)
		}
		if calls != 1 {
			t.Error(calls)
		}
	})

	t.Run("passes through other errors", func(t *testing.T) {
		calls := 0
		err := RetryOnPreconditionFailed(func() error {
			calls++
			return &Error{StatusCode: http.StatusNotFound}
		})
		if !IsErrorStatusCode(err, http.StatusNotFound) {
			t.Error(err)
		}
		if calls != 1 {
			t.Error(calls)
		}
	})

	t.Run("replays on 412", func(t *testing.T) {
		calls := 0
		err := RetryOnPreconditionFailed(func() error {
			calls++
			if calls < 3 {
				return &Error{StatusCode: http.StatusPreconditionFailed}
			}
			return nil
		})
		if err != nil {
			t.Error(err)
		}
		if calls != 3 {
			t.Error(calls)
		}
	})
}
