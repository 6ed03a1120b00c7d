package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"strings"
	"unicode"

	uuid "github.com/gofrs/uuid"
)

// Resource is the envelope common to every Cosmos DB resource.  ID is the
// user-assigned name.  The underscore-prefixed fields are set by the service
// on a successful round trip and are never synthesised client-side, with the
// exception of the alt link, which is derived locally from the
// x-ms-alt-content-path response header and kept out of serialisation.
type Resource struct {
	ID          string `json:"id,omitempty"`
	ResourceID  string `json:"_rid,omitempty"`
	Self        string `json:"_self,omitempty"`
	ETag        string `json:"_etag,omitempty"`
	Timestamp   int    `json:"_ts,omitempty"`
	Attachments string `json:"_attachments,omitempty"`

	altLink string
}

// Envelope returns the embedded envelope.  Every resource kind satisfies
// Linkable through it.
func (r *Resource) Envelope() *Resource { return r }

// AltLink returns the locally synthesised name-based path of the resource, or
// "" if it has not been resolved.
func (r *Resource) AltLink() string { return r.altLink }

// SetAltLink records the name-based path of the resource.
func (r *Resource) SetAltLink(altLink string) { r.altLink = altLink }

// Linkable is implemented by every resource kind.
type Linkable interface {
	Envelope() *Resource
}

// Feed is implemented by every resource list kind.
type Feed interface {
	Items() []Linkable
}

const maxIDLength = 255

// ValidateID checks the Cosmos DB resource naming rules: at most 255
// characters, no whitespace and none of '/', '?', '#'.  Violations are
// reported before any network traffic happens.
func ValidateID(id string) error {
	if len(id) > maxIDLength {
		return &InvalidIDError{ID: id, Reason: fmt.Sprintf("length %d exceeds %d", len(id), maxIDLength)}
	}

	if i := strings.IndexAny(id, `/?#`); i >= 0 {
		return &InvalidIDError{ID: id, Reason: fmt.Sprintf("illegal character %q", id[i])}
	}

	for _, r := range id {
		if unicode.IsSpace(r) {
			return &InvalidIDError{ID: id, Reason: "contains whitespace"}
		}
	}

	return nil
}

// GenerateID returns a random resource id, used when the caller creates a
// resource without naming it.
func GenerateID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// InvalidIDError is returned when a resource id violates the service's
// naming rules.
type InvalidIDError struct {
	ID     string
	Reason string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid resource id %q: %s", e.ID, e.Reason)
}
