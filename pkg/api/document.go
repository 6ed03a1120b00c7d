package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"time"
)

// reservedFields are managed by the service or by this SDK and may not be
// written through the open-field surface.
var reservedFields = map[string]struct{}{
	"id":           {},
	"_rid":         {},
	"_self":        {},
	"_etag":        {},
	"_ts":          {},
	"_attachments": {},
}

// Document represents a document resource.  Fields beyond the envelope are
// open: they are retained through MissingFields and manipulated with Set and
// Get, which reject the reserved system keys.
type Document struct {
	MissingFields
	Resource
}

// Documents represents a page of document resources.
type Documents struct {
	Count      int         `json:"_count,omitempty"`
	ResourceID string      `json:"_rid,omitempty"`
	Documents  []*Document `json:"Documents,omitempty"`
}

func (docs *Documents) Items() []Linkable {
	items := make([]Linkable, 0, len(docs.Documents))
	for _, doc := range docs.Documents {
		items = append(items, doc)
	}
	return items
}

// Set stores an open field.  The value must be a string, bool, number,
// time.Time, spatial value, []interface{} or map[string]interface{}; reserved
// system keys are rejected.
func (d *Document) Set(field string, value interface{}) error {
	if _, ok := reservedFields[field]; ok {
		return fmt.Errorf("field %q is reserved", field)
	}

	switch v := value.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		[]interface{}, map[string]interface{},
		Point, LineString, Polygon:
	case time.Time:
		value = v.UTC().Format(time.RFC3339)
	default:
		return fmt.Errorf("field %q: unsupported type %T", field, value)
	}

	if d.m == nil {
		d.m = map[string]interface{}{}
	}
	d.m[field] = value

	return nil
}

// Get returns an open field and whether it is present.
func (d *Document) Get(field string) (interface{}, bool) {
	v, ok := d.m[field]
	return v, ok
}

// Fields returns a copy of the open fields.
func (d *Document) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, len(d.m))
	for k, v := range d.m {
		fields[k] = v
	}
	return fields
}
