package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDocumentSet(t *testing.T) {
	for _, tt := range []struct {
		name    string
		field   string
		value   interface{}
		want    interface{}
		wantErr string
	}{
		{
			name:  "string",
			field: "customString",
			value: "value",
			want:  "value",
		},
		{
			name:  "number",
			field: "customNumber",
			value: 86,
			want:  86,
		},
		{
			name:  "bool",
			field: "customBool",
			value: true,
			want:  true,
		},
		{
			name:  "nil",
			field: "customNull",
			value: nil,
			want:  nil,
		},
		{
			name:  "time is normalised to RFC3339",
			field: "customDate",
			value: time.Date(2020, 4, 30, 12, 0, 0, 0, time.UTC),
			want:  "2020-04-30T12:00:00Z",
		},
		{
			name:  "array",
			field: "customArray",
			value: []interface{}{"a", 1},
			want:  []interface{}{"a", 1},
		},
		{
			name:  "object",
			field: "customObject",
			value: map[string]interface{}{"k": "v"},
			want:  map[string]interface{}{"k": "v"},
		},
		{
			name:  "spatial",
			field: "location",
			value: Point{Longitude: -122.35, Latitude: 47.62},
			want:  Point{Longitude: -122.35, Latitude: 47.62},
		},
		{
			name:    "reserved id",
			field:   "id",
			value:   "x",
			wantErr: `field "id" is reserved`,
		},
		{
			name:    "reserved _etag",
			field:   "_etag",
			value:   "x",
			wantErr: `field "_etag" is reserved`,
		},
		{
			name:    "reserved _self",
			field:   "_self",
			value:   "x",
			wantErr: `field "_self" is reserved`,
		},
		{
			name:    "unsupported type",
			field:   "customChannel",
			value:   make(chan struct{}),
			wantErr: `field "customChannel": unsupported type chan struct {}`,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{}

			err := doc.Set(tt.field, tt.value)
			if err != nil && err.Error() != tt.wantErr ||
				err == nil && tt.wantErr != "" {
				t.Fatal(err)
			}
			if tt.wantErr != "" {
				if _, found := doc.Get(tt.field); found {
					t.Error("rejected field was stored")
				}
				return
			}

			v, found := doc.Get(tt.field)
			if !found {
				t.Fatal("field not found")
			}
			if diff := cmp.Diff(tt.want, v); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestDocumentFieldsIsACopy(t *testing.T) {
	doc := &Document{}

	err := doc.Set("custom", "value")
	if err != nil {
		t.Fatal(err)
	}

	fields := doc.Fields()
	fields["custom"] = "mutated"
	fields["other"] = "added"

	v, _ := doc.Get("custom")
	if v != "value" {
		t.Error(v)
	}
	if _, found := doc.Get("other"); found {
		t.Error("mutation leaked into document")
	}
}
