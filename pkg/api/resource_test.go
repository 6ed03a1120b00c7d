package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	for _, tt := range []struct {
		name    string
		id      string
		wantErr string
	}{
		{
			name: "simple",
			id:   "Test1",
		},
		{
			name: "255 characters",
			id:   strings.Repeat("a", 255),
		},
		{
			name:    "256 characters",
			id:      strings.Repeat("a", 256),
			wantErr: `invalid resource id "` + strings.Repeat("a", 256) + `": length 256 exceeds 255`,
		},
		{
			name:    "slash",
			id:      "a/b",
			wantErr: `invalid resource id "a/b": illegal character '/'`,
		},
		{
			name:    "question mark",
			id:      "a?b",
			wantErr: `invalid resource id "a?b": illegal character '?'`,
		},
		{
			name:    "hash",
			id:      "a#b",
			wantErr: `invalid resource id "a#b": illegal character '#'`,
		},
		{
			name:    "space",
			id:      "a b",
			wantErr: `invalid resource id "a b": contains whitespace`,
		},
		{
			name:    "tab",
			id:      "a\tb",
			wantErr: "invalid resource id \"a\\tb\": contains whitespace",
		},
		{
			name: "empty",
			id:   "",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if err != nil && err.Error() != tt.wantErr ||
				err == nil && tt.wantErr != "" {
				t.Error(err)
			}

			if tt.wantErr != "" {
				if _, ok := err.(*InvalidIDError); !ok {
					t.Errorf("%T", err)
				}
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()

	if err := ValidateID(id); err != nil {
		t.Error(err)
	}
	if len(id) != 36 {
		t.Error(id)
	}
	if id == GenerateID() {
		t.Error("ids not unique")
	}
}
