package env

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"testing"
)

func TestValidateVars(t *testing.T) {
	for _, tt := range []struct {
		name    string
		vars    map[string]string
		check   []string
		wantErr string
	}{
		{
			name:  "all set",
			vars:  map[string]string{"TEST_VAR_A": "a", "TEST_VAR_B": ""},
			check: []string{"TEST_VAR_A", "TEST_VAR_B"},
		},
		{
			name:    "missing",
			vars:    map[string]string{"TEST_VAR_A": "a"},
			check:   []string{"TEST_VAR_A", "TEST_VAR_C"},
			wantErr: `environment variable "TEST_VAR_C" unset`,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.vars {
				t.Setenv(k, v)
			}

			err := ValidateVars(tt.check...)
			if err != nil && err.Error() != tt.wantErr ||
				err == nil && tt.wantErr != "" {
				t.Error(err)
			}
		})
	}
}

func TestDBAccountName(t *testing.T) {
	t.Setenv(EnvDatabaseAccountName, "testaccount")

	account, err := DBAccountName()
	if err != nil {
		t.Fatal(err)
	}
	if account != "testaccount" {
		t.Error(account)
	}
}
