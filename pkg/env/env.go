package env

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"os"
)

const (
	EnvDatabaseAccountName = "COSMOSDB_ACCOUNT"
	EnvDatabaseAccountKey  = "COSMOSDB_KEY"
)

// ValidateVars checks that all the given environment variables are set.
func ValidateVars(vars ...string) error {
	for _, v := range vars {
		if _, found := os.LookupEnv(v); !found {
			return fmt.Errorf("environment variable %q unset", v)
		}
	}
	return nil
}

// DBAccountName fetches the database account name from the environment.
func DBAccountName() (string, error) {
	if err := ValidateVars(EnvDatabaseAccountName); err != nil {
		return "", err
	}

	return os.Getenv(EnvDatabaseAccountName), nil
}

// DBAccountKey fetches the base64-encoded master key from the environment.
func DBAccountKey() (string, error) {
	if err := ValidateVars(EnvDatabaseAccountKey); err != nil {
		return "", err
	}

	return os.Getenv(EnvDatabaseAccountKey), nil
}
