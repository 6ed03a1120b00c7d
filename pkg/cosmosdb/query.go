package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"net/http"
)

// Query is a parameterized query.
type Query struct {
	Query      string      `json:"query"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

// Parameter is a query parameter; Name carries the "@" prefix.
type Parameter struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

func (c *databaseClient) _query(ctx context.Context, loc *ResourceLocation, query *Query, out interface{}, options *Options, continuation *string) error {
	headers := http.Header{}
	err := applyOptions(options, headers)
	if err != nil {
		return err
	}

	headers.Set("Content-Type", "application/query+json")
	headers.Set("x-ms-documentdb-isquery", "true")

	return c.do(ctx, http.MethodPost, loc, []int{http.StatusOK}, query, out, headers, continuation)
}

func (c *databaseClient) _list(ctx context.Context, loc *ResourceLocation, out interface{}, options *Options, continuation *string) error {
	headers := http.Header{}
	err := applyOptions(options, headers)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodGet, loc, []int{http.StatusOK}, nil, out, headers, continuation)
}
