package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// UserDefinedFunctionClient operates on a collection's user defined function
// feed.
type UserDefinedFunctionClient interface {
	Create(ctx context.Context, newudf *api.UserDefinedFunction, options *Options) (*api.UserDefinedFunction, error)
	List(options *Options) UserDefinedFunctionIterator
	ListAll(ctx context.Context, options *Options) (*api.UserDefinedFunctions, error)
	Get(ctx context.Context, udfid string, options *Options) (*api.UserDefinedFunction, error)
	Replace(ctx context.Context, udf *api.UserDefinedFunction, options *Options) (*api.UserDefinedFunction, error)
	Delete(ctx context.Context, udf *api.UserDefinedFunction, options *Options) error
}

type userDefinedFunctionClient struct {
	c      *databaseClient
	dbid   string
	collid string
}

var _ UserDefinedFunctionClient = &userDefinedFunctionClient{}

// NewUserDefinedFunctionClient returns a new UserDefinedFunctionClient.
func NewUserDefinedFunctionClient(collc CollectionClient, collid string) UserDefinedFunctionClient {
	return &userDefinedFunctionClient{c: collc.pipeline(), dbid: collc.dbID(), collid: collid}
}

// UserDefinedFunctionIterator pages through user defined function feeds.
type UserDefinedFunctionIterator interface {
	Next(ctx context.Context) (*api.UserDefinedFunctions, error)
	Continuation() string
	HasMoreResults() bool
}

type userDefinedFunctionIterator struct {
	feedIterator
}

func (i *userDefinedFunctionIterator) Next(ctx context.Context) (*api.UserDefinedFunctions, error) {
	udfs := &api.UserDefinedFunctions{}
	err := i.next(ctx, udfs)
	if err != nil {
		return nil, err
	}
	return udfs, nil
}

func (c *userDefinedFunctionClient) Create(ctx context.Context, newudf *api.UserDefinedFunction, options *Options) (*api.UserDefinedFunction, error) {
	if newudf.ID == "" {
		newudf.ID = api.GenerateID()
	}
	err := api.ValidateID(newudf.ID)
	if err != nil {
		return nil, err
	}

	udf := &api.UserDefinedFunction{}
	err = c.c._create(ctx, NewUserDefinedFunctionLocation(c.dbid, c.collid, ""), newudf, udf, options)
	if err != nil {
		return nil, err
	}
	return udf, nil
}

func (c *userDefinedFunctionClient) List(options *Options) UserDefinedFunctionIterator {
	return &userDefinedFunctionIterator{newFeedIterator(c.c, NewUserDefinedFunctionLocation(c.dbid, c.collid, ""), nil, options)}
}

func (c *userDefinedFunctionClient) ListAll(ctx context.Context, options *Options) (*api.UserDefinedFunctions, error) {
	all := &api.UserDefinedFunctions{}

	i := c.List(options)
	for {
		udfs, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += udfs.Count
		all.ResourceID = udfs.ResourceID
		all.UserDefinedFunctions = append(all.UserDefinedFunctions, udfs.UserDefinedFunctions...)
	}
}

func (c *userDefinedFunctionClient) Get(ctx context.Context, udfid string, options *Options) (*api.UserDefinedFunction, error) {
	err := api.ValidateID(udfid)
	if err != nil {
		return nil, err
	}

	udf := &api.UserDefinedFunction{}
	err = c.c._get(ctx, NewUserDefinedFunctionLocation(c.dbid, c.collid, udfid), nil, udf, options)
	if err != nil {
		return nil, err
	}
	return udf, nil
}

func (c *userDefinedFunctionClient) Replace(ctx context.Context, udf *api.UserDefinedFunction, options *Options) (*api.UserDefinedFunction, error) {
	err := api.ValidateID(udf.ID)
	if err != nil {
		return nil, err
	}

	newudf := &api.UserDefinedFunction{}
	err = c.c._replace(ctx, NewUserDefinedFunctionLocation(c.dbid, c.collid, udf.ID), udf, udf, newudf, options)
	if err != nil {
		return nil, err
	}
	return newudf, nil
}

func (c *userDefinedFunctionClient) Delete(ctx context.Context, udf *api.UserDefinedFunction, options *Options) error {
	err := api.ValidateID(udf.ID)
	if err != nil {
		return err
	}

	return c.c._delete(ctx, NewUserDefinedFunctionLocation(c.dbid, c.collid, udf.ID), udf, options)
}
