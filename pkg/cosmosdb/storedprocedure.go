package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// StoredProcedureClient operates on a collection's stored procedure feed.
type StoredProcedureClient interface {
	Create(ctx context.Context, newsproc *api.StoredProcedure, options *Options) (*api.StoredProcedure, error)
	List(options *Options) StoredProcedureIterator
	ListAll(ctx context.Context, options *Options) (*api.StoredProcedures, error)
	Get(ctx context.Context, sprocid string, options *Options) (*api.StoredProcedure, error)
	Replace(ctx context.Context, sproc *api.StoredProcedure, options *Options) (*api.StoredProcedure, error)
	Delete(ctx context.Context, sproc *api.StoredProcedure, options *Options) error

	// Execute runs the stored procedure with the given argument array,
	// decoding its return value into out.
	Execute(ctx context.Context, partitionkey, sprocid string, args []interface{}, out interface{}, options *Options) error
}

type storedProcedureClient struct {
	c      *databaseClient
	dbid   string
	collid string
}

var _ StoredProcedureClient = &storedProcedureClient{}

// NewStoredProcedureClient returns a new StoredProcedureClient.
func NewStoredProcedureClient(collc CollectionClient, collid string) StoredProcedureClient {
	return &storedProcedureClient{c: collc.pipeline(), dbid: collc.dbID(), collid: collid}
}

// StoredProcedureIterator pages through stored procedure feeds.
type StoredProcedureIterator interface {
	Next(ctx context.Context) (*api.StoredProcedures, error)
	Continuation() string
	HasMoreResults() bool
}

type storedProcedureIterator struct {
	feedIterator
}

func (i *storedProcedureIterator) Next(ctx context.Context) (*api.StoredProcedures, error) {
	sprocs := &api.StoredProcedures{}
	err := i.next(ctx, sprocs)
	if err != nil {
		return nil, err
	}
	return sprocs, nil
}

func (c *storedProcedureClient) Create(ctx context.Context, newsproc *api.StoredProcedure, options *Options) (*api.StoredProcedure, error) {
	if newsproc.ID == "" {
		newsproc.ID = api.GenerateID()
	}
	err := api.ValidateID(newsproc.ID)
	if err != nil {
		return nil, err
	}

	sproc := &api.StoredProcedure{}
	err = c.c._create(ctx, NewStoredProcedureLocation(c.dbid, c.collid, ""), newsproc, sproc, options)
	if err != nil {
		return nil, err
	}
	return sproc, nil
}

func (c *storedProcedureClient) List(options *Options) StoredProcedureIterator {
	return &storedProcedureIterator{newFeedIterator(c.c, NewStoredProcedureLocation(c.dbid, c.collid, ""), nil, options)}
}

func (c *storedProcedureClient) ListAll(ctx context.Context, options *Options) (*api.StoredProcedures, error) {
	all := &api.StoredProcedures{}

	i := c.List(options)
	for {
		sprocs, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += sprocs.Count
		all.ResourceID = sprocs.ResourceID
		all.StoredProcedures = append(all.StoredProcedures, sprocs.StoredProcedures...)
	}
}

func (c *storedProcedureClient) Get(ctx context.Context, sprocid string, options *Options) (*api.StoredProcedure, error) {
	err := api.ValidateID(sprocid)
	if err != nil {
		return nil, err
	}

	sproc := &api.StoredProcedure{}
	err = c.c._get(ctx, NewStoredProcedureLocation(c.dbid, c.collid, sprocid), nil, sproc, options)
	if err != nil {
		return nil, err
	}
	return sproc, nil
}

func (c *storedProcedureClient) Replace(ctx context.Context, sproc *api.StoredProcedure, options *Options) (*api.StoredProcedure, error) {
	err := api.ValidateID(sproc.ID)
	if err != nil {
		return nil, err
	}

	newsproc := &api.StoredProcedure{}
	err = c.c._replace(ctx, NewStoredProcedureLocation(c.dbid, c.collid, sproc.ID), sproc, sproc, newsproc, options)
	if err != nil {
		return nil, err
	}
	return newsproc, nil
}

func (c *storedProcedureClient) Delete(ctx context.Context, sproc *api.StoredProcedure, options *Options) error {
	err := api.ValidateID(sproc.ID)
	if err != nil {
		return err
	}

	return c.c._delete(ctx, NewStoredProcedureLocation(c.dbid, c.collid, sproc.ID), sproc, options)
}

func (c *storedProcedureClient) Execute(ctx context.Context, partitionkey, sprocid string, args []interface{}, out interface{}, options *Options) error {
	err := api.ValidateID(sprocid)
	if err != nil {
		return err
	}

	if args == nil {
		args = []interface{}{}
	}

	return c.c._execute(ctx, NewStoredProcedureLocation(c.dbid, c.collid, sprocid), args, out, withPartitionKey(options, partitionkey))
}
