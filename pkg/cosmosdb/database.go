package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// DatabaseIterator pages through database feeds.
type DatabaseIterator interface {
	Next(ctx context.Context) (*api.Databases, error)
	Continuation() string
	HasMoreResults() bool
}

type databaseIterator struct {
	feedIterator
}

func (i *databaseIterator) Next(ctx context.Context) (*api.Databases, error) {
	dbs := &api.Databases{}
	err := i.next(ctx, dbs)
	if err != nil {
		return nil, err
	}
	return dbs, nil
}

func (c *databaseClient) Create(ctx context.Context, newdb *api.Database, options *Options) (*api.Database, error) {
	if newdb.ID == "" {
		newdb.ID = api.GenerateID()
	}
	err := api.ValidateID(newdb.ID)
	if err != nil {
		return nil, err
	}

	db := &api.Database{}
	err = c._create(ctx, NewDatabaseLocation(""), newdb, db, options)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (c *databaseClient) List(options *Options) DatabaseIterator {
	return &databaseIterator{newFeedIterator(c, NewDatabaseLocation(""), nil, options)}
}

func (c *databaseClient) ListAll(ctx context.Context, options *Options) (*api.Databases, error) {
	all := &api.Databases{}

	i := c.List(options)
	for {
		dbs, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += dbs.Count
		all.ResourceID = dbs.ResourceID
		all.Databases = append(all.Databases, dbs.Databases...)
	}
}

func (c *databaseClient) Get(ctx context.Context, dbid string, options *Options) (*api.Database, error) {
	err := api.ValidateID(dbid)
	if err != nil {
		return nil, err
	}

	db := &api.Database{}
	err = c._get(ctx, NewDatabaseLocation(dbid), nil, db, options)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (c *databaseClient) Delete(ctx context.Context, db *api.Database, options *Options) error {
	err := api.ValidateID(db.ID)
	if err != nil {
		return err
	}

	return c._delete(ctx, NewDatabaseLocation(db.ID), db, options)
}

func (c *databaseClient) Query(query *Query, options *Options) DatabaseIterator {
	return &databaseIterator{newFeedIterator(c, NewDatabaseLocation(""), query, options)}
}

func (c *databaseClient) QueryAll(ctx context.Context, query *Query, options *Options) (*api.Databases, error) {
	all := &api.Databases{}

	i := c.Query(query, options)
	for {
		dbs, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += dbs.Count
		all.ResourceID = dbs.ResourceID
		all.Databases = append(all.Databases, dbs.Databases...)
	}
}
