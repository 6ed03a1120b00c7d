package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// CollectionClient operates on a database's collection feed.
type CollectionClient interface {
	Create(ctx context.Context, newcoll *api.Collection, options *Options) (*api.Collection, error)
	List(options *Options) CollectionIterator
	ListAll(ctx context.Context, options *Options) (*api.Collections, error)
	Get(ctx context.Context, collid string, options *Options) (*api.Collection, error)
	Replace(ctx context.Context, coll *api.Collection, options *Options) (*api.Collection, error)
	Delete(ctx context.Context, coll *api.Collection, options *Options) error
	Query(query *Query, options *Options) CollectionIterator
	QueryAll(ctx context.Context, query *Query, options *Options) (*api.Collections, error)

	pipeline() *databaseClient
	dbID() string
}

type collectionClient struct {
	c    *databaseClient
	dbid string
}

var _ CollectionClient = &collectionClient{}

// NewCollectionClient returns a new CollectionClient.
func NewCollectionClient(dbc DatabaseClient, dbid string) CollectionClient {
	return &collectionClient{c: dbc.pipeline(), dbid: dbid}
}

func (c *collectionClient) pipeline() *databaseClient { return c.c }
func (c *collectionClient) dbID() string              { return c.dbid }

// CollectionIterator pages through collection feeds.
type CollectionIterator interface {
	Next(ctx context.Context) (*api.Collections, error)
	Continuation() string
	HasMoreResults() bool
}

type collectionIterator struct {
	feedIterator
}

func (i *collectionIterator) Next(ctx context.Context) (*api.Collections, error) {
	colls := &api.Collections{}
	err := i.next(ctx, colls)
	if err != nil {
		return nil, err
	}
	return colls, nil
}

func (c *collectionClient) Create(ctx context.Context, newcoll *api.Collection, options *Options) (*api.Collection, error) {
	if newcoll.ID == "" {
		newcoll.ID = api.GenerateID()
	}
	err := api.ValidateID(newcoll.ID)
	if err != nil {
		return nil, err
	}

	coll := &api.Collection{}
	err = c.c._create(ctx, NewCollectionLocation(c.dbid, ""), newcoll, coll, options)
	if err != nil {
		return nil, err
	}
	return coll, nil
}

func (c *collectionClient) List(options *Options) CollectionIterator {
	return &collectionIterator{newFeedIterator(c.c, NewCollectionLocation(c.dbid, ""), nil, options)}
}

func (c *collectionClient) ListAll(ctx context.Context, options *Options) (*api.Collections, error) {
	all := &api.Collections{}

	i := c.List(options)
	for {
		colls, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += colls.Count
		all.ResourceID = colls.ResourceID
		all.Collections = append(all.Collections, colls.Collections...)
	}
}

func (c *collectionClient) Get(ctx context.Context, collid string, options *Options) (*api.Collection, error) {
	err := api.ValidateID(collid)
	if err != nil {
		return nil, err
	}

	coll := &api.Collection{}
	err = c.c._get(ctx, NewCollectionLocation(c.dbid, collid), nil, coll, options)
	if err != nil {
		return nil, err
	}
	return coll, nil
}

func (c *collectionClient) Replace(ctx context.Context, coll *api.Collection, options *Options) (*api.Collection, error) {
	err := api.ValidateID(coll.ID)
	if err != nil {
		return nil, err
	}

	newcoll := &api.Collection{}
	err = c.c._replace(ctx, NewCollectionLocation(c.dbid, coll.ID), coll, coll, newcoll, options)
	if err != nil {
		return nil, err
	}
	return newcoll, nil
}

func (c *collectionClient) Delete(ctx context.Context, coll *api.Collection, options *Options) error {
	err := api.ValidateID(coll.ID)
	if err != nil {
		return err
	}

	return c.c._delete(ctx, NewCollectionLocation(c.dbid, coll.ID), coll, options)
}

func (c *collectionClient) Query(query *Query, options *Options) CollectionIterator {
	return &collectionIterator{newFeedIterator(c.c, NewCollectionLocation(c.dbid, ""), query, options)}
}

func (c *collectionClient) QueryAll(ctx context.Context, query *Query, options *Options) (*api.Collections, error) {
	all := &api.Collections{}

	i := c.Query(query, options)
	for {
		colls, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += colls.Count
		all.ResourceID = colls.ResourceID
		all.Collections = append(all.Collections, colls.Collections...)
	}
}
