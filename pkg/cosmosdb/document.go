package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// DocumentClient operates on a collection's document feed.
type DocumentClient interface {
	Create(ctx context.Context, partitionkey string, newdoc *api.Document, options *Options) (*api.Document, error)
	List(options *Options) DocumentIterator
	ListAll(ctx context.Context, options *Options) (*api.Documents, error)
	Get(ctx context.Context, partitionkey, docid string, options *Options) (*api.Document, error)
	Refresh(ctx context.Context, partitionkey string, doc *api.Document, options *Options) (*api.Document, error)
	Replace(ctx context.Context, partitionkey string, doc *api.Document, options *Options) (*api.Document, error)
	Delete(ctx context.Context, partitionkey string, doc *api.Document, options *Options) error
	Query(partitionkey string, query *Query, options *Options) DocumentIterator
	QueryAll(ctx context.Context, partitionkey string, query *Query, options *Options) (*api.Documents, error)

	pipeline() *databaseClient
	path() (dbid, collid string)
}

type documentClient struct {
	c      *databaseClient
	dbid   string
	collid string
}

var _ DocumentClient = &documentClient{}

// NewDocumentClient returns a new DocumentClient.
func NewDocumentClient(collc CollectionClient, collid string) DocumentClient {
	return &documentClient{c: collc.pipeline(), dbid: collc.dbID(), collid: collid}
}

func (c *documentClient) pipeline() *databaseClient { return c.c }
func (c *documentClient) path() (string, string)    { return c.dbid, c.collid }

// DocumentIterator pages through document feeds.
type DocumentIterator interface {
	Next(ctx context.Context) (*api.Documents, error)
	Continuation() string
	HasMoreResults() bool
}

type documentIterator struct {
	feedIterator
}

func (i *documentIterator) Next(ctx context.Context) (*api.Documents, error) {
	docs := &api.Documents{}
	err := i.next(ctx, docs)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *documentClient) Create(ctx context.Context, partitionkey string, newdoc *api.Document, options *Options) (*api.Document, error) {
	if newdoc.ID == "" {
		newdoc.ID = api.GenerateID()
	}
	err := api.ValidateID(newdoc.ID)
	if err != nil {
		return nil, err
	}

	doc := &api.Document{}
	err = c.c._create(ctx, NewDocumentLocation(c.dbid, c.collid, ""), newdoc, doc, withPartitionKey(options, partitionkey))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *documentClient) List(options *Options) DocumentIterator {
	return &documentIterator{newFeedIterator(c.c, NewDocumentLocation(c.dbid, c.collid, ""), nil, options)}
}

func (c *documentClient) ListAll(ctx context.Context, options *Options) (*api.Documents, error) {
	all := &api.Documents{}

	i := c.List(options)
	for {
		docs, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += docs.Count
		all.ResourceID = docs.ResourceID
		all.Documents = append(all.Documents, docs.Documents...)
	}
}

func (c *documentClient) Get(ctx context.Context, partitionkey, docid string, options *Options) (*api.Document, error) {
	err := api.ValidateID(docid)
	if err != nil {
		return nil, err
	}

	doc := &api.Document{}
	err = c.c._get(ctx, NewDocumentLocation(c.dbid, c.collid, docid), nil, doc, withPartitionKey(options, partitionkey))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Refresh re-reads doc conditionally on its ETag.  When the service answers
// 304 the caller's document is returned unchanged.
func (c *documentClient) Refresh(ctx context.Context, partitionkey string, doc *api.Document, options *Options) (*api.Document, error) {
	err := api.ValidateID(doc.ID)
	if err != nil {
		return nil, err
	}

	o := Options{}
	if options != nil {
		o = *options
	}
	o.IfNoneMatch = doc.ETag

	newdoc := &api.Document{}
	err = c.c._get(ctx, NewDocumentLocation(c.dbid, c.collid, doc.ID), doc, newdoc, withPartitionKey(&o, partitionkey))
	if err != nil {
		return nil, err
	}
	return newdoc, nil
}

func (c *documentClient) Replace(ctx context.Context, partitionkey string, doc *api.Document, options *Options) (*api.Document, error) {
	err := api.ValidateID(doc.ID)
	if err != nil {
		return nil, err
	}

	newdoc := &api.Document{}
	err = c.c._replace(ctx, NewDocumentLocation(c.dbid, c.collid, doc.ID), doc, doc, newdoc, withPartitionKey(options, partitionkey))
	if err != nil {
		return nil, err
	}
	return newdoc, nil
}

func (c *documentClient) Delete(ctx context.Context, partitionkey string, doc *api.Document, options *Options) error {
	err := api.ValidateID(doc.ID)
	if err != nil {
		return err
	}

	return c.c._delete(ctx, NewDocumentLocation(c.dbid, c.collid, doc.ID), doc, withPartitionKey(options, partitionkey))
}

// Query runs a query over the collection's documents.  An empty
// partitionkey enables cross-partition execution.
func (c *documentClient) Query(partitionkey string, query *Query, options *Options) DocumentIterator {
	o := Options{}
	if options != nil {
		o = *options
	}
	if partitionkey == "" {
		o.CrossPartition = true
	} else {
		o.partitionKey = partitionkey
	}

	return &documentIterator{newFeedIterator(c.c, NewDocumentLocation(c.dbid, c.collid, ""), query, &o)}
}

func (c *documentClient) QueryAll(ctx context.Context, partitionkey string, query *Query, options *Options) (*api.Documents, error) {
	all := &api.Documents{}

	i := c.Query(partitionkey, query, options)
	for {
		docs, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += docs.Count
		all.ResourceID = docs.ResourceID
		all.Documents = append(all.Documents, docs.Documents...)
	}
}
