package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
)

// feedIterator is the shared engine behind the typed iterators.  The first
// Next issues the request as given; later calls replay it with the
// continuation token from the previous page.  Once a page arrives without a
// token the iterator is exhausted and further calls return ErrNoMoreResults.
type feedIterator struct {
	c       *databaseClient
	loc     *ResourceLocation
	query   *Query
	options *Options

	continuation string
	started      bool
	done         bool
}

func newFeedIterator(c *databaseClient, loc *ResourceLocation, query *Query, options *Options) feedIterator {
	return feedIterator{
		c:       c,
		loc:     loc,
		query:   query,
		options: options,
	}
}

// Continuation returns the token resuming after the last page served, or ""
// at either end of the feed.
func (i *feedIterator) Continuation() string {
	return i.continuation
}

// HasMoreResults reports whether another page is (potentially) available.
func (i *feedIterator) HasMoreResults() bool {
	return !i.done
}

func (i *feedIterator) next(ctx context.Context, out interface{}) error {
	if i.done {
		return ErrNoMoreResults
	}

	options := Options{}
	if i.options != nil {
		options = *i.options
	}
	if i.started {
		options.Continuation = i.continuation
	}

	var err error
	if i.query != nil {
		err = i.c._query(ctx, i.loc, i.query, out, &options, &i.continuation)
	} else {
		err = i.c._list(ctx, i.loc, out, &options, &i.continuation)
	}
	if err != nil {
		return err
	}

	i.started = true
	if i.continuation == "" {
		i.done = true
	}

	return nil
}
