package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// OfferClient operates on the account's offer feed.  Offers are created and
// deleted by the service alongside their collections, so only read and
// replace operations exist.
type OfferClient interface {
	List(options *Options) OfferIterator
	ListAll(ctx context.Context, options *Options) (*api.Offers, error)
	Get(ctx context.Context, offerid string, options *Options) (*api.Offer, error)
	Replace(ctx context.Context, offer *api.Offer, options *Options) (*api.Offer, error)
	Query(query *Query, options *Options) OfferIterator
	QueryAll(ctx context.Context, query *Query, options *Options) (*api.Offers, error)
}

type offerClient struct {
	c *databaseClient
}

var _ OfferClient = &offerClient{}

// NewOfferClient returns a new OfferClient.
func NewOfferClient(dbc DatabaseClient) OfferClient {
	return &offerClient{c: dbc.pipeline()}
}

// OfferIterator pages through offer feeds.
type OfferIterator interface {
	Next(ctx context.Context) (*api.Offers, error)
	Continuation() string
	HasMoreResults() bool
}

type offerIterator struct {
	feedIterator
}

func (i *offerIterator) Next(ctx context.Context) (*api.Offers, error) {
	offers := &api.Offers{}
	err := i.next(ctx, offers)
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (c *offerClient) List(options *Options) OfferIterator {
	return &offerIterator{newFeedIterator(c.c, NewOfferLocation(""), nil, options)}
}

func (c *offerClient) ListAll(ctx context.Context, options *Options) (*api.Offers, error) {
	all := &api.Offers{}

	i := c.List(options)
	for {
		offers, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += offers.Count
		all.ResourceID = offers.ResourceID
		all.Offers = append(all.Offers, offers.Offers...)
	}
}

func (c *offerClient) Get(ctx context.Context, offerid string, options *Options) (*api.Offer, error) {
	err := api.ValidateID(offerid)
	if err != nil {
		return nil, err
	}

	offer := &api.Offer{}
	err = c.c._get(ctx, NewOfferLocation(offerid), nil, offer, options)
	if err != nil {
		return nil, err
	}
	return offer, nil
}

func (c *offerClient) Replace(ctx context.Context, offer *api.Offer, options *Options) (*api.Offer, error) {
	err := api.ValidateID(offer.ID)
	if err != nil {
		return nil, err
	}

	newoffer := &api.Offer{}
	err = c.c._replace(ctx, NewOfferLocation(offer.ID), offer, offer, newoffer, options)
	if err != nil {
		return nil, err
	}
	return newoffer, nil
}

func (c *offerClient) Query(query *Query, options *Options) OfferIterator {
	return &offerIterator{newFeedIterator(c.c, NewOfferLocation(""), query, options)}
}

func (c *offerClient) QueryAll(ctx context.Context, query *Query, options *Options) (*api.Offers, error) {
	all := &api.Offers{}

	i := c.Query(query, options)
	for {
		offers, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += offers.Count
		all.ResourceID = offers.ResourceID
		all.Offers = append(all.Offers, offers.Offers...)
	}
}
