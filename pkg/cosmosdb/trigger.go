package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// TriggerClient operates on a collection's trigger feed.
type TriggerClient interface {
	Create(ctx context.Context, newtrigger *api.Trigger, options *Options) (*api.Trigger, error)
	List(options *Options) TriggerIterator
	ListAll(ctx context.Context, options *Options) (*api.Triggers, error)
	Get(ctx context.Context, triggerid string, options *Options) (*api.Trigger, error)
	Replace(ctx context.Context, trigger *api.Trigger, options *Options) (*api.Trigger, error)
	Delete(ctx context.Context, trigger *api.Trigger, options *Options) error
}

type triggerClient struct {
	c      *databaseClient
	dbid   string
	collid string
}

var _ TriggerClient = &triggerClient{}

// NewTriggerClient returns a new TriggerClient.
func NewTriggerClient(collc CollectionClient, collid string) TriggerClient {
	return &triggerClient{c: collc.pipeline(), dbid: collc.dbID(), collid: collid}
}

// TriggerIterator pages through trigger feeds.
type TriggerIterator interface {
	Next(ctx context.Context) (*api.Triggers, error)
	Continuation() string
	HasMoreResults() bool
}

type triggerIterator struct {
	feedIterator
}

func (i *triggerIterator) Next(ctx context.Context) (*api.Triggers, error) {
	triggers := &api.Triggers{}
	err := i.next(ctx, triggers)
	if err != nil {
		return nil, err
	}
	return triggers, nil
}

func (c *triggerClient) Create(ctx context.Context, newtrigger *api.Trigger, options *Options) (*api.Trigger, error) {
	if newtrigger.ID == "" {
		newtrigger.ID = api.GenerateID()
	}
	err := api.ValidateID(newtrigger.ID)
	if err != nil {
		return nil, err
	}

	trigger := &api.Trigger{}
	err = c.c._create(ctx, NewTriggerLocation(c.dbid, c.collid, ""), newtrigger, trigger, options)
	if err != nil {
		return nil, err
	}
	return trigger, nil
}

func (c *triggerClient) List(options *Options) TriggerIterator {
	return &triggerIterator{newFeedIterator(c.c, NewTriggerLocation(c.dbid, c.collid, ""), nil, options)}
}

func (c *triggerClient) ListAll(ctx context.Context, options *Options) (*api.Triggers, error) {
	all := &api.Triggers{}

	i := c.List(options)
	for {
		triggers, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += triggers.Count
		all.ResourceID = triggers.ResourceID
		all.Triggers = append(all.Triggers, triggers.Triggers...)
	}
}

func (c *triggerClient) Get(ctx context.Context, triggerid string, options *Options) (*api.Trigger, error) {
	err := api.ValidateID(triggerid)
	if err != nil {
		return nil, err
	}

	trigger := &api.Trigger{}
	err = c.c._get(ctx, NewTriggerLocation(c.dbid, c.collid, triggerid), nil, trigger, options)
	if err != nil {
		return nil, err
	}
	return trigger, nil
}

func (c *triggerClient) Replace(ctx context.Context, trigger *api.Trigger, options *Options) (*api.Trigger, error) {
	err := api.ValidateID(trigger.ID)
	if err != nil {
		return nil, err
	}

	newtrigger := &api.Trigger{}
	err = c.c._replace(ctx, NewTriggerLocation(c.dbid, c.collid, trigger.ID), trigger, trigger, newtrigger, options)
	if err != nil {
		return nil, err
	}
	return newtrigger, nil
}

func (c *triggerClient) Delete(ctx context.Context, trigger *api.Trigger, options *Options) error {
	err := api.ValidateID(trigger.ID)
	if err != nil {
		return err
	}

	return c.c._delete(ctx, NewTriggerLocation(c.dbid, c.collid, trigger.ID), trigger, options)
}
