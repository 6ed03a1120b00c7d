package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// UserClient operates on a database's user feed.
type UserClient interface {
	Create(ctx context.Context, newuser *api.User, options *Options) (*api.User, error)
	List(options *Options) UserIterator
	ListAll(ctx context.Context, options *Options) (*api.Users, error)
	Get(ctx context.Context, userid string, options *Options) (*api.User, error)
	Replace(ctx context.Context, user *api.User, options *Options) (*api.User, error)
	Delete(ctx context.Context, user *api.User, options *Options) error

	pipeline() *databaseClient
	dbID() string
}

type userClient struct {
	c    *databaseClient
	dbid string
}

var _ UserClient = &userClient{}

// NewUserClient returns a new UserClient.
func NewUserClient(dbc DatabaseClient, dbid string) UserClient {
	return &userClient{c: dbc.pipeline(), dbid: dbid}
}

func (c *userClient) pipeline() *databaseClient { return c.c }
func (c *userClient) dbID() string              { return c.dbid }

// UserIterator pages through user feeds.
type UserIterator interface {
	Next(ctx context.Context) (*api.Users, error)
	Continuation() string
	HasMoreResults() bool
}

type userIterator struct {
	feedIterator
}

func (i *userIterator) Next(ctx context.Context) (*api.Users, error) {
	users := &api.Users{}
	err := i.next(ctx, users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (c *userClient) Create(ctx context.Context, newuser *api.User, options *Options) (*api.User, error) {
	if newuser.ID == "" {
		newuser.ID = api.GenerateID()
	}
	err := api.ValidateID(newuser.ID)
	if err != nil {
		return nil, err
	}

	user := &api.User{}
	err = c.c._create(ctx, NewUserLocation(c.dbid, ""), newuser, user, options)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (c *userClient) List(options *Options) UserIterator {
	return &userIterator{newFeedIterator(c.c, NewUserLocation(c.dbid, ""), nil, options)}
}

func (c *userClient) ListAll(ctx context.Context, options *Options) (*api.Users, error) {
	all := &api.Users{}

	i := c.List(options)
	for {
		users, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += users.Count
		all.ResourceID = users.ResourceID
		all.Users = append(all.Users, users.Users...)
	}
}

func (c *userClient) Get(ctx context.Context, userid string, options *Options) (*api.User, error) {
	err := api.ValidateID(userid)
	if err != nil {
		return nil, err
	}

	user := &api.User{}
	err = c.c._get(ctx, NewUserLocation(c.dbid, userid), nil, user, options)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (c *userClient) Replace(ctx context.Context, user *api.User, options *Options) (*api.User, error) {
	err := api.ValidateID(user.ID)
	if err != nil {
		return nil, err
	}

	newuser := &api.User{}
	err = c.c._replace(ctx, NewUserLocation(c.dbid, user.ID), user, user, newuser, options)
	if err != nil {
		return nil, err
	}
	return newuser, nil
}

func (c *userClient) Delete(ctx context.Context, user *api.User, options *Options) error {
	err := api.ValidateID(user.ID)
	if err != nil {
		return err
	}

	return c.c._delete(ctx, NewUserLocation(c.dbid, user.ID), user, options)
}
