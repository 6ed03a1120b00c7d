package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// PermissionClient operates on a user's permission feed.  Permission
// resources are the server side of resource-token delegation: creating one
// against the master key yields a token other clients can present through a
// PermissionProvider.
type PermissionClient interface {
	Create(ctx context.Context, newperm *api.Permission, options *Options) (*api.Permission, error)
	List(options *Options) PermissionIterator
	ListAll(ctx context.Context, options *Options) (*api.Permissions, error)
	Get(ctx context.Context, permid string, options *Options) (*api.Permission, error)
	Replace(ctx context.Context, perm *api.Permission, options *Options) (*api.Permission, error)
	Delete(ctx context.Context, perm *api.Permission, options *Options) error
}

type permissionClient struct {
	c      *databaseClient
	dbid   string
	userid string
}

var _ PermissionClient = &permissionClient{}

// NewPermissionClient returns a new PermissionClient.
func NewPermissionClient(userc UserClient, userid string) PermissionClient {
	return &permissionClient{c: userc.pipeline(), dbid: userc.dbID(), userid: userid}
}

// PermissionIterator pages through permission feeds.
type PermissionIterator interface {
	Next(ctx context.Context) (*api.Permissions, error)
	Continuation() string
	HasMoreResults() bool
}

type permissionIterator struct {
	feedIterator
}

func (i *permissionIterator) Next(ctx context.Context) (*api.Permissions, error) {
	perms := &api.Permissions{}
	err := i.next(ctx, perms)
	if err != nil {
		return nil, err
	}
	return perms, nil
}

func (c *permissionClient) Create(ctx context.Context, newperm *api.Permission, options *Options) (*api.Permission, error) {
	if newperm.ID == "" {
		newperm.ID = api.GenerateID()
	}
	err := api.ValidateID(newperm.ID)
	if err != nil {
		return nil, err
	}

	perm := &api.Permission{}
	err = c.c._create(ctx, NewPermissionLocation(c.dbid, c.userid, ""), newperm, perm, options)
	if err != nil {
		return nil, err
	}
	return perm, nil
}

func (c *permissionClient) List(options *Options) PermissionIterator {
	return &permissionIterator{newFeedIterator(c.c, NewPermissionLocation(c.dbid, c.userid, ""), nil, options)}
}

func (c *permissionClient) ListAll(ctx context.Context, options *Options) (*api.Permissions, error) {
	all := &api.Permissions{}

	i := c.List(options)
	for {
		perms, err := i.Next(ctx)
		if err == ErrNoMoreResults {
			return all, nil
		}
		if err != nil {
			return nil, err
		}

		all.Count += perms.Count
		all.ResourceID = perms.ResourceID
		all.Permissions = append(all.Permissions, perms.Permissions...)
	}
}

func (c *permissionClient) Get(ctx context.Context, permid string, options *Options) (*api.Permission, error) {
	err := api.ValidateID(permid)
	if err != nil {
		return nil, err
	}

	perm := &api.Permission{}
	err = c.c._get(ctx, NewPermissionLocation(c.dbid, c.userid, permid), nil, perm, options)
	if err != nil {
		return nil, err
	}
	return perm, nil
}

func (c *permissionClient) Replace(ctx context.Context, perm *api.Permission, options *Options) (*api.Permission, error) {
	err := api.ValidateID(perm.ID)
	if err != nil {
		return nil, err
	}

	newperm := &api.Permission{}
	err = c.c._replace(ctx, NewPermissionLocation(c.dbid, c.userid, perm.ID), perm, perm, newperm, options)
	if err != nil {
		return nil, err
	}
	return newperm, nil
}

func (c *permissionClient) Delete(ctx context.Context, perm *api.Permission, options *Options) error {
	err := api.ValidateID(perm.ID)
	if err != nil {
		return err
	}

	return c.c._delete(ctx, NewPermissionLocation(c.dbid, c.userid, perm.ID), perm, options)
}
