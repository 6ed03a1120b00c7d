package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// PermissionProvider supplies a permission (and with it a resource token)
// scoped to the given location and mode.  Implementations typically call a
// trusted mid-tier that owns the master key.
type PermissionProvider interface {
	Permission(ctx context.Context, loc *ResourceLocation, mode api.PermissionMode) (*api.Permission, error)
}

type permissionAuthorizer struct {
	provider     PermissionProvider
	cache        *TokenCache
	defaultLevel ResourceType
}

// NewPermissionAuthorizer returns an Authorizer that delegates token
// acquisition to provider.  defaultLevel widens the requested scope to an
// ancestor kind (commonly ResourceTypeCollection) so one token serves many
// requests; pass "" to scope each token to the exact resource.  cache may be
// nil to disable caching.
func NewPermissionAuthorizer(provider PermissionProvider, cache *TokenCache, defaultLevel ResourceType) Authorizer {
	return &permissionAuthorizer{provider: provider, cache: cache, defaultLevel: defaultLevel}
}

func (a *permissionAuthorizer) Authorize(ctx context.Context, loc *ResourceLocation, method string) (string, string, error) {
	date := time.Now().UTC().Format(http.TimeFormat)

	typ := loc.Type()
	if !typ.SupportsPermissionToken() {
		return "", "", &PermissionError{ResourceType: typ, Reason: "resource kind requires master-key authorization"}
	}

	scope := loc
	if a.defaultLevel != "" {
		if truncated, ok := loc.Truncate(a.defaultLevel); ok {
			scope = truncated
		}
	}

	mode := api.PermissionModeRead
	if isWriteVerb(method) {
		mode = api.PermissionModeAll
	}

	if a.cache != nil {
		if token, ok := a.cache.Get(scope.Path(), mode); ok {
			return url.QueryEscape(token), date, nil
		}
	}

	perm, err := a.provider.Permission(ctx, scope, mode)
	if err != nil {
		return "", "", &PermissionError{ResourceType: typ, Reason: err.Error()}
	}
	if perm == nil || perm.Token == "" {
		return "", "", &PermissionError{ResourceType: typ, Reason: "provider returned no token"}
	}

	if a.cache != nil {
		err = a.cache.Put(scope.Path(), mode, perm.Token, perm.IssuedAt)
		if err != nil {
			return "", "", err
		}
	}

	return url.QueryEscape(perm.Token), date, nil
}
