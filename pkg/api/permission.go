package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import "time"

// PermissionMode is the access level a permission grants.
type PermissionMode string

const (
	PermissionModeRead PermissionMode = "Read"
	PermissionModeAll  PermissionMode = "All"
)

// Permission represents a permission resource.  Token is the server-issued
// resource token; it is short-lived and never persisted by the service, so
// IssuedAt is recorded client-side when the permission is fetched.
type Permission struct {
	Resource

	PermissionMode PermissionMode `json:"permissionMode,omitempty"`
	ResourceLink   string         `json:"resource,omitempty"`
	Token          string         `json:"_token,omitempty"`

	IssuedAt time.Time `json:"-"`
}

// Permissions represents a page of permission resources.
type Permissions struct {
	Count       int           `json:"_count,omitempty"`
	ResourceID  string        `json:"_rid,omitempty"`
	Permissions []*Permission `json:"Permissions,omitempty"`
}

func (perms *Permissions) Items() []Linkable {
	items := make([]Linkable, 0, len(perms.Permissions))
	for _, perm := range perms.Permissions {
		items = append(items, perm)
	}
	return items
}
