package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

// User represents a user resource, a namespace under a database that
// permissions hang off.
type User struct {
	Resource

	Permissions string `json:"_permissions,omitempty"`
}

// Users represents a page of user resources.
type Users struct {
	Count      int     `json:"_count,omitempty"`
	ResourceID string  `json:"_rid,omitempty"`
	Users      []*User `json:"Users,omitempty"`
}

func (users *Users) Items() []Linkable {
	items := make([]Linkable, 0, len(users.Users))
	for _, user := range users.Users {
		items = append(items, user)
	}
	return items
}
