package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

// Database represents a database resource.
type Database struct {
	Resource

	Colls string `json:"_colls,omitempty"`
	Users string `json:"_users,omitempty"`
}

// Databases represents a page of database resources.
type Databases struct {
	Count      int         `json:"_count,omitempty"`
	ResourceID string      `json:"_rid,omitempty"`
	Databases  []*Database `json:"Databases,omitempty"`
}

func (dbs *Databases) Items() []Linkable {
	items := make([]Linkable, 0, len(dbs.Databases))
	for _, db := range dbs.Databases {
		items = append(items, db)
	}
	return items
}
