package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

// TriggerType determines whether a trigger runs before or after its
// operation.
type TriggerType string

const (
	TriggerTypePre  TriggerType = "Pre"
	TriggerTypePost TriggerType = "Post"
)

// TriggerOperation is the class of operation a trigger fires on.
type TriggerOperation string

const (
	TriggerOperationAll     TriggerOperation = "All"
	TriggerOperationCreate  TriggerOperation = "Create"
	TriggerOperationReplace TriggerOperation = "Replace"
	TriggerOperationDelete  TriggerOperation = "Delete"
)

// StoredProcedure represents a stored procedure resource.
type StoredProcedure struct {
	Resource

	Body string `json:"body,omitempty"`
}

// StoredProcedures represents a page of stored procedure resources.
type StoredProcedures struct {
	Count            int                `json:"_count,omitempty"`
	ResourceID       string             `json:"_rid,omitempty"`
	StoredProcedures []*StoredProcedure `json:"StoredProcedures,omitempty"`
}

func (sprocs *StoredProcedures) Items() []Linkable {
	items := make([]Linkable, 0, len(sprocs.StoredProcedures))
	for _, sproc := range sprocs.StoredProcedures {
		items = append(items, sproc)
	}
	return items
}

// Trigger represents a trigger resource.
type Trigger struct {
	Resource

	TriggerOperation TriggerOperation `json:"triggerOperation,omitempty"`
	TriggerType      TriggerType      `json:"triggerType,omitempty"`
	Body             string           `json:"body,omitempty"`
}

// Triggers represents a page of trigger resources.
type Triggers struct {
	Count      int        `json:"_count,omitempty"`
	ResourceID string     `json:"_rid,omitempty"`
	Triggers   []*Trigger `json:"Triggers,omitempty"`
}

func (triggers *Triggers) Items() []Linkable {
	items := make([]Linkable, 0, len(triggers.Triggers))
	for _, trigger := range triggers.Triggers {
		items = append(items, trigger)
	}
	return items
}

// UserDefinedFunction represents a user-defined function resource.
type UserDefinedFunction struct {
	Resource

	Body string `json:"body,omitempty"`
}

// UserDefinedFunctions represents a page of user-defined function resources.
type UserDefinedFunctions struct {
	Count                int                    `json:"_count,omitempty"`
	ResourceID           string                 `json:"_rid,omitempty"`
	UserDefinedFunctions []*UserDefinedFunction `json:"UserDefinedFunctions,omitempty"`
}

func (udfs *UserDefinedFunctions) Items() []Linkable {
	items := make([]Linkable, 0, len(udfs.UserDefinedFunctions))
	for _, udf := range udfs.UserDefinedFunctions {
		items = append(items, udf)
	}
	return items
}
