package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

// IndexingMode determines whether the collection's index is updated
// synchronously with writes.
type IndexingMode string

const (
	IndexingModeConsistent IndexingMode = "Consistent"
	IndexingModeLazy       IndexingMode = "Lazy"
	IndexingModeNone       IndexingMode = "None"
)

// DataType is the value type an index covers.
type DataType string

const (
	DataTypeString     DataType = "String"
	DataTypeNumber     DataType = "Number"
	DataTypePoint      DataType = "Point"
	DataTypeLineString DataType = "LineString"
	DataTypePolygon    DataType = "Polygon"
)

// IndexKind is the index structure.
type IndexKind string

const (
	IndexKindHash    IndexKind = "Hash"
	IndexKindRange   IndexKind = "Range"
	IndexKindSpatial IndexKind = "Spatial"
)

// MaxPrecision requests maximum index precision.
const MaxPrecision = -1

type Index struct {
	DataType  DataType  `json:"dataType,omitempty"`
	Kind      IndexKind `json:"kind,omitempty"`
	Precision int       `json:"precision,omitempty"`
}

type IncludedPath struct {
	Path    string  `json:"path"`
	Indexes []Index `json:"indexes,omitempty"`
}

type ExcludedPath struct {
	Path string `json:"path"`
}

type IndexingPolicy struct {
	IndexingMode  IndexingMode   `json:"indexingMode,omitempty"`
	Automatic     bool           `json:"automatic"`
	IncludedPaths []IncludedPath `json:"includedPaths,omitempty"`
	ExcludedPaths []ExcludedPath `json:"excludedPaths,omitempty"`
}

// PartitionKeyKind is the partitioning scheme; the service only supports
// hash partitioning.
type PartitionKeyKind string

const PartitionKeyKindHash PartitionKeyKind = "Hash"

type PartitionKey struct {
	Paths []string         `json:"paths,omitempty"`
	Kind  PartitionKeyKind `json:"kind,omitempty"`
}

// Collection represents a document collection resource.
type Collection struct {
	Resource

	IndexingPolicy *IndexingPolicy `json:"indexingPolicy,omitempty"`
	PartitionKey   *PartitionKey   `json:"partitionKey,omitempty"`

	Docs      string `json:"_docs,omitempty"`
	Sprocs    string `json:"_sprocs,omitempty"`
	Triggers  string `json:"_triggers,omitempty"`
	UDFs      string `json:"_udfs,omitempty"`
	Conflicts string `json:"_conflicts,omitempty"`
}

// Collections represents a page of collection resources.
type Collections struct {
	Count       int           `json:"_count,omitempty"`
	ResourceID  string        `json:"_rid,omitempty"`
	Collections []*Collection `json:"DocumentCollections,omitempty"`
}

func (colls *Collections) Items() []Linkable {
	items := make([]Linkable, 0, len(colls.Collections))
	for _, coll := range colls.Collections {
		items = append(items, coll)
	}
	return items
}
