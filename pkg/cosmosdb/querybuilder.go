package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// QueryBuilder assembles Cosmos DB SQL query strings.  Call-order rules are
// enforced eagerly: From must be called exactly once after Select, Where at
// most once with further predicates added through the And variants, and
// OrderBy at most once.  Violations are programming errors and panic rather
// than producing a malformed query.
type QueryBuilder struct {
	alias      string
	predicates []string
	orderBy    string
}

// Select starts a SELECT * query.
func Select() *QueryBuilder {
	return &QueryBuilder{}
}

// From names the collection alias used to qualify fields.
func (b *QueryBuilder) From(alias string) *QueryBuilder {
	if b.alias != "" {
		panic("querybuilder: From called twice")
	}
	if alias == "" {
		panic("querybuilder: empty alias")
	}
	b.alias = alias
	return b
}

func (b *QueryBuilder) addPredicate(first bool, p string) *QueryBuilder {
	if b.alias == "" {
		panic("querybuilder: predicate before From")
	}
	if first && len(b.predicates) > 0 {
		panic("querybuilder: Where called twice, use AndWhere")
	}
	if !first && len(b.predicates) == 0 {
		panic("querybuilder: AndWhere before Where")
	}
	b.predicates = append(b.predicates, p)
	return b
}

// Where adds the first equality predicate.
func (b *QueryBuilder) Where(field string, value interface{}) *QueryBuilder {
	return b.addPredicate(true, b.equals(field, value))
}

// AndWhere adds a further equality predicate.
func (b *QueryBuilder) AndWhere(field string, value interface{}) *QueryBuilder {
	return b.addPredicate(false, b.equals(field, value))
}

// WhereDistance adds a first predicate constraining the distance in meters
// between field and the given spatial operand.
func (b *QueryBuilder) WhereDistance(field string, s api.Spatial, maxDistance float64) *QueryBuilder {
	return b.addPredicate(true, b.distance(field, s, maxDistance))
}

// AndWhereDistance adds a further distance predicate.
func (b *QueryBuilder) AndWhereDistance(field string, s api.Spatial, maxDistance float64) *QueryBuilder {
	return b.addPredicate(false, b.distance(field, s, maxDistance))
}

// WhereIntersects adds a first predicate requiring field to intersect the
// given spatial operand.
func (b *QueryBuilder) WhereIntersects(field string, s api.Spatial) *QueryBuilder {
	return b.addPredicate(true, b.spatialCall("ST_INTERSECTS", field, s))
}

// AndWhereIntersects adds a further intersection predicate.
func (b *QueryBuilder) AndWhereIntersects(field string, s api.Spatial) *QueryBuilder {
	return b.addPredicate(false, b.spatialCall("ST_INTERSECTS", field, s))
}

// WhereWithin adds a first predicate requiring field to lie within the given
// spatial operand.
func (b *QueryBuilder) WhereWithin(field string, s api.Spatial) *QueryBuilder {
	return b.addPredicate(true, b.spatialCall("ST_WITHIN", field, s))
}

// AndWhereWithin adds a further containment predicate.
func (b *QueryBuilder) AndWhereWithin(field string, s api.Spatial) *QueryBuilder {
	return b.addPredicate(false, b.spatialCall("ST_WITHIN", field, s))
}

// OrderBy adds the ORDER BY clause.
func (b *QueryBuilder) OrderBy(field string, descending bool) *QueryBuilder {
	if b.alias == "" {
		panic("querybuilder: OrderBy before From")
	}
	if b.orderBy != "" {
		panic("querybuilder: OrderBy called twice")
	}
	b.orderBy = b.alias + "." + field
	if descending {
		b.orderBy += " DESC"
	}
	return b
}

func (b *QueryBuilder) equals(field string, value interface{}) string {
	return b.alias + "." + field + " = " + formatValue(value)
}

func (b *QueryBuilder) distance(field string, s api.Spatial, maxDistance float64) string {
	return fmt.Sprintf("ST_DISTANCE(%s.%s, %s) <= %s", b.alias, field, s.JSON(), strconv.FormatFloat(maxDistance, 'g', -1, 64))
}

func (b *QueryBuilder) spatialCall(fn, field string, s api.Spatial) string {
	return fmt.Sprintf("%s(%s.%s, %s)", fn, b.alias, field, s.JSON())
}

// String returns the generated query string.
func (b *QueryBuilder) String() string {
	if b.alias == "" {
		panic("querybuilder: From not called")
	}

	sb := &strings.Builder{}
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(b.alias)
	if len(b.predicates) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.predicates, " AND "))
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	return sb.String()
}

// ToQuery returns the built query without parameters, ready for the query
// operations.
func (b *QueryBuilder) ToQuery() *Query {
	return &Query{Query: b.String()}
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "\\'") + "'"
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", v)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case api.Spatial:
		return v.JSON()
	default:
		panic(fmt.Sprintf("querybuilder: unsupported value type %T", value))
	}
}
