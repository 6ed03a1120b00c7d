package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"strings"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// ResourceType is a resource kind's path segment, as used both in REST
// paths and in the signing payload.
type ResourceType string

const (
	ResourceTypeDatabase            ResourceType = "dbs"
	ResourceTypeUser                ResourceType = "users"
	ResourceTypePermission          ResourceType = "permissions"
	ResourceTypeCollection          ResourceType = "colls"
	ResourceTypeStoredProcedure     ResourceType = "sprocs"
	ResourceTypeTrigger             ResourceType = "triggers"
	ResourceTypeUserDefinedFunction ResourceType = "udfs"
	ResourceTypeDocument            ResourceType = "docs"
	ResourceTypeAttachment          ResourceType = "attachments"
	ResourceTypeOffer               ResourceType = "offers"
)

// SupportsPermissionToken reports whether the service accepts delegated
// resource tokens for this kind.  Databases, users, permissions and offers
// are master-key only.
func (t ResourceType) SupportsPermissionToken() bool {
	switch t {
	case ResourceTypeCollection, ResourceTypeDocument, ResourceTypeStoredProcedure,
		ResourceTypeTrigger, ResourceTypeUserDefinedFunction, ResourceTypeAttachment:
		return true
	}
	return false
}

type segment struct {
	typ ResourceType
	id  string
}

// ResourceLocation describes a resource or feed position in the account
// hierarchy.  It is immutable once constructed, and Path/Link derive purely
// from the carried ids with no I/O.
type ResourceLocation struct {
	segments []segment
}

// NewDatabaseLocation addresses a database, or the database feed when id is
// empty.
func NewDatabaseLocation(dbid string) *ResourceLocation {
	return &ResourceLocation{segments: []segment{{ResourceTypeDatabase, dbid}}}
}

// NewCollectionLocation addresses a collection, or the collection feed when
// collid is empty.
func NewCollectionLocation(dbid, collid string) *ResourceLocation {
	return &ResourceLocation{segments: []segment{
		{ResourceTypeDatabase, dbid},
		{ResourceTypeCollection, collid},
	}}
}

// NewDocumentLocation addresses a document, or the document feed when docid
// is empty.
func NewDocumentLocation(dbid, collid, docid string) *ResourceLocation {
	return &ResourceLocation{segments: []segment{
		{ResourceTypeDatabase, dbid},
		{ResourceTypeCollection, collid},
		{ResourceTypeDocument, docid},
	}}
}

// NewUserLocation addresses a user, or the user feed when userid is empty.
func NewUserLocation(dbid, userid string) *ResourceLocation {
	return &ResourceLocation{segments: []segment{
		{ResourceTypeDatabase, dbid},
		{ResourceTypeUser, userid},
	}}
}

// NewPermissionLocation addresses a permission, or the permission feed when
// permid is empty.
func NewPermissionLocation(dbid, userid, permid string) *ResourceLocation {
	return &ResourceLocation{segments: []segment{
		{ResourceTypeDatabase, dbid},
		{ResourceTypeUser, userid},
		{ResourceTypePermission, permid},
	}}
}

// NewStoredProcedureLocation addresses a stored procedure, or the stored
// procedure feed when sprocid is empty.
func NewStoredProcedureLocation(dbid, collid, sprocid string) *ResourceLocation {
	return &ResourceLocation{segments: []segment{
		{ResourceTypeDatabase, dbid},
		{ResourceTypeCollection, collid},
		{ResourceTypeStoredProcedure, sprocid},
	}}
}

// NewTriggerLocation addresses a trigger, or the trigger feed when
// triggerid is empty.
func NewTriggerLocation(dbid, collid, triggerid string) *ResourceLocation {
	return &ResourceLocation{segments: []segment{
		{ResourceTypeDatabase, dbid},
		{ResourceTypeCollection, collid},
		{ResourceTypeTrigger, triggerid},
	}}
}

// NewUserDefinedFunctionLocation addresses a user-defined function, or the
// UDF feed when udfid is empty.
func NewUserDefinedFunctionLocation(dbid, collid, udfid string) *ResourceLocation {
	return &ResourceLocation{segments: []segment{
		{ResourceTypeDatabase, dbid},
		{ResourceTypeCollection, collid},
		{ResourceTypeUserDefinedFunction, udfid},
	}}
}

// NewAttachmentLocation addresses an attachment, or the attachment feed
// when attid is empty.
func NewAttachmentLocation(dbid, collid, docid, attid string) *ResourceLocation {
	return &ResourceLocation{segments: []segment{
		{ResourceTypeDatabase, dbid},
		{ResourceTypeCollection, collid},
		{ResourceTypeDocument, docid},
		{ResourceTypeAttachment, attid},
	}}
}

// NewOfferLocation addresses an offer, or the offer feed when offerid is
// empty.  Offers sit at the account root.
func NewOfferLocation(offerid string) *ResourceLocation {
	return &ResourceLocation{segments: []segment{{ResourceTypeOffer, offerid}}}
}

// LinkResolver resolves between self links and alt links.  Implemented by
// the link cache.
type LinkResolver interface {
	SelfLink(altLink string) (string, bool)
	AltLink(selfLink string) (string, bool)
}

// NewResourceLocation addresses an already-materialised resource.  It uses
// the resource's alt link if known (locally or via the resolver), falling
// back to its self link; with neither available the caller gets
// ErrLinkUnknown rather than a silently empty path.
func NewResourceLocation(r api.Linkable, resolver LinkResolver) (*ResourceLocation, error) {
	link := r.Envelope().AltLink()

	if link == "" && resolver != nil && r.Envelope().Self != "" {
		link, _ = resolver.AltLink(r.Envelope().Self)
	}

	if link == "" {
		link = r.Envelope().Self
	}

	if link == "" {
		return nil, ErrLinkUnknown
	}

	return ParseLink(link)
}

// NewChildLocation addresses a child feed (or child, when id is non-empty)
// under an already-materialised parent resource.
func NewChildLocation(parent api.Linkable, typ ResourceType, id string, resolver LinkResolver) (*ResourceLocation, error) {
	loc, err := NewResourceLocation(parent, resolver)
	if err != nil {
		return nil, err
	}

	return &ResourceLocation{segments: append(loc.segments, segment{typ, id})}, nil
}

// ParseLink parses a self link or alt link into a location.
func ParseLink(link string) (*ResourceLocation, error) {
	parts := strings.Split(strings.Trim(link, "/"), "/")
	if len(parts) == 0 || len(parts)%2 != 0 {
		return nil, fmt.Errorf("malformed resource link %q", link)
	}

	loc := &ResourceLocation{segments: make([]segment, 0, len(parts)/2)}
	for i := 0; i < len(parts); i += 2 {
		loc.segments = append(loc.segments, segment{ResourceType(parts[i]), parts[i+1]})
	}

	return loc, nil
}

// Type returns the kind of the addressed resource or feed.
func (l *ResourceLocation) Type() ResourceType {
	return l.segments[len(l.segments)-1].typ
}

// ID returns the addressed resource's id, or "" for a feed.
func (l *ResourceLocation) ID() string {
	return l.segments[len(l.segments)-1].id
}

// IsFeed reports whether the location addresses a feed rather than a single
// resource.
func (l *ResourceLocation) IsFeed() bool {
	return l.ID() == ""
}

// Path returns the REST path of the resource, or of its containing feed
// when no id is present.
func (l *ResourceLocation) Path() string {
	var sb strings.Builder

	for i, s := range l.segments {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(string(s.typ))
		if s.id != "" {
			sb.WriteByte('/')
			sb.WriteString(s.id)
		}
	}

	return sb.String()
}

// Link returns the resource link that enters the signing payload: the path,
// minus the trailing feed segment when the location addresses a feed.
func (l *ResourceLocation) Link() string {
	if !l.IsFeed() {
		return l.Path()
	}

	parent := &ResourceLocation{segments: l.segments[:len(l.segments)-1]}
	return parent.Path()
}

// AncestorIDs maps each kind on the location's path to its id, the addressed
// resource included.  The permission authorizer uses it to pick a delegation
// scope.
func (l *ResourceLocation) AncestorIDs() map[ResourceType]string {
	ids := make(map[ResourceType]string, len(l.segments))
	for _, s := range l.segments {
		if s.id != "" {
			ids[s.typ] = s.id
		}
	}
	return ids
}

// Truncate returns the location cut down to the given ancestor kind, used to
// widen a token's scope to a configured granularity.  ok is false when the
// kind is not on the location's path.
func (l *ResourceLocation) Truncate(typ ResourceType) (*ResourceLocation, bool) {
	for i, s := range l.segments {
		if s.typ == typ && s.id != "" {
			return &ResourceLocation{segments: l.segments[:i+1]}, true
		}
	}
	return nil, false
}
