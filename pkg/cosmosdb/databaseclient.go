package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
	"github.com/Azure/cosmosdb-client-go/pkg/linkcache"
	"github.com/Azure/cosmosdb-client-go/pkg/metrics"
	"github.com/Azure/cosmosdb-client-go/pkg/metrics/noop"
)

const apiVersion = "2018-12-31"

// Options are additional per-request knobs.
type Options struct {
	// NoETag suppresses the If-Match header a Replace or Delete would
	// otherwise derive from the resource's ETag.
	NoETag bool

	// IfNoneMatch makes a Get conditional: with a matching ETag the service
	// answers 304 and the caller's resource is returned unchanged.
	IfNoneMatch string

	// Upsert turns a Create into create-or-replace.
	Upsert bool

	PreTriggers  []string
	PostTriggers []string

	// MaxItemCount bounds the page size of list/query responses.
	MaxItemCount int

	// Continuation resumes a list/query from an earlier page's token.
	Continuation string

	// CrossPartition permits a query to span partitions.
	CrossPartition bool

	partitionKey string
}

func withPartitionKey(options *Options, partitionkey string) *Options {
	o := Options{}
	if options != nil {
		o = *options
	}
	o.partitionKey = partitionkey
	return &o
}

// DatabaseClient is the handle to a database account.  It doubles as the
// client for the account's database feed; child clients are constructed
// from it.
type DatabaseClient interface {
	Create(ctx context.Context, newdb *api.Database, options *Options) (*api.Database, error)
	List(options *Options) DatabaseIterator
	ListAll(ctx context.Context, options *Options) (*api.Databases, error)
	Get(ctx context.Context, dbid string, options *Options) (*api.Database, error)
	Delete(ctx context.Context, db *api.Database, options *Options) error
	Query(query *Query, options *Options) DatabaseIterator
	QueryAll(ctx context.Context, query *Query, options *Options) (*api.Databases, error)

	// SetLinkCache attaches a link cache which the pipeline feeds from
	// every successful non-delete response.
	SetLinkCache(cache *linkcache.Cache)

	// SetMetricsEmitter attaches a metrics emitter recording request
	// durations and counts.
	SetMetricsEmitter(m metrics.Interface)

	pipeline() *databaseClient
}

type databaseClient struct {
	log *logrus.Entry
	hc  *http.Client

	jsonHandle *codec.JsonHandle

	baseURL    string
	authorizer Authorizer

	linkCache *linkcache.Cache
	m         metrics.Interface
}

var _ DatabaseClient = &databaseClient{}

// NewDatabaseClient returns a new DatabaseClient.  databaseAccount is an
// account name, or a full base URL when it carries a scheme (as test
// servers do).
func NewDatabaseClient(log *logrus.Entry, hc *http.Client, h *codec.JsonHandle, databaseAccount string, authorizer Authorizer) (DatabaseClient, error) {
	if authorizer == nil {
		return nil, fmt.Errorf("authorizer must not be nil")
	}

	baseURL := databaseAccount
	if !strings.Contains(databaseAccount, "://") {
		baseURL = "https://" + databaseAccount + ".documents.azure.com"
	}

	return &databaseClient{
		log:        log,
		hc:         hc,
		jsonHandle: h,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		authorizer: authorizer,
		m:          &noop.Noop{},
	}, nil
}

func (c *databaseClient) SetLinkCache(cache *linkcache.Cache) {
	c.linkCache = cache
}

func (c *databaseClient) SetMetricsEmitter(m metrics.Interface) {
	c.m = m
}

func (c *databaseClient) pipeline() *databaseClient { return c }

// do runs one request through the pipeline: authorize, build, dispatch,
// decode.  Transport errors are returned as-is, without retry; a response
// with an unexpected status code is parsed into *Error.
func (c *databaseClient) do(ctx context.Context, method string, loc *ResourceLocation, expectedStatusCodes []int, in, out interface{}, headers http.Header, continuation *string) error {
	token, date, err := c.authorizer.Authorize(ctx, loc, method)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if in != nil {
		err = codec.NewEncoder(&buf, c.jsonHandle).Encode(in)
		if err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+loc.Path(), &buf)
	if err != nil {
		return err
	}

	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if in != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("x-ms-version", apiVersion)
	req.Header.Set("x-ms-date", date)
	req.Header.Set("Authorization", token)

	start := time.Now()

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.emitMetrics(loc, method, resp.StatusCode, time.Since(start))

	c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       loc.Path(),
		"statusCode": resp.StatusCode,
	}).Debug("cosmosdb request")

	if resp.StatusCode == http.StatusNotModified {
		return &Error{StatusCode: http.StatusNotModified}
	}

	expected := false
	for _, statusCode := range expectedStatusCodes {
		if resp.StatusCode == statusCode {
			expected = true
			break
		}
	}

	if !expected {
		cerr := &Error{StatusCode: resp.StatusCode}
		if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
			// a decode failure here leaves the bare status code
			codec.NewDecoder(resp.Body, c.jsonHandle).Decode(cerr)
		}
		return cerr
	}

	if continuation != nil {
		*continuation = resp.Header.Get("x-ms-continuation")
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		err = codec.NewDecoder(resp.Body, c.jsonHandle).Decode(out)
		if err != nil {
			return err
		}

		if method != http.MethodDelete {
			err = c.storeLinks(loc, resp.Header.Get("x-ms-alt-content-path"), out)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// storeLinks synthesises alt links from the response's alternate content
// path (the parent's name-based path) and feeds the link cache.
func (c *databaseClient) storeLinks(loc *ResourceLocation, altContentPath string, out interface{}) error {
	base := strings.Trim(altContentPath, "/")
	typ := string(loc.Type())

	switch r := out.(type) {
	case api.Feed:
		for _, item := range r.Items() {
			setAltLink(item, base, typ)
		}
	case api.Linkable:
		setAltLink(r, base, typ)
	default:
		return nil
	}

	if c.linkCache == nil {
		return nil
	}

	return c.linkCache.StoreLinks(out)
}

func setAltLink(r api.Linkable, base, typ string) {
	env := r.Envelope()
	if env.ID == "" {
		return
	}

	if base == "" {
		env.SetAltLink(typ + "/" + env.ID)
	} else {
		env.SetAltLink(base + "/" + typ + "/" + env.ID)
	}
}

func (c *databaseClient) emitMetrics(loc *ResourceLocation, method string, statusCode int, d time.Duration) {
	dims := map[string]string{
		"verb":         method,
		"resourceType": string(loc.Type()),
		"statusCode":   strconv.Itoa(statusCode),
	}

	c.m.EmitGauge("cosmosdb.request.count", 1, dims)
	c.m.EmitFloat("cosmosdb.request.duration", d.Seconds(), dims)
}

// shared operation helpers used by the typed clients

func (c *databaseClient) _create(ctx context.Context, loc *ResourceLocation, in, out interface{}, options *Options) error {
	headers := http.Header{}
	err := applyOptions(options, headers)
	if err != nil {
		return err
	}

	expected := []int{http.StatusCreated}
	if options != nil && options.Upsert {
		headers.Set("x-ms-documentdb-is-upsert", "true")
		// an upsert that replaces an existing resource answers 200
		expected = append(expected, http.StatusOK)
	}

	return c.do(ctx, http.MethodPost, loc, expected, in, out, headers, nil)
}

func (c *databaseClient) _get(ctx context.Context, loc *ResourceLocation, current api.Linkable, out interface{}, options *Options) error {
	headers := http.Header{}
	err := applyOptions(options, headers)
	if err != nil {
		return err
	}

	err = c.do(ctx, http.MethodGet, loc, []int{http.StatusOK}, nil, out, headers, nil)
	if IsErrorStatusCode(err, http.StatusNotModified) && current != nil {
		copyResource(current, out)
		return nil
	}
	return err
}

func (c *databaseClient) _replace(ctx context.Context, loc *ResourceLocation, r api.Linkable, in, out interface{}, options *Options) error {
	headers := http.Header{}
	err := applyOptions(options, headers)
	if err != nil {
		return err
	}

	if etag := r.Envelope().ETag; etag != "" && (options == nil || !options.NoETag) {
		headers.Set("If-Match", etag)
	}

	return c.do(ctx, http.MethodPut, loc, []int{http.StatusOK}, in, out, headers, nil)
}

func (c *databaseClient) _delete(ctx context.Context, loc *ResourceLocation, r api.Linkable, options *Options) error {
	headers := http.Header{}
	err := applyOptions(options, headers)
	if err != nil {
		return err
	}

	if etag := r.Envelope().ETag; etag != "" && (options == nil || !options.NoETag) {
		headers.Set("If-Match", etag)
	}

	err = c.do(ctx, http.MethodDelete, loc, []int{http.StatusNoContent}, nil, nil, headers, nil)
	if err != nil {
		return err
	}

	if c.linkCache != nil {
		return c.linkCache.RemoveLinks(r, true)
	}
	return nil
}

func (c *databaseClient) _execute(ctx context.Context, loc *ResourceLocation, in, out interface{}, options *Options) error {
	headers := http.Header{}
	err := applyOptions(options, headers)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPost, loc, []int{http.StatusOK}, in, out, headers, nil)
}

func applyOptions(options *Options, headers http.Header) error {
	if options == nil {
		return nil
	}

	if options.IfNoneMatch != "" {
		headers.Set("If-None-Match", options.IfNoneMatch)
	}
	if options.MaxItemCount != 0 {
		headers.Set("x-ms-max-item-count", strconv.Itoa(options.MaxItemCount))
	}
	if options.Continuation != "" {
		headers.Set("x-ms-continuation", options.Continuation)
	}
	if options.CrossPartition {
		headers.Set("x-ms-documentdb-query-enablecrosspartition", "true")
	}
	if len(options.PreTriggers) > 0 {
		headers.Set("x-ms-documentdb-pre-trigger-include", strings.Join(options.PreTriggers, ","))
	}
	if len(options.PostTriggers) > 0 {
		headers.Set("x-ms-documentdb-post-trigger-include", strings.Join(options.PostTriggers, ","))
	}
	if options.partitionKey != "" {
		headers.Set("x-ms-documentdb-partitionkey", `["`+options.partitionKey+`"]`)
	}

	return nil
}

// copyResource copies the value under src into dst, which must be a pointer
// to the same concrete type.
func copyResource(src, dst interface{}) {
	switch d := dst.(type) {
	case *api.Database:
		*d = *src.(*api.Database)
	case *api.Collection:
		*d = *src.(*api.Collection)
	case *api.Document:
		*d = *src.(*api.Document)
	case *api.User:
		*d = *src.(*api.User)
	case *api.Permission:
		*d = *src.(*api.Permission)
	case *api.StoredProcedure:
		*d = *src.(*api.StoredProcedure)
	case *api.Trigger:
		*d = *src.(*api.Trigger)
	case *api.UserDefinedFunction:
		*d = *src.(*api.UserDefinedFunction)
	case *api.Attachment:
		*d = *src.(*api.Attachment)
	case *api.Offer:
		*d = *src.(*api.Offer)
	}
}
