package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
	"go.uber.org/mock/gomock"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
	"github.com/Azure/cosmosdb-client-go/pkg/linkcache"
	mock_metrics "github.com/Azure/cosmosdb-client-go/pkg/util/mocks/metrics"
	testlog "github.com/Azure/cosmosdb-client-go/test/util/log"
)

func newTestClient(t *testing.T, handler http.Handler) (DatabaseClient, *httptest.Server, *logrus.Entry) {
	t.Helper()

	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)

	h := &codec.JsonHandle{}
	err := api.AddExtensions(h)
	if err != nil {
		t.Fatal(err)
	}

	authorizer, err := NewMasterKeyAuthorizer(testMasterKey, api.PermissionModeAll)
	if err != nil {
		t.Fatal(err)
	}

	_, log := testlog.New()

	dbc, err := NewDatabaseClient(log, srv.Client(), h, srv.URL, authorizer)
	if err != nil {
		t.Fatal(err)
	}

	return dbc, srv, log
}

func assertBaseHeaders(t *testing.T, r *http.Request) {
	t.Helper()

	if r.Header.Get("x-ms-version") != "2018-12-31" {
		t.Error(r.Header.Get("x-ms-version"))
	}
	if r.Header.Get("x-ms-date") == "" {
		t.Error("x-ms-date unset")
	}
	if !strings.HasPrefix(r.Header.Get("Authorization"), "type%3Dmaster%26ver%3D1.0%26sig%3D") {
		t.Error(r.Header.Get("Authorization"))
	}
}

func TestDatabaseLifecycle(t *testing.T) {
	ctx := context.Background()
	deleted := false

	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assertBaseHeaders(t, r)

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/dbs":
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"id":"Test1"`) {
				t.Error(string(body))
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"Test1","_rid":"qWJkAA==","_self":"dbs/qWJkAA==/"}`))

		case r.Method == http.MethodGet && r.URL.Path == "/dbs/Test1":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"Test1","_rid":"qWJkAA==","_self":"dbs/qWJkAA==/"}`))

		case r.Method == http.MethodDelete && r.URL.Path == "/dbs/Test1":
			deleted = true
			w.WriteHeader(http.StatusNoContent)

		default:
			t.Errorf("%s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
		}
	}))

	newdb := &api.Database{}
	newdb.ID = "Test1"

	db, err := dbc.Create(ctx, newdb, nil)
	if err != nil {
		t.Fatal(err)
	}
	if db.ID != "Test1" || db.ResourceID == "" || db.Self == "" {
		t.Errorf("%+v", db)
	}

	db, err = dbc.Get(ctx, "Test1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if db.ID != "Test1" {
		t.Error(db.ID)
	}

	err = dbc.Delete(ctx, db, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !deleted {
		t.Error("delete never reached the server")
	}
}

func TestCreateRejectsInvalidIDBeforeDispatch(t *testing.T) {
	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request dispatched")
	}))

	newdb := &api.Database{}
	newdb.ID = strings.Repeat("a", 256)

	_, err := dbc.Create(context.Background(), newdb, nil)
	if _, ok := err.(*api.InvalidIDError); !ok {
		t.Error(err)
	}
}

func TestServerError(t *testing.T) {
	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"NotFound","message":"Resource Not Found"}`))
	}))

	_, err := dbc.Get(context.Background(), "missing", nil)
	if !IsErrorStatusCode(err, http.StatusNotFound) {
		t.Fatal(err)
	}
	if err.Error() != "404 NotFound: Resource Not Found" {
		t.Error(err)
	}
}

func TestDocumentPagination(t *testing.T) {
	ctx := context.Background()

	pages := map[string]string{
		"":      `{"_rid":"rid","_count":1,"Documents":[{"id":"doc1","_self":"dbs/rid/colls/cid/docs/d1/"}]}`,
		"page2": `{"_rid":"rid","_count":1,"Documents":[{"id":"doc2","_self":"dbs/rid/colls/cid/docs/d2/"}]}`,
		"page3": `{"_rid":"rid","_count":1,"Documents":[{"id":"doc3","_self":"dbs/rid/colls/cid/docs/d3/"}]}`,
	}
	next := map[string]string{"": "page2", "page2": "page3"}

	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/dbs/testdb/colls/testcoll/docs" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("x-ms-max-item-count") != "1" {
			t.Error(r.Header.Get("x-ms-max-item-count"))
		}

		cont := r.Header.Get("x-ms-continuation")
		if token, ok := next[cont]; ok {
			w.Header().Set("x-ms-continuation", token)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pages[cont]))
	}))

	docc := NewDocumentClient(NewCollectionClient(dbc, "testdb"), "testcoll")

	i := docc.List(&Options{MaxItemCount: 1})

	docs, err := i.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs.Documents) != 1 || docs.Documents[0].ID != "doc1" {
		t.Errorf("%+v", docs)
	}
	if i.Continuation() != "page2" || !i.HasMoreResults() {
		t.Error(i.Continuation())
	}

	for _, want := range []string{"doc2", "doc3"} {
		docs, err = i.Next(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if docs.Documents[0].ID != want {
			t.Error(docs.Documents[0].ID)
		}
	}

	if i.HasMoreResults() {
		t.Error("iterator not exhausted")
	}

	_, err = i.Next(ctx)
	if err != ErrNoMoreResults {
		t.Error(err)
	}
}

func TestDocumentListAll(t *testing.T) {
	pages := map[string]string{
		"":      `{"_rid":"rid","_count":2,"Documents":[{"id":"doc1"},{"id":"doc2"}]}`,
		"page2": `{"_rid":"rid","_count":1,"Documents":[{"id":"doc3"}]}`,
	}
	next := map[string]string{"": "page2"}

	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cont := r.Header.Get("x-ms-continuation")
		if token, ok := next[cont]; ok {
			w.Header().Set("x-ms-continuation", token)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pages[cont]))
	}))

	docc := NewDocumentClient(NewCollectionClient(dbc, "testdb"), "testcoll")

	docs, err := docc.ListAll(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if docs.Count != 3 || len(docs.Documents) != 3 {
		t.Errorf("%+v", docs)
	}
}

func TestDocumentQueryHeaders(t *testing.T) {
	ctx := context.Background()

	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Error(r.Method)
		}
		if r.Header.Get("Content-Type") != "application/query+json" {
			t.Error(r.Header.Get("Content-Type"))
		}
		if r.Header.Get("x-ms-documentdb-isquery") != "true" {
			t.Error("x-ms-documentdb-isquery unset")
		}

		switch r.Header.Get("x-ms-documentdb-partitionkey") {
		case `["pk1"]`:
			if r.Header.Get("x-ms-documentdb-query-enablecrosspartition") != "" {
				t.Error("cross-partition set on a single-partition query")
			}
		case "":
			if r.Header.Get("x-ms-documentdb-query-enablecrosspartition") != "true" {
				t.Error("cross-partition unset")
			}
		default:
			t.Error(r.Header.Get("x-ms-documentdb-partitionkey"))
		}

		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"query":"SELECT * FROM testcoll WHERE testcoll.state = @state"`) ||
			!strings.Contains(string(body), `"name":"@state"`) {
			t.Error(string(body))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_rid":"rid","_count":1,"Documents":[{"id":"doc1"}]}`))
	}))

	docc := NewDocumentClient(NewCollectionClient(dbc, "testdb"), "testcoll")

	query := &Query{
		Query: "SELECT * FROM testcoll WHERE testcoll.state = @state",
		Parameters: []Parameter{
			{Name: "@state", Value: "Creating"},
		},
	}

	for _, partitionkey := range []string{"pk1", ""} {
		docs, err := docc.QueryAll(ctx, partitionkey, query, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(docs.Documents) != 1 {
			t.Errorf("%+v", docs)
		}
	}
}

func TestDocumentRefreshNotModified(t *testing.T) {
	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") != `"etag1"` {
			t.Error(r.Header.Get("If-None-Match"))
		}
		w.WriteHeader(http.StatusNotModified)
	}))

	docc := NewDocumentClient(NewCollectionClient(dbc, "testdb"), "testcoll")

	doc := &api.Document{}
	doc.ID = "doc1"
	doc.ETag = `"etag1"`
	err := doc.Set("custom", "value")
	if err != nil {
		t.Fatal(err)
	}

	newdoc, err := docc.Refresh(context.Background(), "pk1", doc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if newdoc.ID != "doc1" {
		t.Error(newdoc.ID)
	}
	if v, _ := newdoc.Get("custom"); v != "value" {
		t.Error(v)
	}
}

func TestDocumentUpsert(t *testing.T) {
	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-ms-documentdb-is-upsert") != "true" {
			t.Error("upsert header unset")
		}
		w.Header().Set("Content-Type", "application/json")
		// replacing an existing resource answers 200, not 201
		w.Write([]byte(`{"id":"doc1","_rid":"rid","_self":"dbs/d/colls/c/docs/r/"}`))
	}))

	docc := NewDocumentClient(NewCollectionClient(dbc, "testdb"), "testcoll")

	newdoc := &api.Document{}
	newdoc.ID = "doc1"

	doc, err := docc.Create(context.Background(), "pk1", newdoc, &Options{Upsert: true})
	if err != nil {
		t.Fatal(err)
	}
	if doc.ID != "doc1" {
		t.Error(doc.ID)
	}
}

func TestReplaceSendsIfMatch(t *testing.T) {
	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Error(r.Method)
		}
		if r.Header.Get("If-Match") != `"etag1"` {
			t.Error(r.Header.Get("If-Match"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"testcoll","_rid":"rid","_etag":"\"etag2\""}`))
	}))

	collc := NewCollectionClient(dbc, "testdb")

	coll := &api.Collection{}
	coll.ID = "testcoll"
	coll.ETag = `"etag1"`

	newcoll, err := collc.Replace(context.Background(), coll, nil)
	if err != nil {
		t.Fatal(err)
	}
	if newcoll.ETag != `"etag2"` {
		t.Error(newcoll.ETag)
	}
}

func TestStoredProcedureExecute(t *testing.T) {
	ctx := context.Background()

	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assertBaseHeaders(t, r)

		if r.Method != http.MethodPost {
			t.Error(r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Error(r.Header.Get("Content-Type"))
		}
		if r.Header.Get("x-ms-documentdb-partitionkey") != `["pk1"]` {
			t.Error(r.Header.Get("x-ms-documentdb-partitionkey"))
		}

		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/dbs/testdb/colls/testcoll/sprocs/spGetTotal":
			// the body is the bare argument array
			if string(body) != `["arg1",2]` {
				t.Error(string(body))
			}
			w.Write([]byte(`{"total":42}`))

		case "/dbs/testdb/colls/testcoll/sprocs/spPing":
			// nil args are sent as an empty array
			if string(body) != `[]` {
				t.Error(string(body))
			}
			w.Write([]byte(`"pong"`))

		default:
			t.Errorf("%s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
		}
	}))

	sprocc := NewStoredProcedureClient(NewCollectionClient(dbc, "testdb"), "testcoll")

	var result map[string]int
	err := sprocc.Execute(ctx, "pk1", "spGetTotal", []interface{}{"arg1", 2}, &result, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result["total"] != 42 {
		t.Errorf("%+v", result)
	}

	var pong string
	err = sprocc.Execute(ctx, "pk1", "spPing", nil, &pong, nil)
	if err != nil {
		t.Fatal(err)
	}
	if pong != "pong" {
		t.Error(pong)
	}
}

func TestReplaceNotModifiedIsAnError(t *testing.T) {
	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))

	docc := NewDocumentClient(NewCollectionClient(dbc, "testdb"), "testcoll")

	doc := &api.Document{}
	doc.ID = "doc1"

	// only a conditional get treats 304 as success; everywhere else it is a
	// typed error
	_, err := docc.Replace(context.Background(), "pk1", doc, nil)
	if !IsErrorStatusCode(err, http.StatusNotModified) {
		t.Fatal(err)
	}
	if err.Error() != "304 : " {
		t.Error(err)
	}
}

func TestLinkCacheIntegration(t *testing.T) {
	ctx := context.Background()

	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/dbs":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"Test1","_rid":"qWJkAA==","_self":"dbs/qWJkAA==/"}`))
		case "/dbs/Test1/colls":
			w.Header().Set("x-ms-alt-content-path", "dbs/Test1")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"testcoll","_rid":"qWJkAMPYWAo=","_self":"dbs/qWJkAA==/colls/qWJkAMPYWAo=/"}`))
		default:
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
	}))

	cache, err := linkcache.New(logrus.NewEntry(logrus.StandardLogger()), filepath.Join(t.TempDir(), "links.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	dbc.SetLinkCache(cache)

	newdb := &api.Database{}
	newdb.ID = "Test1"
	db, err := dbc.Create(ctx, newdb, nil)
	if err != nil {
		t.Fatal(err)
	}
	if db.AltLink() != "dbs/Test1" {
		t.Error(db.AltLink())
	}

	newcoll := &api.Collection{}
	newcoll.ID = "testcoll"
	coll, err := NewCollectionClient(dbc, "Test1").Create(ctx, newcoll, nil)
	if err != nil {
		t.Fatal(err)
	}
	if coll.AltLink() != "dbs/Test1/colls/testcoll" {
		t.Error(coll.AltLink())
	}

	alt, ok := cache.AltLink(coll.Self)
	if !ok || alt != "dbs/test1/colls/testcoll" {
		t.Error(alt)
	}
	self, ok := cache.SelfLink(coll.AltLink())
	if !ok || self != "dbs/qwjkaa==/colls/qwjkampywao=" {
		t.Error(self)
	}
}

func TestClientEmitsMetrics(t *testing.T) {
	dbc, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"Test1"}`))
	}))

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := mock_metrics.NewMockInterface(ctrl)
	m.EXPECT().EmitGauge("cosmosdb.request.count", int64(1), map[string]string{
		"verb":         "GET",
		"resourceType": "dbs",
		"statusCode":   "200",
	})
	m.EXPECT().EmitFloat("cosmosdb.request.duration", gomock.Any(), gomock.Any())

	dbc.SetMetricsEmitter(m)

	_, err := dbc.Get(context.Background(), "Test1", nil)
	if err != nil {
		t.Fatal(err)
	}
}

func TestClientLogsRequests(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"Test1"}`))
	}))
	defer srv.Close()

	h := &codec.JsonHandle{}
	err := api.AddExtensions(h)
	if err != nil {
		t.Fatal(err)
	}

	authorizer, err := NewMasterKeyAuthorizer(testMasterKey, api.PermissionModeAll)
	if err != nil {
		t.Fatal(err)
	}

	hook, log := testlog.New()

	dbc, err := NewDatabaseClient(log, srv.Client(), h, srv.URL, authorizer)
	if err != nil {
		t.Fatal(err)
	}

	_, err = dbc.Get(context.Background(), "Test1", nil)
	if err != nil {
		t.Fatal(err)
	}

	err = testlog.AssertLoggingOutput(hook, []map[string]types.GomegaMatcher{
		{
			"msg":        gomega.Equal("cosmosdb request"),
			"level":      gomega.Equal(logrus.DebugLevel),
			"method":     gomega.Equal("GET"),
			"path":       gomega.Equal("dbs/Test1"),
			"statusCode": gomega.Equal(200),
		},
	})
	if err != nil {
		t.Error(err)
	}
}
