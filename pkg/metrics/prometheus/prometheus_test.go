package prometheus

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testlog "github.com/Azure/cosmosdb-client-go/test/util/log"
)

func TestEmitGauge(t *testing.T) {
	_, log := testlog.New()
	r := prometheus.NewRegistry()
	e := New(log, r)

	e.EmitGauge("cosmosdb.request.count", 1, map[string]string{"verb": "GET", "statusCode": "200"})
	e.EmitGauge("cosmosdb.request.count", 1, map[string]string{"verb": "GET", "statusCode": "200"})

	mfs, err := r.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	assert.Equal(t, "cosmosdb_request_count", mfs[0].GetName())

	m := mfs[0].GetMetric()
	require.Len(t, m, 1)
	assert.Equal(t, float64(2), m[0].GetGauge().GetValue())

	labels := map[string]string{}
	for _, l := range m[0].GetLabel() {
		labels[l.GetName()] = l.GetValue()
	}
	assert.Equal(t, map[string]string{"verb": "GET", "statusCode": "200"}, labels)
}

func TestEmitFloat(t *testing.T) {
	_, log := testlog.New()
	r := prometheus.NewRegistry()
	e := New(log, r)

	e.EmitFloat("cosmosdb.request.duration", 0.25, map[string]string{"verb": "GET"})
	e.EmitFloat("cosmosdb.request.duration", 0.75, map[string]string{"verb": "GET"})

	mfs, err := r.Gather()
	require.NoError(t, err)
	require.Len(t, mfs, 1)
	assert.Equal(t, "cosmosdb_request_duration", mfs[0].GetName())

	m := mfs[0].GetMetric()
	require.Len(t, m, 1)
	assert.Equal(t, uint64(2), m[0].GetSummary().GetSampleCount())
	assert.Equal(t, float64(1), m[0].GetSummary().GetSampleSum())
}

func TestInconsistentDimsAreLogged(t *testing.T) {
	h, log := testlog.New()
	r := prometheus.NewRegistry()
	e := New(log, r)

	e.EmitGauge("stat", 1, map[string]string{"a": "1"})
	e.EmitGauge("stat", 1, map[string]string{"a": "1", "b": "2"})

	assert.NotEmpty(t, h.Entries, "dimension mismatch not logged")
}
