package prometheus

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/Azure/cosmosdb-client-go/pkg/metrics"
)

type emitter struct {
	log *logrus.Entry
	r   prometheus.Registerer

	mu      sync.Mutex
	floats  map[string]*prometheus.SummaryVec
	gauges  map[string]*prometheus.GaugeVec
}

// New returns a metrics.Interface backed by a prometheus registerer.
// Metric names are derived from stat names by replacing '.' with '_';
// dimension keys become labels and must stay stable per stat.
func New(log *logrus.Entry, r prometheus.Registerer) metrics.Interface {
	return &emitter{
		log: log,
		r:   r,

		floats: map[string]*prometheus.SummaryVec{},
		gauges: map[string]*prometheus.GaugeVec{},
	}
}

// EmitFloat records float information
func (e *emitter) EmitFloat(stat string, value float64, dims map[string]string) {
	keys, values := labels(dims)

	e.mu.Lock()
	vec, ok := e.floats[stat]
	if !ok {
		vec = prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name: name(stat),
		}, keys)
		err := e.r.Register(vec)
		if err != nil {
			e.mu.Unlock()
			e.log.Error(err)
			return
		}
		e.floats[stat] = vec
	}
	e.mu.Unlock()

	m, err := vec.GetMetricWithLabelValues(values...)
	if err != nil {
		e.log.Error(err)
		return
	}
	m.Observe(value)
}

// EmitGauge records gauge information
func (e *emitter) EmitGauge(stat string, value int64, dims map[string]string) {
	keys, values := labels(dims)

	e.mu.Lock()
	vec, ok := e.gauges[stat]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: name(stat),
		}, keys)
		err := e.r.Register(vec)
		if err != nil {
			e.mu.Unlock()
			e.log.Error(err)
			return
		}
		e.gauges[stat] = vec
	}
	e.mu.Unlock()

	m, err := vec.GetMetricWithLabelValues(values...)
	if err != nil {
		e.log.Error(err)
		return
	}
	m.Add(float64(value))
}

func name(stat string) string {
	return strings.ReplaceAll(stat, ".", "_")
}

func labels(dims map[string]string) (keys, values []string) {
	keys = make([]string, 0, len(dims))
	for k := range dims {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values = make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, dims[k])
	}

	return keys, values
}
