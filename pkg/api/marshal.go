package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"reflect"

	"github.com/ugorji/go/codec"
)

// AddExtensions adds extensions to a ugorji/go/codec handle to enable it to
// serialise the SDK's spatial types in their GeoJSON wire shape.
func AddExtensions(h *codec.JsonHandle) error {
	err := h.SetInterfaceExt(reflect.TypeOf(Point{}), 1, pointExt{})
	if err != nil {
		return err
	}

	err = h.SetInterfaceExt(reflect.TypeOf(LineString{}), 2, lineStringExt{})
	if err != nil {
		return err
	}

	return h.SetInterfaceExt(reflect.TypeOf(Polygon{}), 3, polygonExt{})
}

var _ codec.InterfaceExt = pointExt{}

type pointExt struct{}

func (pointExt) ConvertExt(v interface{}) interface{} {
	p := v.(*Point)
	return map[string]interface{}{
		"type":        "Point",
		"coordinates": []float64{p.Longitude, p.Latitude},
	}
}

func (pointExt) UpdateExt(dest interface{}, v interface{}) {
	p := dest.(*Point)
	coords := geometryCoordinates(v)
	p.Longitude, p.Latitude = position(coords)
}

var _ codec.InterfaceExt = lineStringExt{}

type lineStringExt struct{}

func (lineStringExt) ConvertExt(v interface{}) interface{} {
	l := v.(*LineString)
	return map[string]interface{}{
		"type":        "LineString",
		"coordinates": positions(l.Points),
	}
}

func (lineStringExt) UpdateExt(dest interface{}, v interface{}) {
	l := dest.(*LineString)
	for _, c := range geometryCoordinates(v) {
		lng, lat := position(coordinateSlice(c))
		l.Points = append(l.Points, Point{Longitude: lng, Latitude: lat})
	}
}

var _ codec.InterfaceExt = polygonExt{}

type polygonExt struct{}

func (polygonExt) ConvertExt(v interface{}) interface{} {
	p := v.(*Polygon)
	rings := make([][][]float64, 0, len(p.Rings))
	for _, ring := range p.Rings {
		rings = append(rings, positions(ring))
	}
	return map[string]interface{}{
		"type":        "Polygon",
		"coordinates": rings,
	}
}

func (polygonExt) UpdateExt(dest interface{}, v interface{}) {
	p := dest.(*Polygon)
	for _, r := range geometryCoordinates(v) {
		var ring []Point
		for _, c := range coordinateSlice(r) {
			lng, lat := position(coordinateSlice(c))
			ring = append(ring, Point{Longitude: lng, Latitude: lat})
		}
		p.Rings = append(p.Rings, ring)
	}
}

func positions(points []Point) [][]float64 {
	out := make([][]float64, 0, len(points))
	for _, p := range points {
		out = append(out, []float64{p.Longitude, p.Latitude})
	}
	return out
}

func geometryCoordinates(v interface{}) []interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		panic(fmt.Sprintf("unexpected geometry encoding %T", v))
	}
	return coordinateSlice(m["coordinates"])
}

// coordinateSlice unwraps one nesting level of a decoded coordinates array.
// The codec decodes uniform numeric arrays as concrete slices ([]float64,
// [][]float64, ...) rather than []interface{}, so any slice shape a GeoJSON
// geometry can take must be accepted.
func coordinateSlice(v interface{}) []interface{} {
	if s, ok := v.([]interface{}); ok {
		return s
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		panic(fmt.Sprintf("unexpected coordinates encoding %T", v))
	}

	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func position(c []interface{}) (lng, lat float64) {
	return coord(c[0]), coord(c[1])
}

func coord(v interface{}) float64 {
	switch f := v.(type) {
	case float64:
		return f
	case int64:
		return float64(f)
	case uint64:
		return float64(f)
	default:
		panic(fmt.Sprintf("unexpected coordinate encoding %T", v))
	}
}
