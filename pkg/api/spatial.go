package api

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"strconv"
	"strings"
)

// Spatial is a geometry value in the GeoJSON shape the service indexes.
// JSON returns the canonical serialisation, which query predicates splice
// into ST_* function calls unquoted.
type Spatial interface {
	JSON() string
}

// Point is a GeoJSON point.  Coordinates are longitude first, per the
// GeoJSON specification.
type Point struct {
	Longitude float64
	Latitude  float64
}

func (p Point) JSON() string {
	return fmt.Sprintf(`{"type":"Point","coordinates":[%s,%s]}`,
		formatCoord(p.Longitude), formatCoord(p.Latitude))
}

// LineString is a GeoJSON line string.
type LineString struct {
	Points []Point
}

func (l LineString) JSON() string {
	return fmt.Sprintf(`{"type":"LineString","coordinates":%s}`, formatPositions(l.Points))
}

// Polygon is a GeoJSON polygon.  The first ring is the exterior boundary;
// rings must be closed (first and last positions equal).
type Polygon struct {
	Rings [][]Point
}

func (p Polygon) JSON() string {
	rings := make([]string, 0, len(p.Rings))
	for _, ring := range p.Rings {
		rings = append(rings, formatPositions(ring))
	}
	return fmt.Sprintf(`{"type":"Polygon","coordinates":[%s]}`, strings.Join(rings, ","))
}

func formatPositions(points []Point) string {
	positions := make([]string, 0, len(points))
	for _, p := range points {
		positions = append(positions, fmt.Sprintf("[%s,%s]",
			formatCoord(p.Longitude), formatCoord(p.Latitude)))
	}
	return "[" + strings.Join(positions, ",") + "]"
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
