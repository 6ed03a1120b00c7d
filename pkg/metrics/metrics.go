package metrics

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

//go:generate go run go.uber.org/mock/mockgen -destination=../util/mocks/$GOPACKAGE/$GOPACKAGE.go github.com/Azure/cosmosdb-client-go/pkg/$GOPACKAGE Interface

// Interface represents metrics interface
type Interface interface {
	EmitFloat(string, float64, map[string]string)
	EmitGauge(string, int64, map[string]string)
}
