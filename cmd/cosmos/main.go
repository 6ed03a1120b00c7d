package main

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Azure/cosmosdb-client-go/pkg/entrypoint/config"
	"github.com/Azure/cosmosdb-client-go/pkg/entrypoint/databases"
	"github.com/Azure/cosmosdb-client-go/pkg/entrypoint/documents"
)

var gitCommit = "unknown"

func main() {
	root := &cobra.Command{
		Use:           "cosmos",
		Long:          "Cosmos DB client utility",
		Version:       gitCommit,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	config.AddCommonFlags(root)

	root.AddCommand(databases.NewCommand())
	root.AddCommand(documents.NewCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
