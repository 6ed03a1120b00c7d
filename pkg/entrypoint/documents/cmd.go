package documents

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/Azure/cosmosdb-client-go/pkg/entrypoint/config"
	utillog "github.com/Azure/cosmosdb-client-go/pkg/util/log"
)

type Config struct {
	config.Common

	Database   string `envconfig:"DATABASE_NAME" required:"true"`
	Collection string `envconfig:"COLLECTION_NAME" required:"true"`

	CachePath string `envconfig:"COSMOSDB_CACHE_PATH"`
}

// NewCommand returns the cobra command for "documents".
func NewCommand() *cobra.Command {
	var query string
	var partitionKey string

	cc := &cobra.Command{
		Use:  "documents",
		Long: "List or query a collection's documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig(cmd)
			if err != nil {
				return err
			}

			ctx := context.Background()
			log := utillog.GetLogger(cfg.LogLevel)

			return start(ctx, log, cfg, query, partitionKey)
		},
	}

	cc.Flags().StringVar(&query, "query", "", "SQL query to run instead of a plain list")
	cc.Flags().StringVar(&partitionKey, "partition-key", "", "partition key for single-partition queries")

	return cc
}

func getConfig(cmd *cobra.Command) (*Config, error) {
	var c Config
	var err error
	err = envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	c.Common, err = config.CommonConfigFromCmd(cmd)
	if err != nil {
		return nil, err
	}

	return &c, nil
}
