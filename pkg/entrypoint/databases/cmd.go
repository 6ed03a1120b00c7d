package databases

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

	CachePath     string `envconfig:"COSMOSDB_CACHE_PATH"`
	MetricsListen string `envconfig:"METRICS_LISTEN"`
}

// NewCommand returns the cobra command for "databases".
func NewCommand() *cobra.Command {
	cc := &cobra.Command{
		Use:  "databases",
		Long: "List the account's databases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig(cmd)
			if err != nil {
				return err
			}

			ctx := context.Background()
			log := utillog.GetLogger(cfg.LogLevel)

			return start(ctx, log, cfg)
		},
	}

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
