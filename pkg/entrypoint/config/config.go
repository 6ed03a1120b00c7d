package config

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Common holds configuration shared by every command.
type Common struct {
	LogLevel string
}

// AddCommonFlags registers the shared flags on the root command.
func AddCommonFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
}

// CommonConfigFromCmd resolves the shared configuration from the command's
// flags and the environment.  Environment variables use underscores where
// flags use dashes (LOG_LEVEL for --log-level); flags win.
func CommonConfigFromCmd(cmd *cobra.Command) (Common, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err := v.BindPFlags(cmd.Flags())
	if err != nil {
		return Common{}, err
	}

	return Common{
		LogLevel: v.GetString("log-level"),
	}, nil
}
