package databases

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
	"github.com/Azure/cosmosdb-client-go/pkg/cosmosdb"
	"github.com/Azure/cosmosdb-client-go/pkg/env"
	"github.com/Azure/cosmosdb-client-go/pkg/linkcache"
	promemitter "github.com/Azure/cosmosdb-client-go/pkg/metrics/prometheus"
)

func start(ctx context.Context, log *logrus.Entry, cfg *Config) error {
	account, err := env.DBAccountName()
	if err != nil {
		return err
	}

	masterKey, err := env.DBAccountKey()
	if err != nil {
		return err
	}

	h := &codec.JsonHandle{}

	err = api.AddExtensions(h)
	if err != nil {
		return err
	}

	authorizer, err := cosmosdb.NewMasterKeyAuthorizer(masterKey, api.PermissionModeAll)
	if err != nil {
		return err
	}

	dbc, err := cosmosdb.NewDatabaseClient(log, http.DefaultClient, h, account, authorizer)
	if err != nil {
		return err
	}

	if cfg.CachePath != "" {
		cache, err := linkcache.New(log, cfg.CachePath)
		if err != nil {
			return errors.Wrap(err, "open link cache")
		}
		defer cache.Close()

		dbc.SetLinkCache(cache)
	}

	if cfg.MetricsListen != "" {
		r := prometheus.NewRegistry()
		dbc.SetMetricsEmitter(promemitter.New(log, r))

		go func() {
			err := http.ListenAndServe(cfg.MetricsListen, promhttp.HandlerFor(r, promhttp.HandlerOpts{}))
			log.Error(err)
		}()
	}

	dbs, err := dbc.ListAll(ctx, nil)
	if err != nil {
		return err
	}

	for _, db := range dbs.Databases {
		log.WithFields(logrus.Fields{
			"resourceID": db.ResourceID,
			"selfLink":   db.Self,
		}).Info(db.ID)
	}

	return nil
}
