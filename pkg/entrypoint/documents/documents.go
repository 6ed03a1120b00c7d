package documents

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
	"github.com/Azure/cosmosdb-client-go/pkg/cosmosdb"
	"github.com/Azure/cosmosdb-client-go/pkg/env"
	"github.com/Azure/cosmosdb-client-go/pkg/linkcache"
)

func start(ctx context.Context, log *logrus.Entry, cfg *Config, query, partitionKey string) error {
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

	collc := cosmosdb.NewCollectionClient(dbc, cfg.Database)
	docc := cosmosdb.NewDocumentClient(collc, cfg.Collection)

	var docs *api.Documents
	if query != "" {
		docs, err = docc.QueryAll(ctx, partitionKey, &cosmosdb.Query{Query: query}, nil)
	} else {
		docs, err = docc.ListAll(ctx, nil)
	}
	if err != nil {
		return err
	}

	log.Infof("%d documents", docs.Count)

	for _, doc := range docs.Documents {
		log.WithFields(logrus.Fields(doc.Fields())).Info(doc.ID)
	}

	return nil
}
