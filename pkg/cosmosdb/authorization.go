package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

// Authorizer produces the Authorization header value for one request,
// together with the x-ms-date value its signature covers.  Tokens are
// request-scoped: the service re-derives the signature from (verb, resource
// type, resource link, date), so a token replayed against a different method
// or resource fails authorization.
type Authorizer interface {
	Authorize(ctx context.Context, loc *ResourceLocation, method string) (token, date string, err error)
}

type masterKeyAuthorizer struct {
	key  []byte
	mode api.PermissionMode
}

// NewMasterKeyAuthorizer returns an Authorizer signing requests with the
// account master key.  With mode PermissionModeRead, write verbs are
// refused up front rather than silently downgraded.
func NewMasterKeyAuthorizer(masterKey string, mode api.PermissionMode) (Authorizer, error) {
	key, err := base64.StdEncoding.DecodeString(masterKey)
	if err != nil {
		return nil, err
	}

	return &masterKeyAuthorizer{key: key, mode: mode}, nil
}

func (a *masterKeyAuthorizer) Authorize(ctx context.Context, loc *ResourceLocation, method string) (string, string, error) {
	if a.mode == api.PermissionModeRead && isWriteVerb(method) {
		return "", "", ErrReadOnly
	}

	date := time.Now().UTC().Format(http.TimeFormat)
	return signPayload(a.key, method, loc.Type(), loc.Link(), date), date, nil
}

// signPayload implements the service's master-key signature: HMAC-SHA256
// over the canonical payload, keyed with the base64-decoded master key.
// The date string entering the payload must be byte-identical to the
// x-ms-date header the request carries.
func signPayload(key []byte, method string, typ ResourceType, link, date string) string {
	payload := strings.ToLower(method) + "\n" +
		strings.ToLower(string(typ)) + "\n" +
		link + "\n" +
		strings.ToLower(date) + "\n" +
		"\n"

	h := hmac.New(sha256.New, key)
	h.Write([]byte(payload))
	signature := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return url.QueryEscape("type=master&ver=1.0&sig=" + signature)
}

func isWriteVerb(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead:
		return false
	}
	return true
}
