package cosmosdb

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
	bolt "go.etcd.io/bbolt"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

var tokenBucket = []byte("tokens")

type tokenEntry struct {
	Token   string    `json:"token"`
	Mode    string    `json:"mode"`
	Expires time.Time `json:"expires"`
}

// TokenCache holds delegated resource tokens keyed per resource link and
// permission mode, persisted so they survive process restart.  Expired
// entries are never returned; they are lazily overwritten on the next Put.
type TokenCache struct {
	log *logrus.Entry
	db  *bolt.DB
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]tokenEntry
}

// NewTokenCache opens (or creates) the cache at path.  ttl bounds the
// lifetime of entries whose permissions do not state one; the service
// default for resource tokens is one hour.
func NewTokenCache(log *logrus.Entry, path string, ttl time.Duration) (*TokenCache, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(tokenBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	c := &TokenCache{log: log, db: db, ttl: ttl}

	err = c.Restore()
	if err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

func tokenKey(link string, mode api.PermissionMode) string {
	return string(mode) + ":" + strings.ToLower(strings.Trim(link, "/"))
}

// Get returns the cached token for (link, mode), if present and unexpired.
func (c *TokenCache) Get(link string, mode api.PermissionMode) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[tokenKey(link, mode)]
	if !ok || time.Now().After(e.Expires) {
		return "", false
	}

	return e.Token, true
}

// Put stores a token for (link, mode) and persists it.
func (c *TokenCache) Put(link string, mode api.PermissionMode, token string, issuedAt time.Time) error {
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	key := tokenKey(link, mode)
	e := tokenEntry{Token: token, Mode: string(mode), Expires: issuedAt.Add(c.ttl)}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries == nil {
		c.entries = map[string]tokenEntry{}
	}
	c.entries[key] = e

	var b []byte
	err := codec.NewEncoderBytes(&b, &codec.JsonHandle{}).Encode(e)
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(tokenBucket).Put([]byte(key), b)
	})
}

// Restore replaces the in-memory view with the persisted one, dropping any
// entry not yet committed.  Safe to call at any time.
func (c *TokenCache) Restore() error {
	entries := map[string]tokenEntry{}

	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(tokenBucket).ForEach(func(k, v []byte) error {
			var e tokenEntry
			err := codec.NewDecoderBytes(v, &codec.JsonHandle{}).Decode(&e)
			if err != nil {
				return err
			}
			entries[string(k)] = e
			return nil
		})
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries

	return nil
}

// Purge drops all entries, in memory and on disk.
func (c *TokenCache) Purge() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil

	return c.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket(tokenBucket)
		if err != nil {
			return err
		}
		_, err = tx.CreateBucket(tokenBucket)
		return err
	})
}

// Close closes the underlying store.
func (c *TokenCache) Close() error {
	return c.db.Close()
}
