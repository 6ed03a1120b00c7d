package linkcache

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/Azure/cosmosdb-client-go/pkg/api"
)

var (
	selfToAltBucket = []byte("selfToAlt")
	altToSelfBucket = []byte("altToSelf")
)

// Cache is a durable bidirectional mapping between self links (resource-id
// based paths) and alt links (name based paths).  The service returns one
// form; callers often hold the other.  Both directions are written in one
// critical section so the mapping stays bijective under concurrent use, and
// both survive process restart.
//
// One cache file serves one database account; keys are lower-cased link
// paths with surrounding slashes trimmed.
type Cache struct {
	log *logrus.Entry
	db  *bolt.DB

	mu        sync.Mutex
	selfToAlt map[string]string
	altToSelf map[string]string
}

// New opens (or creates) the cache at path and restores the persisted
// entries.
func New(log *logrus.Entry, path string) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{selfToAltBucket, altToSelfBucket} {
			_, err := tx.CreateBucketIfNotExists(name)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	c := &Cache{log: log, db: db}

	err = c.Restore()
	if err != nil {
		db.Close()
		return nil, err
	}

	return c, nil
}

func normalize(link string) string {
	return strings.ToLower(strings.Trim(link, "/"))
}

// StoreLinks records the self⇄alt pair of a resource, or of every item of a
// feed.  Resources without both links known are skipped: the self link comes
// from the service, the alt link is synthesised by the request pipeline from
// the x-ms-alt-content-path header before this is called.
func (c *Cache) StoreLinks(v interface{}) error {
	pairs := collectLinks(v)
	if len(pairs) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selfToAlt == nil {
		c.selfToAlt = map[string]string{}
		c.altToSelf = map[string]string{}
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		selfToAlt := tx.Bucket(selfToAltBucket)
		altToSelf := tx.Bucket(altToSelfBucket)

		for _, p := range pairs {
			self, alt := p[0], p[1]

			c.selfToAlt[self] = alt
			c.altToSelf[alt] = self

			err := selfToAlt.Put([]byte(self), []byte(alt))
			if err != nil {
				return err
			}

			err = altToSelf.Put([]byte(alt), []byte(self))
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func collectLinks(v interface{}) [][2]string {
	var pairs [][2]string

	switch r := v.(type) {
	case api.Feed:
		for _, item := range r.Items() {
			pairs = append(pairs, collectLinks(item)...)
		}

	case api.Linkable:
		env := r.Envelope()
		if env.Self != "" && env.AltLink() != "" {
			pairs = append(pairs, [2]string{normalize(env.Self), normalize(env.AltLink())})
		}
	}

	return pairs
}

// AltLink returns the alt link recorded for a self link.
func (c *Cache) AltLink(selfLink string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	alt, ok := c.selfToAlt[normalize(selfLink)]
	return alt, ok
}

// SelfLink returns the self link recorded for an alt link.
func (c *Cache) SelfLink(altLink string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	self, ok := c.altToSelf[normalize(altLink)]
	return self, ok
}

// ResourceAltLink resolves a resource to its alt link: the resource's own
// record if set, the cache otherwise.
func (c *Cache) ResourceAltLink(r api.Linkable) (string, bool) {
	if alt := r.Envelope().AltLink(); alt != "" {
		return normalize(alt), true
	}
	return c.AltLink(r.Envelope().Self)
}

// ResourceSelfLink resolves a resource to its self link: the resource's own
// record if set, the cache otherwise.
func (c *Cache) ResourceSelfLink(r api.Linkable) (string, bool) {
	if self := r.Envelope().Self; self != "" {
		return normalize(self), true
	}
	if alt := r.Envelope().AltLink(); alt != "" {
		return c.SelfLink(alt)
	}
	return "", false
}

// parent drops the final kind/id pair from a link.
func parent(link string) (string, bool) {
	parts := strings.Split(normalize(link), "/")
	if len(parts) < 4 || len(parts)%2 != 0 {
		return "", false
	}
	return strings.Join(parts[:len(parts)-2], "/"), true
}

// ParentAltLink returns the alt link of the parent of the resource the given
// link (self or alt) addresses.
func (c *Cache) ParentAltLink(link string) (string, bool) {
	key := normalize(link)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.altToSelf[key]; ok {
		return parent(key)
	}

	if _, ok := c.selfToAlt[key]; ok {
		parentSelf, ok := parent(key)
		if !ok {
			return "", false
		}
		alt, ok := c.selfToAlt[parentSelf]
		return alt, ok
	}

	return "", false
}

// ParentSelfLink returns the self link of the parent of the resource the
// given link (self or alt) addresses.
func (c *Cache) ParentSelfLink(link string) (string, bool) {
	key := normalize(link)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.selfToAlt[key]; ok {
		return parent(key)
	}

	if _, ok := c.altToSelf[key]; ok {
		parentAlt, ok := parent(key)
		if !ok {
			return "", false
		}
		self, ok := c.altToSelf[parentAlt]
		return self, ok
	}

	return "", false
}

// RemoveLinks drops the resource's mapping.  With cascade, mappings of all
// its descendants go too.
func (c *Cache) RemoveLinks(r api.Linkable, cascade bool) error {
	self, ok := c.ResourceSelfLink(r)
	if !ok {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	remove := map[string]string{}

	if alt, ok := c.selfToAlt[self]; ok {
		remove[self] = alt
	}

	if cascade {
		for s, a := range c.selfToAlt {
			if strings.HasPrefix(s, self+"/") {
				remove[s] = a
			}
		}
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		selfToAlt := tx.Bucket(selfToAltBucket)
		altToSelf := tx.Bucket(altToSelfBucket)

		for s, a := range remove {
			delete(c.selfToAlt, s)
			delete(c.altToSelf, a)

			err := selfToAlt.Delete([]byte(s))
			if err != nil {
				return err
			}

			err = altToSelf.Delete([]byte(a))
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// Restore replaces the in-memory maps with the persisted state, discarding
// anything not committed.  Idempotent and safe to call at any time.
func (c *Cache) Restore() error {
	selfToAlt := map[string]string{}
	altToSelf := map[string]string{}

	err := c.db.View(func(tx *bolt.Tx) error {
		err := tx.Bucket(selfToAltBucket).ForEach(func(k, v []byte) error {
			selfToAlt[string(k)] = string(v)
			return nil
		})
		if err != nil {
			return err
		}

		return tx.Bucket(altToSelfBucket).ForEach(func(k, v []byte) error {
			altToSelf[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.selfToAlt = selfToAlt
	c.altToSelf = altToSelf

	return nil
}

// Purge drops every entry, in memory and on disk.
func (c *Cache) Purge() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selfToAlt = nil
	c.altToSelf = nil

	return c.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{selfToAltBucket, altToSelfBucket} {
			err := tx.DeleteBucket(name)
			if err != nil {
				return err
			}
			_, err = tx.CreateBucket(name)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}
