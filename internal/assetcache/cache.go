// ABOUTME: Versioned offline cache for the viewer shell assets.
// ABOUTME: Badger-backed precache with network-first navigation and cache-first assets.

package assetcache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v3"
)

// State tracks one cache generation's lifecycle.
type State int

const (
	StateAbsent State = iota
	StateInstalling
	StateActive
	StateSuperseded
)

var (
	// ErrOffline is the synthetic failure returned when a request misses
	// the cache and the network is unreachable.
	ErrOffline = errors.New("offline and not cached")

	// ErrNotActive is returned for requests before any version has
	// activated.
	ErrNotActive = errors.New("no active cache version")
)

const (
	assetPrefix   = "asset:"
	activeMetaKey = "meta:active"
)

// Cache stores shell assets keyed by version tag and request path. It
// never touches meal data; garbage collection across versions only ever
// removes asset entries.
type Cache struct {
	db     *badger.DB
	client *http.Client
	origin string

	mu      sync.Mutex
	version string
	state   State
}

// Open opens (creating if needed) the cache at dir. origin is the base
// URL assets are fetched from. A previously activated version resumes
// as active.
func Open(dir, origin string, client *http.Client) (*Cache, error) {
	if client == nil {
		client = http.DefaultClient
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open asset cache: %w", err)
	}

	c := &Cache{
		db:     db,
		client: client,
		origin: strings.TrimRight(origin, "/"),
	}

	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(activeMetaKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			c.version = string(val)
			c.state = StateActive
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("read active version: %w", err)
	}
	return c, nil
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Version returns the active version tag, empty if none.
func (c *Cache) Version() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// State returns the current lifecycle state.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Activate precaches the shell paths under version and makes it the
// serving generation. The precache is all-or-nothing: any fetch failure
// removes the partial entries and leaves the previous version active.
// On success every entry not belonging to version is deleted, so cache
// growth is bounded across deployments.
func (c *Cache) Activate(ctx context.Context, version string, shell []string) error {
	c.mu.Lock()
	if c.state == StateActive && c.version == version {
		c.mu.Unlock()
		return nil
	}
	prevVersion, prevState := c.version, c.state
	c.state = StateInstalling
	c.mu.Unlock()

	var written [][]byte
	for _, path := range shell {
		body, err := c.fetch(ctx, path)
		if err != nil {
			c.deleteKeys(written)
			c.mu.Lock()
			c.version, c.state = prevVersion, prevState
			c.mu.Unlock()
			return fmt.Errorf("precache %s: %w", path, err)
		}
		key := assetKey(version, path)
		if err := c.put(key, body); err != nil {
			c.deleteKeys(written)
			c.mu.Lock()
			c.version, c.state = prevVersion, prevState
			c.mu.Unlock()
			return fmt.Errorf("store %s: %w", path, err)
		}
		written = append(written, key)
	}

	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(activeMetaKey), []byte(version))
	})
	if err != nil {
		c.deleteKeys(written)
		c.mu.Lock()
		c.version, c.state = prevVersion, prevState
		c.mu.Unlock()
		return fmt.Errorf("record active version: %w", err)
	}

	c.mu.Lock()
	c.version = version
	c.state = StateActive
	c.mu.Unlock()

	return c.collectGarbage(version)
}

// Navigate serves a shell navigation request: network-first, caching a
// copy of a successful response, falling back to the cached document
// when the network fails.
func (c *Cache) Navigate(ctx context.Context, path string) ([]byte, error) {
	version, state := c.Version(), c.State()
	if state != StateActive {
		return nil, ErrNotActive
	}

	body, err := c.fetch(ctx, path)
	if err == nil {
		// Best effort; a failed cache write must not fail the request.
		_ = c.put(assetKey(version, path), body)
		return body, nil
	}

	cached, cacheErr := c.get(assetKey(version, path))
	if cacheErr == nil {
		return cached, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrOffline, err)
}

// Asset serves a static asset request: cache-first, fetching and
// caching on a miss, returning ErrOffline if the network also fails.
func (c *Cache) Asset(ctx context.Context, path string) ([]byte, error) {
	version, state := c.Version(), c.State()
	if state != StateActive {
		return nil, ErrNotActive
	}

	if cached, err := c.get(assetKey(version, path)); err == nil {
		return cached, nil
	}

	body, err := c.fetch(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOffline, err)
	}
	_ = c.put(assetKey(version, path), body)
	return body, nil
}

func (c *Cache) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.origin+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Cache) get(key []byte) ([]byte, error) {
	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (c *Cache) put(key, val []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

func (c *Cache) deleteKeys(keys [][]byte) {
	_ = c.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

// collectGarbage deletes every asset entry whose version tag is not
// current, superseding older generations.
func (c *Cache) collectGarbage(current string) error {
	keep := []byte(assetPrefix + current + ":")

	var stale [][]byte
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(assetPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			if !bytes.HasPrefix(key, keep) {
				stale = append(stale, key)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan stale versions: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

func assetKey(version, path string) []byte {
	return []byte(assetPrefix + version + ":" + path)
}
