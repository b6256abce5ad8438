// In-memory LRU front for the summary store.
//
// Information Hiding:
// - Eviction order and expiry bookkeeping hidden
// - Backing store consulted transparently on memory misses

package storage

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultCacheCapacity bounds the in-memory front when no capacity is given.
const DefaultCacheCapacity = 128

// Cache fronts a SummaryStore with a bounded in-memory LRU. Entries older
// than the TTL are dropped from memory and re-fetched from the store on
// the next access; the store remains the source of truth.
type Cache struct {
	mu       sync.Mutex
	store    SummaryStore
	capacity int
	ttl      time.Duration
	entries  map[string]*list.Element
	order    *list.List // front = most recently used

	now func() time.Time // replaced in tests
}

type cacheEntry struct {
	record   SummaryRecord
	cachedAt time.Time
}

// NewCache creates a cache over store. capacity <= 0 uses
// DefaultCacheCapacity; ttl <= 0 disables expiry.
func NewCache(store SummaryStore, capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		store:    store,
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get returns the record for fingerprint, consulting memory first.
// Returns nil, nil when the fingerprint is unknown.
func (c *Cache) Get(ctx context.Context, fingerprint string) (*SummaryRecord, error) {
	c.mu.Lock()
	if el, ok := c.entries[fingerprint]; ok {
		entry := el.Value.(*cacheEntry)
		if c.ttl > 0 && c.now().Sub(entry.cachedAt) > c.ttl {
			c.removeLocked(fingerprint, el)
		} else {
			c.order.MoveToFront(el)
			entry.record.AccessedAt = c.now()
			entry.record.AccessCount++
			record := entry.record
			c.mu.Unlock()
			return &record, nil
		}
	}
	c.mu.Unlock()

	record, err := c.store.Get(ctx, fingerprint)
	if err != nil || record == nil {
		return record, err
	}

	c.mu.Lock()
	c.admitLocked(*record)
	c.mu.Unlock()
	return record, nil
}

// Put saves the record to the store and admits it to memory.
func (c *Cache) Put(ctx context.Context, record SummaryRecord) error {
	record = record.withDefaults(c.now())
	if err := c.store.Put(ctx, record); err != nil {
		return err
	}

	c.mu.Lock()
	c.admitLocked(record)
	c.mu.Unlock()
	return nil
}

// List returns records from the backing store ordered by most recent
// access. limit <= 0 returns all records.
func (c *Cache) List(ctx context.Context, limit int) ([]SummaryRecord, error) {
	return c.store.List(ctx, limit)
}

// Delete removes the record from the store and from memory.
func (c *Cache) Delete(ctx context.Context, fingerprint string) error {
	c.mu.Lock()
	if el, ok := c.entries[fingerprint]; ok {
		c.removeLocked(fingerprint, el)
	}
	c.mu.Unlock()

	return c.store.Delete(ctx, fingerprint)
}

// Purge removes all records from the store and from memory.
func (c *Cache) Purge(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.mu.Unlock()

	return c.store.Purge(ctx)
}

// Close closes the backing store.
func (c *Cache) Close() error {
	return c.store.Close()
}

// Len returns the number of records currently held in memory.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache) admitLocked(record SummaryRecord) {
	if el, ok := c.entries[record.Fingerprint]; ok {
		el.Value = &cacheEntry{record: record, cachedAt: c.now()}
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&cacheEntry{record: record, cachedAt: c.now()})
	c.entries[record.Fingerprint] = el

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		entry := oldest.Value.(*cacheEntry)
		c.removeLocked(entry.record.Fingerprint, oldest)
	}
}

func (c *Cache) removeLocked(fingerprint string, el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, fingerprint)
}

// Verify Cache implements the store interface
var _ SummaryStore = (*Cache)(nil)
