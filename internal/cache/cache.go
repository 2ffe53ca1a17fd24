// Package cache provides the freshness-window cache for read views.
// Mutations never write through it; each successful mutation invalidates the
// views it affects so the next read goes back to the marketplace API.
package cache

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/metrics"
)

const defaultSize = 128

type entry struct {
	data     []byte
	fetched  time.Time
	viewName string
}

// ViewCache caches serialized read views for a bounded freshness window.
type ViewCache struct {
	lru *expirable.LRU[string, entry]
	m   *metrics.Metrics
	log *zap.Logger
}

// New creates a view cache whose entries expire after ttl.
func New(ttl time.Duration, m *metrics.Metrics, log *zap.Logger) *ViewCache {
	return &ViewCache{
		lru: expirable.NewLRU[string, entry](defaultSize, nil, ttl),
		m:   m,
		log: log,
	}
}

// Get returns the cached bytes for key and the time they were fetched.
func (c *ViewCache) Get(key string) ([]byte, time.Time, bool) {
	e, ok := c.lru.Get(key)
	if !ok {
		c.m.CacheMisses.WithLabelValues(viewLabel(key)).Inc()
		return nil, time.Time{}, false
	}
	c.m.CacheHits.WithLabelValues(viewLabel(key)).Inc()
	return e.data, e.fetched, true
}

// Put stores freshly fetched view bytes under key.
func (c *ViewCache) Put(key string, data []byte) {
	c.lru.Add(key, entry{data: data, fetched: time.Now(), viewName: viewLabel(key)})
}

// Invalidate drops the given keys. Called as the post-condition of every
// successful mutation.
func (c *ViewCache) Invalidate(keys ...string) {
	for _, key := range keys {
		if c.lru.Remove(key) {
			c.log.Debug("View invalidated", zap.String("view", key))
		}
	}
}

// Key builders. Keys embed the owner so two sessions never share a view.

// InventoryKey is the view of bulk stock of one kind for one owner.
func InventoryKey(kind domain.InventoryKind, ownerID int64) string {
	return fmt.Sprintf("inventory/%s/%d", kind, ownerID)
}

// ListingsKey is the view of an owner's listings.
func ListingsKey(ownerID int64) string {
	return fmt.Sprintf("listings/%d", ownerID)
}

// DonationRequestsKey is the shared view of open donation requests.
func DonationRequestsKey() string {
	return "donations/requests"
}

// DonationStockKey is the view of one owner's donation stock for a category.
func DonationStockKey(category string, ownerID int64) string {
	return fmt.Sprintf("donations/stock/%s/%d", category, ownerID)
}

// viewLabel collapses a key to its view family for metrics, so label
// cardinality stays bounded.
func viewLabel(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == '/' {
			return key[:i]
		}
	}
	return key
}
