// Package store implements the seller-side services over the marketplace
// API: the passive inventory view, the listing promoter and the listing
// lifecycle operations.
package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/cache"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/client"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/session"
)

// InventoryStore is a read view over the owner's bulk stock. It never
// decrements stock itself; decrements happen server-side as a consequence
// of promotions and contributions.
type InventoryStore struct {
	api   *client.Client
	views *cache.ViewCache
	sess  session.Session
	log   *zap.Logger
}

// NewInventoryStore creates the inventory view for one owner session.
func NewInventoryStore(api *client.Client, views *cache.ViewCache, sess session.Session, log *zap.Logger) *InventoryStore {
	return &InventoryStore{api: api, views: views, sess: sess, log: log}
}

// Get returns the owner's stock of one kind, served from the view cache
// within its freshness window.
func (s *InventoryStore) Get(ctx context.Context, kind domain.InventoryKind) ([]domain.InventoryRecord, error) {
	key := cache.InventoryKey(kind, s.sess.OwnerID)

	if data, _, ok := s.views.Get(key); ok {
		var records []domain.InventoryRecord
		if err := json.Unmarshal(data, &records); err == nil {
			return records, nil
		}
		// Corrupt cache entry: drop it and fall through to a fresh read
		s.views.Invalidate(key)
	}

	records, err := s.api.ListInventory(ctx, kind, s.sess.OwnerID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		s.views.Put(key, data)
	}
	return records, nil
}
