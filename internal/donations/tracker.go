// Package donations implements the read side of donation requests and the
// contribution allocator that distributes a store's donation stock against
// one request.
package donations

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/cache"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/client"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/session"
)

// RequestView is a donation request annotated with its remaining
// contributable quantity, clamped to zero.
type RequestView struct {
	domain.DonationRequest
	Contributable int
}

// Tracker is the read-mostly view of outstanding donation requests.
type Tracker struct {
	api   *client.Client
	views *cache.ViewCache
	sess  session.Session
	log   *zap.Logger
}

// NewTracker creates the donation request view for one owner session.
func NewTracker(api *client.Client, views *cache.ViewCache, sess session.Session, log *zap.Logger) *Tracker {
	return &Tracker{api: api, views: views, sess: sess, log: log}
}

// Requests returns the open donation requests, cached within the freshness
// window.
func (t *Tracker) Requests(ctx context.Context) ([]RequestView, error) {
	key := cache.DonationRequestsKey()

	if data, _, ok := t.views.Get(key); ok {
		var requests []domain.DonationRequest
		if err := json.Unmarshal(data, &requests); err == nil {
			return annotate(requests), nil
		}
		t.views.Invalidate(key)
	}

	requests, err := t.api.ListDonationRequests(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(requests); err == nil {
		t.views.Put(key, data)
	}
	return annotate(requests), nil
}

// MatchingStock returns the owner's donation-kind records for a request's
// category. Records of the wrong kind or category are filtered out
// defensively even if the API already scopes the query.
func (t *Tracker) MatchingStock(ctx context.Context, request domain.DonationRequest) ([]domain.InventoryRecord, error) {
	key := cache.DonationStockKey(request.Category, t.sess.OwnerID)

	var records []domain.InventoryRecord
	if data, _, ok := t.views.Get(key); ok {
		if err := json.Unmarshal(data, &records); err == nil {
			return filterStock(records, request.Category), nil
		}
		t.views.Invalidate(key)
	}

	records, err := t.api.ListDonationStock(ctx, request.Category, t.sess.OwnerID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		t.views.Put(key, data)
	}
	return filterStock(records, request.Category), nil
}

func annotate(requests []domain.DonationRequest) []RequestView {
	views := make([]RequestView, len(requests))
	for i, req := range requests {
		views[i] = RequestView{DonationRequest: req, Contributable: req.Contributable()}
	}
	return views
}

func filterStock(records []domain.InventoryRecord, category string) []domain.InventoryRecord {
	matched := make([]domain.InventoryRecord, 0, len(records))
	for _, r := range records {
		if r.Kind == domain.KindDonation && r.Category == category && r.StockCount > 0 {
			matched = append(matched, r)
		}
	}
	return matched
}
