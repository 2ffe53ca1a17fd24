package donations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/cache"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/client"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/metrics"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/session"
)

func newFixture(t *testing.T, handler http.Handler) (*client.Client, *cache.ViewCache, session.Session, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)

	api := client.New(client.Config{
		BaseURL:     srv.URL,
		ReadRetries: 1,
		RetryDelay:  time.Millisecond,
	}, metrics.NewForTest(), zap.NewNop())
	views := cache.New(time.Minute, metrics.NewForTest(), zap.NewNop())

	return api, views, session.New(42, "test-owner"), srv.Close
}

func fictionRequest() domain.DonationRequest {
	return domain.DonationRequest{
		ID:              1,
		OrgName:         "City Library",
		Category:        "Fiction",
		Quantity:        10,
		QuantityCurrent: 8,
		Status:          domain.DonationApproved,
	}
}

func fictionStock() []domain.InventoryRecord {
	return []domain.InventoryRecord{
		{ID: 7, Kind: domain.KindDonation, Condition: domain.ConditionUsed, Category: "Fiction", StockCount: 5},
		{ID: 8, Kind: domain.KindDonation, Condition: domain.ConditionNew, Category: "Fiction", StockCount: 2},
	}
}

func TestPerItemClampAtInputTime(t *testing.T) {
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer closeSrv()

	a := NewAllocation(api, views, sess, zap.NewNop(), fictionRequest(), fictionStock())

	// Direct entry beyond stock is rejected immediately
	err := a.Set(7, 6)
	assert.ErrorIs(t, err, ErrExceedsStock)
	assert.Equal(t, 0, a.Amount(7))

	// Entry at the stock bound is fine
	require.NoError(t, a.Set(7, 5))
	assert.Equal(t, 5, a.Amount(7))

	// Increment past the bound is rejected, amount unchanged
	assert.ErrorIs(t, a.Increment(7), ErrExceedsStock)
	assert.Equal(t, 5, a.Amount(7))

	// Decrement below zero is rejected
	require.NoError(t, a.Set(7, 0))
	assert.ErrorIs(t, a.Decrement(7), ErrNegativeAmount)

	// Negative direct entry is rejected
	assert.ErrorIs(t, a.Set(8, -1), ErrNegativeAmount)

	// Unknown record
	assert.ErrorIs(t, a.Set(99, 1), ErrUnknownRecord)
}

func TestGlobalCapCheckedOnlyAtSubmission(t *testing.T) {
	var hits int32
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer closeSrv()

	// contributable = 10 - 8 = 2
	a := NewAllocation(api, views, sess, zap.NewNop(), fictionRequest(), fictionStock())
	assert.Equal(t, 2, a.Contributable())

	// Editing may transiently over-commit: 3 > 2 is accepted per item
	require.NoError(t, a.Set(7, 3))
	assert.Equal(t, 3, a.Total())

	// Submission rejects the over-commitment without touching the network
	err := a.Submit(context.Background())
	assert.ErrorIs(t, err, ErrExceedsContributable)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))

	// Trimming to the cap makes it submittable
	require.NoError(t, a.Set(7, 2))
	require.NoError(t, a.Submit(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestSubmitRejectsAllZeroAllocation(t *testing.T) {
	var hits int32
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer closeSrv()

	a := NewAllocation(api, views, sess, zap.NewNop(), fictionRequest(), fictionStock())

	err := a.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNothingSelected)
	assert.Equal(t, "select at least one book", ErrNothingSelected.Error())

	// Explicit zeros count as nothing selected too
	require.NoError(t, a.Set(7, 0))
	require.NoError(t, a.Set(8, 0))
	assert.ErrorIs(t, a.Submit(context.Background()), ErrNothingSelected)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestSubmitDropsZeroAmountsFromBatch(t *testing.T) {
	var payload struct {
		DonationID int64                     `json:"donationId"`
		Items      []client.ContributionItem `json:"items"`
	}
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	}))
	defer closeSrv()

	a := NewAllocation(api, views, sess, zap.NewNop(), fictionRequest(), fictionStock())
	require.NoError(t, a.Set(7, 0))
	require.NoError(t, a.Set(8, 2))
	require.NoError(t, a.Submit(context.Background()))

	assert.Equal(t, int64(1), payload.DonationID)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, int64(8), payload.Items[0].InventoryID)
	assert.Equal(t, 2, payload.Items[0].ContributionCount)
}

func TestSubmitDiscardsSessionAndInvalidatesViews(t *testing.T) {
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer closeSrv()

	views.Put(cache.DonationRequestsKey(), []byte(`[]`))
	views.Put(cache.DonationStockKey("Fiction", sess.OwnerID), []byte(`[]`))
	views.Put(cache.InventoryKey(domain.KindDonation, sess.OwnerID), []byte(`[]`))

	a := NewAllocation(api, views, sess, zap.NewNop(), fictionRequest(), fictionStock())
	require.NoError(t, a.Set(7, 2))
	require.NoError(t, a.Submit(context.Background()))

	// Session is discarded
	assert.Equal(t, 0, a.Total())
	assert.ErrorIs(t, a.Submit(context.Background()), ErrAlreadySubmitted)

	// Affected views are stale
	_, _, ok := views.Get(cache.DonationRequestsKey())
	assert.False(t, ok)
	_, _, ok = views.Get(cache.DonationStockKey("Fiction", sess.OwnerID))
	assert.False(t, ok)
	_, _, ok = views.Get(cache.InventoryKey(domain.KindDonation, sess.OwnerID))
	assert.False(t, ok)
}

func TestServerRejectionKeepsSessionOpen(t *testing.T) {
	var rejected int32
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Another contributor filled the request first
		if atomic.AddInt32(&rejected, 1) == 1 {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "request already fulfilled"})
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer closeSrv()

	a := NewAllocation(api, views, sess, zap.NewNop(), fictionRequest(), fictionStock())
	require.NoError(t, a.Set(7, 2))

	err := a.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request already fulfilled")

	// No partial commit, no local mutation: the amounts survive for a
	// manual resubmission
	assert.Equal(t, 2, a.Amount(7))
	require.NoError(t, a.Submit(context.Background()))
}

func TestAllocationFiltersMismatchedRecords(t *testing.T) {
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer closeSrv()

	records := append(fictionStock(),
		domain.InventoryRecord{ID: 20, Kind: domain.KindRegular, Category: "Fiction", StockCount: 4},
		domain.InventoryRecord{ID: 21, Kind: domain.KindDonation, Category: "History", StockCount: 4},
	)

	a := NewAllocation(api, views, sess, zap.NewNop(), fictionRequest(), records)
	assert.ErrorIs(t, a.Set(20, 1), ErrUnknownRecord)
	assert.ErrorIs(t, a.Set(21, 1), ErrUnknownRecord)
	assert.NoError(t, a.Set(7, 1))
}
