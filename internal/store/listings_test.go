package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/client"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
)

func lendOnlyListing(id int64) domain.BookListing {
	lendPrice := 1.50
	lateFee := 0.25
	period := 14
	trust := 60
	deposit := 5.0
	return domain.BookListing{
		ID:            id,
		Title:         "Beloved",
		Authors:       []string{"Toni Morrison"},
		Condition:     domain.ConditionUsed,
		ListingType:   domain.TypeLendOnly,
		Status:        domain.StatusAvailable,
		Pricing:       &domain.Pricing{LendPrice: &lendPrice, DepositAmount: &deposit},
		LendingPeriod: &period,
		LateFee:       &lateFee,
		MinTrustScore: &trust,
		BookCount:     1,
	}
}

func TestListServesFromCacheUntilInvalidated(t *testing.T) {
	var reads int32
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(&reads, 1)
			json.NewEncoder(w).Encode([]domain.BookListing{lendOnlyListing(55)})
			return
		}
		require.NoError(t, r.ParseMultipartForm(1<<20))
		var submitted domain.BookListing
		require.NoError(t, json.Unmarshal([]byte(r.MultipartForm.Value["listing"][0]), &submitted))
		json.NewEncoder(w).Encode(submitted)
	}))
	defer closeSrv()

	svc := NewListingService(api, views, sess, zap.NewNop())

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Second read inside the freshness window is served from the view cache
	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&reads))

	// A successful mutation invalidates the view; the next read re-fetches
	_, err = svc.ChangeStatus(context.Background(), first[0], domain.StatusUnavailable)
	require.NoError(t, err)

	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&reads))
}

func TestUpdateClearsStaleLendTermsOnTypeChange(t *testing.T) {
	var submitted domain.BookListing
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.NoError(t, json.Unmarshal([]byte(r.MultipartForm.Value["listing"][0]), &submitted))
		json.NewEncoder(w).Encode(submitted)
	}))
	defer closeSrv()

	// Switch a lend-only listing to sell-only while its lend terms are
	// still populated
	listing := lendOnlyListing(55)
	listing.ListingType = domain.TypeSellOnly
	sellPrice := 8.0
	listing.Pricing.SellPrice = &sellPrice

	svc := NewListingService(api, views, sess, zap.NewNop())
	updated, err := svc.Update(context.Background(), listing, nil, nil)
	require.NoError(t, err)

	// The submitted document carries no lending leftovers
	require.NotNil(t, submitted.Pricing)
	assert.Nil(t, submitted.Pricing.LendPrice)
	assert.Nil(t, submitted.Pricing.DepositAmount)
	assert.Nil(t, submitted.LendingPeriod)
	assert.Nil(t, submitted.LateFee)
	assert.Nil(t, submitted.MinTrustScore)
	require.NotNil(t, submitted.Pricing.SellPrice)
	assert.Equal(t, 8.0, *submitted.Pricing.SellPrice)

	assert.NoError(t, updated.Validate())
}

func TestUpdateRejectsMissingPricing(t *testing.T) {
	var hits int32
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer closeSrv()

	// Type change to sell-only without supplying a sell price: normalization
	// clears the lend terms, validation then rejects the edit
	listing := lendOnlyListing(55)
	listing.ListingType = domain.TypeSellOnly

	svc := NewListingService(api, views, sess, zap.NewNop())
	_, err := svc.Update(context.Background(), listing, nil, nil)
	require.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestChangeStatusValidatesTransition(t *testing.T) {
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		var submitted domain.BookListing
		require.NoError(t, json.Unmarshal([]byte(r.MultipartForm.Value["listing"][0]), &submitted))
		json.NewEncoder(w).Encode(submitted)
	}))
	defer closeSrv()

	svc := NewListingService(api, views, sess, zap.NewNop())

	listing := lendOnlyListing(55)
	updated, err := svc.ChangeStatus(context.Background(), listing, domain.StatusUnavailable)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnavailable, updated.Status)

	// SOLD is terminal for sell listings
	sellPrice := 8.0
	sold := domain.BookListing{
		ID:          56,
		Title:       "Dune",
		Authors:     []string{"Frank Herbert"},
		ListingType: domain.TypeSellOnly,
		Status:      domain.StatusSold,
		Pricing:     &domain.Pricing{SellPrice: &sellPrice},
		BookCount:   1,
	}
	_, err = svc.ChangeStatus(context.Background(), sold, domain.StatusAvailable)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReturnToInventoryRequiresConfirmation(t *testing.T) {
	var hits int32
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer closeSrv()

	svc := NewListingService(api, views, sess, zap.NewNop())

	err := svc.ReturnToInventory(context.Background(), 55, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))

	err = svc.ReturnToInventory(context.Background(), 55, true)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestRemoteRejectionLeavesViewUntouched(t *testing.T) {
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/listings/55":
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"error": "listing is currently lent"})
		default:
			json.NewEncoder(w).Encode([]domain.BookListing{})
		}
	}))
	defer closeSrv()

	svc := NewListingService(api, views, sess, zap.NewNop())
	err := svc.ReturnToInventory(context.Background(), 55, true)
	require.Error(t, err)

	var rerr *client.RemoteError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, http.StatusConflict, rerr.StatusCode)
	assert.Contains(t, err.Error(), "listing is currently lent")
}
