package store

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
)

func TestInventoryGetServesFromCache(t *testing.T) {
	var hits int32
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		json.NewEncoder(w).Encode([]domain.InventoryRecord{
			{ID: 1, Kind: domain.KindRegular, Category: "Fiction", StockCount: 3},
		})
	}))
	defer closeSrv()

	inv := NewInventoryStore(api, views, sess, zap.NewNop())

	first, err := inv.Get(context.Background(), domain.KindRegular)
	require.NoError(t, err)
	second, err := inv.Get(context.Background(), domain.KindRegular)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestInventoryKindsAreCachedSeparately(t *testing.T) {
	var hits int32
	api, views, sess, closeSrv := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		kind := r.URL.Query().Get("kind")
		json.NewEncoder(w).Encode([]domain.InventoryRecord{
			{ID: 1, Kind: domain.InventoryKind(kind), StockCount: 1},
		})
	}))
	defer closeSrv()

	inv := NewInventoryStore(api, views, sess, zap.NewNop())

	regular, err := inv.Get(context.Background(), domain.KindRegular)
	require.NoError(t, err)
	donation, err := inv.Get(context.Background(), domain.KindDonation)
	require.NoError(t, err)

	assert.Equal(t, domain.KindRegular, regular[0].Kind)
	assert.Equal(t, domain.KindDonation, donation[0].Kind)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
