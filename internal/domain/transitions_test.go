package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionsFromAvailable(t *testing.T) {
	for _, to := range []ListingStatus{StatusLent, StatusSold, StatusAuction, StatusUnavailable, StatusInventory} {
		assert.True(t, CanTransition(TypeSellAndLend, StatusAvailable, to), string(to))
	}
}

func TestSoldIsTerminalForSellListings(t *testing.T) {
	for _, to := range []ListingStatus{StatusAvailable, StatusInventory, StatusLent, StatusAuction} {
		assert.False(t, CanTransition(TypeSellOnly, StatusSold, to), string(to))
		assert.False(t, CanTransition(TypeSellAndLend, StatusSold, to), string(to))
	}
}

func TestReturnToInventory(t *testing.T) {
	// Owner can pull any non-terminal listing back to inventory
	for _, from := range []ListingStatus{StatusAvailable, StatusUnavailable, StatusLent, StatusAuction} {
		assert.True(t, CanTransition(TypeLendOnly, from, StatusInventory), string(from))
	}
}

func TestLentReturnsToAvailable(t *testing.T) {
	assert.True(t, CanTransition(TypeLendOnly, StatusLent, StatusAvailable))
	assert.False(t, CanTransition(TypeLendOnly, StatusLent, StatusSold))
	assert.False(t, CanTransition(TypeLendOnly, StatusLent, StatusAuction))
}

func TestNoSelfTransition(t *testing.T) {
	assert.False(t, CanTransition(TypeSellOnly, StatusAvailable, StatusAvailable))
}

func TestInventoryOnlyPublishes(t *testing.T) {
	assert.True(t, CanTransition(TypeSellOnly, StatusInventory, StatusAvailable))
	assert.False(t, CanTransition(TypeSellOnly, StatusInventory, StatusSold))
	assert.False(t, CanTransition(TypeSellOnly, StatusInventory, StatusLent))
}
