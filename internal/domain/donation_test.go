package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContributable(t *testing.T) {
	req := &DonationRequest{ID: 1, Category: "Fiction", Quantity: 10, QuantityCurrent: 8}
	assert.Equal(t, 2, req.Contributable())

	req.QuantityCurrent = 10
	assert.Equal(t, 0, req.Contributable())
}

func TestContributableClampsNegative(t *testing.T) {
	// Upstream over-fulfillment must surface as zero, never negative
	req := &DonationRequest{ID: 2, Category: "History", Quantity: 5, QuantityCurrent: 7}
	assert.Equal(t, 0, req.Contributable())
}

func TestInventoryRecordValidate(t *testing.T) {
	rec := &InventoryRecord{ID: 7, Kind: KindDonation, Condition: ConditionUsed, Category: "Fiction", StockCount: 5}
	assert.NoError(t, rec.Validate())

	rec.StockCount = -1
	assert.Error(t, rec.Validate())

	rec.StockCount = 0
	rec.Kind = "BULK"
	assert.Error(t, rec.Validate())
}
