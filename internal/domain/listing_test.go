package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func lendTerms(l *BookListing) {
	if l.Pricing == nil {
		l.Pricing = &Pricing{}
	}
	l.Pricing.LendPrice = f64(2.50)
	l.Pricing.DepositAmount = f64(10)
	l.LendingPeriod = i(14)
	l.LateFee = f64(0.50)
	l.MinTrustScore = i(70)
}

func TestValidateSellOnly(t *testing.T) {
	listing := &BookListing{
		Title:       "The Trial",
		Authors:     []string{"Franz Kafka"},
		Condition:   ConditionUsed,
		ListingType: TypeSellOnly,
		Status:      StatusAvailable,
		BookCount:   1,
	}

	// Missing sell price
	err := listing.Validate()
	assert.ErrorIs(t, err, ErrSellPriceRequired)

	// With sell price
	listing.Pricing = &Pricing{SellPrice: f64(9.99)}
	assert.NoError(t, listing.Validate())

	// Stale lending terms are a violation, not a leftover to ignore
	listing.LendingPeriod = i(14)
	assert.ErrorIs(t, listing.Validate(), ErrLendTermsForbidden)
}

func TestValidateLendOnly(t *testing.T) {
	listing := &BookListing{
		Title:       "Beloved",
		Authors:     []string{"Toni Morrison"},
		Condition:   ConditionNew,
		ListingType: TypeLendOnly,
		Status:      StatusAvailable,
		BookCount:   1,
	}

	// Missing all lend terms
	assert.ErrorIs(t, listing.Validate(), ErrLendTermsRequired)

	// Partial terms are still incomplete
	listing.Pricing = &Pricing{LendPrice: f64(1.50)}
	listing.LendingPeriod = i(21)
	assert.ErrorIs(t, listing.Validate(), ErrLendTermsRequired)

	// Full terms
	lendTerms(listing)
	assert.NoError(t, listing.Validate())

	// A sell price on a lend-only listing is forbidden
	listing.Pricing.SellPrice = f64(5)
	assert.ErrorIs(t, listing.Validate(), ErrSellPriceForbidden)
}

func TestValidateSellAndLend(t *testing.T) {
	listing := &BookListing{
		Title:       "Dune",
		Authors:     []string{"Frank Herbert"},
		Condition:   ConditionUsed,
		ListingType: TypeSellAndLend,
		Status:      StatusAvailable,
		BookCount:   1,
	}
	lendTerms(listing)

	// Lend terms alone are not enough
	assert.ErrorIs(t, listing.Validate(), ErrSellPriceRequired)

	listing.Pricing.SellPrice = f64(12)
	assert.NoError(t, listing.Validate())
}

func TestValidateExchangeAndDonate(t *testing.T) {
	for _, typ := range []ListingType{TypeExchange, TypeDonate} {
		listing := &BookListing{
			Title:       "Test",
			Authors:     []string{"A"},
			ListingType: typ,
			Status:      StatusAvailable,
			BookCount:   1,
		}
		assert.NoError(t, listing.Validate(), string(typ))

		listing.Pricing = &Pricing{SellPrice: f64(1)}
		assert.ErrorIs(t, listing.Validate(), ErrSellPriceForbidden, string(typ))
	}
}

func TestAllowedFields(t *testing.T) {
	assert.Equal(t, FieldSet{SellPrice: true}, AllowedFields(TypeSellOnly))
	assert.Equal(t, FieldSet{
		LendPrice:     true,
		DepositAmount: true,
		LendingPeriod: true,
		LateFee:       true,
		MinTrustScore: true,
	}, AllowedFields(TypeLendOnly))
	assert.Equal(t, FieldSet{
		SellPrice:     true,
		LendPrice:     true,
		DepositAmount: true,
		LendingPeriod: true,
		LateFee:       true,
		MinTrustScore: true,
	}, AllowedFields(TypeSellAndLend))
	assert.Equal(t, FieldSet{}, AllowedFields(TypeExchange))
	assert.Equal(t, FieldSet{}, AllowedFields(TypeDonate))
}

func TestNormalizeForTypeClearsLendTerms(t *testing.T) {
	// A lend-only listing switched to sell-only keeps its stale lend terms
	// until normalized
	listing := &BookListing{
		Title:       "Ficciones",
		Authors:     []string{"Jorge Luis Borges"},
		ListingType: TypeLendOnly,
		Status:      StatusAvailable,
		BookCount:   1,
	}
	lendTerms(listing)
	require.NoError(t, listing.Validate())

	listing.ListingType = TypeSellOnly
	listing.Pricing.SellPrice = f64(8)
	require.Error(t, listing.Validate())

	NormalizeForType(listing)

	assert.Nil(t, listing.LendingPeriod)
	assert.Nil(t, listing.LateFee)
	assert.Nil(t, listing.MinTrustScore)
	require.NotNil(t, listing.Pricing)
	assert.Nil(t, listing.Pricing.LendPrice)
	assert.Nil(t, listing.Pricing.DepositAmount)
	assert.NoError(t, listing.Validate())
}

func TestNormalizeForTypeDropsEmptyPricing(t *testing.T) {
	listing := &BookListing{
		Title:       "Test",
		Authors:     []string{"A"},
		ListingType: TypeLendOnly,
		Status:      StatusAvailable,
		BookCount:   1,
	}
	lendTerms(listing)

	listing.ListingType = TypeExchange
	NormalizeForType(listing)

	assert.Nil(t, listing.Pricing)
	assert.NoError(t, listing.Validate())
}
