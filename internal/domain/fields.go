package domain

// FieldSet names the pricing and lending fields that may be entered for a
// listing type. It is a pure function of the type, independent of status.
type FieldSet struct {
	SellPrice     bool
	LendPrice     bool
	DepositAmount bool
	LendingPeriod bool
	LateFee       bool
	MinTrustScore bool
}

// AllowedFields returns the set of enterable fields for the given type.
func AllowedFields(t ListingType) FieldSet {
	return FieldSet{
		SellPrice:     t.SellEnabled(),
		LendPrice:     t.LendEnabled(),
		DepositAmount: t.LendEnabled(),
		LendingPeriod: t.LendEnabled(),
		LateFee:       t.LendEnabled(),
		MinTrustScore: t.LendEnabled(),
	}
}

// NormalizeForType clears every field that the listing's current type
// disables. Switching a listing from LEND_ONLY to SELL_ONLY must drop the
// stale lending terms rather than silently retain them.
func NormalizeForType(l *BookListing) {
	allowed := AllowedFields(l.ListingType)

	if l.Pricing != nil {
		if !allowed.SellPrice {
			l.Pricing.SellPrice = nil
		}
		if !allowed.LendPrice {
			l.Pricing.LendPrice = nil
		}
		if !allowed.DepositAmount {
			l.Pricing.DepositAmount = nil
		}
		if l.Pricing.SellPrice == nil && l.Pricing.LendPrice == nil && l.Pricing.DepositAmount == nil {
			l.Pricing = nil
		}
	}
	if !allowed.LendingPeriod {
		l.LendingPeriod = nil
	}
	if !allowed.LateFee {
		l.LateFee = nil
	}
	if !allowed.MinTrustScore {
		l.MinTrustScore = nil
	}
}
