package domain

// CanTransition reports whether a listing of the given type may move from
// one status to another. SOLD is terminal for sell-enabled listings; every
// public state allows the owner-initiated return to inventory.
func CanTransition(t ListingType, from, to ListingStatus) bool {
	if from == to {
		return false
	}

	// SOLD is terminal once the listing could be sold
	if from == StatusSold && t.SellEnabled() {
		return false
	}

	// Owner can always pull a non-terminal listing back to inventory
	if to == StatusInventory {
		return true
	}

	switch from {
	case StatusInventory:
		return to == StatusAvailable
	case StatusAvailable:
		return to == StatusUnavailable || to == StatusLent || to == StatusSold || to == StatusAuction
	case StatusUnavailable:
		return to == StatusAvailable
	case StatusLent:
		return to == StatusAvailable
	case StatusAuction:
		return to == StatusSold || to == StatusAvailable
	case StatusSold:
		return false
	}
	return false
}
