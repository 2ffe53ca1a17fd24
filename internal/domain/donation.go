package domain

// DonationStatus is the fulfillment state of a donation request.
type DonationStatus string

const (
	DonationShipped   DonationStatus = "SHIPPED"
	DonationInTransit DonationStatus = "IN_TRANSIT"
	DonationApproved  DonationStatus = "APPROVED"
	DonationReceived  DonationStatus = "RECEIVED"
)

// DonationRequest is an externally-originated request for donated books.
// Read-only from the seller's side; only quantityCurrent moves, and only
// server-side.
type DonationRequest struct {
	ID              int64          `json:"id"`
	OrgName         string         `json:"orgName"`
	Category        string         `json:"category"`
	Notes           string         `json:"notes,omitempty"`
	Quantity        int            `json:"quantity"`
	QuantityCurrent int            `json:"quantityCurrent"`
	Status          DonationStatus `json:"status"`
}

// Contributable is the remaining unfulfilled quantity. Clamped to zero so an
// upstream inconsistency can never surface as a negative remainder.
func (d *DonationRequest) Contributable() int {
	c := d.Quantity - d.QuantityCurrent
	if c < 0 {
		return 0
	}
	return c
}
