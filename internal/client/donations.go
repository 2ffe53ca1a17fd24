package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
)

// ContributionItem is one allocated slice of a contribution batch.
type ContributionItem struct {
	InventoryID       int64 `json:"inventoryId"`
	ContributionCount int   `json:"contributionCount"`
}

// contributionPayload is the wire form of one contribution submission.
type contributionPayload struct {
	DonationID int64              `json:"donationId"`
	Items      []ContributionItem `json:"items"`
}

// ListDonationRequests returns the open donation requests.
func (c *Client) ListDonationRequests(ctx context.Context) ([]domain.DonationRequest, error) {
	var requests []domain.DonationRequest
	if err := c.getJSON(ctx, "list_donation_requests", "/api/donations/requests", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// ListDonationStock returns the owner's donation-kind records matching a
// request's category.
func (c *Client) ListDonationStock(ctx context.Context, category string, ownerID int64) ([]domain.InventoryRecord, error) {
	path := fmt.Sprintf("/api/donations/inventory?ownerId=%d&category=%s", ownerID, url.QueryEscape(category))

	var records []domain.InventoryRecord
	if err := c.getJSON(ctx, "list_donation_stock", path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SubmitContribution submits one allocation batch against a donation
// request. Atomic-or-nothing from the client's point of view: a rejection
// leaves no partial commit to compensate for.
func (c *Client) SubmitContribution(ctx context.Context, donationID int64, items []ContributionItem) error {
	payload := contributionPayload{DonationID: donationID, Items: items}
	path := fmt.Sprintf("/api/donations/%d/contributions", donationID)
	return c.postJSON(ctx, "submit_contribution", path, payload, nil)
}
