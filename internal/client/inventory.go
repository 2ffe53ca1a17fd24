package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
)

// ListInventory returns the owner's bulk stock of one kind.
func (c *Client) ListInventory(ctx context.Context, kind domain.InventoryKind, ownerID int64) ([]domain.InventoryRecord, error) {
	path := fmt.Sprintf("/api/inventory?ownerId=%d&kind=%s", ownerID, url.QueryEscape(string(kind)))

	var records []domain.InventoryRecord
	if err := c.getJSON(ctx, "list_inventory", path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ResolveImage resolves an opaque stored-image name to a displayable URL.
func (c *Client) ResolveImage(ctx context.Context, name string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	path := "/api/images/" + url.PathEscape(name)
	if err := c.getJSON(ctx, "resolve_image", path, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
