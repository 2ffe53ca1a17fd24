package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
)

// listingDocument is the JSON part of a multipart listing submission.
type listingDocument struct {
	domain.BookListing
	IsForSelling bool `json:"isForSelling"`
}

// PromoteRequest is the wire form of one inventory-to-listing promotion.
// Image preconditions are enforced by the promoter before this is built.
type PromoteRequest struct {
	Listing      domain.BookListing
	InventoryID  int64
	IsForSelling bool
	Cover        ImageFile
	Gallery      []ImageFile
}

// PromoteListing submits a promotion as one multipart request: the listing
// JSON document plus the cover and gallery images. The origin record's
// stockCount is decremented server-side, never locally.
func (c *Client) PromoteListing(ctx context.Context, promo PromoteRequest) (*domain.BookListing, error) {
	listing := promo.Listing
	listing.InventoryID = &promo.InventoryID

	doc := listingDocument{BookListing: listing, IsForSelling: promo.IsForSelling}
	req, err := c.multipartRequest(http.MethodPost, "/api/listings/promote", doc, &promo.Cover, promo.Gallery)
	if err != nil {
		return nil, err
	}

	var created domain.BookListing
	if err := c.do(ctx, "promote_listing", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateListing creates a standalone listing with no bulk provenance.
func (c *Client) CreateListing(ctx context.Context, listing domain.BookListing, cover ImageFile, gallery []ImageFile) (*domain.BookListing, error) {
	doc := listingDocument{BookListing: listing, IsForSelling: listing.ListingType.SellEnabled()}
	req, err := c.multipartRequest(http.MethodPost, "/api/listings", doc, &cover, gallery)
	if err != nil {
		return nil, err
	}

	var created domain.BookListing
	if err := c.do(ctx, "create_listing", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateListing edits an existing listing. Images are optional on edit; a
// nil cover keeps the stored images.
func (c *Client) UpdateListing(ctx context.Context, listing domain.BookListing, cover *ImageFile, gallery []ImageFile) (*domain.BookListing, error) {
	doc := listingDocument{BookListing: listing, IsForSelling: listing.ListingType.SellEnabled()}
	path := fmt.Sprintf("/api/listings/%d", listing.ID)
	req, err := c.multipartRequest(http.MethodPut, path, doc, cover, gallery)
	if err != nil {
		return nil, err
	}

	var updated domain.BookListing
	if err := c.do(ctx, "update_listing", req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteListing removes a listing from public visibility (return to
// inventory). The confirmation gate lives in the service layer.
func (c *Client) DeleteListing(ctx context.Context, listingID int64) error {
	path := fmt.Sprintf("/api/listings/%d", listingID)
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Op: "delete_listing", Err: err}
	}
	return c.do(ctx, "delete_listing", req, nil)
}

// ListListings returns the owner's listings.
func (c *Client) ListListings(ctx context.Context, ownerID int64) ([]domain.BookListing, error) {
	path := fmt.Sprintf("/api/listings?ownerId=%d", ownerID)

	var listings []domain.BookListing
	if err := c.getJSON(ctx, "list_listings", path, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *Client) multipartRequest(method, path string, doc listingDocument, cover *ImageFile, gallery []ImageFile) (*http.Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := writeJSONPart(w, "listing", doc); err != nil {
		return nil, &TransportError{Op: "build_multipart", Err: err}
	}
	if cover != nil {
		if err := writeImagePart(w, "coverImage", *cover); err != nil {
			return nil, &TransportError{Op: "build_multipart", Err: err}
		}
	}
	for _, img := range gallery {
		if err := writeImagePart(w, "images", img); err != nil {
			return nil, &TransportError{Op: "build_multipart", Err: err}
		}
	}
	if err := w.Close(); err != nil {
		return nil, &TransportError{Op: "build_multipart", Err: err}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return nil, &TransportError{Op: "build_multipart", Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}
