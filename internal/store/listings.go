package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/cache"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/client"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/session"
)

var (
	// ErrConfirmationRequired gates destructive operations behind an explicit
	// confirm step
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrInvalidTransition is returned for a status change the lifecycle
	// rules forbid
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ListingService owns the owner-side listing operations: edits, status
// changes and the destructive return to inventory.
type ListingService struct {
	api   *client.Client
	views *cache.ViewCache
	sess  session.Session
	log   *zap.Logger
}

// NewListingService creates the listing service for one owner session.
func NewListingService(api *client.Client, views *cache.ViewCache, sess session.Session, log *zap.Logger) *ListingService {
	return &ListingService{api: api, views: views, sess: sess, log: log}
}

// List returns the owner's listings, served from the view cache within its
// freshness window.
func (s *ListingService) List(ctx context.Context) ([]domain.BookListing, error) {
	key := cache.ListingsKey(s.sess.OwnerID)

	if data, _, ok := s.views.Get(key); ok {
		var listings []domain.BookListing
		if err := json.Unmarshal(data, &listings); err == nil {
			return listings, nil
		}
		// Corrupt cache entry: drop it and fall through to a fresh read
		s.views.Invalidate(key)
	}

	listings, err := s.api.ListListings(ctx, s.sess.OwnerID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(listings); err == nil {
		s.views.Put(key, data)
	}
	return listings, nil
}

// Update edits a listing. A type change first drops every field the new
// type disables, so stale pricing or lending terms are never submitted.
func (s *ListingService) Update(ctx context.Context, listing domain.BookListing, cover *client.ImageFile, gallery []client.ImageFile) (*domain.BookListing, error) {
	if len(gallery) > maxGalleryImages {
		return nil, client.NewValidationError("images", "At most 3 gallery images are allowed")
	}

	domain.NormalizeForType(&listing)
	if err := listing.Validate(); err != nil {
		return nil, client.NewValidationError("pricing", err.Error())
	}

	updated, err := s.api.UpdateListing(ctx, listing, cover, gallery)
	if err != nil {
		return nil, err
	}

	s.views.Invalidate(cache.ListingsKey(s.sess.OwnerID))
	s.log.Info("Listing updated", zap.Int64("listing_id", listing.ID))
	return updated, nil
}

// ChangeStatus moves a listing to a new lifecycle state after checking the
// transition rules for its type.
func (s *ListingService) ChangeStatus(ctx context.Context, listing domain.BookListing, to domain.ListingStatus) (*domain.BookListing, error) {
	if !domain.CanTransition(listing.ListingType, listing.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, listing.Status, to)
	}

	listing.Status = to
	updated, err := s.api.UpdateListing(ctx, listing, nil, nil)
	if err != nil {
		return nil, err
	}

	s.views.Invalidate(cache.ListingsKey(s.sess.OwnerID))
	s.log.Info("Listing status changed",
		zap.Int64("listing_id", listing.ID),
		zap.String("status", string(to)),
	)
	return updated, nil
}

// ReturnToInventory removes a listing from public visibility. Destructive,
// so the caller must pass an explicit confirmation.
func (s *ListingService) ReturnToInventory(ctx context.Context, listingID int64, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := s.api.DeleteListing(ctx, listingID); err != nil {
		return err
	}

	s.views.Invalidate(
		cache.ListingsKey(s.sess.OwnerID),
		cache.InventoryKey(domain.KindRegular, s.sess.OwnerID),
	)
	s.log.Info("Listing returned to inventory", zap.Int64("listing_id", listingID))
	return nil
}
