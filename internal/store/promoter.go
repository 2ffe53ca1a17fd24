package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/cache"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/client"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/session"
)

const maxGalleryImages = 3

// PromoteDraft is one in-progress promotion of a bulk record into a
// listing. Publish decides whether the listing goes straight to AVAILABLE
// or is held back in INVENTORY.
type PromoteDraft struct {
	InventoryID int64
	Listing     domain.BookListing
	Cover       *client.ImageFile
	Gallery     []client.ImageFile
	Publish     bool
}

// Promoter turns exactly one inventory record into exactly one listing.
type Promoter struct {
	api   *client.Client
	views *cache.ViewCache
	sess  session.Session
	log   *zap.Logger
}

// NewPromoter creates a promoter for one owner session.
func NewPromoter(api *client.Client, views *cache.ViewCache, sess session.Session, log *zap.Logger) *Promoter {
	return &Promoter{api: api, views: views, sess: sess, log: log}
}

// Promote validates the draft locally and submits it as one multipart
// request. The origin record's stockCount is decremented server-side; the
// inventory view is invalidated so the next read reflects it.
func (p *Promoter) Promote(ctx context.Context, draft PromoteDraft) (*domain.BookListing, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	listing := draft.Listing
	if draft.Publish {
		listing.Status = domain.StatusAvailable
	} else {
		listing.Status = domain.StatusInventory
	}
	if listing.BookCount < 1 {
		listing.BookCount = 1
	}

	domain.NormalizeForType(&listing)
	if err := listing.Validate(); err != nil {
		return nil, client.NewValidationError("pricing", err.Error())
	}

	created, err := p.api.PromoteListing(ctx, client.PromoteRequest{
		Listing:      listing,
		InventoryID:  draft.InventoryID,
		IsForSelling: listing.ListingType.SellEnabled(),
		Cover:        *draft.Cover,
		Gallery:      draft.Gallery,
	})
	if err != nil {
		return nil, err
	}

	p.views.Invalidate(
		cache.InventoryKey(domain.KindRegular, p.sess.OwnerID),
		cache.ListingsKey(p.sess.OwnerID),
	)

	p.log.Info("Inventory record promoted",
		zap.Int64("inventory_id", draft.InventoryID),
		zap.Int64("listing_id", created.ID),
		zap.String("status", string(created.Status)),
	)
	return created, nil
}

// validateDraft enforces the image preconditions before any field-level or
// network work happens.
func validateDraft(draft *PromoteDraft) error {
	if draft.Cover == nil || len(draft.Cover.Data) == 0 {
		return client.NewValidationError("coverImage", "Cover image is required")
	}
	if len(draft.Gallery) == 0 {
		return client.NewValidationError("images", "At least one image is required")
	}
	if len(draft.Gallery) > maxGalleryImages {
		return client.NewValidationError("images", "At most 3 gallery images are allowed")
	}
	if draft.Listing.Title == "" {
		return client.NewValidationError("title", "Title is required")
	}
	return nil
}
