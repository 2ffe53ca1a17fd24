package stub

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
)

var (
	// ErrNotFound is returned when a record or listing does not exist
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientStock is returned when a promotion or contribution
	// would drive a stock count negative
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrOverAllocation is returned when a contribution batch exceeds the
	// request's remaining quantity
	ErrOverAllocation = errors.New("contribution exceeds remaining requested quantity")

	// ErrEmptyContribution is returned for a batch with no positive amounts
	ErrEmptyContribution = errors.New("contribution batch is empty")
)

// Repository implements the marketplace semantics the seller client relies
// on but never fabricates locally: stock decrements, fulfillment counting
// and conservation of both under a single transaction.
type Repository struct {
	db  *DB
	log *zap.Logger
}

// NewRepository creates a new stub repository
func NewRepository(database *DB, logger *zap.Logger) *Repository {
	return &Repository{
		db:  database,
		log: logger,
	}
}

// ListInventory returns an owner's bulk stock of one kind.
func (r *Repository) ListInventory(ctx context.Context, ownerID int64, kind domain.InventoryKind) ([]domain.InventoryRecord, error) {
	var rows []InventoryRow
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ?", ownerID, string(kind)).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		r.log.Error("Failed to list inventory", zap.Int64("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	records := make([]domain.InventoryRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].toDomain()
	}
	return records, nil
}

// ListDonationStock returns an owner's donation-kind records for a category
// that still have stock.
func (r *Repository) ListDonationStock(ctx context.Context, ownerID int64, category string) ([]domain.InventoryRecord, error) {
	var rows []InventoryRow
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ? AND category = ? AND stock_count > 0",
			ownerID, string(domain.KindDonation), category).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		r.log.Error("Failed to list donation stock", zap.String("category", category), zap.Error(err))
		return nil, err
	}

	records := make([]domain.InventoryRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].toDomain()
	}
	return records, nil
}

// CreateInventory stores a new bulk record.
func (r *Repository) CreateInventory(ctx context.Context, rec domain.InventoryRecord, ownerID int64) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}

	row := inventoryRowFrom(rec, ownerID)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.log.Error("Failed to create inventory record", zap.Error(err))
		return 0, err
	}
	return row.ID, nil
}

// Promote consumes one inventory record into one listing. The record's
// stock is decremented by the listing's bookCount inside the transaction;
// the whole operation fails if that would drive the stock negative.
func (r *Repository) Promote(ctx context.Context, listing domain.BookListing, inventoryID int64, coverImage string, images []string) (*domain.BookListing, error) {
	if listing.BookCount < 1 {
		listing.BookCount = 1
	}

	var created ListingRow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record InventoryRow
		if err := tx.Where("id = ?", inventoryID).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if record.StockCount < listing.BookCount {
			return fmt.Errorf("%w: %d available, %d requested", ErrInsufficientStock, record.StockCount, listing.BookCount)
		}

		result := tx.Model(&InventoryRow{}).
			Where("id = ? AND stock_count >= ?", inventoryID, listing.BookCount).
			Update("stock_count", gorm.Expr("stock_count - ?", listing.BookCount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		created = listingRowFrom(listing, record.OwnerID)
		created.ID = 0
		created.InventoryID = &inventoryID
		created.CoverImage = coverImage
		created.Images = encodeJSON(images)
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("Inventory promoted to listing",
		zap.Int64("inventory_id", inventoryID),
		zap.Int64("listing_id", created.ID),
	)
	result := created.toDomain()
	return &result, nil
}

// CreateListing stores a standalone listing with no provenance.
func (r *Repository) CreateListing(ctx context.Context, listing domain.BookListing, ownerID int64, coverImage string, images []string) (*domain.BookListing, error) {
	row := listingRowFrom(listing, ownerID)
	row.ID = 0
	row.InventoryID = nil
	row.CoverImage = coverImage
	row.Images = encodeJSON(images)

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.log.Error("Failed to create listing", zap.Error(err))
		return nil, err
	}

	result := row.toDomain()
	return &result, nil
}

// UpdateListing replaces the mutable fields of a listing.
func (r *Repository) UpdateListing(ctx context.Context, listing domain.BookListing) (*domain.BookListing, error) {
	var existing ListingRow
	err := r.db.WithContext(ctx).Where("id = ?", listing.ID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	row := listingRowFrom(listing, existing.OwnerID)
	row.CoverImage = existing.CoverImage
	row.Images = existing.Images
	row.CreatedAt = existing.CreatedAt

	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		r.log.Error("Failed to update listing", zap.Int64("listing_id", listing.ID), zap.Error(err))
		return nil, err
	}

	result := row.toDomain()
	return &result, nil
}

// DeleteListing pulls a listing out of public visibility. The row survives
// with status INVENTORY rather than being destroyed.
func (r *Repository) DeleteListing(ctx context.Context, listingID int64) error {
	result := r.db.WithContext(ctx).Model(&ListingRow{}).
		Where("id = ?", listingID).
		Update("status", string(domain.StatusInventory))
	if result.Error != nil {
		r.log.Error("Failed to delete listing", zap.Int64("listing_id", listingID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("Listing returned to inventory", zap.Int64("listing_id", listingID))
	return nil
}

// ListListings returns an owner's listings.
func (r *Repository) ListListings(ctx context.Context, ownerID int64) ([]domain.BookListing, error) {
	var rows []ListingRow
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		r.log.Error("Failed to list listings", zap.Int64("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	listings := make([]domain.BookListing, len(rows))
	for i := range rows {
		listings[i] = rows[i].toDomain()
	}
	return listings, nil
}

// ListDonationRequests returns all donation requests.
func (r *Repository) ListDonationRequests(ctx context.Context) ([]domain.DonationRequest, error) {
	var rows []DonationRow
	if err := r.db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		r.log.Error("Failed to list donation requests", zap.Error(err))
		return nil, err
	}

	requests := make([]domain.DonationRequest, len(rows))
	for i := range rows {
		requests[i] = rows[i].toDomain()
	}
	return requests, nil
}

// CreateDonationRequest stores a new donation request.
func (r *Repository) CreateDonationRequest(ctx context.Context, req domain.DonationRequest) (int64, error) {
	row := DonationRow{
		OrgName:         req.OrgName,
		Category:        req.Category,
		Notes:           req.Notes,
		Quantity:        req.Quantity,
		QuantityCurrent: req.QuantityCurrent,
		Status:          string(req.Status),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

// ContributionInput is one slice of a contribution batch.
type ContributionInput struct {
	InventoryID int64
	Count       int
}

// ApplyContribution applies a whole contribution batch atomically: every
// per-record decrement and the request's fulfillment increase commit
// together or not at all. The global cap is enforced here against the
// current database state, so concurrent contributors cannot overfill a
// request.
func (r *Repository) ApplyContribution(ctx context.Context, donationID int64, items []ContributionInput) error {
	total := 0
	for _, item := range items {
		if item.Count > 0 {
			total += item.Count
		}
	}
	if total == 0 {
		return ErrEmptyContribution
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request DonationRow
		if err := tx.Where("id = ?", donationID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		remaining := request.Quantity - request.QuantityCurrent
		if remaining < 0 {
			remaining = 0
		}
		if total > remaining {
			return fmt.Errorf("%w: %d > %d", ErrOverAllocation, total, remaining)
		}

		for _, item := range items {
			if item.Count <= 0 {
				continue
			}

			result := tx.Model(&InventoryRow{}).
				Where("id = ? AND kind = ? AND stock_count >= ?",
					item.InventoryID, string(domain.KindDonation), item.Count).
				Update("stock_count", gorm.Expr("stock_count - ?", item.Count))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: record %d", ErrInsufficientStock, item.InventoryID)
			}

			contribution := ContributionRow{
				DonationID:  donationID,
				InventoryID: item.InventoryID,
				Count:       item.Count,
			}
			if err := tx.Create(&contribution).Error; err != nil {
				return err
			}
		}

		return tx.Model(&DonationRow{}).
			Where("id = ?", donationID).
			Update("quantity_current", gorm.Expr("quantity_current + ?", total)).Error
	})
	if err != nil {
		return err
	}

	r.log.Info("Contribution applied",
		zap.Int64("donation_id", donationID),
		zap.Int("total", total),
	)
	return nil
}
