package stub

import (
	"encoding/json"
	"time"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
)

// InventoryRow is the stored form of a bulk inventory record.
type InventoryRow struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	OwnerID    int64  `gorm:"not null;index:idx_inventory_owner"`
	Kind       string `gorm:"type:varchar(20);not null;index:idx_inventory_kind"`
	Condition  string `gorm:"type:varchar(10);not null"`
	Category   string `gorm:"type:varchar(100);index:idx_inventory_category"`
	Genres     string `gorm:"type:text"`
	StockCount int    `gorm:"not null"`
	CoverImage string
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for InventoryRow
func (InventoryRow) TableName() string {
	return "inventory_records"
}

// ListingRow is the stored form of a listing. Pricing and series info are
// explicit sub-records in the domain; they are JSON-encoded only at this
// storage boundary.
type ListingRow struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	OwnerID       int64  `gorm:"not null;index:idx_listings_owner"`
	InventoryID   *int64 `gorm:"index:idx_listings_inventory"`
	Title         string `gorm:"type:varchar(255);not null"`
	Authors       string `gorm:"type:text"`
	Genres        string `gorm:"type:text"`
	Tags          string `gorm:"type:text"`
	Description   string `gorm:"type:text"`
	ISBN          string `gorm:"type:varchar(20)"`
	Publisher     string `gorm:"type:varchar(255)"`
	PublishedYear int
	Language      string `gorm:"type:varchar(50)"`
	PageCount     int
	Condition     string `gorm:"type:varchar(10);not null"`
	ListingType   string `gorm:"type:varchar(20);not null"`
	Status        string `gorm:"type:varchar(20);not null;index:idx_listings_status"`
	Pricing       string `gorm:"type:text"`
	LendingPeriod *int
	LateFee       *float64
	MinTrustScore *int
	BookCount     int    `gorm:"not null;default:1"`
	SeriesInfo    string `gorm:"type:text"`
	CoverImage    string
	Images        string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for ListingRow
func (ListingRow) TableName() string {
	return "listings"
}

// DonationRow is the stored form of a donation request.
type DonationRow struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	OrgName         string `gorm:"type:varchar(255);not null"`
	Category        string `gorm:"type:varchar(100);not null;index:idx_donations_category"`
	Notes           string `gorm:"type:text"`
	Quantity        int    `gorm:"not null"`
	QuantityCurrent int    `gorm:"not null;default:0"`
	Status          string `gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for DonationRow
func (DonationRow) TableName() string {
	return "donation_requests"
}

// ContributionRow records one applied contribution slice.
type ContributionRow struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	DonationID  int64 `gorm:"not null;index:idx_contributions_donation"`
	InventoryID int64 `gorm:"not null"`
	Count       int   `gorm:"not null"`
	CreatedAt   time.Time
}

// TableName specifies the table name for ContributionRow
func (ContributionRow) TableName() string {
	return "contributions"
}

func (r *InventoryRow) toDomain() domain.InventoryRecord {
	return domain.InventoryRecord{
		ID:         r.ID,
		Kind:       domain.InventoryKind(r.Kind),
		Condition:  domain.Condition(r.Condition),
		Category:   r.Category,
		Genres:     decodeStrings(r.Genres),
		StockCount: r.StockCount,
		CoverImage: r.CoverImage,
	}
}

func inventoryRowFrom(rec domain.InventoryRecord, ownerID int64) InventoryRow {
	return InventoryRow{
		ID:         rec.ID,
		OwnerID:    ownerID,
		Kind:       string(rec.Kind),
		Condition:  string(rec.Condition),
		Category:   rec.Category,
		Genres:     encodeJSON(rec.Genres),
		StockCount: rec.StockCount,
		CoverImage: rec.CoverImage,
	}
}

func (r *ListingRow) toDomain() domain.BookListing {
	listing := domain.BookListing{
		ID:            r.ID,
		InventoryID:   r.InventoryID,
		Title:         r.Title,
		Authors:       decodeStrings(r.Authors),
		Genres:        decodeStrings(r.Genres),
		Tags:          decodeStrings(r.Tags),
		Description:   r.Description,
		ISBN:          r.ISBN,
		Publisher:     r.Publisher,
		PublishedYear: r.PublishedYear,
		Language:      r.Language,
		PageCount:     r.PageCount,
		Condition:     domain.Condition(r.Condition),
		ListingType:   domain.ListingType(r.ListingType),
		Status:        domain.ListingStatus(r.Status),
		LendingPeriod: r.LendingPeriod,
		LateFee:       r.LateFee,
		MinTrustScore: r.MinTrustScore,
		BookCount:     r.BookCount,
	}
	if r.Pricing != "" {
		var pricing domain.Pricing
		if err := json.Unmarshal([]byte(r.Pricing), &pricing); err == nil {
			listing.Pricing = &pricing
		}
	}
	if r.SeriesInfo != "" {
		var series domain.SeriesInfo
		if err := json.Unmarshal([]byte(r.SeriesInfo), &series); err == nil {
			listing.SeriesInfo = &series
		}
	}
	return listing
}

func listingRowFrom(listing domain.BookListing, ownerID int64) ListingRow {
	row := ListingRow{
		ID:            listing.ID,
		OwnerID:       ownerID,
		InventoryID:   listing.InventoryID,
		Title:         listing.Title,
		Authors:       encodeJSON(listing.Authors),
		Genres:        encodeJSON(listing.Genres),
		Tags:          encodeJSON(listing.Tags),
		Description:   listing.Description,
		ISBN:          listing.ISBN,
		Publisher:     listing.Publisher,
		PublishedYear: listing.PublishedYear,
		Language:      listing.Language,
		PageCount:     listing.PageCount,
		Condition:     string(listing.Condition),
		ListingType:   string(listing.ListingType),
		Status:        string(listing.Status),
		LendingPeriod: listing.LendingPeriod,
		LateFee:       listing.LateFee,
		MinTrustScore: listing.MinTrustScore,
		BookCount:     listing.BookCount,
	}
	if listing.Pricing != nil {
		row.Pricing = encodeJSON(listing.Pricing)
	}
	if listing.SeriesInfo != nil {
		row.SeriesInfo = encodeJSON(listing.SeriesInfo)
	}
	return row
}

func (r *DonationRow) toDomain() domain.DonationRequest {
	return domain.DonationRequest{
		ID:              r.ID,
		OrgName:         r.OrgName,
		Category:        r.Category,
		Notes:           r.Notes,
		Quantity:        r.Quantity,
		QuantityCurrent: r.QuantityCurrent,
		Status:          domain.DonationStatus(r.Status),
	}
}

func encodeJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func decodeStrings(s string) []string {
	if s == "" || s == "null" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}
