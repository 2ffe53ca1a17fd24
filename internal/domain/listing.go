package domain

import "errors"

// ListingType is the commercial mode of a listing.
type ListingType string

const (
	TypeSellOnly    ListingType = "SELL_ONLY"
	TypeLendOnly    ListingType = "LEND_ONLY"
	TypeSellAndLend ListingType = "SELL_AND_LEND"
	TypeExchange    ListingType = "EXCHANGE"
	TypeDonate      ListingType = "DONATE"
)

// ListingStatus is the lifecycle state of a listing.
type ListingStatus string

const (
	StatusInventory   ListingStatus = "INVENTORY"
	StatusAvailable   ListingStatus = "AVAILABLE"
	StatusUnavailable ListingStatus = "UNAVAILABLE"
	StatusLent        ListingStatus = "LENT"
	StatusSold        ListingStatus = "SOLD"
	StatusAuction     ListingStatus = "AUCTION"
)

var (
	// ErrSellPriceRequired is returned when a sell-enabled listing has no sell price
	ErrSellPriceRequired = errors.New("sell price is required for sell listings")

	// ErrLendTermsRequired is returned when a lend-enabled listing is missing lending terms
	ErrLendTermsRequired = errors.New("lending price and terms are required for lend listings")

	// ErrSellPriceForbidden is returned when a non-sell listing still carries a sell price
	ErrSellPriceForbidden = errors.New("sell price is only valid for sell listings")

	// ErrLendTermsForbidden is returned when a non-lend listing still carries lending terms
	ErrLendTermsForbidden = errors.New("lending terms are only valid for lend listings")
)

// Pricing holds the money fields of a listing. Each field is present only
// when the listing type enables it.
type Pricing struct {
	SellPrice     *float64 `json:"sellPrice,omitempty"`
	LendPrice     *float64 `json:"lendPrice,omitempty"`
	DepositAmount *float64 `json:"depositAmount,omitempty"`
}

// SeriesInfo places a listing inside a book series.
type SeriesInfo struct {
	Series       string `json:"series"`
	SeriesNumber int    `json:"seriesNumber"`
	TotalBooks   int    `json:"totalBooks"`
}

// BookListing is an individually addressable book offer. It may carry a
// provenance link to the bulk inventory record it was promoted from, or be
// created directly with no provenance.
type BookListing struct {
	ID            int64         `json:"id"`
	InventoryID   *int64        `json:"inventoryId,omitempty"`
	Title         string        `json:"title"`
	Authors       []string      `json:"authors"`
	Genres        []string      `json:"genres,omitempty"`
	Tags          []string      `json:"tags,omitempty"`
	Description   string        `json:"description,omitempty"`
	ISBN          string        `json:"isbn,omitempty"`
	Publisher     string        `json:"publisher,omitempty"`
	PublishedYear int           `json:"publishedYear,omitempty"`
	Language      string        `json:"language,omitempty"`
	PageCount     int           `json:"pageCount,omitempty"`
	Condition     Condition     `json:"condition"`
	ListingType   ListingType   `json:"listingType"`
	Status        ListingStatus `json:"status"`
	Pricing       *Pricing      `json:"pricing,omitempty"`
	LendingPeriod *int          `json:"lendingPeriod,omitempty"`
	LateFee       *float64      `json:"lateFee,omitempty"`
	MinTrustScore *int          `json:"minTrustScore,omitempty"`
	BookCount     int           `json:"bookCount"`
	SeriesInfo    *SeriesInfo   `json:"seriesInfo,omitempty"`
}

// SellEnabled reports whether the type allows selling.
func (t ListingType) SellEnabled() bool {
	return t == TypeSellOnly || t == TypeSellAndLend
}

// LendEnabled reports whether the type allows lending.
func (t ListingType) LendEnabled() bool {
	return t == TypeLendOnly || t == TypeSellAndLend
}

// Validate enforces the pricing invariant: sellPrice present iff selling is
// enabled, lend terms present iff lending is enabled. An edit or promotion
// that would violate this must never reach the network.
func (l *BookListing) Validate() error {
	sell := l.ListingType.SellEnabled()
	lend := l.ListingType.LendEnabled()

	sellPrice := l.Pricing != nil && l.Pricing.SellPrice != nil
	lendPrice := l.Pricing != nil && l.Pricing.LendPrice != nil

	if sell && !sellPrice {
		return ErrSellPriceRequired
	}
	if !sell && sellPrice {
		return ErrSellPriceForbidden
	}

	if lend {
		if !lendPrice || l.LendingPeriod == nil || l.LateFee == nil || l.MinTrustScore == nil {
			return ErrLendTermsRequired
		}
	} else {
		if lendPrice || l.LendingPeriod != nil || l.LateFee != nil || l.MinTrustScore != nil {
			return ErrLendTermsForbidden
		}
		if l.Pricing != nil && l.Pricing.DepositAmount != nil {
			return ErrLendTermsForbidden
		}
	}

	return nil
}
