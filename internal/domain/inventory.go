package domain

import "fmt"

// InventoryKind partitions bulk stock by its destination.
type InventoryKind string

const (
	// KindRegular marks stock destined for sale or lending
	KindRegular InventoryKind = "REGULAR"

	// KindDonation marks stock reserved for charitable contribution
	KindDonation InventoryKind = "DONATION"
)

// Condition describes the physical state of the books in a record.
type Condition string

const (
	ConditionNew  Condition = "NEW"
	ConditionUsed Condition = "USED"
	ConditionFair Condition = "FAIR"
)

// InventoryRecord is bulk, not-yet-individualized stock. The record itself
// is passive: its stockCount is only ever decremented server-side, as a
// consequence of a promotion or a contribution.
type InventoryRecord struct {
	ID         int64         `json:"id"`
	Kind       InventoryKind `json:"kind"`
	Condition  Condition     `json:"condition"`
	Category   string        `json:"category"`
	Genres     []string      `json:"genres,omitempty"`
	StockCount int           `json:"stockCount"`
	CoverImage string        `json:"coverImage,omitempty"`
}

// Validate checks the record's own invariants.
func (r *InventoryRecord) Validate() error {
	if r.Kind != KindRegular && r.Kind != KindDonation {
		return fmt.Errorf("unknown inventory kind %q", r.Kind)
	}
	if r.StockCount < 0 {
		return fmt.Errorf("inventory record %d: negative stock count %d", r.ID, r.StockCount)
	}
	return nil
}
