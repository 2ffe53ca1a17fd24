package donations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/cache"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/client"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/domain"
	"github.com/Benshekniel/BookHiveFrontend-sub005/internal/session"
)

var (
	// ErrUnknownRecord is returned for an inventory id outside the session's
	// candidate set
	ErrUnknownRecord = errors.New("inventory record is not part of this allocation")

	// ErrNegativeAmount is returned when an amount would go below zero
	ErrNegativeAmount = errors.New("contribution amount cannot be negative")

	// ErrExceedsStock is returned when an amount would exceed the record's
	// stock count
	ErrExceedsStock = errors.New("contribution amount exceeds available stock")

	// ErrNothingSelected is returned when a submission carries no positive
	// amounts
	ErrNothingSelected = errors.New("select at least one book")

	// ErrExceedsContributable is returned at submission when the total
	// exceeds the request's remaining quantity
	ErrExceedsContributable = errors.New("total exceeds the remaining requested quantity")

	// ErrAlreadySubmitted is returned when a discarded session is reused
	ErrAlreadySubmitted = errors.New("allocation was already submitted")
)

// Allocation is one ephemeral allocation session: a mapping from donation
// stock records to proposed amounts against a single request. Per-record
// bounds are enforced on every edit; the global cap is checked only at
// submission, so the owner may transiently over-commit while editing.
type Allocation struct {
	id      string
	request domain.DonationRequest
	records map[int64]domain.InventoryRecord
	order   []int64
	amounts map[int64]int
	done    bool

	api   *client.Client
	views *cache.ViewCache
	sess  session.Session
	log   *zap.Logger
}

// NewAllocation opens an allocation session for one request over the
// owner's matching donation stock.
func NewAllocation(api *client.Client, views *cache.ViewCache, sess session.Session, log *zap.Logger,
	request domain.DonationRequest, records []domain.InventoryRecord) *Allocation {

	a := &Allocation{
		id:      uuid.New().String(),
		request: request,
		records: make(map[int64]domain.InventoryRecord, len(records)),
		amounts: make(map[int64]int, len(records)),
		api:     api,
		views:   views,
		sess:    sess,
		log:     log,
	}
	for _, r := range records {
		if r.Kind != domain.KindDonation || r.Category != request.Category {
			continue
		}
		a.records[r.ID] = r
		a.order = append(a.order, r.ID)
	}
	return a
}

// Contributable is the request's remaining quantity, the global cap checked
// at submission.
func (a *Allocation) Contributable() int {
	return a.request.Contributable()
}

// Amount returns the currently allocated amount for a record.
func (a *Allocation) Amount(inventoryID int64) int {
	return a.amounts[inventoryID]
}

// Total is the sum of all allocated amounts.
func (a *Allocation) Total() int {
	total := 0
	for _, n := range a.amounts {
		total += n
	}
	return total
}

// Set assigns an amount to one record, enforcing 0 <= amount <= stockCount
// at input time.
func (a *Allocation) Set(inventoryID int64, amount int) error {
	record, ok := a.records[inventoryID]
	if !ok {
		return ErrUnknownRecord
	}
	if amount < 0 {
		return ErrNegativeAmount
	}
	if amount > record.StockCount {
		return fmt.Errorf("%w: %d > %d", ErrExceedsStock, amount, record.StockCount)
	}
	a.amounts[inventoryID] = amount
	return nil
}

// Increment raises a record's amount by one.
func (a *Allocation) Increment(inventoryID int64) error {
	return a.Set(inventoryID, a.amounts[inventoryID]+1)
}

// Decrement lowers a record's amount by one.
func (a *Allocation) Decrement(inventoryID int64) error {
	return a.Set(inventoryID, a.amounts[inventoryID]-1)
}

// Items returns the positive allocations in candidate order; zero-amount
// entries are dropped.
func (a *Allocation) Items() []client.ContributionItem {
	items := make([]client.ContributionItem, 0, len(a.amounts))
	for _, id := range a.order {
		if n := a.amounts[id]; n > 0 {
			items = append(items, client.ContributionItem{InventoryID: id, ContributionCount: n})
		}
	}
	return items
}

// Submit checks the global cap, submits the whole allocation as one batch
// and discards the session state on success. The request's quantityCurrent
// and the records' stockCounts move server-side only; the affected views
// are invalidated so the next read reflects them.
func (a *Allocation) Submit(ctx context.Context) error {
	if a.done {
		return ErrAlreadySubmitted
	}

	items := a.Items()
	if len(items) == 0 {
		return ErrNothingSelected
	}

	if total, limit := a.Total(), a.Contributable(); total > limit {
		return fmt.Errorf("%w: %d > %d", ErrExceedsContributable, total, limit)
	}

	if err := a.api.SubmitContribution(ctx, a.request.ID, items); err != nil {
		// Atomic-or-nothing: nothing to roll back, the session stays open
		// for a manual resubmission
		return err
	}

	a.done = true
	a.amounts = make(map[int64]int)
	a.views.Invalidate(
		cache.DonationRequestsKey(),
		cache.DonationStockKey(a.request.Category, a.sess.OwnerID),
		cache.InventoryKey(domain.KindDonation, a.sess.OwnerID),
	)

	a.log.Info("Contribution submitted",
		zap.String("allocation_id", a.id),
		zap.Int64("donation_id", a.request.ID),
		zap.Int("items", len(items)),
	)
	return nil
}
