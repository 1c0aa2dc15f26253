package inventory

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName         = errors.New("item name must not be empty")
	ErrNegativeQuantity  = errors.New("quantity cannot go negative")
	ErrNegativeThreshold = errors.New("reorder threshold cannot be negative")
	ErrZeroAdjustment    = errors.New("adjustment delta must not be zero")
)

// Item tracks stock of a consumable (linen, minibar, cleaning supplies).
// Quantity can never go below zero; adjustments carry a reason for the audit
// trail kept by the repository.
type Item struct {
	id               uuid.UUID
	name             string
	sku              string
	quantity         int
	reorderThreshold int
	createdAt        time.Time
	updatedAt        time.Time
}

func NewItem(name, sku string, quantity, reorderThreshold int, now time.Time) (*Item, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrEmptyName
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if reorderThreshold < 0 {
		return nil, ErrNegativeThreshold
	}

	return &Item{
		id:               uuid.New(),
		name:             trimmed,
		sku:              strings.TrimSpace(sku),
		quantity:         quantity,
		reorderThreshold: reorderThreshold,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func ReconstructItem(
	id uuid.UUID,
	name, sku string,
	quantity, reorderThreshold int,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:               id,
		name:             name,
		sku:              sku,
		quantity:         quantity,
		reorderThreshold: reorderThreshold,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// Adjust applies a signed delta. A delta that would drive the quantity
// negative is rejected without mutating the item.
func (i *Item) Adjust(delta int, now time.Time) error {
	if delta == 0 {
		return ErrZeroAdjustment
	}
	next := i.quantity + delta
	if next < 0 {
		return ErrNegativeQuantity
	}
	i.quantity = next
	i.updatedAt = now
	return nil
}

func (i *Item) ChangeThreshold(threshold int, now time.Time) error {
	if threshold < 0 {
		return ErrNegativeThreshold
	}
	i.reorderThreshold = threshold
	i.updatedAt = now
	return nil
}

// NeedsReorder reports whether stock has fallen to or below the threshold.
func (i *Item) NeedsReorder() bool {
	return i.quantity <= i.reorderThreshold
}

func (i *Item) ID() uuid.UUID         { return i.id }
func (i *Item) Name() string          { return i.name }
func (i *Item) SKU() string           { return i.sku }
func (i *Item) Quantity() int         { return i.quantity }
func (i *Item) ReorderThreshold() int { return i.reorderThreshold }
func (i *Item) CreatedAt() time.Time  { return i.createdAt }
func (i *Item) UpdatedAt() time.Time  { return i.updatedAt }
