package commands

import (
	"context"
	"errors"

	"hotel-backoffice/internal/domain/inventory"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound     = errs.New("inventory item not found")
	ErrSKUTaken         = errs.New("SKU already registered")
	ErrNegativeStock    = errs.New("adjustment would drive stock negative")
	ErrEmptyAdjustment  = errs.New("adjustment delta must not be zero")
	ErrAdjustmentReason = errs.New("adjustment reason must not be empty")
)

type CreateItemInput struct {
	Name             string
	SKU              string
	Quantity         int
	ReorderThreshold int
}

type AdjustStockInput struct {
	Delta   int
	Reason  string
	StaffID uuid.UUID
}

type InventoryCommands interface {
	CreateItem(ctx context.Context, input CreateItemInput) (uuid.UUID, error)
	// Adjust applies a signed stock delta and records the adjustment for
	// audit. The resulting quantity can never go below zero.
	Adjust(ctx context.Context, itemID uuid.UUID, input AdjustStockInput) error
	ChangeThreshold(ctx context.Context, itemID uuid.UUID, threshold int) error
}

type inventoryCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewInventoryCommands(uow shared.UnitOfWork, clk clock.Clock) InventoryCommands {
	return &inventoryCommandsImpl{uow: uow, clock: clk}
}

func (c *inventoryCommandsImpl) CreateItem(ctx context.Context, input CreateItemInput) (uuid.UUID, error) {
	now := c.clock.Now()

	item, err := inventory.NewItem(input.Name, input.SKU, input.Quantity, input.ReorderThreshold, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var itemID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		itemID, err = tx.Inventory().Create(ctx, item)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrSKUTaken
			}
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return itemID, nil
}

func (c *inventoryCommandsImpl) Adjust(ctx context.Context, itemID uuid.UUID, input AdjustStockInput) error {
	now := c.clock.Now()

	if input.Reason == "" {
		return ErrAdjustmentReason
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := findItem(ctx, tx, itemID)
		if err != nil {
			return err
		}

		if err := item.Adjust(input.Delta, now); err != nil {
			if errors.Is(err, inventory.ErrNegativeQuantity) {
				return ErrNegativeStock
			}
			return errs.Mark(err, ErrEmptyAdjustment)
		}

		if err := tx.Inventory().Update(ctx, item); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		if err := tx.Inventory().RecordAdjustment(ctx, item.ID(), input.Delta, input.Reason, input.StaffID, now); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func (c *inventoryCommandsImpl) ChangeThreshold(ctx context.Context, itemID uuid.UUID, threshold int) error {
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := findItem(ctx, tx, itemID)
		if err != nil {
			return err
		}

		if err := item.ChangeThreshold(threshold, now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := tx.Inventory().Update(ctx, item); err != nil {
			return errs.Mark(err, ErrDatabaseOperation)
		}
		return nil
	})
}

func findItem(ctx context.Context, tx shared.Tx, id uuid.UUID) (*inventory.Item, error) {
	item, err := tx.Inventory().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return item, nil
}
