package commands

import (
	"context"

	"parklot/internal/domain/lot"
	reqdto "parklot/internal/handler/dto/request"
	"parklot/internal/infra"
	"parklot/internal/pkg/errs"
	"parklot/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrLotOccupied  = errs.New("lot has occupied spots")
	ErrDuplicateLot = errs.New("lot already exists")
)

type LotCommands interface {
	CreateLot(ctx context.Context, req reqdto.CreateLotRequest) (uuid.UUID, error)
	ChangePrice(ctx context.Context, lotID uuid.UUID, pricePerHourCents int64) error
	DeleteLot(ctx context.Context, lotID uuid.UUID) error
}

type lotCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewLotCommands(uow shared.UnitOfWork) LotCommands {
	return &lotCommandsImpl{uow: uow}
}

// CreateLot persists the lot and its numbered spot pool atomically, so
// a lot is never visible without all of its spots.
func (c *lotCommandsImpl) CreateLot(ctx context.Context, req reqdto.CreateLotRequest) (uuid.UUID, error) {
	entity, err := req.ToDomain()
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Lots().Create(ctx, entity); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateLot
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return tx.Spots().BulkCreate(ctx, entity.ID(), entity.Capacity())
	})
	if err != nil {
		return uuid.Nil, err
	}
	return entity.ID(), nil
}

func (c *lotCommandsImpl) ChangePrice(ctx context.Context, lotID uuid.UUID, pricePerHourCents int64) error {
	if err := lot.ValidatePriceCents(pricePerHourCents); err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		updated, err := tx.Lots().UpdatePrice(ctx, lotID, pricePerHourCents)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !updated {
			return ErrLotNotFound
		}
		return nil
	})
}

// DeleteLot refuses while any spot is occupied. Past reservations keep
// their rows; their lot and spot references go null on delete.
func (c *lotCommandsImpl) DeleteLot(ctx context.Context, lotID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Exclusive lock on the lot row keeps allocation from slipping
		// in between the occupancy check and the delete.
		if _, err := tx.Lots().LockForUpdate(ctx, lotID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		occupied, err := tx.Spots().CountOccupied(ctx, lotID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if occupied > 0 {
			return ErrLotOccupied
		}

		deleted, err := tx.Lots().Delete(ctx, lotID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !deleted {
			return ErrLotNotFound
		}
		return nil
	})
}
