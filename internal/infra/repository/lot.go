package repository

import (
	"context"

	"parklot/internal/domain/lot"
	"parklot/internal/infra"
	"parklot/internal/infra/db"
	"parklot/internal/usecase/shared"

	"github.com/google/uuid"
)

type LotRepository struct {
	db db.DBTX
}

func NewLotRepository(dbtx db.DBTX) *LotRepository {
	return &LotRepository{db: dbtx}
}

func (r *LotRepository) Create(ctx context.Context, l *lot.Lot) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO parking_lots (id, name, address, postal_code, price_per_hour_cents, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID(), l.Name(), l.Address(), l.PostalCode(), l.PricePerHourCents(), l.Capacity())
	if err != nil {
		if db.IsUniqueViolation(err) {
			return infra.WrapRepoErr("lot already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create lot", err)
	}
	return nil
}

func (r *LotRepository) UpdatePrice(ctx context.Context, id uuid.UUID, pricePerHourCents int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE parking_lots
		SET price_per_hour_cents = $2, updated_at = now()
		WHERE id = $1`,
		id, pricePerHourCents)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update lot price", err)
	}
	return tag.RowsAffected() > 0, nil
}

// LockForUpdate and LockShared read the lot row under PostgreSQL row
// locks. FOR UPDATE and FOR SHARE conflict with each other, so a delete
// holding the exclusive lock waits out in-flight allocations and vice
// versa, while allocations only sharing the lock run concurrently.

func (r *LotRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*shared.LotSnapshot, error) {
	return r.lockRow(ctx, id, "FOR UPDATE")
}

func (r *LotRepository) LockShared(ctx context.Context, id uuid.UUID) (*shared.LotSnapshot, error) {
	return r.lockRow(ctx, id, "FOR SHARE")
}

func (r *LotRepository) lockRow(ctx context.Context, id uuid.UUID, lockClause string) (*shared.LotSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, price_per_hour_cents, capacity
		FROM parking_lots
		WHERE id = $1 `+lockClause,
		id)

	var snap shared.LotSnapshot
	if err := row.Scan(&snap.ID, &snap.Name, &snap.PricePerHourCents, &snap.Capacity); err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock lot row", err)
	}
	return &snap, nil
}

func (r *LotRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM parking_lots WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return false, infra.WrapRepoErr("lot is still referenced", err, infra.KindForeignKeyViolated)
		}
		return false, infra.WrapRepoErr("failed to delete lot", err)
	}
	return tag.RowsAffected() > 0, nil
}
