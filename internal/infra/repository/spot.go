package repository

import (
	"context"

	"parklot/internal/domain/spot"
	"parklot/internal/infra"
	"parklot/internal/infra/db"
	"parklot/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpotRepository struct {
	db db.DBTX
}

func NewSpotRepository(dbtx db.DBTX) *SpotRepository {
	return &SpotRepository{db: dbtx}
}

func (r *SpotRepository) BulkCreate(ctx context.Context, lotID uuid.UUID, count int32) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO parking_spots (id, lot_id, spot_number, status)
		SELECT gen_random_uuid(), $1, n, $2
		FROM generate_series(1, $3::int) AS n`,
		lotID, spot.StatusAvailable.String(), count)
	if err != nil {
		return infra.WrapRepoErr("failed to create spot pool", err)
	}
	return nil
}

// SKIP LOCKED keeps concurrent reservers from queueing on the same row:
// each transaction locks a distinct candidate or sees none at all.
func (r *SpotRepository) LockFirstAvailable(ctx context.Context, lotID uuid.UUID) (*shared.SpotSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, lot_id, spot_number, status
		FROM parking_spots
		WHERE lot_id = $1 AND status = $2
		ORDER BY spot_number
		LIMIT 1
		FOR UPDATE SKIP LOCKED`,
		lotID, spot.StatusAvailable.String())

	var snap shared.SpotSnapshot
	if err := row.Scan(&snap.ID, &snap.LotID, &snap.Number, &snap.Status); err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to lock available spot", err)
	}
	return &snap, nil
}

func (r *SpotRepository) Claim(ctx context.Context, spotID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE parking_spots
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`,
		spotID, spot.StatusOccupied.String(), spot.StatusAvailable.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim spot", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SpotRepository) Free(ctx context.Context, spotID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE parking_spots
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`,
		spotID, spot.StatusAvailable.String(), spot.StatusOccupied.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to free spot", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SpotRepository) CountOccupied(ctx context.Context, lotID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT count(*) FROM parking_spots
		WHERE lot_id = $1 AND status = $2`,
		lotID, spot.StatusOccupied.String()).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count occupied spots", err)
	}
	return count, nil
}
