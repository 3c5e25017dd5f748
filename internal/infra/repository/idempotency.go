package repository

import (
	"context"
	"time"

	"parklot/internal/infra"
	"parklot/internal/infra/db"

	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(dbtx db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx}
}

// TryInsert claims the key. ON CONFLICT DO NOTHING means a retry of the
// same request finds the existing row via CommandReads instead of failing.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (key, user_id) DO NOTHING`,
		key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to record idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, resultReservationID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE idempotency_keys
		SET status = 'completed', result_reservation_id = $3, updated_at = now()
		WHERE key = $1 AND user_id = $2`,
		key, userID, resultReservationID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	return nil
}
