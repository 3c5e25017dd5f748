package readstore

import (
	"context"

	"parklot/internal/infra"
	"parklot/internal/infra/db"
	"parklot/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyReadStore struct {
	db db.DBTX
}

func NewIdempotencyReadStore(dbtx db.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{db: dbtx}
}

func (r *IdempotencyReadStore) Get(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var rec shared.IdempotencyRecord
	err := r.db.QueryRow(ctx, `
		SELECT key, user_id, status, request_hash, result_reservation_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2`, key, userID).
		Scan(&rec.Key, &rec.UserID, &rec.Status, &rec.RequestHash, &rec.ResultReservationID, &rec.ExpiresAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load idempotency key", err)
	}
	return &rec, nil
}
