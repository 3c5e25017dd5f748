package repository

import (
	"context"
	"time"

	"parklot/internal/domain/reservation"
	"parklot/internal/infra"
	"parklot/internal/infra/db"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

// Create persists the reservation under the ID the entity minted, so
// the ID held by callers matches the stored row.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO reservations (id, spot_id, lot_id, user_id, spot_number, parking_time, cost_per_hour_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		res.ID(), res.SpotID(), res.LotID(), res.UserID(), res.SpotNumber(),
		res.ParkingTime(), res.CostPerHour().Cents()).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			// partial unique index: one open reservation per spot
			return uuid.Nil, infra.WrapRepoErr("spot already has an open reservation", err, infra.KindConflict)
		}
		if db.IsForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("reservation references missing row", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) Close(ctx context.Context, id uuid.UUID, leavingTime time.Time, costCents int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations
		SET leaving_time = $2, cost_cents = $3
		WHERE id = $1 AND leaving_time IS NULL`,
		id, leavingTime, costCents)
	if err != nil {
		return false, infra.WrapRepoErr("failed to close reservation", err)
	}
	return tag.RowsAffected() > 0, nil
}
