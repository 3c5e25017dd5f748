package readstore

import (
	"context"
	"time"

	"parklot/internal/infra"
	"parklot/internal/infra/db"
	"parklot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const reservationViewSelect = `
	SELECT r.id, r.lot_id, l.name, r.spot_id, r.spot_number,
	       r.user_id, u.email, r.parking_time, r.leaving_time,
	       r.cost_per_hour_cents, r.cost_cents,
	       CASE WHEN r.leaving_time IS NULL THEN 'open' ELSE 'closed' END,
	       r.created_at
	FROM reservations r
	LEFT JOIN parking_lots l ON l.id = r.lot_id
	JOIN users u ON u.id = r.user_id`

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var v queries.ReservationView
	err := row.Scan(&v.ID, &v.LotID, &v.LotName, &v.SpotID, &v.SpotNumber,
		&v.UserID, &v.UserEmail, &v.ParkingTime, &v.LeavingTime,
		&v.CostPerHourCents, &v.CostCents, &v.Status, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	v, err := scanReservationView(r.db.QueryRow(ctx, reservationViewSelect+`
		WHERE r.id = $1`, id))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return v, nil
}

const reservationListSelect = `
	SELECT r.id, r.lot_id, l.name, r.spot_number, r.parking_time, r.leaving_time,
	       r.cost_cents,
	       CASE WHEN r.leaving_time IS NULL THEN 'open' ELSE 'closed' END,
	       r.created_at
	FROM reservations r
	LEFT JOIN parking_lots l ON l.id = r.lot_id`

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, reservationListSelect+`
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return collectListItems(rows)
}

// Keyset pagination over (created_at, id) descending.
func (r *ReservationReadStore) FindByUserIDAfter(ctx context.Context, userID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, reservationListSelect+`
		WHERE r.user_id = $1 AND (r.created_at, r.id) < ($2, $3)
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $4`, userID, afterCreatedAt, afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations after cursor", err)
	}
	return collectListItems(rows)
}

func collectListItems(rows pgx.Rows) ([]*queries.ReservationListItem, error) {
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		var item queries.ReservationListItem
		if err := rows.Scan(&item.ID, &item.LotID, &item.LotName, &item.SpotNumber,
			&item.ParkingTime, &item.LeavingTime, &item.CostCents, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}
	return items, nil
}

func (r *ReservationReadStore) FindActiveByLot(ctx context.Context, lotID uuid.UUID) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, reservationViewSelect+`
		WHERE r.lot_id = $1 AND r.leaving_time IS NULL
		ORDER BY r.spot_number`, lotID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active reservations", err)
	}
	defer rows.Close()

	var views []*queries.ReservationView
	for rows.Next() {
		v, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}
	return views, nil
}
