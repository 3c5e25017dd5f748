package readstore

import (
	"context"

	"parklot/internal/infra"
	"parklot/internal/infra/db"
	"parklot/internal/usecase/queries"

	"github.com/google/uuid"
)

type LotReadStore struct {
	db db.DBTX
}

func NewLotReadStore(dbtx db.DBTX) *LotReadStore {
	return &LotReadStore{db: dbtx}
}

const lotViewSelect = `
	SELECT l.id, l.name, l.address, l.postal_code, l.price_per_hour_cents, l.capacity,
	       count(s.id) FILTER (WHERE s.status = 'available') AS available_spots,
	       count(s.id) FILTER (WHERE s.status = 'occupied')  AS occupied_spots,
	       l.created_at, l.updated_at
	FROM parking_lots l
	LEFT JOIN parking_spots s ON s.lot_id = l.id`

func (r *LotReadStore) FindAll(ctx context.Context) ([]*queries.LotView, error) {
	rows, err := r.db.Query(ctx, lotViewSelect+`
		GROUP BY l.id
		ORDER BY l.name, l.id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list lots", err)
	}
	defer rows.Close()

	var views []*queries.LotView
	for rows.Next() {
		var v queries.LotView
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.PostalCode, &v.PricePerHourCents, &v.Capacity,
			&v.AvailableSpots, &v.OccupiedSpots, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan lot row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate lot rows", err)
	}
	return views, nil
}

func (r *LotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LotView, error) {
	var v queries.LotView
	err := r.db.QueryRow(ctx, lotViewSelect+`
		WHERE l.id = $1
		GROUP BY l.id`, id).
		Scan(&v.ID, &v.Name, &v.Address, &v.PostalCode, &v.PricePerHourCents, &v.Capacity,
			&v.AvailableSpots, &v.OccupiedSpots, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find lot by ID", err)
	}
	return &v, nil
}

func (r *LotReadStore) Occupancy(ctx context.Context, lotID uuid.UUID) (*queries.OccupancyView, error) {
	var v queries.OccupancyView
	err := r.db.QueryRow(ctx, `
		SELECT l.id, l.name, l.capacity,
		       count(s.id) FILTER (WHERE s.status = 'occupied')  AS occupied,
		       count(s.id) FILTER (WHERE s.status = 'available') AS available
		FROM parking_lots l
		LEFT JOIN parking_spots s ON s.lot_id = l.id
		WHERE l.id = $1
		GROUP BY l.id`, lotID).
		Scan(&v.LotID, &v.Name, &v.Capacity, &v.Occupied, &v.Available)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load lot occupancy", err)
	}
	return &v, nil
}

// Summary feeds the admin dashboard. Revenue counts closed
// reservations only; open ones have no cost yet.
func (r *LotReadStore) Summary(ctx context.Context) (*queries.SummaryView, error) {
	var v queries.SummaryView
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM parking_lots),
			(SELECT count(*) FROM parking_spots),
			(SELECT count(*) FROM parking_spots WHERE status = 'occupied'),
			(SELECT count(*) FROM parking_spots WHERE status = 'available'),
			(SELECT count(*) FROM reservations WHERE leaving_time IS NULL),
			(SELECT count(*) FROM reservations WHERE leaving_time IS NOT NULL),
			(SELECT COALESCE(sum(cost_cents), 0) FROM reservations WHERE leaving_time IS NOT NULL)`).
		Scan(&v.TotalLots, &v.TotalSpots, &v.OccupiedSpots, &v.AvailableSpots, &v.OpenReservations, &v.ClosedReservations, &v.RevenueCents)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load summary", err)
	}
	return &v, nil
}
