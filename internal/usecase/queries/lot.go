package queries

import (
	"context"
	"time"

	"parklot/internal/infra"
	"parklot/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrLotNotFound = errs.New("parking lot not found")

type LotView struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	PostalCode        string    `json:"postal_code"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	Capacity          int32     `json:"capacity"`
	AvailableSpots    int64     `json:"available_spots"`
	OccupiedSpots     int64     `json:"occupied_spots"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type OccupancyView struct {
	LotID     uuid.UUID `json:"lot_id"`
	Name      string    `json:"name"`
	Capacity  int32     `json:"capacity"`
	Occupied  int64     `json:"occupied"`
	Available int64     `json:"available"`
}

// SummaryView aggregates the whole system for the admin dashboard.
type SummaryView struct {
	TotalLots          int64 `json:"total_lots"`
	TotalSpots         int64 `json:"total_spots"`
	OccupiedSpots      int64 `json:"occupied_spots"`
	AvailableSpots     int64 `json:"available_spots"`
	OpenReservations   int64 `json:"open_reservations"`
	ClosedReservations int64 `json:"closed_reservations"`
	RevenueCents       int64 `json:"revenue_cents"`
}

type LotQueries interface {
	List(ctx context.Context) ([]*LotView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*LotView, error)
	Occupancy(ctx context.Context, lotID uuid.UUID) (*OccupancyView, error)
	Summary(ctx context.Context) (*SummaryView, error)
}

type LotReadStore interface {
	FindAll(ctx context.Context) ([]*LotView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*LotView, error)
	Occupancy(ctx context.Context, lotID uuid.UUID) (*OccupancyView, error)
	Summary(ctx context.Context) (*SummaryView, error)
}

type lotQueriesImpl struct {
	readStore LotReadStore
}

func NewLotQueries(readStore LotReadStore) LotQueries {
	return &lotQueriesImpl{readStore: readStore}
}

func (q *lotQueriesImpl) List(ctx context.Context) ([]*LotView, error) {
	return q.readStore.FindAll(ctx)
}

func (q *lotQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*LotView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *lotQueriesImpl) Occupancy(ctx context.Context, lotID uuid.UUID) (*OccupancyView, error) {
	view, err := q.readStore.Occupancy(ctx, lotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *lotQueriesImpl) Summary(ctx context.Context) (*SummaryView, error) {
	return q.readStore.Summary(ctx)
}
