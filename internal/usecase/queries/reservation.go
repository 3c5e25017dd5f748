package queries

import (
	"context"
	"time"

	"parklot/internal/domain/user"
	"parklot/internal/infra"
	"parklot/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrReservationAccess   = errs.New("reservation access denied")
)

// Read models (DTO for read side)
type ReservationView struct {
	ID               uuid.UUID  `json:"id"`
	LotID            *uuid.UUID `json:"lot_id,omitempty"`
	LotName          *string    `json:"lot_name,omitempty"`
	SpotID           *uuid.UUID `json:"spot_id,omitempty"`
	SpotNumber       int32      `json:"spot_number"`
	UserID           uuid.UUID  `json:"user_id"`
	UserEmail        string     `json:"user_email"`
	ParkingTime      time.Time  `json:"parking_time"`
	LeavingTime      *time.Time `json:"leaving_time,omitempty"`
	CostPerHourCents int64      `json:"cost_per_hour_cents"`
	CostCents        *int64     `json:"cost_cents,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
}

type ReservationListItem struct {
	ID          uuid.UUID  `json:"id"`
	LotID       *uuid.UUID `json:"lot_id,omitempty"`
	LotName     *string    `json:"lot_name,omitempty"`
	SpotNumber  int32      `json:"spot_number"`
	ParkingTime time.Time  `json:"parking_time"`
	LeavingTime *time.Time `json:"leaving_time,omitempty"`
	CostCents   *int64     `json:"cost_cents,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ReservationQueries interface {
	// GetByID enforces owner-or-admin access.
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips the access check. For internal read-after-write only.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
	ListActiveByLot(ctx context.Context, lotID uuid.UUID) ([]*ReservationView, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*ReservationListItem, error)
	FindByUserIDAfter(ctx context.Context, userID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int32) ([]*ReservationListItem, error)
	FindActiveByLot(ctx context.Context, lotID uuid.UUID) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{readStore: readStore}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole string, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != actorID && actorRole != user.RoleAdmin.String() {
		// Hide existence from non-owners
		return nil, ErrReservationNotFound
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*ReservationListItem
	var err error
	if after != nil && after.After != "" {
		createdAt, id, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, errs.Wrap(decodeErr, "invalid cursor")
		}
		rows, err = q.readStore.FindByUserIDAfter(ctx, userID, createdAt, id, int32(limit)+1)
	} else {
		rows, err = q.readStore.FindByUserID(ctx, userID, int32(limit)+1)
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return rows, next, nil
}

func (q *reservationQueriesImpl) ListActiveByLot(ctx context.Context, lotID uuid.UUID) ([]*ReservationView, error) {
	return q.readStore.FindActiveByLot(ctx, lotID)
}
