package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"parklot/internal/domain/reservation"
	"parklot/internal/domain/user"
	reqdto "parklot/internal/handler/dto/request"
	"parklot/internal/infra"
	"parklot/internal/pkg/clock"
	"parklot/internal/pkg/errs"
	"parklot/internal/usecase/queries"
	"parklot/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrLotNotFound              = errs.New("parking lot not found")
	ErrNoSpotAvailable          = errs.New("no spot available in lot")
	ErrDriverRoleRequired       = errs.New("driver role required")
	ErrReservationNotFound      = errs.New("reservation not found")
	ErrNotReservationOwner      = errs.New("reservation belongs to another user")
	ErrReservationAlreadyClosed = errs.New("reservation already closed")
	ErrDuplicateReservation     = errs.New("duplicate reservation request")
	ErrIdempotencyInProgress    = errs.New("idempotency in progress")
	ErrIdempotencyCheckFailed   = errs.New("idempotency check failed")
	ErrDomainValidation         = errs.New("domain validation error")
	ErrDatabaseOperationFailed  = errs.New("database operation failed")
)

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, req reqdto.CreateReservationRequest, userID uuid.UUID, idempotencyKey uuid.UUID) (*CreateReservationResult, error)
	ReleaseReservation(ctx context.Context, reservationID, userID uuid.UUID) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	reservationQueries queries.ReservationQueries,
	clock clock.Clock,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		reservationQueries: reservationQueries,
		clock:              clock,
	}
}

// CreateReservation allocates the lowest-numbered available spot of the
// lot and opens a reservation on it. The idempotency claim, the spot
// claim and the reservation row commit or roll back together, so a
// failed attempt releases its key and a client retry starts clean.
func (r *reservationCommandsImpl) CreateReservation(
	ctx context.Context,
	req reqdto.CreateReservationRequest,
	userID uuid.UUID,
	idempotencyKey uuid.UUID,
) (*CreateReservationResult, error) {
	requestHash := r.calculateRequestHash(req)
	expiresAt := r.clock.Now().Add(24 * time.Hour)

	var reservationID uuid.UUID
	var replayed bool

	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Idempotency().TryInsert(ctx, idempotencyKey, userID, "POST /reservations", requestHash, expiresAt)
		if err != nil {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		if !inserted {
			id, err := r.resolveExistingKey(ctx, tx, idempotencyKey, userID, requestHash)
			if err != nil {
				return err
			}
			reservationID = id
			replayed = true
			return nil
		}

		id, err := r.allocateSpot(ctx, tx, req.LotID, userID)
		if err != nil {
			return err
		}
		reservationID = id

		if err := r.enqueueNotification(ctx, tx, "reservation_created", reservationID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Idempotency().UpdateStatusCompleted(ctx, idempotencyKey, userID, reservationID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := r.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &CreateReservationResult{Reservation: view, IsReplayed: replayed}, nil
}

func (r *reservationCommandsImpl) resolveExistingKey(
	ctx context.Context,
	tx shared.Tx,
	idempotencyKey, userID uuid.UUID,
	requestHash string,
) (uuid.UUID, error) {
	existing, err := tx.Reads().IdempotencyByKey(ctx, idempotencyKey, userID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if existing.RequestHash != requestHash {
		return uuid.Nil, ErrDuplicateReservation
	}

	switch existing.Status {
	case "completed":
		if existing.ResultReservationID == nil {
			return uuid.Nil, errs.New("completed request missing result reservation ID")
		}
		return *existing.ResultReservationID, nil
	case "processing":
		return uuid.Nil, ErrIdempotencyInProgress
	default:
		return uuid.Nil, errs.New("invalid idempotency key status")
	}
}

func (r *reservationCommandsImpl) allocateSpot(
	ctx context.Context,
	tx shared.Tx,
	lotID, userID uuid.UUID,
) (uuid.UUID, error) {
	actor, err := tx.Reads().UserByID(ctx, userID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if actor.Role != user.RoleDriver.String() {
		return uuid.Nil, ErrDriverRoleRequired
	}

	// Shared lock on the lot row: concurrent reservers proceed, but a
	// lot deletion in flight blocks until this transaction finishes.
	lotSnap, err := tx.Lots().LockShared(ctx, lotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrLotNotFound
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	spotSnap, err := tx.Spots().LockFirstAvailable(ctx, lotID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if spotSnap == nil {
		return uuid.Nil, ErrNoSpotAvailable
	}

	claimed, err := tx.Spots().Claim(ctx, spotSnap.ID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !claimed {
		// Row was locked for us; a failed claim means the snapshot lied.
		return uuid.Nil, errs.Mark(errs.New("locked spot no longer available"), ErrDatabaseOperationFailed)
	}

	rate, err := reservation.NewMoney(lotSnap.PricePerHourCents)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	entity := reservation.NewReservation(spotSnap.ID, lotID, userID, spotSnap.Number, r.clock.Now(), rate)

	reservationID, err := tx.Reservations().Create(ctx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			// Open-reservation index tripped despite the claim; retryable.
			return uuid.Nil, errs.Mark(err, ErrNoSpotAvailable)
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return reservationID, nil
}

// ReleaseReservation closes the caller's open reservation, bills the
// elapsed time and frees the spot. Owner-only; admins release nothing.
func (r *reservationCommandsImpl) ReleaseReservation(ctx context.Context, reservationID, userID uuid.UUID) (*queries.ReservationView, error) {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, reservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if snap.UserID != userID {
			return ErrNotReservationOwner
		}
		if snap.LeavingTime != nil {
			return ErrReservationAlreadyClosed
		}

		leavingTime := r.clock.Now()
		costCents := reservation.CostCents(snap.ParkingTime, leavingTime, snap.CostPerHourCents)

		closed, err := tx.Reservations().Close(ctx, reservationID, leavingTime, costCents)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !closed {
			return ErrReservationAlreadyClosed
		}

		// SpotID is nil only when the lot was deleted out from under the
		// reservation; the history row still closes normally.
		if snap.SpotID != nil {
			if _, err := tx.Spots().Free(ctx, *snap.SpotID); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		return r.enqueueNotification(ctx, tx, "reservation_released", reservationID)
	})
	if err != nil {
		return nil, err
	}

	view, err := r.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (r *reservationCommandsImpl) enqueueNotification(ctx context.Context, tx shared.Tx, topic string, reservationID uuid.UUID) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": reservationID,
		"type":           topic,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "email", topic, payload, r.clock.Now())
}

func (r *reservationCommandsImpl) calculateRequestHash(req reqdto.CreateReservationRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
