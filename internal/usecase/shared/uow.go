package shared

import (
	"context"
	"time"

	"parklot/internal/domain/lot"
	"parklot/internal/domain/reservation"
	"parklot/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Lots() LotRepository
	Spots() SpotRepository
	Reservations() ReservationRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
}

type CommandReads interface {
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type LotRepository interface {
	Create(ctx context.Context, l *lot.Lot) error
	UpdatePrice(ctx context.Context, id uuid.UUID, pricePerHourCents int64) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// LockForUpdate reads the lot row under an exclusive row lock.
	// Deletion takes this lock so reservation attempts on the same lot
	// cannot interleave between the occupancy check and the DELETE.
	LockForUpdate(ctx context.Context, id uuid.UUID) (*LotSnapshot, error)
	// LockShared reads the lot row under a shared row lock. Allocation
	// takes it so concurrent reservers proceed in parallel while a
	// pending delete blocks until their transactions finish.
	LockShared(ctx context.Context, id uuid.UUID) (*LotSnapshot, error)
}

type SpotRepository interface {
	// BulkCreate inserts the lot's full spot pool, numbered 1..count.
	BulkCreate(ctx context.Context, lotID uuid.UUID, count int32) error
	// LockFirstAvailable returns the lowest-numbered available spot of
	// the lot, row-locked for this transaction. Concurrent callers are
	// handed distinct rows (skip-locked); nil means the lot is full.
	LockFirstAvailable(ctx context.Context, lotID uuid.UUID) (*SpotSnapshot, error)
	// Claim flips available->occupied. False when the spot was no
	// longer available, in which case nothing was written.
	Claim(ctx context.Context, spotID uuid.UUID) (bool, error)
	// Free flips occupied->available. False when the spot was not occupied.
	Free(ctx context.Context, spotID uuid.UUID) (bool, error)
	CountOccupied(ctx context.Context, lotID uuid.UUID) (int64, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	// Close stamps leaving time and cost on an open reservation.
	// False when the reservation was already closed; nothing written.
	Close(ctx context.Context, id uuid.UUID, leavingTime time.Time, costCents int64) (bool, error)
}

type IdempotencyRepository interface {
	// TryInsert claims the key, reporting false when another request
	// already holds it (the caller then inspects the existing record).
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, resultReservationID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}
