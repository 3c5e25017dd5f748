package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types.
type LotSnapshot struct {
	ID                uuid.UUID
	Name              string
	PricePerHourCents int64
	Capacity          int32
}

type SpotSnapshot struct {
	ID     uuid.UUID
	LotID  uuid.UUID
	Number int32
	Status string
}

type ReservationSnapshot struct {
	ID               uuid.UUID
	SpotID           *uuid.UUID
	LotID            *uuid.UUID
	UserID           uuid.UUID
	SpotNumber       int32
	ParkingTime      time.Time
	LeavingTime      *time.Time
	CostPerHourCents int64
	CostCents        *int64
}

type UserSnapshot struct {
	ID       uuid.UUID
	Email    string
	Role     string
	IsActive bool
}

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Status              string
	RequestHash         string
	ResultReservationID *uuid.UUID
	ExpiresAt           time.Time
}
