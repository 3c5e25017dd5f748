package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyClosed      = errors.New("reservation is already closed")
	ErrLeavingBeforeStart = errors.New("leaving time cannot precede parking time")
)

// Reservation records one user occupying one spot from parking_time
// until an optional leaving_time. The hourly rate is snapshotted at
// creation so later lot price changes never touch it. Closing is a
// one-way transition: leaving time and cost are set exactly once.
type Reservation struct {
	id          uuid.UUID
	spotID      uuid.UUID
	lotID       uuid.UUID
	userID      uuid.UUID
	spotNumber  int32
	parkingTime time.Time
	leavingTime *time.Time
	costPerHour Money
	cost        *Money
	createdAt   time.Time
}

func NewReservation(spotID, lotID, userID uuid.UUID, spotNumber int32, parkingTime time.Time, costPerHour Money) *Reservation {
	return &Reservation{
		id:          uuid.New(),
		spotID:      spotID,
		lotID:       lotID,
		userID:      userID,
		spotNumber:  spotNumber,
		parkingTime: parkingTime,
		costPerHour: costPerHour,
	}
}

func ReconstructReservation(
	id, spotID, lotID, userID uuid.UUID,
	spotNumber int32,
	parkingTime time.Time,
	leavingTime *time.Time,
	costPerHour Money,
	cost *Money,
	createdAt time.Time,
) *Reservation {
	return &Reservation{
		id:          id,
		spotID:      spotID,
		lotID:       lotID,
		userID:      userID,
		spotNumber:  spotNumber,
		parkingTime: parkingTime,
		leavingTime: leavingTime,
		costPerHour: costPerHour,
		cost:        cost,
		createdAt:   createdAt,
	}
}

func (r *Reservation) IsOpen() bool {
	return r.leavingTime == nil
}

func (r *Reservation) Status() Status {
	if r.IsOpen() {
		return StatusOpen
	}
	return StatusClosed
}

// Close stamps the leaving time and fixes the billed cost.
func (r *Reservation) Close(leavingTime time.Time) (Money, error) {
	if !r.IsOpen() {
		return Money{}, ErrAlreadyClosed
	}
	if leavingTime.Before(r.parkingTime) {
		return Money{}, ErrLeavingBeforeStart
	}

	cost, err := NewMoney(CostCents(r.parkingTime, leavingTime, r.costPerHour.Cents()))
	if err != nil {
		return Money{}, err
	}

	t := leavingTime
	r.leavingTime = &t
	r.cost = &cost
	return cost, nil
}

// Cost returns the billed amount for a closed reservation. For an open
// reservation it is zero — a "not yet determined" sentinel, not a
// charge; callers must check IsOpen rather than trust a zero here.
func (r *Reservation) Cost() Money {
	if r.cost == nil {
		return Money{}
	}
	return *r.cost
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) SpotID() uuid.UUID      { return r.spotID }
func (r *Reservation) LotID() uuid.UUID       { return r.lotID }
func (r *Reservation) UserID() uuid.UUID      { return r.userID }
func (r *Reservation) SpotNumber() int32      { return r.spotNumber }
func (r *Reservation) ParkingTime() time.Time { return r.parkingTime }
func (r *Reservation) CostPerHour() Money     { return r.costPerHour }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }

func (r *Reservation) LeavingTime() *time.Time {
	if r.leavingTime == nil {
		return nil
	}
	t := *r.leavingTime
	return &t
}
