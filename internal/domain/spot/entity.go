package spot

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidSpotNumber = errors.New("spot number must be positive")

// Spot is one bookable unit within a lot. Its status is the single
// source of truth for occupancy: occupied iff exactly one open
// reservation references it. The lot binding and number never change.
type Spot struct {
	id     uuid.UUID
	lotID  uuid.UUID
	number int32
	status Status
}

func NewSpot(lotID uuid.UUID, number int32) (*Spot, error) {
	if number <= 0 {
		return nil, ErrInvalidSpotNumber
	}
	return &Spot{
		id:     uuid.New(),
		lotID:  lotID,
		number: number,
		status: StatusAvailable,
	}, nil
}

func (s *Spot) ID() uuid.UUID    { return s.id }
func (s *Spot) LotID() uuid.UUID { return s.lotID }
func (s *Spot) Number() int32    { return s.number }
func (s *Spot) Status() Status   { return s.status }

func (s *Spot) IsAvailable() bool {
	return s.status == StatusAvailable
}
