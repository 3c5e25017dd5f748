//go:build unit || e2e

package builder

import (
	"time"

	reqdto "parklot/internal/handler/dto/request"
	"parklot/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	LotID            uuid.UUID
	LotName          string
	UserID           uuid.UUID
	UserEmail        string
	SpotNumber       int32
	ParkingTime      time.Time
	LeavingTime      *time.Time
	CostPerHourCents int64
	CostCents        *int64
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		LotID:            uuid.New(),
		LotName:          "Central Parking",
		UserID:           uuid.New(),
		UserEmail:        "test@example.com",
		SpotNumber:       1,
		ParkingTime:      time.Now().UTC().Truncate(time.Second),
		CostPerHourCents: 1000,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) Closed(leavingTime time.Time, costCents int64) *ReservationBuilder {
	b.LeavingTime = &leavingTime
	b.CostCents = &costCents
	return b
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{LotID: b.LotID}
}

func (b *ReservationBuilder) BuildViewQuery() *queries.ReservationView {
	status := "open"
	if b.LeavingTime != nil {
		status = "closed"
	}
	lotID := b.LotID
	lotName := b.LotName
	spotID := uuid.New()
	return &queries.ReservationView{
		ID:               uuid.New(),
		LotID:            &lotID,
		LotName:          &lotName,
		SpotID:           &spotID,
		SpotNumber:       b.SpotNumber,
		UserID:           b.UserID,
		UserEmail:        b.UserEmail,
		ParkingTime:      b.ParkingTime,
		LeavingTime:      b.LeavingTime,
		CostPerHourCents: b.CostPerHourCents,
		CostCents:        b.CostCents,
		Status:           status,
		CreatedAt:        b.ParkingTime,
	}
}
