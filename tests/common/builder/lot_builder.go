//go:build unit || e2e

package builder

import (
	"time"

	"parklot/internal/domain/lot"
	reqdto "parklot/internal/handler/dto/request"
	"parklot/internal/usecase/queries"

	"github.com/google/uuid"
)

type LotBuilder struct {
	Name              string
	Address           string
	PostalCode        string
	PricePerHourCents int64
	Capacity          int32
}

func NewLotBuilder() *LotBuilder {
	return &LotBuilder{
		Name:              "Central Parking",
		Address:           "1-2-3 Station Street, Downtown",
		PostalCode:        "100001",
		PricePerHourCents: 1000,
		Capacity:          5,
	}
}

func (b *LotBuilder) With(mutate func(*LotBuilder)) *LotBuilder {
	mutate(b)
	return b
}

func (b *LotBuilder) WithName(name string) *LotBuilder {
	b.Name = name
	return b
}

func (b *LotBuilder) WithAddress(address string) *LotBuilder {
	b.Address = address
	return b
}

func (b *LotBuilder) WithPostalCode(code string) *LotBuilder {
	b.PostalCode = code
	return b
}

func (b *LotBuilder) WithPrice(cents int64) *LotBuilder {
	b.PricePerHourCents = cents
	return b
}

func (b *LotBuilder) WithCapacity(capacity int32) *LotBuilder {
	b.Capacity = capacity
	return b
}

func (b *LotBuilder) BuildDomain() (*lot.Lot, error) {
	return lot.NewLot(b.Name, b.Address, b.PostalCode, b.PricePerHourCents, b.Capacity)
}

func (b *LotBuilder) BuildCreateRequestDTO() reqdto.CreateLotRequest {
	return reqdto.CreateLotRequest{
		Name:              b.Name,
		Address:           b.Address,
		PostalCode:        b.PostalCode,
		PricePerHourCents: b.PricePerHourCents,
		Capacity:          b.Capacity,
	}
}

func (b *LotBuilder) BuildViewQuery() *queries.LotView {
	now := time.Now()
	return &queries.LotView{
		ID:                uuid.New(),
		Name:              b.Name,
		Address:           b.Address,
		PostalCode:        b.PostalCode,
		PricePerHourCents: b.PricePerHourCents,
		Capacity:          b.Capacity,
		AvailableSpots:    int64(b.Capacity),
		OccupiedSpots:     0,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
