package request

import (
	"parklot/internal/domain/lot"
)

type CreateLotRequest struct {
	Name              string `json:"name" binding:"required"`
	Address           string `json:"address" binding:"required"`
	PostalCode        string `json:"postal_code" binding:"required"`
	PricePerHourCents int64  `json:"price_per_hour_cents" binding:"required"`
	Capacity          int32  `json:"capacity" binding:"required"`
}

func (r *CreateLotRequest) ToDomain() (*lot.Lot, error) {
	return lot.NewLot(r.Name, r.Address, r.PostalCode, r.PricePerHourCents, r.Capacity)
}

type UpdateLotPriceRequest struct {
	PricePerHourCents int64 `json:"price_per_hour_cents" binding:"required"`
}
