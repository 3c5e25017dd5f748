package response

import (
	"time"

	"parklot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LotResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	PostalCode        string    `json:"postalCode"`
	PricePerHourCents int64     `json:"pricePerHourCents"`
	Capacity          int32     `json:"capacity"`
	AvailableSpots    int64     `json:"availableSpots"`
	OccupiedSpots     int64     `json:"occupiedSpots"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type OccupancyResponse struct {
	LotID     uuid.UUID `json:"lotId"`
	Name      string    `json:"name"`
	Capacity  int32     `json:"capacity"`
	Occupied  int64     `json:"occupied"`
	Available int64     `json:"available"`
}

type SummaryResponse struct {
	TotalLots          int64 `json:"totalLots"`
	TotalSpots         int64 `json:"totalSpots"`
	OccupiedSpots      int64 `json:"occupiedSpots"`
	AvailableSpots     int64 `json:"availableSpots"`
	OpenReservations   int64 `json:"openReservations"`
	ClosedReservations int64 `json:"closedReservations"`
	RevenueCents       int64 `json:"revenueCents"`
}

func FromLotView(v *queries.LotView) *LotResponse {
	var resp LotResponse
	// Field-for-field identical shapes; copier keeps them in lockstep
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromLotViews(views []*queries.LotView) []*LotResponse {
	res := make([]*LotResponse, len(views))
	for i, v := range views {
		res[i] = FromLotView(v)
	}
	return res
}

func FromOccupancyView(v *queries.OccupancyView) *OccupancyResponse {
	var resp OccupancyResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromSummaryView(v *queries.SummaryView) *SummaryResponse {
	var resp SummaryResponse
	_ = copier.Copy(&resp, v)
	return &resp
}
