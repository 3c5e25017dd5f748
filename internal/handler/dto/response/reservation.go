package response

import (
	"time"

	"parklot/internal/usecase/queries"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"
)

type ReservationResponse struct {
	ID               uuid.UUID   `json:"id"`
	LotID            *uuid.UUID  `json:"lotId,omitempty"`
	LotName          null.String `json:"lotName"`
	SpotID           *uuid.UUID  `json:"spotId,omitempty"`
	SpotNumber       int32       `json:"spotNumber"`
	UserID           uuid.UUID   `json:"userId"`
	UserEmail        string      `json:"userEmail"`
	ParkingTime      time.Time   `json:"parkingTime"`
	LeavingTime      null.Time   `json:"leavingTime"`
	CostPerHourCents int64       `json:"costPerHourCents"`
	CostCents        null.Int    `json:"costCents"`
	Status           string      `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
}

type ReservationListItemResponse struct {
	ID          uuid.UUID   `json:"id"`
	LotID       *uuid.UUID  `json:"lotId,omitempty"`
	LotName     null.String `json:"lotName"`
	SpotNumber  int32       `json:"spotNumber"`
	ParkingTime time.Time   `json:"parkingTime"`
	LeavingTime null.Time   `json:"leavingTime"`
	CostCents   null.Int    `json:"costCents"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type ReservationListResponse struct {
	Items      []*ReservationListItemResponse `json:"items"`
	NextCursor *string                        `json:"nextCursor,omitempty"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:               v.ID,
		LotID:            v.LotID,
		LotName:          null.StringFromPtr(v.LotName),
		SpotID:           v.SpotID,
		SpotNumber:       v.SpotNumber,
		UserID:           v.UserID,
		UserEmail:        v.UserEmail,
		ParkingTime:      v.ParkingTime,
		LeavingTime:      null.TimeFromPtr(v.LeavingTime),
		CostPerHourCents: v.CostPerHourCents,
		CostCents:        null.IntFromPtr(v.CostCents),
		Status:           v.Status,
		CreatedAt:        v.CreatedAt,
	}
}

func FromReservationList(items []*queries.ReservationListItem, next *queries.Cursor) *ReservationListResponse {
	resp := &ReservationListResponse{
		Items: make([]*ReservationListItemResponse, len(items)),
	}
	for i, it := range items {
		resp.Items[i] = &ReservationListItemResponse{
			ID:          it.ID,
			LotID:       it.LotID,
			LotName:     null.StringFromPtr(it.LotName),
			SpotNumber:  it.SpotNumber,
			ParkingTime: it.ParkingTime,
			LeavingTime: null.TimeFromPtr(it.LeavingTime),
			CostCents:   null.IntFromPtr(it.CostCents),
			Status:      it.Status,
			CreatedAt:   it.CreatedAt,
		}
	}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}
