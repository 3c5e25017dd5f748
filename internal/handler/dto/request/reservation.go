package request

import (
	"github.com/google/uuid"
)

// Spot choice is the allocator's, not the caller's: the request names
// only the lot.
type CreateReservationRequest struct {
	LotID uuid.UUID `json:"lot_id" binding:"required"`
}
