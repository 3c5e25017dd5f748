package api

import (
	"errors"
	"net/http"

	reqdto "parklot/internal/handler/dto/request"
	resdto "parklot/internal/handler/dto/response"
	"parklot/internal/handler/httperr"
	"parklot/internal/usecase/commands"
	"parklot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LotHandler struct {
	cmds         commands.LotCommands
	lotQ         queries.LotQueries
	reservationQ queries.ReservationQueries
}

func NewLotHandler(cmds commands.LotCommands, lotQ queries.LotQueries, reservationQ queries.ReservationQueries) *LotHandler {
	return &LotHandler{cmds: cmds, lotQ: lotQ, reservationQ: reservationQ}
}

// @Summary Create parking lot
// @Description Create a lot and its numbered spot pool (admin only)
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateLotRequest true "Create lot request"
// @Success 201 {object} resdto.LotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /lots [post]
func (h *LotHandler) Create(c *gin.Context) {
	var req reqdto.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	lotID, err := h.cmds.CreateLot(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lot data", nil)
		case errors.Is(err, commands.ErrDuplicateLot):
			httperr.AbortWithError(c, http.StatusConflict, err, "Lot already exists", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	view, err := h.lotQ.GetByID(c.Request.Context(), lotID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load lot", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromLotView(view))
}

// @Summary List parking lots
// @Description List all lots with live availability counts
// @Tags lots
// @Produce json
// @Success 200 {array} resdto.LotResponse
// @Router /lots [get]
func (h *LotHandler) List(c *gin.Context) {
	views, err := h.lotQ.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLotViews(views))
}

// @Summary Get parking lot
// @Description Get a lot by ID with live availability counts
// @Tags lots
// @Produce json
// @Param id path string true "Lot ID"
// @Success 200 {object} resdto.LotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id} [get]
func (h *LotHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lot ID format", nil)
		return
	}

	view, err := h.lotQ.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrLotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Parking lot not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromLotView(view))
}

// @Summary Get lot occupancy
// @Description Occupancy counts for one lot
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {object} resdto.OccupancyResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id}/occupancy [get]
func (h *LotHandler) Occupancy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lot ID format", nil)
		return
	}

	view, err := h.lotQ.Occupancy(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrLotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Parking lot not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromOccupancyView(view))
}

// @Summary List active reservations of a lot
// @Description Open reservations per spot for one lot (admin only)
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /lots/{id}/reservations [get]
func (h *LotHandler) ActiveReservations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lot ID format", nil)
		return
	}

	views, err := h.reservationQ.ListActiveByLot(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	res := make([]*resdto.ReservationResponse, len(views))
	for i, v := range views {
		res[i] = resdto.FromReservationView(v)
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Change lot price
// @Description Update the hourly price of a lot (admin only)
// @Tags lots
// @Accept json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param request body reqdto.UpdateLotPriceRequest true "New price"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id}/price [patch]
func (h *LotHandler) UpdatePrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lot ID format", nil)
		return
	}

	var req reqdto.UpdateLotPriceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	if err := h.cmds.ChangePrice(c.Request.Context(), id, req.PricePerHourCents); err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid price", nil)
		case errors.Is(err, commands.ErrLotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Parking lot not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete parking lot
// @Description Delete a lot with no occupied spots (admin only)
// @Tags lots
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /lots/{id} [delete]
func (h *LotHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lot ID format", nil)
		return
	}

	if err := h.cmds.DeleteLot(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrLotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Parking lot not found", nil)
		case errors.Is(err, commands.ErrLotOccupied):
			httperr.AbortWithError(c, http.StatusConflict, err, "Lot has occupied spots", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary System summary
// @Description Aggregate counts and revenue (admin only)
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SummaryResponse
// @Failure 403 {object} map[string]string
// @Router /admin/summary [get]
func (h *LotHandler) Summary(c *gin.Context) {
	view, err := h.lotQ.Summary(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSummaryView(view))
}
