//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"parklot/internal/domain/user"
	"parklot/internal/handler/api"
	resdto "parklot/internal/handler/dto/response"
	"parklot/internal/usecase/commands"
	"parklot/internal/usecase/queries"
	"parklot/tests/common/builder"
	"parklot/tests/common/httptest"
	commandsmock "parklot/tests/mock/commands"
	queriesmock "parklot/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	userID       uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleDriver)
		c.Next()
	}

	s.router.POST("/reservations", authMiddleware, s.handler.Create)
	s.router.GET("/reservations", authMiddleware, s.handler.ListMine)
	s.router.GET("/reservations/:id", authMiddleware, s.handler.Get)
	s.router.POST("/reservations/:id/release", authMiddleware, s.handler.Release)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) createHeaders() map[string]string {
	return map[string]string{"Idempotency-Key": uuid.NewString()}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"
	reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()
	returnView := builder.NewReservationBuilder().BuildViewQuery()

	s.Run("success: returns 201 Created for a new reservation", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), reqBody, s.userID, gomock.Any()).
			Return(&commands.CreateReservationResult{Reservation: returnView}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.createHeaders(), "bearer-token")

		s.Equal(http.StatusCreated, rec.Code)
		var resp resdto.ReservationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal(returnView.ID, resp.ID)
		s.Equal(returnView.SpotNumber, resp.SpotNumber)
		s.Equal("open", resp.Status)
	})

	s.Run("success: returns 200 OK when the request is replayed", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), reqBody, s.userID, gomock.Any()).
			Return(&commands.CreateReservationResult{Reservation: returnView, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.createHeaders(), "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: returns 400 when Idempotency-Key header is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: returns 400 for a malformed Idempotency-Key", func() {
		headers := map[string]string{"Idempotency-Key": "not-a-uuid"}
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, headers, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: returns 401 without authentication", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.createHeaders(), "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: command errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "lot not found", err: commands.ErrLotNotFound, expectCode: http.StatusNotFound},
			{name: "lot full", err: commands.ErrNoSpotAvailable, expectCode: http.StatusConflict},
			{name: "admin cannot reserve", err: commands.ErrDriverRoleRequired, expectCode: http.StatusForbidden},
			{name: "key reused with different body", err: commands.ErrDuplicateReservation, expectCode: http.StatusConflict},
			{name: "key still processing", err: commands.ErrIdempotencyInProgress, expectCode: http.StatusConflict},
			{name: "domain validation", err: commands.ErrDomainValidation, expectCode: http.StatusUnprocessableEntity},
			{name: "unexpected failure", err: commands.ErrDatabaseOperationFailed, expectCode: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateReservation(gomock.Any(), reqBody, s.userID, gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.createHeaders(), "bearer-token")
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})
}

// ================================================================================
// TestRelease
// ================================================================================

func (s *ReservationHandlerTestSuite) TestRelease() {
	reservationID := uuid.New()
	url := "/reservations/" + reservationID.String() + "/release"
	b := builder.NewReservationBuilder()
	closedView := b.Closed(b.ParkingTime.Add(90*time.Minute), 1500).BuildViewQuery()

	s.Run("success: returns 200 with the closed reservation", func() {
		s.mockCommands.EXPECT().ReleaseReservation(gomock.Any(), reservationID, s.userID).
			Return(closedView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		var resp resdto.ReservationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal("closed", resp.Status)
		s.True(resp.CostCents.Valid)
		s.Equal(int64(1500), resp.CostCents.Int64)
	})

	s.Run("error: returns 400 for a malformed reservation ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations/not-a-uuid/release", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: command errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "not found", err: commands.ErrReservationNotFound, expectCode: http.StatusNotFound},
			{name: "not the owner", err: commands.ErrNotReservationOwner, expectCode: http.StatusForbidden},
			{name: "already closed", err: commands.ErrReservationAlreadyClosed, expectCode: http.StatusConflict},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ReleaseReservation(gomock.Any(), reservationID, s.userID).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	reservationID := uuid.New()
	url := "/reservations/" + reservationID.String()
	returnView := builder.NewReservationBuilder().BuildViewQuery()

	s.Run("success: returns 200 with the reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleDriver.String(), reservationID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		var resp resdto.ReservationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Equal(returnView.ID, resp.ID)
	})

	s.Run("error: returns 404 when hidden from a non-owner", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleDriver.String(), reservationID).
			Return(nil, queries.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

// ================================================================================
// TestListMine
// ================================================================================

func (s *ReservationHandlerTestSuite) TestListMine() {
	url := "/reservations"

	item := &queries.ReservationListItem{
		ID:         uuid.New(),
		SpotNumber: 1,
		Status:     "open",
	}

	s.Run("success: returns items with next cursor", func() {
		next := &queries.Cursor{After: "djE6MTIzNDU2Nzg5LWFiY2Q"}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, nil, 20).
			Return([]*queries.ReservationListItem{item}, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		var resp resdto.ReservationListResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Len(resp.Items, 1)
		s.NotNil(resp.NextCursor)
	})

	s.Run("success: forwards cursor and limit query params", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, &queries.Cursor{After: "abc"}, 5).
			Return(nil, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?after=abc&limit=5", nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		var resp resdto.ReservationListResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &resp)
		s.Empty(resp.Items)
		s.Nil(resp.NextCursor)
	})
}
