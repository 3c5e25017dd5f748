//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"parklot/internal/handler/api"
	reqdto "parklot/internal/handler/dto/request"
	resdto "parklot/internal/handler/dto/response"
	"parklot/internal/pkg/config"
	"parklot/internal/pkg/jwt"
	"parklot/internal/usecase/commands"
	"parklot/internal/usecase/queries"
	"parklot/tests/common/builder"
	"parklot/tests/common/httptest"
	"parklot/tests/common/testutil"
	commandsmock "parklot/tests/mock/commands"
	queriesmock "parklot/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockUserQ    *queriesmock.MockUserQueries
	handler      *api.AuthHandler
	userID       uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockUserQ = queriesmock.NewMockUserQueries(s.mockCtrl)

	jwtService := jwt.NewService("test-secret-key-for-unit-tests", 15*time.Minute, 168*time.Hour)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockUserQ, jwtService, config.NewTestConfig())
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/refresh", s.handler.Refresh)
	s.router.POST("/auth/logout", authMiddleware, s.handler.Logout)
	s.router.GET("/auth/me", authMiddleware, s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

// ================================================================================
// TestLogin
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := builder.NewAuthBuilder().BuildDTO()

	s.Run("success: returns 200 with token pair and cookies", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).
			Return(&commands.LoginResult{
				UserID:    s.userID,
				TokenPair: &commands.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		s.Equal(http.StatusOK, rec.Code)
		var res resdto.LoginResponse
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &res))
		s.Equal("access", res.AccessToken)
		s.Equal("refresh", res.RefreshToken)
		s.Equal(s.userID.String(), res.UserID)
		s.NotNil(httptest.ExtractCookie(rec, "access_token"))
		s.NotNil(httptest.ExtractCookie(rec, "refresh_token"))
	})

	s.Run("error: missing required fields return 400", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing field: email", mutate: testutil.Field("email", nil)},
			{name: "missing field: password", mutate: testutil.Field("password", nil)},
			{name: "invalid field: short password", mutate: testutil.Field("password", "short")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})

	s.Run("error: command errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "invalid credentials", err: commands.ErrInvalidCredentials, expectCode: http.StatusUnauthorized},
			{name: "unknown user hidden as 401", err: commands.ErrUserNotFound, expectCode: http.StatusUnauthorized},
			{name: "inactive account", err: commands.ErrUserInactive, expectCode: http.StatusForbidden},
			{name: "unexpected failure", err: commands.ErrAuthenticationFailed, expectCode: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})
}

// ================================================================================
// TestRegister
// ================================================================================

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	reqBody := reqdto.RegisterRequest{
		Email:    "new-driver@example.com",
		Password: "password123",
		Name:     "New Driver",
	}

	s.Run("success: returns 201 with the new user ID", func() {
		newID := uuid.New()
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody).Return(newID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		s.Equal(http.StatusCreated, rec.Code)
		var res resdto.RegisterResponse
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &res))
		s.Equal(newID, res.UserID)
	})

	s.Run("error: missing required fields return 400", func() {
		for _, field := range []string{"email", "password", "name"} {
			s.Run("missing field: "+field, func() {
				body := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})

	s.Run("error: duplicate email returns 409", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody).
			Return(uuid.Nil, commands.ErrEmailTaken).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("error: domain validation failure returns 400", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody).
			Return(uuid.Nil, commands.ErrDomainValidation).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestRefresh
// ================================================================================

func (s *AuthHandlerTestSuite) TestRefresh() {
	url := "/auth/refresh"
	pair := &commands.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}

	s.Run("success: refresh token taken from request body", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "body-refresh").Return(pair, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.RefreshRequest{RefreshToken: "body-refresh"}, "")

		s.Equal(http.StatusOK, rec.Code)
		var res resdto.RefreshResponse
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &res))
		s.Equal("new-access", res.AccessToken)
		s.Equal("new-refresh", res.RefreshToken)
	})

	s.Run("success: refresh token taken from cookie", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "cookie-refresh").Return(pair, nil).Times(1)

		cookies := []*http.Cookie{{Name: "refresh_token", Value: "cookie-refresh"}}
		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, url, nil, cookies, "")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: invalid refresh token returns 401", func() {
		s.mockCommands.EXPECT().RefreshToken(gomock.Any(), "bad-refresh").
			Return(nil, commands.ErrTokenValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.RefreshRequest{RefreshToken: "bad-refresh"}, "")

		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: missing refresh token returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestLogout
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogout() {
	url := "/auth/logout"

	s.Run("success: returns 204 and clears cookies", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		s.Equal(http.StatusNoContent, rec.Code)
		access := httptest.ExtractCookie(rec, "access_token")
		s.NotNil(access)
		s.Empty(access.Value)
	})

	s.Run("error: unauthenticated request returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestMe
// ================================================================================

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns the current user", func() {
		view := &queries.AuthorizedUserView{
			ID:       s.userID,
			Email:    "driver@example.com",
			Name:     "Test Driver",
			Role:     "driver",
			IsActive: true,
		}
		s.mockUserQ.EXPECT().GetCurrentUser(gomock.Any(), s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		var res resdto.UserResponse
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &res))
		s.Equal(s.userID, res.ID)
		s.Equal("driver@example.com", res.Email)
		s.Equal("driver", res.Role)
		s.True(res.IsActive)
	})

	s.Run("error: query errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "user not found", err: queries.ErrUserNotFound, expectCode: http.StatusNotFound},
			{name: "inactive account", err: queries.ErrUserInactive, expectCode: http.StatusForbidden},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockUserQ.EXPECT().GetCurrentUser(gomock.Any(), s.userID).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})

	s.Run("error: unauthenticated request returns 401", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
