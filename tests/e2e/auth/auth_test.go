//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"parklot/internal/domain/user"
	"parklot/internal/handler/dto/request"
	resdto "parklot/internal/handler/dto/response"
	"parklot/tests/common/authtest"
	"parklot/tests/common/httptest"
	"parklot/tests/e2e"
	jwtHelper "parklot/tests/e2e/common/helper"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	refreshURL  = "/api/auth/refresh"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *jwtHelper.JWTTestHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = jwtHelper.NewJWTTestHelper(s.DB, s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	// テスト用ユーザーを作成
	s.jwtHelper.CreateTestUser(s.T(), "driver@example.com", string(user.RoleDriver))
	s.jwtHelper.CreateTestUser(s.T(), "inactive@example.com", string(user.RoleDriver))

	// 非アクティブユーザーを作成
	ctx := s.T().Context()
	_, err := s.DB.Exec(ctx, "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestRegister() {
	tests := []struct {
		name           string
		reqBody        request.RegisterRequest
		expectedStatus int
		description    string
	}{
		{
			name:           "正常な登録",
			reqBody:        request.RegisterRequest{Email: "new-driver@example.com", Password: "password123", Name: "New Driver"},
			expectedStatus: http.StatusCreated,
			description:    "新規ドライバーを登録できること",
		},
		{
			name:           "既存メールアドレス",
			reqBody:        request.RegisterRequest{Email: "driver@example.com", Password: "password123", Name: "Duplicate"},
			expectedStatus: http.StatusConflict,
			description:    "登録済みメールアドレスは拒否されること",
		},
		{
			name:           "短すぎるパスワード",
			reqBody:        request.RegisterRequest{Email: "short@example.com", Password: "short", Name: "Short"},
			expectedStatus: http.StatusBadRequest,
			description:    "8文字未満のパスワードは拒否されること",
		},
		{
			name:           "無効なメールアドレス",
			reqBody:        request.RegisterRequest{Email: "not-an-email", Password: "password123", Name: "Invalid"},
			expectedStatus: http.StatusBadRequest,
			description:    "無効なメールアドレスは拒否されること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, tt.reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusCreated {
				var res resdto.RegisterResponse
				err := httptest.DecodeResponseBody(t, w.Body, &res)
				require.NoError(t, err)

				// 登録したユーザーでそのままログインできる
				s.jwtHelper.LoginUser(t, s.Router, tt.reqBody.Email, tt.reqBody.Password)

				// 自己登録は必ずドライバー
				var role string
				err = s.DB.QueryRow(t.Context(), "SELECT role FROM users WHERE email = $1", tt.reqBody.Email).Scan(&role)
				require.NoError(t, err)
				require.Equal(t, "driver", role)
			}
		})
	}
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
		description    string
	}{
		{
			name:           "正常なログイン",
			email:          "driver@example.com",
			password:       "password123",
			expectedStatus: http.StatusOK,
			description:    "有効な認証情報でログインできること",
		},
		{
			name:           "存在しないユーザー",
			email:          "nonexistent@example.com",
			password:       "password123",
			expectedStatus: http.StatusUnauthorized,
			description:    "存在しないユーザーでログインできないこと",
		},
		{
			name:           "間違ったパスワード",
			email:          "driver@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
			description:    "間違ったパスワードでログインできないこと",
		},
		{
			name:           "非アクティブユーザー",
			email:          "inactive@example.com",
			password:       "password123",
			expectedStatus: http.StatusForbidden,
			description:    "非アクティブユーザーはログインできないこと",
		},
		{
			name:           "空のメールアドレス",
			email:          "",
			password:       "password123",
			expectedStatus: http.StatusBadRequest,
			description:    "空のメールアドレスは拒否されること",
		},
		{
			name:           "空のパスワード",
			email:          "driver@example.com",
			password:       "",
			expectedStatus: http.StatusBadRequest,
			description:    "空のパスワードは拒否されること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				httptest.AssertHeaders(t, w, map[string]string{
					"Content-Type": "application/json; charset=utf-8",
				})

				var loginRes resdto.LoginResponse
				err := httptest.DecodeResponseBody(t, w.Body, &loginRes)
				require.NoError(t, err)
				require.NotEmpty(t, loginRes.AccessToken, "アクセストークンが空")
				require.NotEmpty(t, loginRes.RefreshToken, "リフレッシュトークンが空")

				// last_loginが更新されることを確認
				var lastLogin interface{}
				err = s.DB.QueryRow(t.Context(), "SELECT last_login FROM users WHERE email = $1", tt.email).Scan(&lastLogin)
				require.NoError(t, err)
				require.NotNil(t, lastLogin, "last_loginが更新されていない")

				// Cookie経由でもログアウトできる
				authtest.LogoutUser(t, s.Router, httptest.ExtractCookies(w))
			}
		})
	}
}

func (s *authSuite) TestRefresh() {
	tests := []struct {
		name              string
		setupRefreshToken func() string
		expectedStatus    int
		description       string
	}{
		{
			name: "正常なリフレッシュ",
			setupRefreshToken: func() string {
				reqBody := request.LoginRequest{
					Email:    "driver@example.com",
					Password: "password123",
				}
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL, reqBody, "")
				var loginRes resdto.LoginResponse
				_ = httptest.DecodeResponseBody(s.T(), w.Body, &loginRes)
				return loginRes.RefreshToken
			},
			expectedStatus: http.StatusOK,
			description:    "有効なリフレッシュトークンでトークンが更新されること",
		},
		{
			name: "無効なリフレッシュトークン",
			setupRefreshToken: func() string {
				return "invalid-refresh-token"
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "無効なリフレッシュトークンは拒否されること",
		},
		{
			name: "空のリフレッシュトークン",
			setupRefreshToken: func() string {
				return ""
			},
			expectedStatus: http.StatusBadRequest,
			description:    "空のリフレッシュトークンは拒否されること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.RefreshRequest{
				RefreshToken: tt.setupRefreshToken(),
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				var refreshRes resdto.RefreshResponse
				err := httptest.DecodeResponseBody(t, w.Body, &refreshRes)
				require.NoError(t, err)
				require.NotEmpty(t, refreshRes.AccessToken, "新しいアクセストークンが空")
				require.NotEmpty(t, refreshRes.RefreshToken, "新しいリフレッシュトークンが空")
			}
		})
	}
}

func (s *authSuite) TestLogout() {
	tests := []struct {
		name           string
		setupToken     func() string
		expectedStatus int
		description    string
	}{
		{
			name: "正常なログアウト",
			setupToken: func() string {
				return s.jwtHelper.LoginUser(s.T(), s.Router, "driver@example.com", "password123")
			},
			expectedStatus: http.StatusNoContent,
			description:    "有効なトークンでログアウトできること",
		},
		{
			name: "無効なトークン",
			setupToken: func() string {
				return "invalid-token"
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "無効なトークンでログアウトできないこと",
		},
		{
			name: "トークンなし",
			setupToken: func() string {
				return ""
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "トークンなしでログアウトできないこと",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			token := tt.setupToken()
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)
		})
	}
}

func (s *authSuite) TestMe() {
	tests := []struct {
		name           string
		setupToken     func() string
		expectedEmail  string
		expectedRole   string
		expectedStatus int
		description    string
	}{
		{
			name: "ドライバーの情報取得",
			setupToken: func() string {
				return s.jwtHelper.LoginUser(s.T(), s.Router, "driver@example.com", "password123")
			},
			expectedEmail:  "driver@example.com",
			expectedRole:   "driver",
			expectedStatus: http.StatusOK,
			description:    "認証済みドライバーが自身の情報を取得できること",
		},
		{
			name: "管理者の情報取得",
			setupToken: func() string {
				return s.jwtHelper.CreateAndLogin(s.T(), s.Router, "admin2@example.com", string(user.RoleAdmin))
			},
			expectedEmail:  "admin2@example.com",
			expectedRole:   "admin",
			expectedStatus: http.StatusOK,
			description:    "認証済み管理者が自身の情報を取得できること",
		},
		{
			name: "期限切れトークン",
			setupToken: func() string {
				userID := s.jwtHelper.CreateTestUser(s.T(), "expired@example.com", string(user.RoleDriver))
				return s.jwtHelper.CreateExpiredToken(s.T(), userID, user.RoleDriver)
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "期限切れトークンは拒否されること",
		},
		{
			name: "トークンなし",
			setupToken: func() string {
				return ""
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "未認証では取得できないこと",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			token := tt.setupToken()
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				var me resdto.UserResponse
				err := httptest.DecodeResponseBody(t, w.Body, &me)
				require.NoError(t, err)
				require.Equal(t, tt.expectedEmail, me.Email)
				require.Equal(t, tt.expectedRole, me.Role)
			}
		})
	}
}
