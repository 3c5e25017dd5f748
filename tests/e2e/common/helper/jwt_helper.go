//go:build e2e

package helper

import (
	"testing"

	"parklot/internal/domain/user"
	"parklot/internal/pkg/config"
	"parklot/tests/common/authtest"
	"parklot/tests/common/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JWTTestHelper bundles the DB handle and JWT config so e2e suites can
// mint users and tokens without threading both around.
type JWTTestHelper struct {
	pool *pgxpool.Pool
	jwt  *authtest.JWTHelper
}

func NewJWTTestHelper(pool *pgxpool.Pool, cfg config.JWTConfig) *JWTTestHelper {
	return &JWTTestHelper{pool: pool, jwt: authtest.NewJWTHelper(cfg)}
}

func (h *JWTTestHelper) CreateTestUser(t *testing.T, email, role string) uuid.UUID {
	return dbtest.CreateTestUser(t, h.pool, email, role)
}

func (h *JWTTestHelper) LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	return authtest.LoginUser(t, router, email, password)
}

func (h *JWTTestHelper) CreateAndLogin(t *testing.T, router *gin.Engine, email, role string) string {
	return authtest.CreateAndLogin(t, h.pool, router, email, role)
}

func (h *JWTTestHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	return h.jwt.GenerateToken(t, userID, role)
}

func (h *JWTTestHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	return h.jwt.CreateExpiredToken(t, userID, role)
}
