package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"revorz/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func validClaims(userID int64, role string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authz string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, mw(next)(c))
	return rec
}

// =====================
// AuthJWT（必須）
// =====================

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec := doRequest(t, middleware.AuthJWT(testConfig()), "", func(c echo.Context) error {
		t.Fatal("next should not be called")
		return nil
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", validClaims(1, "user"))

	rec := doRequest(t, middleware.AuthJWT(testConfig()), "Bearer "+token, func(c echo.Context) error {
		t.Fatal("next should not be called")
		return nil
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	claims := validClaims(1, "user")
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, "test-secret", claims)

	rec := doRequest(t, middleware.AuthJWT(testConfig()), "Bearer "+token, func(c echo.Context) error {
		t.Fatal("next should not be called")
		return nil
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ValidToken(t *testing.T) {
	token := signToken(t, "test-secret", validClaims(42, "user"))

	rec := doRequest(t, middleware.AuthJWT(testConfig()), "Bearer "+token, func(c echo.Context) error {
		id, ok := middleware.UserID(c)
		assert.True(t, ok)
		assert.Equal(t, int64(42), id)
		return c.NoContent(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

// =====================
// OptionalAuthJWT
// =====================

func TestOptionalAuthJWT_NoTokenPassesThrough(t *testing.T) {
	rec := doRequest(t, middleware.OptionalAuthJWT(testConfig()), "", func(c echo.Context) error {
		assert.Nil(t, middleware.OptionalUserID(c))
		return c.NoContent(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthJWT_ValidTokenSetsUser(t *testing.T) {
	token := signToken(t, "test-secret", validClaims(7, "user"))

	rec := doRequest(t, middleware.OptionalAuthJWT(testConfig()), "Bearer "+token, func(c echo.Context) error {
		id := middleware.OptionalUserID(c)
		if assert.NotNil(t, id) {
			assert.Equal(t, int64(7), *id)
		}
		return c.NoContent(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

// 壊れたトークンは無視して匿名で通す
func TestOptionalAuthJWT_InvalidTokenIsAnonymous(t *testing.T) {
	rec := doRequest(t, middleware.OptionalAuthJWT(testConfig()), "Bearer garbage", func(c echo.Context) error {
		assert.Nil(t, middleware.OptionalUserID(c))
		return c.NoContent(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

// =====================
// AdminRoleGuard
// =====================

func TestAdminRoleGuard_UserRoleForbidden(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserIDKey, int64(1))
	c.Set(middleware.CtxUserRoleKey, "user")

	h := middleware.AdminRoleGuard()(func(c echo.Context) error {
		t.Fatal("next should not be called")
		return nil
	})
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleGuard_NoRoleUnauthorized(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.AdminRoleGuard()(func(c echo.Context) error {
		t.Fatal("next should not be called")
		return nil
	})
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoleGuard_AdminAllowed(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserIDKey, int64(1))
	c.Set(middleware.CtxUserRoleKey, "admin")

	h := middleware.AdminRoleGuard()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
