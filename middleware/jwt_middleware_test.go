package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestGenerateJWTEmbedsIDAndRole(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	signed, err := GenerateJWT("64f000000000000000000001", "admin")
	require.NoError(t, err)

	claims := &JwtCustomClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.Equal(t, "64f000000000000000000001", claims.UserID)
	require.Equal(t, "admin", claims.Role)
	require.InDelta(t, time.Now().Add(24*time.Hour).Unix(), claims.ExpiresAt, 5)
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	signed, err := GenerateJWT("64f000000000000000000001", "user")
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTMiddleware()(func(c echo.Context) error {
		require.Equal(t, "64f000000000000000000001", GetUserIDFromToken(c))
		require.Equal(t, "user", ExtractUserRole(c))
		return okHandler(c)
	})
	require.NoError(t, handler(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := JWTMiddleware()(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestJWTMiddlewareRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	claims := &JwtCustomClaims{
		UserID: "64f000000000000000000001",
		Role:   "user",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Add(-48 * time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-24 * time.Hour).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = JWTMiddleware()(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestJWTMiddlewareRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	claims := &JwtCustomClaims{
		UserID: "64f000000000000000000001",
		Role:   "admin",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = JWTMiddleware()(okHandler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
