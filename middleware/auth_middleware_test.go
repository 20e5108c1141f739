package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newContextWithRole(role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("userId", "64f000000000000000000001")
		c.Set("userRole", role)
	}
	return c, rec
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	c, rec := newContextWithRole("admin")

	err := RequireAdmin()(okHandler)(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminRejectsCitizen(t *testing.T) {
	c, rec := newContextWithRole("user")

	err := RequireAdmin()(okHandler)(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "Admin privileges required")
}

func TestRequireAdminRejectsAnonymous(t *testing.T) {
	c, rec := newContextWithRole("")

	err := RequireAdmin()(okHandler)(c)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
