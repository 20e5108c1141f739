package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/bhavesh4825f/project/models"
)

func TestGetFeesKnownServiceType(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("serviceType")
	c.SetParamValues("PAN Card")

	pc := NewPaymentController(nil)
	require.NoError(t, pc.GetFees(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                `json:"success"`
		Data    models.FeeStructure `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "PAN Card", resp.Data.ServiceType)
	require.Equal(t, 100.0, resp.Data.ServiceFee)
	require.Equal(t, 20.0, resp.Data.ConsultancyCharge)
	require.Equal(t, 120.0, resp.Data.TotalAmount)
}

func TestGetFeesUnknownServiceType(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("serviceType")
	c.SetParamValues("Unheard Of Service")

	pc := NewPaymentController(nil)
	require.NoError(t, pc.GetFees(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "Invalid service type", resp.Message)
}
