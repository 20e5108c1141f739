package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/bhavesh4825f/project/models"
)

func newMultipartRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/application/submit", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

func TestParseSubmissionFormLegacyApplicationType(t *testing.T) {
	form := &multipart.Form{Value: map[string][]string{
		"applicationType": {"PAN Card"},
		"fullName":        {"Asha Patel"},
	}}

	serviceIDHex, applicationType, values := parseSubmissionForm(form)
	require.Empty(t, serviceIDHex)
	require.Equal(t, "PAN Card", applicationType)
	require.Equal(t, "Asha Patel", values["fullName"])
	require.NotContains(t, values, "applicationType")
}

func TestParseSubmissionFormServiceID(t *testing.T) {
	form := &multipart.Form{Value: map[string][]string{
		"serviceId": {"64f000000000000000000002"},
		"fullName":  {"Asha Patel"},
	}}

	serviceIDHex, applicationType, values := parseSubmissionForm(form)
	require.Equal(t, "64f000000000000000000002", serviceIDHex)
	require.Empty(t, applicationType)
	require.NotContains(t, values, "serviceId")
}

func TestSubmitRejectsMissingTypeAndService(t *testing.T) {
	e := echo.New()
	req := newMultipartRequest(t, map[string]string{"fullName": "Asha Patel"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("userId", "64f000000000000000000001")

	ac := NewApplicationController(nil)
	require.NoError(t, ac.Submit(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "Application type or service ID is required", resp.Message)
}

func TestSubmissionServiceGuard(t *testing.T) {
	active := &models.Service{IsActive: true}
	status, message := submissionServiceGuard(active)
	require.Zero(t, status)
	require.Empty(t, message)

	inactive := &models.Service{IsActive: false}
	status, message = submissionServiceGuard(inactive)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Service is not active", message)
}

func TestDeliveryGuard(t *testing.T) {
	require.Empty(t, deliveryGuard(&models.Application{Status: models.StatusApproved}))

	for _, status := range []string{models.StatusPending, models.StatusInProgress, models.StatusRejected} {
		require.Equal(t,
			"Documents can only be sent for approved applications",
			deliveryGuard(&models.Application{Status: status}))
	}

	require.Equal(t,
		"Document has already been sent for this application",
		deliveryGuard(&models.Application{Status: models.StatusApproved, DocumentSent: true}))
}

func TestParseDeliveryForm(t *testing.T) {
	e := echo.New()
	form := url.Values{}
	form.Set("applicationId", "64f000000000000000000003")
	form.Set("sendingNotes", "collect within 30 days")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	delivery := parseDeliveryForm(c)
	require.Equal(t, "64f000000000000000000003", delivery.applicationID)
	require.Equal(t, "collect within 30 days", delivery.notes)
	require.Equal(t, "email", delivery.method)
}

func TestParseDeliveryFormExplicitMethod(t *testing.T) {
	e := echo.New()
	form := url.Values{}
	form.Set("applicationId", "64f000000000000000000003")
	form.Set("deliveryMethod", "courier")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.Equal(t, "courier", parseDeliveryForm(c).method)
}
