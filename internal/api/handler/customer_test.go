package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerHandler() *Customer {
	return NewCustomer(nil)
}

// --- Create ---

func TestCustomerCreate_InvalidJSON(t *testing.T) {
	h := newCustomerHandler()
	rec := httptest.NewRecorder()
	r := withUser(newRequestRaw(http.MethodPost, "/customers", "{bad json"))

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid JSON")
}

func TestCustomerCreate_MissingName(t *testing.T) {
	h := newCustomerHandler()
	rec := httptest.NewRecorder()
	r := withUser(newRequest(http.MethodPost, "/customers", map[string]any{
		"contact_name": "June Park",
	}))

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestCustomerCreate_InvalidEmail(t *testing.T) {
	h := newCustomerHandler()
	rec := httptest.NewRecorder()
	r := withUser(newRequest(http.MethodPost, "/customers", map[string]any{
		"name":  "Northline",
		"email": "not-an-email",
	}))

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Get ---

func TestCustomerGet_EmptyID(t *testing.T) {
	h := newCustomerHandler()
	rec := httptest.NewRecorder()
	r := withUser(newRequest(http.MethodGet, "/customers/", nil))
	r = withChiURLParam(r, "id", "")

	h.Get(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "missing required ID")
}

// --- Update ---

func TestCustomerUpdate_EmptyID(t *testing.T) {
	h := newCustomerHandler()
	rec := httptest.NewRecorder()
	r := withUser(newRequest(http.MethodPatch, "/customers/", map[string]any{
		"name": "Renamed",
	}))
	r = withChiURLParam(r, "id", "")

	h.Update(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomerUpdate_InvalidJSON(t *testing.T) {
	h := newCustomerHandler()
	rec := httptest.NewRecorder()
	r := withUser(newRequestRaw(http.MethodPatch, "/customers/"+validID, "{bad"))
	r = withChiURLParam(r, "id", validID)

	h.Update(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid JSON")
}

// --- Delete ---

func TestCustomerDelete_EmptyID(t *testing.T) {
	h := newCustomerHandler()
	rec := httptest.NewRecorder()
	r := withUser(newRequest(http.MethodDelete, "/customers/", nil))
	r = withChiURLParam(r, "id", "")

	h.Delete(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "missing required ID")
}

// --- Error response format ---

func TestCustomerCreate_ErrorResponseFormat(t *testing.T) {
	h := newCustomerHandler()
	rec := httptest.NewRecorder()
	r := withUser(newRequestRaw(http.MethodPost, "/customers", "{bad"))

	h.Create(rec, r)

	var body map[string]any
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	require.NoError(t, err)
	_, hasError := body["error"]
	assert.True(t, hasError)
}
