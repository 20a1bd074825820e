package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	mw "github.com/quotehub/quotehub/internal/api/middleware"
	"github.com/quotehub/quotehub/internal/model"
)

// newRequest creates a new HTTP request with an optional JSON body.
func newRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// newRequestRaw creates a new HTTP request with a raw string body.
func newRequestRaw(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// withChiURLParam adds a chi URL parameter to the request context.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeErrorResponse parses the JSON error response body into a map.
func decodeErrorResponse(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

// withUser injects a regular-user identity into the request context.
func withUser(r *http.Request) *http.Request {
	claims := &model.Claims{UserID: "usr-test-1", CompanyID: "comp-test-1"}
	return r.WithContext(mw.WithClaims(r.Context(), claims))
}

// withAdmin injects an admin identity into the request context.
func withAdmin(r *http.Request) *http.Request {
	claims := &model.Claims{UserID: "usr-admin-1", IsAdmin: true, CompanyID: "comp-test-1"}
	return r.WithContext(mw.WithClaims(r.Context(), claims))
}

const validID = "test-id-1"
