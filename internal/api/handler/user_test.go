package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newUserHandler() *User {
	return NewUser(nil)
}

// --- Create ---

func TestUserCreate_InvalidJSON(t *testing.T) {
	h := newUserHandler()
	rec := httptest.NewRecorder()
	r := withAdmin(newRequestRaw(http.MethodPost, "/users", "{bad json"))

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid JSON")
}

func TestUserCreate_ShortPassword(t *testing.T) {
	h := newUserHandler()
	rec := httptest.NewRecorder()
	r := withAdmin(newRequest(http.MethodPost, "/users", map[string]any{
		"email":      "new@example.test",
		"password":   "short",
		"first_name": "Ada",
		"last_name":  "Okafor",
	}))

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestUserCreate_InvalidEmail(t *testing.T) {
	h := newUserHandler()
	rec := httptest.NewRecorder()
	r := withAdmin(newRequest(http.MethodPost, "/users", map[string]any{
		"email":      "nope",
		"password":   "longenough",
		"first_name": "Ada",
		"last_name":  "Okafor",
	}))

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Update ---

// A non-admin can edit their own record but must not be able to grant
// themselves the admin flag.
func TestUserUpdate_NonAdminCannotSetAdminFlag(t *testing.T) {
	h := newUserHandler()
	rec := httptest.NewRecorder()
	r := withUser(newRequest(http.MethodPatch, "/users/usr-test-1", map[string]any{
		"is_admin": true,
	}))
	r = withChiURLParam(r, "id", "usr-test-1")

	h.Update(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Equal(t, "unauthorized", body["error"])
}

func TestUserUpdate_EmptyID(t *testing.T) {
	h := newUserHandler()
	rec := httptest.NewRecorder()
	r := withAdmin(newRequest(http.MethodPatch, "/users/", map[string]any{
		"first_name": "Ada",
	}))
	r = withChiURLParam(r, "id", "")

	h.Update(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Delete ---

func TestUserDelete_EmptyID(t *testing.T) {
	h := newUserHandler()
	rec := httptest.NewRecorder()
	r := withAdmin(newRequest(http.MethodDelete, "/users/", nil))
	r = withChiURLParam(r, "id", "")

	h.Delete(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
