package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/storage"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var got Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{"a"}, &Meta{Page: 2, Limit: 20, TotalItems: 41, TotalPages: 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	got := decode(t, rec)
	assert.True(t, got.Success)
	assert.Nil(t, got.Error)
	require.NotNil(t, got.Meta)
	assert.Equal(t, int64(41), got.Meta.TotalItems)
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "bad", nil) }, http.StatusBadRequest, "BAD_REQUEST"},
		{"unprocessable", func(w http.ResponseWriter) { UnprocessableEntity(w, "INVALID_TIMES", "x") }, http.StatusUnprocessableEntity, "INVALID_TIMES"},
		{"too large", func(w http.ResponseWriter) { PayloadTooLarge(w, "x") }, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "x") }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", func(w http.ResponseWriter) { Forbidden(w, "x") }, http.StatusForbidden, "FORBIDDEN"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "x") }, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "x") }, http.StatusConflict, "CONFLICT"},
		{"internal", func(w http.ResponseWriter) { InternalServerError(w, "x") }, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.write(rec)

			assert.Equal(t, c.status, rec.Code)
			got := decode(t, rec)
			assert.False(t, got.Success)
			require.NotNil(t, got.Error)
			assert.Equal(t, c.code, got.Error.Code)
		})
	}
}

func TestHandleError(t *testing.T) {
	var verrs validator.ValidationErrors
	verrs.Add("date_to", "date_to must not be before date_from")

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", verrs, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"policy", fmt.Errorf("submit: %w", leave.ErrInsufficientNotice), http.StatusUnprocessableEntity, "POLICY_VIOLATION"},
		{"missing file", fmt.Errorf("open: %w", storage.ErrFileNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"file type", file.ErrUnsupportedFileType, http.StatusUnprocessableEntity, "INVALID_FILE"},
		{"file size", file.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, c.err)

			assert.Equal(t, c.status, rec.Code)
			assert.Equal(t, c.code, decode(t, rec).Error.Code)
		})
	}

	rec := httptest.NewRecorder()
	HandleError(rec, verrs)
	assert.Equal(t, map[string]string{"date_to": "date_to must not be before date_from"}, decode(t, rec).Error.Details)
}
