package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"folio/internal/schema"
)

func TestWriteErrorBodyShape(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, "Profile not found", zap.NewNop())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Profile not found", body["detail"])
}

func TestWriteValidationErrorsBodyShape(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidationErrors(rec, []schema.FieldError{
		{Loc: []any{"body", "name"}, Msg: "field required"},
	}, zap.NewNop())

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Detail []schema.FieldError `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Detail, 1)
	assert.Equal(t, "field required", body.Detail[0].Msg)
	assert.Equal(t, []any{"body", "name"}, body.Detail[0].Loc)
}

func TestRequestLoggerPreservesStatus(t *testing.T) {
	handler := RequestLogger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/technologies/me", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
