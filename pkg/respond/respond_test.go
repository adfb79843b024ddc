package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		data     interface{}
		wantBody string
	}{
		{
			name:     "object",
			code:     http.StatusOK,
			data:     map[string]int{"total": 3},
			wantBody: `{"total":3}`,
		},
		{
			name:     "created struct",
			code:     http.StatusCreated,
			data:     struct{ ID int64 `json:"id"` }{ID: 7},
			wantBody: `{"id":7}`,
		},
		{
			name:     "empty list",
			code:     http.StatusOK,
			data:     []string{},
			wantBody: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			JSON(w, r, tt.code, tt.data)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestError(t *testing.T) {
	t.Run("without request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		Error(w, r, http.StatusNotFound, "not found")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
	})

	t.Run("with request id", func(t *testing.T) {
		h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Error(w, r, http.StatusBadRequest, "invalid input")
		}))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(middleware.RequestIDHeader, "req-42")
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var got ErrorBody
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, "invalid input", got.Error)
		assert.Equal(t, "req-42", got.RequestID)
	})
}
