package httpserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillsync/skillsync/internal/domain"
)

func TestWriteError_StatusMapping(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantStr  string
	}{
		{"invalid argument", fmt.Errorf("%w: bad body", domain.ErrInvalidArgument), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"internal", domain.ErrInternal, http.StatusInternalServerError, "INTERNAL"},
		{"unknown", fmt.Errorf("surprise"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rw := httptest.NewRecorder()
			writeError(rw, httptest.NewRequest(http.MethodGet, "/", nil), tc.err, nil)
			assert.Equal(t, tc.wantCode, rw.Code)
			assert.Contains(t, rw.Body.String(), tc.wantStr)
			assert.Equal(t, "application/json; charset=utf-8", rw.Header().Get("Content-Type"))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()
	rw := httptest.NewRecorder()
	writeJSON(rw, http.StatusCreated, map[string]int{"n": 1})
	assert.Equal(t, http.StatusCreated, rw.Code)
	assert.JSONEq(t, `{"n":1}`, rw.Body.String())
}
