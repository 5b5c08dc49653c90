package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anu1650/team-mange-sam/internal/service"
)

func TestWriteServiceError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", fmt.Errorf("%w: title is required", service.ErrValidation), http.StatusBadRequest, "validation failed: title is required"},
		{"not found", fmt.Errorf("task %w", service.ErrNotFound), http.StatusNotFound, "task not found"},
		{"persistence", fmt.Errorf("%w: disk full", service.ErrPersistence), http.StatusInternalServerError, "failed to save data"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.msg, body.Message)
		})
	}
}

func TestParseRoomID(t *testing.T) {
	t.Parallel()

	id, err := parseRoomID(json.RawMessage(`{"roomId":" m1 "}`))
	require.NoError(t, err)
	assert.Equal(t, "m1", id)

	id, err = parseRoomID(json.RawMessage(`"m2"`))
	require.NoError(t, err)
	assert.Equal(t, "m2", id)

	_, err = parseRoomID(json.RawMessage(`{"roomId":""}`))
	assert.Error(t, err)

	_, err = parseRoomID(json.RawMessage(`42`))
	assert.Error(t, err)
}
