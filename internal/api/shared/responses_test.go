package shared_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mochi-hq/mochi-api/internal/api/shared"
)

func TestOrderedMap(t *testing.T) {
	t.Parallel()

	t.Run("empty map serializes as empty object", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(shared.NewOrderedMap())
		require.NoError(t, err)
		assert.Equal(t, "{}", string(data))
	})

	t.Run("keys serialize in insertion order", func(t *testing.T) {
		t.Parallel()

		m := shared.NewOrderedMap().
			Set("zulu", 1).
			Set("alpha", 2).
			Set("mike", 3)

		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, `{"zulu":1,"alpha":2,"mike":3}`, string(data))
	})

	t.Run("resetting a key keeps its position", func(t *testing.T) {
		t.Parallel()

		m := shared.NewOrderedMap().
			Set("first", 1).
			Set("second", 2).
			Set("first", 10)

		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Equal(t, `{"first":10,"second":2}`, string(data))
	})
}

func TestRespondWithData(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/card", nil)
	recorder := httptest.NewRecorder()

	shared.RespondWithData(recorder, req, http.StatusCreated, map[string]string{"name": "x"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var envelope shared.Envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, http.StatusCreated, envelope.Status)
	assert.Nil(t, envelope.Error)
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/card", nil)
	recorder := httptest.NewRecorder()

	body := shared.NewErrorBody(shared.ErrorTypeUnauthorized, "Invalid authentication.")
	shared.RespondWithError(recorder, req, http.StatusUnauthorized, body)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.JSONEq(
		t,
		`{
			"status": 401,
			"error": {
				"type": "Unauthorized",
				"message": "Invalid authentication.",
				"additionalFields": {}
			}
		}`,
		recorder.Body.String(),
	)
}

func TestRespondWithErrorAndLogNeverEchoesInternalError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/card", nil)
	recorder := httptest.NewRecorder()

	internalErr := assert.AnError
	body := shared.NewErrorBody(shared.ErrorTypeInternal, "Unexpected internal system error.")
	shared.RespondWithErrorAndLog(recorder, req, http.StatusInternalServerError, body, internalErr)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), internalErr.Error())
	assert.Contains(t, recorder.Body.String(), "Unexpected internal system error.")
}
