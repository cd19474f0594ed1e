package logicapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mochi-hq/mochi-api/internal/platform/logicapi"
)

func TestGetAll(t *testing.T) {
	t.Parallel()

	logicID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/logic", r.URL.Path)
		assert.Equal(t, "Bearer caller-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode([]logicapi.GenericLogic{
			{PermanentIdentity: logicID, Name: "math", Revision: 3},
		})
		assert.NoError(t, err)
	}))
	defer server.Close()

	client := logicapi.NewClient(server.URL, 5*time.Second, nil)

	logics, err := client.GetAll(context.Background(), "caller-token")
	require.NoError(t, err)
	require.Len(t, logics, 1)
	assert.Equal(t, logicID, logics[0].PermanentIdentity)
	assert.Equal(t, "math", logics[0].Name)
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	logicID := uuid.New()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/logic/"+logicID.String(), r.URL.Path)

				w.Header().Set("Content-Type", "application/json")
				err := json.NewEncoder(w).Encode(logicapi.GenericLogic{
					PermanentIdentity: logicID,
					Name:              "math",
				})
				assert.NoError(t, err)
			}),
		)
		defer server.Close()

		client := logicapi.NewClient(server.URL, 5*time.Second, nil)

		logic, err := client.GetByID(context.Background(), "caller-token", logicID)
		require.NoError(t, err)
		assert.Equal(t, logicID, logic.PermanentIdentity)
	})

	t.Run("upstream 404 maps to ErrLogicNotFound", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}),
		)
		defer server.Close()

		client := logicapi.NewClient(server.URL, 5*time.Second, nil)

		_, err := client.GetByID(context.Background(), "caller-token", logicID)
		assert.ErrorIs(t, err, logicapi.ErrLogicNotFound)
	})

	t.Run("upstream 500 maps to RequestError", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}),
		)
		defer server.Close()

		client := logicapi.NewClient(server.URL, 5*time.Second, nil)

		_, err := client.GetByID(context.Background(), "caller-token", logicID)

		var reqErr *logicapi.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	})
}
