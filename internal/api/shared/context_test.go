package shared_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mochi-hq/mochi-api/internal/api/shared"
	"github.com/mochi-hq/mochi-api/internal/service/auth"
)

func TestClaimsContext(t *testing.T) {
	t.Parallel()

	t.Run("round-trips claims", func(t *testing.T) {
		t.Parallel()

		claims := &auth.Claims{Subject: uuid.New(), PreferredUsername: "ada"}
		ctx := shared.WithClaims(context.Background(), claims)

		got, ok := shared.GetClaims(ctx)
		require.True(t, ok)
		assert.Same(t, claims, got)
	})

	t.Run("absent claims report false", func(t *testing.T) {
		t.Parallel()

		_, ok := shared.GetClaims(context.Background())
		assert.False(t, ok)
	})
}

func TestBearerTokenContext(t *testing.T) {
	t.Parallel()

	ctx := shared.WithBearerToken(context.Background(), "raw-token")

	token, ok := shared.GetBearerToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "raw-token", token)

	_, ok = shared.GetBearerToken(context.Background())
	assert.False(t, ok)
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	t.Run("generates a 32 character hex id", func(t *testing.T) {
		t.Parallel()

		ctx := shared.SetTraceID(context.Background())
		traceID := shared.GetTraceID(ctx)
		assert.Len(t, traceID, 32)
	})

	t.Run("ids are unique", func(t *testing.T) {
		t.Parallel()

		first := shared.GetTraceID(shared.SetTraceID(context.Background()))
		second := shared.GetTraceID(shared.SetTraceID(context.Background()))
		assert.NotEqual(t, first, second)
	})

	t.Run("missing id is empty", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", shared.GetTraceID(context.Background()))
	})
}
