package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/live"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/query"
	"github.com/dmitrijs2005/baconnect/internal/store"
	"github.com/stretchr/testify/require"
)

const wait = 2 * time.Second

func newQueries(t *testing.T) *query.Queries {
	t.Helper()
	s, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return query.New(s, live.NewNotifier(), logging.Discard())
}

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(wait):
		t.Fatal("timed out")
	}
	var zero T
	return zero
}
