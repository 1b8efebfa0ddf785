package discovery_test

import (
	"testing"
	"time"

	"emailfinder/internal/discovery"

	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := discovery.NewRegistryWithClock(nil, discovery.WorkflowOptions{}, func() time.Time { return now })

	a := r.Get("a")
	require.Same(t, a, r.Get("a"))
	require.NotSame(t, a, r.Get("b"))
	require.Equal(t, 2, r.Len())

	now = now.Add(20 * time.Minute)
	r.Get("b")
	require.Equal(t, 1, r.Sweep(15*time.Minute))
	require.Equal(t, 1, r.Len())

	r.Drop("b")
	require.Zero(t, r.Len())
}
