package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFake_AdvanceAndSet(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewFake(start)
	require.True(t, c.Now().Equal(start))

	c.Advance(90 * time.Minute)
	require.True(t, c.Now().Equal(start.Add(90*time.Minute)))

	loc := time.FixedZone("UTC+2", 2*60*60)
	c.Set(time.Date(2026, 3, 2, 14, 0, 0, 0, loc))
	require.Equal(t, time.UTC, c.Now().Location())
	require.Equal(t, 12, c.Now().Hour())
}

func TestSystem_ReturnsUTC(t *testing.T) {
	now := System{}.Now()
	require.Equal(t, time.UTC, now.Location())
	require.WithinDuration(t, time.Now(), now, time.Second)
}
