package historymock

import (
	"context"
	"testing"
	"time"

	"github.com/keyduel/core/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopOrdersByWins(t *testing.T) {
	ctx := context.Background()
	s := New()

	record := func(winner model.PlayerID) {
		require.NoError(t, s.RecordMatch(ctx, model.MatchRecord{
			TeamCode:   "AAAA1111",
			Winner:     winner,
			FinishedAt: time.Now(),
		}))
	}
	record("alice")
	record("alice")
	record("bob")

	standings, err := s.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, model.PlayerID("alice"), standings[0].PlayerID)
	assert.Equal(t, 2, standings[0].Wins)
	assert.Equal(t, model.PlayerID("bob"), standings[1].PlayerID)
}

func TestDrawsDoNotCount(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.RecordMatch(ctx, model.MatchRecord{
		TeamCode: "AAAA1111",
		Draw:     true,
	}))

	standings, err := s.Top(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, standings)
}

func TestTopTruncates(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, w := range []model.PlayerID{"a", "b", "c"} {
		require.NoError(t, s.RecordMatch(ctx, model.MatchRecord{Winner: w}))
	}

	standings, err := s.Top(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, standings, 2)
}
