package infra_memory_team

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/keyduel/core/internal/model"
	usecase_team "github.com/keyduel/core/internal/usecase/team"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MemoryTeamSuite struct {
	suite.Suite
}

func validTeam(code model.TeamCode) model.Team {
	now := time.Now()
	return model.Team{
		Code:         code,
		AdminID:      "p1",
		Players:      []model.PlayerID{"p1"},
		Status:       model.StatusWaiting,
		Paragraph:    "some text",
		Countdown:    5,
		Results:      make(map[model.PlayerID]model.Result),
		CreatedAt:    now,
		LastActivity: now,
	}
}

func (s *MemoryTeamSuite) TestCreateAndBook(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	d := New()

	require.NoError(t, d.CreateAndBook(ctx, validTeam("AAAA1111")))

	err := d.CreateAndBook(ctx, validTeam("AAAA1111"))
	assert.ErrorIs(t, err, usecase_team.ErrCodeConflict)
}

func (s *MemoryTeamSuite) TestSnapshotIsolation(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	d := New()
	require.NoError(t, d.CreateAndBook(ctx, validTeam("AAAA1111")))

	snap, err := d.Snapshot(ctx, "AAAA1111")
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the stored team.
	snap.Players = append(snap.Players, "intruder")
	snap.Results["intruder"] = model.Result{Score: 1}

	fresh, err := d.Snapshot(ctx, "AAAA1111")
	require.NoError(t, err)
	assert.Len(t, fresh.Players, 1)
	assert.Empty(t, fresh.Results)
}

func (s *MemoryTeamSuite) TestSnapshotUnknownCode(t provider.T) {
	t.Parallel()

	_, err := New().Snapshot(context.Background(), "NOPE0000")
	assert.ErrorIs(t, err, usecase_team.ErrTeamNotFound)
}

func (s *MemoryTeamSuite) TestUpdateAppliesOnSuccess(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	d := New()
	require.NoError(t, d.CreateAndBook(ctx, validTeam("AAAA1111")))

	err := d.Update(ctx, "AAAA1111", func(team *model.Team) error {
		team.Players = append(team.Players, "p2")
		team.Status = model.StatusCountdown
		return nil
	})
	require.NoError(t, err)

	snap, err := d.Snapshot(ctx, "AAAA1111")
	require.NoError(t, err)
	assert.Len(t, snap.Players, 2)
	assert.Equal(t, model.StatusCountdown, snap.Status)
}

func (s *MemoryTeamSuite) TestUpdateRollsBackOnError(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	d := New()
	require.NoError(t, d.CreateAndBook(ctx, validTeam("AAAA1111")))

	err := d.Update(ctx, "AAAA1111", func(team *model.Team) error {
		team.Players = append(team.Players, "p2")
		team.Results["p2"] = model.Result{Score: 10}
		return usecase_team.ErrTeamFull
	})
	assert.ErrorIs(t, err, usecase_team.ErrTeamFull)

	snap, err := d.Snapshot(ctx, "AAAA1111")
	require.NoError(t, err)
	assert.Len(t, snap.Players, 1)
	assert.Empty(t, snap.Results)
}

func (s *MemoryTeamSuite) TestUpdateUnknownCode(t provider.T) {
	t.Parallel()

	err := New().Update(context.Background(), "NOPE0000", func(team *model.Team) error {
		return nil
	})
	assert.ErrorIs(t, err, usecase_team.ErrTeamNotFound)
}

func (s *MemoryTeamSuite) TestDeleteStale(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	d := New()

	stale := validTeam("OLD00000")
	stale.LastActivity = time.Now().Add(-time.Hour)
	require.NoError(t, d.CreateAndBook(ctx, stale))
	require.NoError(t, d.CreateAndBook(ctx, validTeam("NEW00000")))

	deleted, err := d.DeleteStale(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = d.Snapshot(ctx, "OLD00000")
	assert.ErrorIs(t, err, usecase_team.ErrTeamNotFound)
	_, err = d.Snapshot(ctx, "NEW00000")
	assert.NoError(t, err)
}

func (s *MemoryTeamSuite) TestConcurrentUpdatesSerialize(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	d := New()
	require.NoError(t, d.CreateAndBook(ctx, validTeam("AAAA1111")))

	const workers = 32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = d.Update(ctx, "AAAA1111", func(team *model.Team) error {
				team.Countdown++
				return nil
			})
		}()
	}
	wg.Wait()

	snap, err := d.Snapshot(ctx, "AAAA1111")
	require.NoError(t, err)
	assert.Equal(t, 5+workers, snap.Countdown)
}

func TestMemoryTeamSuite(t *testing.T) {
	suite.RunSuite(t, new(MemoryTeamSuite))
}
