package infra_memory_team

import (
	"context"
	"sync"
	"time"

	"github.com/keyduel/core/internal/model"
	usecase_team "github.com/keyduel/core/internal/usecase/team"
)

type entry struct {
	mu   sync.Mutex
	team model.Team
}

// Driver keeps the team registry in process memory. The outer RWMutex
// guards only the code map; each team carries its own lock, so
// operations on different teams don't contend.
type Driver struct {
	mu    sync.RWMutex
	teams map[model.TeamCode]*entry
}

func New() *Driver {
	return &Driver{
		teams: make(map[model.TeamCode]*entry),
	}
}

func (d *Driver) CreateAndBook(_ context.Context, team model.Team) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.teams[team.Code]; exists {
		return usecase_team.ErrCodeConflict
	}
	d.teams[team.Code] = &entry{team: team.Clone()}
	return nil
}

func (d *Driver) Snapshot(_ context.Context, code model.TeamCode) (model.Team, error) {
	e, err := d.lookup(code)
	if err != nil {
		return model.Team{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.team.Clone(), nil
}

func (d *Driver) Update(_ context.Context, code model.TeamCode, fn func(t *model.Team) error) error {
	e, err := d.lookup(code)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// fn works on a clone; the stored team changes only when fn
	// succeeds, so a failed precondition leaves no partial mutation.
	scratch := e.team.Clone()
	if err := fn(&scratch); err != nil {
		return err
	}
	e.team = scratch
	return nil
}

func (d *Driver) DeleteStale(_ context.Context, olderThan time.Duration) (int, error) {
	deadline := time.Now().Add(-olderThan)

	d.mu.Lock()
	defer d.mu.Unlock()

	deleted := 0
	for code, e := range d.teams {
		e.mu.Lock()
		stale := e.team.LastActivity.Before(deadline)
		e.mu.Unlock()
		if stale {
			delete(d.teams, code)
			deleted++
		}
	}
	return deleted, nil
}

func (d *Driver) lookup(code model.TeamCode) (*entry, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.teams[code]
	if !ok {
		return nil, usecase_team.ErrTeamNotFound
	}
	return e, nil
}
