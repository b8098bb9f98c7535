package historymock

import (
	"context"
	"sort"
	"sync"

	"github.com/keyduel/core/internal/model"
)

// HistoryStore is the in-process fallback used when Redis is not
// configured. Standings survive only for the process lifetime.
type HistoryStore struct {
	mu      sync.Mutex
	records []model.MatchRecord
	wins    map[model.PlayerID]int
}

func New() *HistoryStore {
	return &HistoryStore{
		wins: make(map[model.PlayerID]int),
	}
}

func (s *HistoryStore) RecordMatch(_ context.Context, rec model.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	if !rec.Draw && rec.Winner != "" {
		s.wins[rec.Winner]++
	}
	return nil
}

func (s *HistoryStore) Top(_ context.Context, n int) ([]model.Standing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	standings := make([]model.Standing, 0, len(s.wins))
	for id, wins := range s.wins {
		standings = append(standings, model.Standing{PlayerID: id, Wins: wins})
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].PlayerID < standings[j].PlayerID
	})
	if n > 0 && len(standings) > n {
		standings = standings[:n]
	}
	return standings, nil
}
