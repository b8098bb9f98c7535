package usecase_team

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/keyduel/core/internal/model"
	usecase_scoring "github.com/keyduel/core/internal/usecase/scoring"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrNotAdmin         = errors.New("only admin can do this")
	ErrTeamFull         = errors.New("team is full")
	ErrAlreadyJoined    = errors.New("already in team")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrWrongStatus      = errors.New("wrong team status")
	ErrCodeConflict     = errors.New("code conflict")
	ErrTeamsUnavailable = errors.New("no available team codes")
	ErrInternal         = errors.New("internal error")
)

//go:generate mockery --name=TeamRepository --output=./mocks/team/repository --filename=repository.go
type TeamRepository interface {
	CreateAndBook(ctx context.Context, team model.Team) error
	Snapshot(ctx context.Context, code model.TeamCode) (model.Team, error)

	// Update runs fn under the team's own lock. Mutations either all
	// land or, when fn errors, none do.
	Update(ctx context.Context, code model.TeamCode, fn func(t *model.Team) error) error

	DeleteStale(ctx context.Context, olderThan time.Duration) (int, error)
}

//go:generate mockery --name=ParagraphSource --output=./mocks/team/source --filename=source.go
type ParagraphSource interface {
	Random(ctx context.Context) (string, error)
}

//go:generate mockery --name=MatchRecorder --output=./mocks/team/recorder --filename=recorder.go
type MatchRecorder interface {
	RecordMatch(ctx context.Context, rec model.MatchRecord) error
}

type Usecase struct {
	repository TeamRepository
	paragraphs ParagraphSource
	recorder   MatchRecorder

	capacity         int
	countdownSeconds int
	staleAfter       time.Duration

	// Stale teams get swept on every Nth create
	cleanupPeriod int64
	createsCount  atomic.Int64
}

type Option func(*Usecase)

func WithCapacity(n int) Option {
	return func(u *Usecase) {
		if n > 1 {
			u.capacity = n
		}
	}
}

func WithCountdownSeconds(n int) Option {
	return func(u *Usecase) {
		if n > 0 {
			u.countdownSeconds = n
		}
	}
}

func WithStaleAfter(d time.Duration) Option {
	return func(u *Usecase) {
		if d > 0 {
			u.staleAfter = d
		}
	}
}

func WithCleanupPeriod(n int) Option {
	return func(u *Usecase) {
		if n > 0 {
			u.cleanupPeriod = int64(n)
		}
	}
}

func New(
	repository TeamRepository,
	paragraphs ParagraphSource,
	recorder MatchRecorder,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		repository:       repository,
		paragraphs:       paragraphs,
		recorder:         recorder,
		capacity:         2,
		countdownSeconds: 5,
		staleAfter:       time.Minute * 30,
		cleanupPeriod:    20,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type JoinInfo struct {
	IsAdmin     bool
	PlayerCount int
}

type StartInfo struct {
	Countdown int
	Paragraph string
}

type SubmitInfo struct {
	Finished   bool
	WaitingFor int
	Outcome    *model.MatchOutcome
}

func (u *Usecase) Create(ctx context.Context, playerID model.PlayerID) (model.TeamCode, error) {
	if n := u.createsCount.Add(1); n%u.cleanupPeriod == 0 {
		if _, err := u.repository.DeleteStale(ctx, u.staleAfter); err != nil {
			return model.EmptyTeamCode, errors.Join(ErrInternal, err)
		}
	}

	paragraph, err := u.paragraphs.Random(ctx)
	if err != nil {
		return model.EmptyTeamCode, errors.Join(ErrInternal, err)
	}

	return u.bookTeam(ctx, playerID, paragraph)
}

// Assuming that codes can conflict.
// Retrying...
func (u *Usecase) bookTeam(ctx context.Context, playerID model.PlayerID, paragraph string) (model.TeamCode, error) {
	var retries = 3
	for retries > 0 {
		code := u.buildTeamCode()
		now := time.Now()
		err := u.repository.CreateAndBook(ctx, model.Team{
			Code:         code,
			AdminID:      playerID,
			Players:      []model.PlayerID{playerID},
			Status:       model.StatusWaiting,
			Paragraph:    paragraph,
			Countdown:    u.countdownSeconds,
			Results:      make(map[model.PlayerID]model.Result),
			CreatedAt:    now,
			LastActivity: now,
		})
		if err != nil {
			if errors.Is(err, ErrCodeConflict) {
				retries--
				continue
			}
			return model.EmptyTeamCode, errors.Join(ErrInternal, err)
		}
		return code, nil
	}
	return model.EmptyTeamCode, ErrTeamsUnavailable
}

func (u *Usecase) buildTeamCode() model.TeamCode {
	const codeLen = 8
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return model.TeamCode(strings.ToUpper(raw[:codeLen]))
}

func (u *Usecase) Join(ctx context.Context, code model.TeamCode, playerID model.PlayerID) (JoinInfo, error) {
	var info JoinInfo
	err := u.repository.Update(ctx, normalizeCode(code), func(t *model.Team) error {
		if t.HasPlayer(playerID) {
			return ErrAlreadyJoined
		}
		if len(t.Players) >= u.capacity {
			return ErrTeamFull
		}
		t.Players = append(t.Players, playerID)
		t.LastActivity = time.Now()
		info = JoinInfo{
			IsAdmin:     t.AdminID == playerID,
			PlayerCount: len(t.Players),
		}
		return nil
	})
	if err != nil {
		return JoinInfo{}, u.liftError(err)
	}
	return info, nil
}

func (u *Usecase) StartCompetition(ctx context.Context, code model.TeamCode, playerID model.PlayerID) (StartInfo, error) {
	var info StartInfo
	err := u.repository.Update(ctx, normalizeCode(code), func(t *model.Team) error {
		if t.AdminID != playerID {
			return ErrNotAdmin
		}
		if len(t.Players) < u.capacity {
			return ErrNotEnoughPlayers
		}
		t.Status = model.StatusCountdown
		t.Countdown = u.countdownSeconds
		t.LastActivity = time.Now()
		info = StartInfo{
			Countdown: t.Countdown,
			Paragraph: t.Paragraph,
		}
		return nil
	})
	if err != nil {
		return StartInfo{}, u.liftError(err)
	}
	return info, nil
}

func (u *Usecase) StartBattle(ctx context.Context, code model.TeamCode, playerID model.PlayerID) error {
	err := u.repository.Update(ctx, normalizeCode(code), func(t *model.Team) error {
		if t.AdminID != playerID {
			return ErrNotAdmin
		}
		if t.Status != model.StatusCountdown {
			return ErrWrongStatus
		}
		t.Status = model.StatusActive
		t.LastActivity = time.Now()
		return nil
	})
	if err != nil {
		return u.liftError(err)
	}
	return nil
}

// SubmitResult is idempotent per player: a resubmission overwrites the
// previous entry. The team finishes on the submission that brings the
// results up to capacity; that same call yields the match outcome.
func (u *Usecase) SubmitResult(ctx context.Context, code model.TeamCode, playerID model.PlayerID, wpm, accuracy, timeTaken float64) (SubmitInfo, error) {
	var info SubmitInfo
	err := u.repository.Update(ctx, normalizeCode(code), func(t *model.Team) error {
		t.Results[playerID] = model.Result{
			WPM:       wpm,
			Accuracy:  accuracy,
			TimeTaken: timeTaken,
			Score:     usecase_scoring.Score(wpm, accuracy),
		}
		t.LastActivity = time.Now()

		if len(t.Results) < u.capacity {
			info = SubmitInfo{WaitingFor: u.capacity - len(t.Results)}
			return nil
		}

		t.Status = model.StatusFinished
		outcome := buildOutcome(t)
		info = SubmitInfo{Finished: true, Outcome: &outcome}
		return nil
	})
	if err != nil {
		return SubmitInfo{}, u.liftError(err)
	}

	if info.Finished {
		// Best effort; match history must not fail the submission.
		_ = u.recorder.RecordMatch(ctx, model.MatchRecord{
			TeamCode:   normalizeCode(code),
			Winner:     info.Outcome.Winner,
			Loser:      info.Outcome.Loser,
			Draw:       info.Outcome.Draw,
			TopScore:   info.Outcome.WinnerScore,
			FinishedAt: time.Now(),
		})
	}
	return info, nil
}

// A top score shared by best and worst is an explicit draw, not a
// silent win for whichever player happened to submit last.
func buildOutcome(t *model.Team) model.MatchOutcome {
	outcome := model.MatchOutcome{Results: make(map[model.PlayerID]model.Result, len(t.Results))}

	var best, worst model.PlayerID
	for id, r := range t.Results {
		outcome.Results[id] = r
		if best == "" || r.Score > outcome.Results[best].Score {
			best = id
		}
		if worst == "" || r.Score < outcome.Results[worst].Score {
			worst = id
		}
	}

	outcome.WinnerScore = outcome.Results[best].Score
	outcome.LoserScore = outcome.Results[worst].Score
	if outcome.WinnerScore == outcome.LoserScore {
		outcome.Draw = true
		return outcome
	}
	outcome.Winner, outcome.Loser = best, worst
	return outcome
}

func (u *Usecase) Status(ctx context.Context, code model.TeamCode) (model.Team, error) {
	team, err := u.repository.Snapshot(ctx, normalizeCode(code))
	if err != nil {
		return model.Team{}, u.liftError(err)
	}
	return team, nil
}

func (u *Usecase) Reset(ctx context.Context, code model.TeamCode, playerID model.PlayerID) error {
	// New text is picked before entering the team's critical section:
	// the source may do I/O.
	paragraph, err := u.paragraphs.Random(ctx)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}

	err = u.repository.Update(ctx, normalizeCode(code), func(t *model.Team) error {
		if t.AdminID != playerID {
			return ErrNotAdmin
		}
		t.Status = model.StatusWaiting
		t.Countdown = u.countdownSeconds
		t.Results = make(map[model.PlayerID]model.Result)
		t.Paragraph = paragraph
		t.LastActivity = time.Now()
		return nil
	})
	if err != nil {
		return u.liftError(err)
	}
	return nil
}

var knownErrors = []error{
	ErrTeamNotFound,
	ErrNotAdmin,
	ErrTeamFull,
	ErrAlreadyJoined,
	ErrNotEnoughPlayers,
	ErrWrongStatus,
}

func (u *Usecase) liftError(err error) error {
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return known
		}
	}
	return errors.Join(ErrInternal, err)
}

// Codes are matched case-insensitively; storage is uppercase-only.
func normalizeCode(code model.TeamCode) model.TeamCode {
	return model.TeamCode(strings.ToUpper(strings.TrimSpace(string(code))))
}
