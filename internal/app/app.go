package app

import (
	"context"

	"github.com/keyduel/core/internal/config"
	http_init "github.com/keyduel/core/internal/delivery/http/init"
	http_leaderboard "github.com/keyduel/core/internal/delivery/http/leaderboard"
	http_team "github.com/keyduel/core/internal/delivery/http/team"
	http_typing "github.com/keyduel/core/internal/delivery/http/typing"
	ws_team "github.com/keyduel/core/internal/delivery/ws/team"
	"github.com/keyduel/core/internal/infra/historymock"
	infra_memory_team "github.com/keyduel/core/internal/infra/memory/team"
	infra_pg_init "github.com/keyduel/core/internal/infra/postgres/init"
	infra_postgres_paragraph "github.com/keyduel/core/internal/infra/postgres/paragraph"
	infra_redis_history "github.com/keyduel/core/internal/infra/redis/history"
	infra_redis_init "github.com/keyduel/core/internal/infra/redis/init"
	infra_static_paragraph "github.com/keyduel/core/internal/infra/static/paragraph"
	usecase_team "github.com/keyduel/core/internal/usecase/team"
)

func Go(cfg *config.Config) {
	var paragraphs usecase_team.ParagraphSource
	if cfg.Postgres.Host == "" {
		paragraphs = infra_static_paragraph.New()
	} else {
		pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
		pgParagraphs := infra_postgres_paragraph.New(pgConn)
		if err := pgParagraphs.Seed(context.Background(), infra_static_paragraph.Corpus()); err != nil {
			panic(err)
		}
		paragraphs = pgParagraphs
	}

	var history any
	if cfg.Redis.Host == "" {
		history = historymock.New()
	} else {
		redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
		history = infra_redis_history.New(redisConn, "match_history")
	}

	teamRepository := infra_memory_team.New()
	teamUC := usecase_team.New(
		teamRepository,
		paragraphs,
		history.(usecase_team.MatchRecorder),
		usecase_team.WithCapacity(cfg.Team.Capacity),
		usecase_team.WithCountdownSeconds(cfg.Team.CountdownSeconds),
		usecase_team.WithStaleAfter(cfg.Team.StaleAfter),
		usecase_team.WithCleanupPeriod(cfg.Team.CleanupPeriod),
	)

	hub := ws_team.NewHub()
	go hub.Run()

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_typing.New(paragraphs))
	controllerPool.Add(http_team.New(teamUC, hub))
	controllerPool.Add(http_leaderboard.New(history.(http_leaderboard.StandingsSource)))
	controllerPool.Add(ws_team.NewController(hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
