package http_team

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	http_common "github.com/keyduel/core/internal/delivery/http/common"
	ws_team "github.com/keyduel/core/internal/delivery/ws/team"
	"github.com/keyduel/core/internal/model"
	usecase_scoring "github.com/keyduel/core/internal/usecase/scoring"
	usecase_team "github.com/keyduel/core/internal/usecase/team"
)

type Controller struct {
	usecase *usecase_team.Usecase
	hub     *ws_team.Hub

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	usecase *usecase_team.Usecase,
	hub *ws_team.Hub,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		usecase: usecase,
		hub:     hub,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	teams := router.Group("/teams")
	{
		teams.POST("", c.create)
		teams.POST("/:team_code/players", c.join)
		teams.POST("/:team_code/competition", c.startCompetition)
		teams.POST("/:team_code/battle", c.startBattle)
		teams.POST("/:team_code/results", c.submitResult)
		teams.POST("/:team_code/reset", c.reset)
		teams.GET("/:team_code", c.status)
	}
}

func (c *Controller) writeError(ctx *gin.Context, op string, err error) {
	c.logger.Error("failed to "+op, slog.String("error", err.Error()))

	var (
		code    int
		message string
	)
	switch {
	case errors.Is(err, usecase_team.ErrTeamNotFound):
		code, message = http.StatusNotFound, "team not found"
	case errors.Is(err, usecase_team.ErrNotAdmin):
		code, message = http.StatusForbidden, "only admin can do this"
	case errors.Is(err, usecase_team.ErrTeamFull):
		code, message = http.StatusConflict, "team is full"
	case errors.Is(err, usecase_team.ErrAlreadyJoined):
		code, message = http.StatusConflict, "already in team"
	case errors.Is(err, usecase_team.ErrNotEnoughPlayers):
		code, message = http.StatusConflict, "not enough players to start"
	case errors.Is(err, usecase_team.ErrWrongStatus):
		code, message = http.StatusConflict, "team not in countdown status"
	case errors.Is(err, usecase_team.ErrTeamsUnavailable):
		code, message = http.StatusServiceUnavailable, "unavailable"
	default:
		code, message = http.StatusInternalServerError, "internal error"
	}
	ctx.JSON(code, http_common.ErrorResponse{Message: message})
}

func pathCode(ctx *gin.Context) model.TeamCode {
	return model.TeamCode(strings.ToUpper(ctx.Param("team_code")))
}

type PlayerRequestDTO struct {
	PlayerID string `json:"player_id" binding:"required"`
}

type CreateTeamResponseDTO struct {
	TeamCode string `json:"team_code"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// @Summary Create a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body PlayerRequestDTO true "Creating player"
// @Success 201 {object} CreateTeamResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 503 {object} http_common.ErrorResponse
// @Router /teams [post]
func (c *Controller) create(ctx *gin.Context) {
	var req PlayerRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	code, err := c.usecase.Create(ctx, model.PlayerID(req.PlayerID))
	if err != nil {
		c.writeError(ctx, "create team", err)
		return
	}

	ctx.JSON(http.StatusCreated, CreateTeamResponseDTO{
		TeamCode: string(code),
		Status:   "created",
		Message:  fmt.Sprintf("Team created! Share code: %s", code),
	})
}

type JoinTeamResponseDTO struct {
	Status      string `json:"status"`
	TeamCode    string `json:"team_code"`
	Message     string `json:"message"`
	IsAdmin     bool   `json:"is_admin"`
	PlayerCount int    `json:"player_count"`
}

// @Summary Join a team by code
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_code path string true "Team code"
// @Param request body PlayerRequestDTO true "Joining player"
// @Success 200 {object} JoinTeamResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 409 {object} http_common.ErrorResponse
// @Router /teams/{team_code}/players [post]
func (c *Controller) join(ctx *gin.Context) {
	var req PlayerRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	code := pathCode(ctx)
	info, err := c.usecase.Join(ctx, code, model.PlayerID(req.PlayerID))
	if err != nil {
		c.writeError(ctx, "join team", err)
		return
	}

	c.hub.NotifyPlayerJoined(code, model.PlayerID(req.PlayerID), info.PlayerCount)

	ctx.JSON(http.StatusOK, JoinTeamResponseDTO{
		Status:      "joined",
		TeamCode:    string(code),
		Message:     fmt.Sprintf("Joined team %s!", code),
		IsAdmin:     info.IsAdmin,
		PlayerCount: info.PlayerCount,
	})
}

type StartCompetitionResponseDTO struct {
	Status    string `json:"status"`
	Countdown int    `json:"countdown"`
	Paragraph string `json:"paragraph"`
}

// @Summary Start the competition countdown
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_code path string true "Team code"
// @Param request body PlayerRequestDTO true "Requesting player (must be admin)"
// @Success 200 {object} StartCompetitionResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 403 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 409 {object} http_common.ErrorResponse
// @Router /teams/{team_code}/competition [post]
func (c *Controller) startCompetition(ctx *gin.Context) {
	var req PlayerRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	code := pathCode(ctx)
	info, err := c.usecase.StartCompetition(ctx, code, model.PlayerID(req.PlayerID))
	if err != nil {
		c.writeError(ctx, "start competition", err)
		return
	}

	c.hub.NotifyCountdownStarted(code, info.Countdown, info.Paragraph)

	ctx.JSON(http.StatusOK, StartCompetitionResponseDTO{
		Status:    "countdown_started",
		Countdown: info.Countdown,
		Paragraph: info.Paragraph,
	})
}

type StartBattleResponseDTO struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// @Summary Switch from countdown to active battle
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_code path string true "Team code"
// @Param request body PlayerRequestDTO true "Requesting player (must be admin)"
// @Success 200 {object} StartBattleResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 403 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 409 {object} http_common.ErrorResponse
// @Router /teams/{team_code}/battle [post]
func (c *Controller) startBattle(ctx *gin.Context) {
	var req PlayerRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	code := pathCode(ctx)
	if err := c.usecase.StartBattle(ctx, code, model.PlayerID(req.PlayerID)); err != nil {
		c.writeError(ctx, "start battle", err)
		return
	}

	c.hub.NotifyBattleStarted(code)

	ctx.JSON(http.StatusOK, StartBattleResponseDTO{
		Status:  "battle_started",
		Message: "Battle is now active",
	})
}

type ResultDTO struct {
	WPM       float64 `json:"wpm"`
	Accuracy  float64 `json:"accuracy"`
	TimeTaken float64 `json:"time_taken"`
	Score     float64 `json:"score"`
}

type SubmitResultRequestDTO struct {
	PlayerID       string   `json:"player_id" binding:"required"`
	WPM            *float64 `json:"wpm" binding:"required,gte=0"`
	Accuracy       *float64 `json:"accuracy" binding:"required,gte=0"`
	ElapsedSeconds *float64 `json:"elapsed_seconds" binding:"required,gte=0"`
}

type SubmitResultResponseDTO struct {
	Status      string    `json:"status"`
	WaitingFor  int       `json:"waiting_for,omitempty"`
	Winner      string    `json:"winner,omitempty"`
	WinnerScore *float64  `json:"winner_score,omitempty"`
	LoserScore  *float64  `json:"loser_score,omitempty"`
	Draw        bool      `json:"draw,omitempty"`
	Results     resultMap `json:"results,omitempty"`
}

type resultMap map[string]ResultDTO

func toResultMap(results map[model.PlayerID]model.Result) resultMap {
	m := make(resultMap, len(results))
	for id, r := range results {
		m[string(id)] = ResultDTO{
			WPM:       usecase_scoring.Round2(r.WPM),
			Accuracy:  usecase_scoring.Round2(r.Accuracy),
			TimeTaken: usecase_scoring.Round2(r.TimeTaken),
			Score:     usecase_scoring.Round2(r.Score),
		}
	}
	return m
}

// @Summary Submit a competition result
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_code path string true "Team code"
// @Param request body SubmitResultRequestDTO true "Player result"
// @Success 200 {object} SubmitResultResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /teams/{team_code}/results [post]
func (c *Controller) submitResult(ctx *gin.Context) {
	var req SubmitResultRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	code := pathCode(ctx)
	info, err := c.usecase.SubmitResult(ctx, code, model.PlayerID(req.PlayerID),
		*req.WPM, *req.Accuracy, *req.ElapsedSeconds)
	if err != nil {
		c.writeError(ctx, "submit result", err)
		return
	}

	if !info.Finished {
		ctx.JSON(http.StatusOK, SubmitResultResponseDTO{
			Status:     "result_submitted",
			WaitingFor: info.WaitingFor,
		})
		return
	}

	c.hub.NotifyCompetitionFinished(code, *info.Outcome)

	winnerScore := usecase_scoring.Round2(info.Outcome.WinnerScore)
	loserScore := usecase_scoring.Round2(info.Outcome.LoserScore)
	ctx.JSON(http.StatusOK, SubmitResultResponseDTO{
		Status:      "competition_finished",
		Winner:      string(info.Outcome.Winner),
		WinnerScore: &winnerScore,
		LoserScore:  &loserScore,
		Draw:        info.Outcome.Draw,
		Results:     toResultMap(info.Outcome.Results),
	})
}

type TeamStatusResponseDTO struct {
	Status    string    `json:"status"`
	Countdown int       `json:"countdown"`
	Players   []string  `json:"players"`
	Paragraph string    `json:"paragraph"`
	Results   resultMap `json:"results"`
}

// @Summary Current team status
// @Tags Teams
// @Produce json
// @Param team_code path string true "Team code"
// @Success 200 {object} TeamStatusResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /teams/{team_code} [get]
func (c *Controller) status(ctx *gin.Context) {
	team, err := c.usecase.Status(ctx, pathCode(ctx))
	if err != nil {
		c.writeError(ctx, "get team status", err)
		return
	}

	players := make([]string, len(team.Players))
	for i, p := range team.Players {
		players[i] = string(p)
	}

	ctx.JSON(http.StatusOK, TeamStatusResponseDTO{
		Status:    string(team.Status),
		Countdown: team.Countdown,
		Players:   players,
		Paragraph: team.Paragraph,
		Results:   toResultMap(team.Results),
	})
}

type ResetTeamResponseDTO struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// @Summary Reset the team for a new competition
// @Tags Teams
// @Accept json
// @Produce json
// @Param team_code path string true "Team code"
// @Param request body PlayerRequestDTO true "Requesting player (must be admin)"
// @Success 200 {object} ResetTeamResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 403 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /teams/{team_code}/reset [post]
func (c *Controller) reset(ctx *gin.Context) {
	var req PlayerRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	code := pathCode(ctx)
	if err := c.usecase.Reset(ctx, code, model.PlayerID(req.PlayerID)); err != nil {
		c.writeError(ctx, "reset team", err)
		return
	}

	c.hub.NotifyTeamReset(code)

	ctx.JSON(http.StatusOK, ResetTeamResponseDTO{
		Status:  "team_reset",
		Message: "Team reset for new competition",
	})
}
