package http_leaderboard

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	http_common "github.com/keyduel/core/internal/delivery/http/common"
	"github.com/keyduel/core/internal/model"
)

const defaultTop = 10

type StandingsSource interface {
	Top(ctx context.Context, n int) ([]model.Standing, error)
}

type Controller struct {
	standings StandingsSource
	logger    *slog.Logger
}

func New(standings StandingsSource) *Controller {
	return &Controller{
		standings: standings,
		logger:    slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/leaderboard", c.top)
}

type LeaderboardResponseDTO struct {
	Standings []model.Standing `json:"standings"`
}

// @Summary Win leaderboard
// @Tags Leaderboard
// @Produce json
// @Param n query int false "Number of rows"
// @Success 200 {object} LeaderboardResponseDTO
// @Failure 500 {object} http_common.ErrorResponse
// @Router /leaderboard [get]
func (c *Controller) top(ctx *gin.Context) {
	n := defaultTop
	if raw := ctx.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid request format",
			})
			return
		}
		n = parsed
	}

	standings, err := c.standings.Top(ctx, n)
	if err != nil {
		c.logger.Error("failed to load leaderboard", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}
	if standings == nil {
		standings = []model.Standing{}
	}

	ctx.JSON(http.StatusOK, LeaderboardResponseDTO{Standings: standings})
}
