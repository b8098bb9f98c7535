package http_typing

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/keyduel/core/internal/delivery/http/common"
	usecase_scoring "github.com/keyduel/core/internal/usecase/scoring"
	usecase_team "github.com/keyduel/core/internal/usecase/team"
)

type Controller struct {
	paragraphs usecase_team.ParagraphSource
	logger     *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(paragraphs usecase_team.ParagraphSource, opts ...ControllerOption) *Controller {
	c := &Controller{
		paragraphs: paragraphs,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/paragraphs/random", c.randomParagraph)
	router.POST("/attempts", c.scoreAttempt)
}

type ParagraphResponseDTO struct {
	Paragraph string `json:"paragraph"`
}

// @Summary Random typing paragraph
// @Tags Typing
// @Produce json
// @Success 200 {object} ParagraphResponseDTO
// @Failure 500 {object} http_common.ErrorResponse
// @Router /paragraphs/random [get]
func (c *Controller) randomParagraph(ctx *gin.Context) {
	paragraph, err := c.paragraphs.Random(ctx)
	if err != nil {
		c.logger.Error("failed to pick paragraph", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, ParagraphResponseDTO{Paragraph: paragraph})
}

type AttemptRequestDTO struct {
	ReferenceText  string   `json:"reference_text"`
	TypedText      string   `json:"typed_text"`
	ElapsedSeconds *float64 `json:"elapsed_seconds" binding:"required,gte=0"`
}

type AttemptResponseDTO struct {
	WPM            float64 `json:"wpm"`
	Accuracy       float64 `json:"accuracy"`
	Errors         int     `json:"errors"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	TotalChars     int     `json:"total_chars"`
	CorrectChars   int     `json:"correct_chars"`
}

// @Summary Score one typing attempt
// @Tags Typing
// @Accept json
// @Produce json
// @Param request body AttemptRequestDTO true "Attempt to score"
// @Success 200 {object} AttemptResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Router /attempts [post]
func (c *Controller) scoreAttempt(ctx *gin.Context) {
	var req AttemptRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	stats := usecase_scoring.Compute(req.ReferenceText, req.TypedText, *req.ElapsedSeconds)

	ctx.JSON(http.StatusOK, AttemptResponseDTO{
		WPM:            stats.WPM,
		Accuracy:       stats.Accuracy,
		Errors:         stats.Errors,
		ElapsedSeconds: stats.TimeTaken,
		TotalChars:     stats.TotalChars,
		CorrectChars:   stats.CorrectChars,
	})
}
