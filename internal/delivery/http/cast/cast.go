package http_cast

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/moviepair/core/internal/delivery/http/common"
	usecase_cast "github.com/moviepair/core/internal/usecase/cast"
)

type Controller struct {
	usecase *usecase_cast.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_cast.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	cast := router.Group("/cast/rooms")
	{
		cast.POST("", c.create)
		cast.POST("/:code/join", c.join)
		cast.GET("/:code/status", c.status)
	}
}

type CreateRequestDTO struct {
	Stream json.RawMessage `json:"stream" binding:"required"`
}

type CreateResponseDTO struct {
	Code string `json:"code"`
}

// Create stashes a stream descriptor under a short numeric code.
// @Summary Create a cast pairing code
// @Tags Cast
// @Accept json
// @Produce json
// @Param request body CreateRequestDTO true "Stream descriptor"
// @Success 201 {object} CreateResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /cast/rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	code, err := c.usecase.Create(ctx, req.Stream)
	if err != nil {
		c.logger.Error("failed to create cast room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusCreated, CreateResponseDTO{Code: code})
}

type JoinResponseDTO struct {
	Stream json.RawMessage `json:"stream"`
}

// Join claims a code and hands back its stream descriptor.
// @Summary Join a cast pairing code
// @Tags Cast
// @Produce json
// @Param code path string true "Pairing code"
// @Success 200 {object} JoinResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /cast/rooms/{code}/join [post]
func (c *Controller) join(ctx *gin.Context) {
	stream, err := c.usecase.Join(ctx, ctx.Param("code"))
	if err != nil {
		if errors.Is(err, usecase_cast.ErrResourceNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "unknown or expired code",
			})
			return
		}
		c.logger.Error("failed to join cast room", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, JoinResponseDTO{Stream: stream})
}

type StatusResponseDTO struct {
	Connected bool `json:"connected"`
	Expired   bool `json:"expired"`
}

// Status reports pairing progress. It never fails: an unknown code
// reads as expired so the sender stops polling.
// @Summary Poll cast pairing status
// @Tags Cast
// @Produce json
// @Param code path string true "Pairing code"
// @Success 200 {object} StatusResponseDTO
// @Router /cast/rooms/{code}/status [get]
func (c *Controller) status(ctx *gin.Context) {
	connected, expired := c.usecase.Status(ctx, ctx.Param("code"))
	ctx.JSON(http.StatusOK, StatusResponseDTO{Connected: connected, Expired: expired})
}
