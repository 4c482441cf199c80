package http_sync

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/moviepair/core/internal/delivery/http/common"
	"github.com/moviepair/core/internal/model"
	usecase_sync "github.com/moviepair/core/internal/usecase/sync"
)

type Controller struct {
	usecase *usecase_sync.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_sync.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	sync := router.Group("/sync")
	{
		sync.GET("", c.load)
		sync.POST("", c.reconcile)
	}
}

type ReconcileRequestDTO struct {
	Email string          `json:"email" binding:"required"`
	Data  *model.UserData `json:"data" binding:"required"`
}

type UserDataResponseDTO struct {
	Data model.UserData `json:"data"`
}

// Load returns the stored snapshot for an account; empty for unknown accounts.
// @Summary Load synced user data
// @Tags Sync
// @Produce json
// @Param email query string true "Account email"
// @Success 200 {object} UserDataResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /sync [get]
func (c *Controller) load(ctx *gin.Context) {
	data, err := c.usecase.Load(ctx, ctx.Query("email"))
	if err != nil {
		c.respondError(ctx, "failed to load user data", err)
		return
	}

	ctx.JSON(http.StatusOK, UserDataResponseDTO{Data: data})
}

// Reconcile merges a device snapshot into the stored one and returns the result.
// @Summary Reconcile synced user data
// @Tags Sync
// @Accept json
// @Produce json
// @Param request body ReconcileRequestDTO true "Device snapshot"
// @Success 200 {object} UserDataResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /sync [post]
func (c *Controller) reconcile(ctx *gin.Context) {
	var req ReconcileRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	merged, err := c.usecase.Reconcile(ctx, req.Email, req.Data)
	if err != nil {
		c.respondError(ctx, "failed to reconcile user data", err)
		return
	}

	ctx.JSON(http.StatusOK, UserDataResponseDTO{Data: merged})
}

func (c *Controller) respondError(ctx *gin.Context, msg string, err error) {
	c.logger.Error(msg, slog.String("error", err.Error()))
	if errors.Is(err, usecase_sync.ErrInvalidInput) {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid input",
		})
		return
	}
	ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
		Message: "internal error",
	})
}
