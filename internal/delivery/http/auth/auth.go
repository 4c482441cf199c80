package http_auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/moviepair/core/internal/delivery/http/common"
	middleware_auth "github.com/moviepair/core/internal/delivery/http/middleware/auth"
	service_account_auth "github.com/moviepair/core/internal/service/auth/account"
)

type Controller struct {
	service *service_account_auth.Service
	logger  *slog.Logger
}

func New(service *service_account_auth.Service) *Controller {
	return &Controller{
		service: service,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", c.register)
		auth.POST("/login", c.login)
		auth.GET("/me", middleware_auth.RequireSession(c.service), c.me)
	}
}

type RegisterRequestDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type AccountResponseDTO struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Register creates an account.
// @Summary Register an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequestDTO true "Credentials"
// @Success 201 {object} AccountResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /auth/register [post]
func (c *Controller) register(ctx *gin.Context) {
	var req RegisterRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	user, err := c.service.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service_account_auth.ErrUserExists):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "account already exists",
			})
		case errors.Is(err, service_account_auth.ErrInvalidInput):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid input",
			})
		default:
			c.logger.Error("failed to register", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusCreated, AccountResponseDTO{Email: user.Email, Name: user.Name})
}

type LoginRequestDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and issues a session token in X-session-token.
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequestDTO true "Credentials"
// @Success 200 {object} AccountResponseDTO
// @Header 200 {string} X-session-token "Session token"
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 401 {object} http_common.ErrorResponse
// @Router /auth/login [post]
func (c *Controller) login(ctx *gin.Context) {
	var req LoginRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	user, token, err := c.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service_account_auth.ErrWrongPassword),
			errors.Is(err, service_account_auth.ErrResourceNotFound):
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "wrong email or password",
			})
		case errors.Is(err, service_account_auth.ErrInvalidInput):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "invalid input",
			})
		default:
			c.logger.Error("failed to log in", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Header(middleware_auth.TokenHeader, token)
	ctx.JSON(http.StatusOK, AccountResponseDTO{Email: user.Email, Name: user.Name})
}

// Me echoes the session's account.
// @Summary Current account
// @Tags Auth
// @Produce json
// @Success 200 {object} AccountResponseDTO
// @Failure 401 {object} http_common.ErrorResponse
// @Router /auth/me [get]
func (c *Controller) me(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, AccountResponseDTO{Email: middleware_auth.Email(ctx)})
}
