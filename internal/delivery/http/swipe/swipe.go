package http_swipe

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	http_common "github.com/moviepair/core/internal/delivery/http/common"
	ws_room "github.com/moviepair/core/internal/delivery/ws/room"
	"github.com/moviepair/core/internal/model"
	usecase_swipe "github.com/moviepair/core/internal/usecase/swipe"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Controller struct {
	usecase *usecase_swipe.Usecase
	hub     *ws_room.Hub
	logger  *slog.Logger
}

func New(usecase *usecase_swipe.Usecase, hub *ws_room.Hub) *Controller {
	return &Controller{
		usecase: usecase,
		hub:     hub,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	rooms := router.Group("/swipe/rooms")
	{
		rooms.POST("", c.create)
		rooms.POST("/:code/players", c.join)
		rooms.POST("/:code/genres", c.submitGenres)
		rooms.GET("/:code/deck", c.deck)
		rooms.POST("/:code/swipes", c.swipe)
		rooms.POST("/:code/done", c.markDone)
		rooms.GET("/:code/status", c.status)
		rooms.GET("/:code/ws", c.roomWS)
	}
}

type CreateRequestDTO struct {
	PlayerName string `json:"player_name" binding:"required"`
}

type CreateResponseDTO struct {
	Code string          `json:"code"`
	Room model.SwipeRoom `json:"room"`
}

// Create allocates a room in the genres phase.
// @Summary Create a swipe room
// @Tags Swipe
// @Accept json
// @Produce json
// @Param request body CreateRequestDTO true "Creator name"
// @Success 201 {object} CreateResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /swipe/rooms [post]
func (c *Controller) create(ctx *gin.Context) {
	var req CreateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	code, room, err := c.usecase.Create(ctx, req.PlayerName)
	if err != nil {
		c.respondError(ctx, "failed to create room", err)
		return
	}

	ctx.JSON(http.StatusCreated, CreateResponseDTO{Code: code, Room: room})
}

type JoinRequestDTO struct {
	PlayerName string `json:"player_name" binding:"required"`
}

type RoomResponseDTO struct {
	Room model.SwipeRoom `json:"room"`
}

// Join registers the second player (idempotent for a known name).
// @Summary Join a swipe room
// @Tags Swipe
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body JoinRequestDTO true "Player name"
// @Success 200 {object} RoomResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /swipe/rooms/{code}/players [post]
func (c *Controller) join(ctx *gin.Context) {
	var req JoinRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, err := c.usecase.Join(ctx, ctx.Param("code"), req.PlayerName)
	if err != nil {
		c.respondError(ctx, "failed to join room", err)
		return
	}

	c.hub.NotifyPlayerJoined(room.Code, req.PlayerName)
	ctx.JSON(http.StatusOK, RoomResponseDTO{Room: room})
}

type SubmitGenresRequestDTO struct {
	PlayerName string `json:"player_name" binding:"required"`
	GenreIDs   []int  `json:"genre_ids"`
}

type SubmitGenresResponseDTO struct {
	Phase         model.Phase `json:"phase"`
	AllGenresDone bool        `json:"all_genres_done"`
}

// SubmitGenres records a genre choice; the second submission builds the deck.
// @Summary Submit genre selection
// @Tags Swipe
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body SubmitGenresRequestDTO true "Chosen genre ids"
// @Success 200 {object} SubmitGenresResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /swipe/rooms/{code}/genres [post]
func (c *Controller) submitGenres(ctx *gin.Context) {
	var req SubmitGenresRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, err := c.usecase.SubmitGenres(ctx, ctx.Param("code"), req.PlayerName, req.GenreIDs)
	if err != nil {
		c.respondError(ctx, "failed to submit genres", err)
		return
	}

	if room.Phase == model.PhaseSwiping {
		c.hub.NotifyPhase(room.Code, room.Phase)
	}
	ctx.JSON(http.StatusOK, SubmitGenresResponseDTO{
		Phase:         room.Phase,
		AllGenresDone: room.AllGenresDone(),
	})
}

type DeckResponseDTO struct {
	Movies []model.TitleSummary `json:"movies"`
	Phase  model.Phase          `json:"phase"`
}

// Deck returns the ordered deck.
// @Summary Get the swipe deck
// @Tags Swipe
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} DeckResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /swipe/rooms/{code}/deck [get]
func (c *Controller) deck(ctx *gin.Context) {
	movies, phase, err := c.usecase.Deck(ctx, ctx.Param("code"))
	if err != nil {
		c.respondError(ctx, "failed to get deck", err)
		return
	}

	ctx.JSON(http.StatusOK, DeckResponseDTO{Movies: movies, Phase: phase})
}

type SwipeRequestDTO struct {
	PlayerName string `json:"player_name" binding:"required"`
	MovieKey   string `json:"movie_key" binding:"required"`
	Direction  string `json:"direction" binding:"required"`
}

// Swipe records one like or dislike.
// @Summary Submit a swipe
// @Tags Swipe
// @Accept json
// @Param code path string true "Room code"
// @Param request body SwipeRequestDTO true "Swipe"
// @Success 200
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /swipe/rooms/{code}/swipes [post]
func (c *Controller) swipe(ctx *gin.Context) {
	var req SwipeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	if err := c.usecase.Swipe(ctx, ctx.Param("code"), req.PlayerName, req.MovieKey, model.SwipeDirection(req.Direction)); err != nil {
		c.respondError(ctx, "failed to swipe", err)
		return
	}

	ctx.Status(http.StatusOK)
}

type MarkDoneRequestDTO struct {
	PlayerName string `json:"player_name" binding:"required"`
}

type MarkDoneResponseDTO struct {
	Phase model.Phase `json:"phase"`
}

// MarkDone flags a player as finished swiping.
// @Summary Finish swiping
// @Tags Swipe
// @Accept json
// @Produce json
// @Param code path string true "Room code"
// @Param request body MarkDoneRequestDTO true "Player name"
// @Success 200 {object} MarkDoneResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /swipe/rooms/{code}/done [post]
func (c *Controller) markDone(ctx *gin.Context) {
	var req MarkDoneRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	room, err := c.usecase.MarkDone(ctx, ctx.Param("code"), req.PlayerName)
	if err != nil {
		c.respondError(ctx, "failed to mark done", err)
		return
	}

	if room.Phase == model.PhaseResults {
		c.hub.NotifyPhase(room.Code, room.Phase)
	}
	ctx.JSON(http.StatusOK, MarkDoneResponseDTO{Phase: room.Phase})
}

// Status returns the aggregate polled view of a room.
// @Summary Get room status
// @Tags Swipe
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} usecase_swipe.StatusReport
// @Failure 404 {object} http_common.ErrorResponse
// @Router /swipe/rooms/{code}/status [get]
func (c *Controller) status(ctx *gin.Context) {
	report, err := c.usecase.Status(ctx, ctx.Param("code"))
	if err != nil {
		c.respondError(ctx, "failed to get status", err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

func (c *Controller) respondError(ctx *gin.Context, msg string, err error) {
	c.logger.Error(msg, slog.String("error", err.Error()))
	switch {
	case errors.Is(err, usecase_swipe.ErrResourceNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
	case errors.Is(err, usecase_swipe.ErrRoomFull):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "room is full",
		})
	case errors.Is(err, usecase_swipe.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid input",
		})
	default:
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}

func (c *Controller) roomWS(ctx *gin.Context) {
	code := ctx.Param("code")
	if _, _, err := c.usecase.Deck(ctx, code); err != nil {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("failed to upgrade to websocket",
			slog.String("error", err.Error()),
		)
		return
	}

	client := &ws_room.Client{
		Hub:  c.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Code: code,
	}

	c.hub.RegisterClient(client)

	go c.hub.StartClientReading(client)
	go c.hub.StartClientWriting(client)
}
