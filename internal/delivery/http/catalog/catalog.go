package http_catalog

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	http_common "github.com/moviepair/core/internal/delivery/http/common"
	"github.com/moviepair/core/internal/model"
	usecase_catalog "github.com/moviepair/core/internal/usecase/catalog"
)

type Controller struct {
	usecase *usecase_catalog.Usecase
	logger  *slog.Logger
}

func New(usecase *usecase_catalog.Usecase) *Controller {
	return &Controller{
		usecase: usecase,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	catalog := router.Group("/catalog")
	catalog.GET("/:type", c.discover)
}

type DiscoverResponseDTO struct {
	Results []model.TitleSummary `json:"results"`
}

// Discover lists popular titles, optionally filtered by genre.
// @Summary Browse the catalog
// @Tags Catalog
// @Produce json
// @Param type path string true "movie or tv"
// @Param genres query string false "Comma separated genre ids"
// @Param page query int false "Page, defaults to 1"
// @Success 200 {object} DiscoverResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Router /catalog/{type} [get]
func (c *Controller) discover(ctx *gin.Context) {
	mediaType := model.MediaType(ctx.Param("type"))
	if mediaType != model.MediaTypeMovie && mediaType != model.MediaTypeTV {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "unknown media type",
		})
		return
	}

	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	genreIDs, err := parseGenres(ctx.Query("genres"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid genres filter",
		})
		return
	}

	results, err := c.usecase.Discover(ctx, mediaType, genreIDs, page)
	if err != nil {
		c.logger.Error("failed to discover titles", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, DiscoverResponseDTO{Results: results})
}

func parseGenres(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
