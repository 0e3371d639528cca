package recipe

import (
	"context"
	"errors"
	"strings"

	"ranna-banna/internal/api/middleware"
	core "ranna-banna/internal/core/recipe"
	"ranna-banna/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecipeService the recipe operations the handlers need
type RecipeService interface {
	Search(ctx context.Context, session, query string) ([]core.Recipe, error)
	Translate(ctx context.Context, r core.Recipe, lang string) (*core.TranslatedRecipe, error)
}

// FavoriteStore the favorites operations the handlers need
type FavoriteStore interface {
	Toggle(ctx context.Context, r core.Recipe) (bool, []core.Recipe, error)
	Remove(ctx context.Context, id string) (bool, error)
	Get(id string) (core.Recipe, bool)
	List() []core.Recipe
}

// ImageValidator checks client-supplied image data URLs
type ImageValidator interface {
	ValidateDataURL(value string) error
}

// Handler recipe, translation, category and favorites endpoints
type Handler struct {
	recipes   RecipeService
	favorites FavoriteStore
	images    ImageValidator
	debug     bool
}

// NewHandler creates the handler
func NewHandler(recipes RecipeService, favorites FavoriteStore, images ImageValidator, debug bool) *Handler {
	return &Handler{
		recipes:   recipes,
		favorites: favorites,
		images:    images,
		debug:     debug,
	}
}

// bindJSON binds the body into req, writing a 400 on failure
func (h *Handler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		common.LogWarn("Invalid request format",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		h.fail(c, common.ErrInvalidRequest.Wrap(err))
		return false
	}
	return true
}

func (h *Handler) fail(c *gin.Context, err error) {
	var ce *common.CustomError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		err = common.ErrGatewayTimeout.Wrap(err)
	case errors.Is(err, context.Canceled) && !errors.As(err, &ce):
		err = common.ErrClientClosed.Wrap(err)
	}
	_ = c.Error(err)
	common.WriteError(c, err, h.debug)
}

func sessionID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(middleware.SessionHeader))
}

// getImageType describes an image value for logs without logging the data
func getImageType(image string) string {
	if image == "" {
		return "empty"
	}
	if strings.HasPrefix(image, "data:image/") {
		header, _, ok := strings.Cut(image, ";base64,")
		if ok {
			return "base64_data_uri_" + strings.TrimPrefix(header, "data:image/")
		}
		return "invalid_data_uri"
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return "url"
	}
	return "unknown_format"
}
