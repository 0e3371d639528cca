package recipe

import (
	"net/http"

	core "ranna-banna/internal/core/recipe"
	"ranna-banna/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ToggleFavoriteRequest toggles Recipe in the favorites
type ToggleFavoriteRequest struct {
	Recipe core.Recipe `json:"recipe"`
}

// ToggleFavoriteResponse membership after the toggle and the resulting list
type ToggleFavoriteResponse struct {
	Favorite  bool          `json:"favorite"`
	Favorites []core.Recipe `json:"favorites"`
}

// FavoritesResponse the favorites list
type FavoritesResponse struct {
	Favorites []core.Recipe `json:"favorites"`
	Count     int           `json:"count"`
}

// RemoveFavoriteResponse whether an entry was removed
type RemoveFavoriteResponse struct {
	Removed bool `json:"removed"`
}

// HandleListFavorites GET /api/v1/favorites
func (h *Handler) HandleListFavorites(c *gin.Context) {
	items := h.favorites.List()
	c.JSON(http.StatusOK, FavoritesResponse{Favorites: items, Count: len(items)})
}

// HandleGetFavorite GET /api/v1/favorites/:id, localized when ?lang= is given
func (h *Handler) HandleGetFavorite(c *gin.Context) {
	r, ok := h.favorites.Get(c.Param("id"))
	if !ok {
		h.fail(c, common.ErrNotFound)
		return
	}

	if lang := c.Query("lang"); lang != "" {
		c.JSON(http.StatusOK, r.Localize(core.ParseLanguage(lang)))
		return
	}
	c.JSON(http.StatusOK, r)
}

// HandleToggleFavorite POST /api/v1/favorites/toggle
func (h *Handler) HandleToggleFavorite(c *gin.Context) {
	var req ToggleFavoriteRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.Recipe.ID == "" {
		h.fail(c, common.NewValidationError("recipe.id is required"))
		return
	}
	if err := h.images.ValidateDataURL(req.Recipe.ImageBase64); err != nil {
		h.fail(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	favorite, items, err := h.favorites.Toggle(c.Request.Context(), req.Recipe)
	if err != nil {
		h.fail(c, err)
		return
	}

	common.LogInfo("Favorite toggled",
		zap.String("request_id", requestid.Get(c)),
		zap.String("recipe_id", req.Recipe.ID),
		zap.Bool("favorite", favorite),
		zap.String("image_type", getImageType(req.Recipe.ImageBase64)),
	)

	c.JSON(http.StatusOK, ToggleFavoriteResponse{Favorite: favorite, Favorites: items})
}

// HandleRemoveFavorite DELETE /api/v1/favorites/:id
func (h *Handler) HandleRemoveFavorite(c *gin.Context) {
	removed, err := h.favorites.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, RemoveFavoriteResponse{Removed: removed})
}
