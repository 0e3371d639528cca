package recipe

import (
	"net/http"

	core "ranna-banna/internal/core/recipe"
	"ranna-banna/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchRequest a recipe search. Query may be typed text, a voice transcript or a category label.
type SearchRequest struct {
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
}

// TranslateRequest a translation of one recipe into TargetLanguage
type TranslateRequest struct {
	Recipe         core.Recipe `json:"recipe"`
	TargetLanguage string      `json:"target_language" binding:"required"`
}

// CategoriesResponse browse categories
type CategoriesResponse struct {
	Categories []core.Category `json:"categories"`
}

// HandleSearch POST /api/v1/recipes/search
func (h *Handler) HandleSearch(c *gin.Context) {
	var req SearchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	session := sessionID(c)
	common.LogInfo("Recipe search request",
		zap.String("request_id", requestid.Get(c)),
		zap.String("query", req.Query),
		zap.String("session", session),
	)

	recipes, err := h.recipes.Search(c.Request.Context(), session, req.Query)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, core.SearchResult{
		Query:    req.Query,
		Language: core.ParseLanguage(req.Language),
		Recipes:  recipes,
	})
}

// HandleTranslate POST /api/v1/recipes/translate
func (h *Handler) HandleTranslate(c *gin.Context) {
	var req TranslateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	common.LogInfo("Recipe translation request",
		zap.String("request_id", requestid.Get(c)),
		zap.String("recipe_id", req.Recipe.ID),
		zap.String("language", req.TargetLanguage),
		zap.String("image_type", getImageType(req.Recipe.ImageBase64)),
	)

	translated, err := h.recipes.Translate(c.Request.Context(), req.Recipe, req.TargetLanguage)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, translated)
}

// HandleCategories GET /api/v1/categories
func (h *Handler) HandleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{Categories: core.Categories()})
}
