package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ranna-banna/internal/api/handlers/health"
	"ranna-banna/internal/core/favorites"
	"ranna-banna/internal/core/image"
	"ranna-banna/internal/core/recipe"
	"ranna-banna/internal/infrastructure/config"
	"ranna-banna/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecipes struct{ mock.Mock }

func (m *mockRecipes) Search(ctx context.Context, session, query string) ([]recipe.Recipe, error) {
	args := m.Called(ctx, session, query)
	recipes, _ := args.Get(0).([]recipe.Recipe)
	return recipes, args.Error(1)
}

func (m *mockRecipes) Translate(ctx context.Context, r recipe.Recipe, lang string) (*recipe.TranslatedRecipe, error) {
	args := m.Called(ctx, r, lang)
	out, _ := args.Get(0).(*recipe.TranslatedRecipe)
	return out, args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		App:         config.AppConfig{Version: "test"},
		Server:      config.ServerConfig{RequestTimeout: 5 * time.Second, MaxBodyBytes: 1 << 20},
		RateLimit:   config.RateLimitConfig{Enabled: false},
		DedupWindow: time.Second,
	}
}

type testServer struct {
	router  *gin.Engine
	recipes *mockRecipes
	persist *favorites.MemoryPersistence
	health  *health.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	persist := favorites.NewMemoryPersistence()
	store := favorites.NewStore(persist)
	require.NoError(t, store.Load(context.Background()))

	recipes := new(mockRecipes)
	healthHandler := health.NewHandler("test", nil)
	router := SetupRouter(testConfig(), Dependencies{
		Recipes:   recipes,
		Favorites: store,
		Images:    image.NewService(1<<20, 85),
		Health:    healthHandler,
	})
	return &testServer{router: router, recipes: recipes, persist: persist, health: healthHandler}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) common.ErrorResponse {
	t.Helper()
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleRecipe(id string) recipe.Recipe {
	return recipe.Recipe{
		ID: id,
		RawRecipe: recipe.RawRecipe{
			NameEN:        "Chicken Biryani",
			NameBN:        "চিকেন বিরিয়ানি",
			Category:      "Bangladeshi",
			IngredientsEN: []string{"rice", "chicken"},
			IngredientsBN: []string{"চাল", "মুরগি"},
			StepsEN:       []string{"Cook."},
			StepsBN:       []string{"রান্না করুন।"},
		},
		ImageBase64: "data:image/jpeg;base64,/9j/AA==",
	}
}

func TestHealthRoutes(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/live", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/ready", nil).Code)

	t.Run("should report not ready when a check fails", func(t *testing.T) {
		s.health.AddCheck("favorites", func(context.Context) error { return errors.New("redis down") })

		w := s.do(t, http.MethodGet, "/ready", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "redis down")
	})
}

func TestCategoriesRoute(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/categories", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Categories []recipe.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Categories, 10)
}

func TestSearchRoute(t *testing.T) {
	t.Run("should return recipes for a query", func(t *testing.T) {
		s := newTestServer(t)
		s.recipes.On("Search", mock.Anything, "session-1", "Chicken Biryani").
			Return([]recipe.Recipe{sampleRecipe("r-1")}, nil).Once()

		w := s.do(t, http.MethodPost, "/api/v1/recipes/search",
			map[string]string{"query": "Chicken Biryani", "language": "bn"},
			"X-Session-ID", "session-1")

		require.Equal(t, http.StatusOK, w.Code)
		var resp recipe.SearchResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, recipe.LanguageBengali, resp.Language)
		require.Len(t, resp.Recipes, 1)
		assert.Equal(t, "r-1", resp.Recipes[0].ID)
		s.recipes.AssertExpectations(t)
	})

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"empty query", common.ErrEmptyQuery, http.StatusBadRequest, common.ErrCodeInvalidRequest},
		{"invalid AI response", common.ErrInvalidAIResponse.Wrap(errors.New("bad json")), http.StatusBadGateway, common.ErrCodeInvalidAIResponse},
		{"asset generation failed", common.ErrAssetGenerationFailed, http.StatusBadGateway, common.ErrCodeAssetGenerationFailed},
		{"service unavailable", common.ErrAIServiceUnavailable.Wrap(errors.New("dial tcp")), http.StatusServiceUnavailable, common.ErrCodeServiceUnavailable},
		{"superseded", common.ErrSuperseded, http.StatusConflict, common.ErrCodeSuperseded},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, common.ErrCodeGatewayTimeout},
		{"client gone", context.Canceled, common.StatusClientClosedRequest, common.ErrCodeClientClosed},
		{"client gone after fetch", common.ErrClientClosed.Wrap(context.Canceled), common.StatusClientClosedRequest, common.ErrCodeClientClosed},
	}
	for _, tc := range cases {
		t.Run("should map "+tc.name, func(t *testing.T) {
			s := newTestServer(t)
			s.recipes.On("Search", mock.Anything, "", mock.Anything).Return(nil, tc.err).Once()

			w := s.do(t, http.MethodPost, "/api/v1/recipes/search", map[string]string{"query": tc.name})

			assert.Equal(t, tc.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tc.code, resp.Code)
			assert.Empty(t, resp.Details)
		})
	}

	t.Run("should reject a duplicate search within the window", func(t *testing.T) {
		s := newTestServer(t)
		s.recipes.On("Search", mock.Anything, "", "Lunch").Return([]recipe.Recipe{}, nil).Once()

		first := s.do(t, http.MethodPost, "/api/v1/recipes/search", map[string]string{"query": "Lunch"})
		second := s.do(t, http.MethodPost, "/api/v1/recipes/search", map[string]string{"query": "Lunch"})

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		s.recipes.AssertExpectations(t)
	})

	t.Run("should let a failed search be retried at once", func(t *testing.T) {
		s := newTestServer(t)
		s.recipes.On("Search", mock.Anything, "", "Chicken Biryani").
			Return(nil, common.ErrInvalidAIResponse.Wrap(errors.New("bad json"))).Once()
		s.recipes.On("Search", mock.Anything, "", "Chicken Biryani").
			Return([]recipe.Recipe{sampleRecipe("r-1")}, nil).Once()

		first := s.do(t, http.MethodPost, "/api/v1/recipes/search", map[string]string{"query": "Chicken Biryani"})
		retry := s.do(t, http.MethodPost, "/api/v1/recipes/search", map[string]string{"query": "Chicken Biryani"})

		assert.Equal(t, http.StatusBadGateway, first.Code)
		assert.Equal(t, http.StatusOK, retry.Code)
		s.recipes.AssertExpectations(t)
	})

	t.Run("should reject malformed JSON", func(t *testing.T) {
		s := newTestServer(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/search", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		s.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		s.recipes.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestTranslateRoute(t *testing.T) {
	t.Run("should return the overlay", func(t *testing.T) {
		s := newTestServer(t)
		r := sampleRecipe("r-1")
		s.recipes.On("Translate", mock.Anything, r, "hi").Return(&recipe.TranslatedRecipe{
			RecipeID:     "r-1",
			Language:     "hi",
			Ingredients:  []string{"चावल", "चिकन"},
			Instructions: []string{"पकाएँ।"},
		}, nil).Once()

		w := s.do(t, http.MethodPost, "/api/v1/recipes/translate", map[string]interface{}{
			"recipe":          r,
			"target_language": "hi",
		})

		require.Equal(t, http.StatusOK, w.Code)
		var resp recipe.TranslatedRecipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "r-1", resp.RecipeID)
		assert.Len(t, resp.Ingredients, 2)
	})

	t.Run("should require a target language", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, http.MethodPost, "/api/v1/recipes/translate", map[string]interface{}{
			"recipe": sampleRecipe("r-1"),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should map an invalid translation", func(t *testing.T) {
		s := newTestServer(t)
		s.recipes.On("Translate", mock.Anything, mock.Anything, "bn").Return(nil, common.ErrInvalidTranslation).Once()

		w := s.do(t, http.MethodPost, "/api/v1/recipes/translate", map[string]interface{}{
			"recipe":          sampleRecipe("r-1"),
			"target_language": "bn",
		})

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, common.ErrCodeInvalidTranslation, decodeError(t, w).Code)
	})
}

func TestFavoritesRoutes(t *testing.T) {
	s := newTestServer(t)
	r := sampleRecipe("r-1")

	w := s.do(t, http.MethodPost, "/api/v1/favorites/toggle", map[string]interface{}{"recipe": r})
	require.Equal(t, http.StatusOK, w.Code)
	var toggled struct {
		Favorite  bool            `json:"favorite"`
		Favorites []recipe.Recipe `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toggled))
	assert.True(t, toggled.Favorite)
	require.Len(t, toggled.Favorites, 1)

	w = s.do(t, http.MethodGet, "/api/v1/favorites", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	w = s.do(t, http.MethodGet, "/api/v1/favorites/r-1?lang=bn", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var localized recipe.LocalizedRecipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &localized))
	assert.Equal(t, "চিকেন বিরিয়ানি", localized.Name)

	w = s.do(t, http.MethodGet, "/api/v1/favorites/r-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name_en":"Chicken Biryani"`)

	t.Run("should fail and keep state when persistence fails", func(t *testing.T) {
		s.persist.FailSaves(errors.New("disk full"))
		defer s.persist.FailSaves(nil)

		w := s.do(t, http.MethodPost, "/api/v1/favorites/toggle", map[string]interface{}{"recipe": sampleRecipe("r-2")})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, common.ErrCodeFavoritesPersistFailed, decodeError(t, w).Code)
		assert.Contains(t, s.do(t, http.MethodGet, "/api/v1/favorites", nil).Body.String(), `"count":1`)
	})

	t.Run("should reject a toggle without id or with a bad image", func(t *testing.T) {
		noID := sampleRecipe("")
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/favorites/toggle", map[string]interface{}{"recipe": noID}).Code)

		badImage := sampleRecipe("r-3")
		badImage.ImageBase64 = "https://example.com/a.jpg"
		assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/favorites/toggle", map[string]interface{}{"recipe": badImage}).Code)
	})

	w = s.do(t, http.MethodDelete, "/api/v1/favorites/r-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"removed":true`)

	w = s.do(t, http.MethodDelete, "/api/v1/favorites/r-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"removed":false`)

	w = s.do(t, http.MethodGet, "/api/v1/favorites/r-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
