package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	recipeService "github.com/Caro-cyber/sistema-iareceita/internal/core/recipe"
	"github.com/Caro-cyber/sistema-iareceita/internal/core/tts"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipeResponse = "**Nome da Receita:** Omelete\n**Ingredientes:**\n- Ovos [*]\n**Modo de Preparo:**\n1. Bata os ovos."

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

type fakeSynthesizer struct {
	audio []byte
	err   error
}

func (s *fakeSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

type testEnv struct {
	router    *gin.Engine
	generator *fakeGenerator
	store     *recipeService.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	generator := &fakeGenerator{response: recipeResponse}
	store := recipeService.NewStore()
	recipeSvc := recipeService.NewService(generator, store)
	audioSvc := tts.NewService(&fakeSynthesizer{audio: []byte("mp3")}, store, t.TempDir())

	router := gin.New()
	RegisterRoutes(router, recipeSvc, audioSvc)

	return &testEnv{
		router:    router,
		generator: generator,
		store:     store,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetRecipesEndpoint(t *testing.T) {
	t.Run("should reject request without ingredients", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/get_recipes", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Nenhum ingrediente fornecido.", decodeBody(t, w)["error"])
		assert.Equal(t, 0, env.generator.calls)
	})

	t.Run("should reject ingredients that normalize to nothing", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/get_recipes", map[string]string{"ingredients": " , ,\n"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Ingredientes inválidos ou vazios após processamento.", decodeBody(t, w)["error"])
		assert.Equal(t, 0, env.generator.calls)
	})

	t.Run("should return parsed recipes", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/get_recipes", map[string]string{"ingredients": "Ovos, Queijo"})

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		recipes, ok := body["recipes"].([]interface{})
		require.True(t, ok)
		require.Len(t, recipes, 1)
		first := recipes[0].(map[string]interface{})
		assert.Equal(t, "recipe_0", first["id"])
		assert.Equal(t, "Omelete", first["name"])
	})

	t.Run("should map upstream failure to 500", func(t *testing.T) {
		env := newTestEnv(t)
		env.generator.err = errors.New("model unavailable")

		w := env.do(t, http.MethodPost, "/get_recipes", map[string]string{"ingredients": "ovos"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Erro ao gerar receitas.", decodeBody(t, w)["error"])
	})
}

func TestGetRecipeAudioEndpoint(t *testing.T) {
	t.Run("should return 404 for unknown id", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodGet, "/get_recipe_audio/recipe_0", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Receita não encontrada ou sessão expirada.", decodeBody(t, w)["error"])
	})

	t.Run("should return the audio url for a stored recipe", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/get_recipes", map[string]string{"ingredients": "ovos"})
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodGet, "/get_recipe_audio/recipe_0", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/static/audio/recipe_audio_recipe_0.mp3", decodeBody(t, w)["audio_url"])
	})

	t.Run("should return 404 for a degraded recipe without instructions", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.ReplaceAll([]recipeService.Recipe{{ID: "unparsed_recipe_0", RawText: "texto"}})

		w := env.do(t, http.MethodGet, "/get_recipe_audio/unparsed_recipe_0", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Instruções não disponíveis para esta receita.", decodeBody(t, w)["error"])
	})
}

func TestAskQuestionEndpoint(t *testing.T) {
	t.Run("should return 404 before validating the question", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/ask_question/recipe_0", map[string]string{})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("should reject empty question for a stored recipe", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.ReplaceAll([]recipeService.Recipe{{ID: "recipe_0", Name: "Omelete", InstructionsText: "1. Bata."}})

		w := env.do(t, http.MethodPost, "/ask_question/recipe_0", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Nenhuma pergunta fornecida.", decodeBody(t, w)["error"])
	})

	t.Run("should return the trimmed answer", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.ReplaceAll([]recipeService.Recipe{{ID: "recipe_0", Name: "Omelete", InstructionsText: "1. Bata."}})
		env.generator.response = "  Use fogo baixo.  "

		w := env.do(t, http.MethodPost, "/ask_question/recipe_0", map[string]string{"question": "Qual fogo?"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Use fogo baixo.", decodeBody(t, w)["answer"])
	})
}
