package recipe

import (
	"net/http"

	aiservice "github.com/Caro-cyber/sistema-iareceita/internal/core/ai/service"
	recipeService "github.com/Caro-cyber/sistema-iareceita/internal/core/recipe"
	"github.com/Caro-cyber/sistema-iareceita/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetRecipesRequest is the body of POST /get_recipes.
type GetRecipesRequest struct {
	Ingredients string `json:"ingredients"`
}

// AskQuestionRequest is the body of POST /ask_question/:recipe_id.
type AskQuestionRequest struct {
	Question string `json:"question"`
}

// Handler serves the recipe generation and follow-up endpoints.
type Handler struct {
	recipes *recipeService.Service
}

// NewHandler creates the recipe handler.
func NewHandler(recipes *recipeService.Service) *Handler {
	return &Handler{
		recipes: recipes,
	}
}

// HandleGetRecipes generates a new recipe batch from free-form ingredient
// text.
func (h *Handler) HandleGetRecipes(c *gin.Context) {
	requestID := ensureRequestID(c)

	var req GetRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Ingredients == "" {
		common.LogWarn("generation request without ingredients",
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum ingrediente fornecido."})
		return
	}

	ctx := aiservice.WithRequestID(c.Request.Context(), requestID)
	recipes, err := h.recipes.GenerateRecipes(ctx, req.Ingredients)
	if err != nil {
		respondError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// HandleAskQuestion answers a follow-up question about a stored recipe.
func (h *Handler) HandleAskQuestion(c *gin.Context) {
	requestID := ensureRequestID(c)
	recipeID := c.Param("recipe_id")

	// An unreadable or absent body degrades to an empty question; the
	// service checks the recipe id first, matching the endpoint contract
	// (404 before 400).
	var req AskQuestionRequest
	_ = c.ShouldBindJSON(&req)

	ctx := aiservice.WithRequestID(c.Request.Context(), requestID)
	answer, err := h.recipes.AnswerFollowUp(ctx, recipeID, req.Question)
	if err != nil {
		respondError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func ensureRequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	id := uuid.New().String()
	c.Header("X-Request-ID", id)
	return id
}

func respondError(c *gin.Context, requestID string, err error) {
	status := common.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		common.LogError("request handling failed",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
		)
	}
	c.JSON(status, gin.H{"error": common.UserMessage(err)})
}
