package recipe

import (
	"net/http"

	"github.com/Caro-cyber/sistema-iareceita/internal/core/tts"

	"github.com/gin-gonic/gin"
)

// AudioHandler serves GET /get_recipe_audio/:recipe_id.
type AudioHandler struct {
	audio *tts.Service
}

// NewAudioHandler creates the audio handler.
func NewAudioHandler(audio *tts.Service) *AudioHandler {
	return &AudioHandler{
		audio: audio,
	}
}

// HandleGetRecipeAudio synthesizes spoken instructions for a stored recipe
// and returns the URL where the file is served.
func (h *AudioHandler) HandleGetRecipeAudio(c *gin.Context) {
	requestID := ensureRequestID(c)
	recipeID := c.Param("recipe_id")

	ref, err := h.audio.RequestAudio(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audio_url": "/static/" + ref})
}
