package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Caro-cyber/sistema-iareceita/internal/core/recipe"
	"github.com/Caro-cyber/sistema-iareceita/internal/pkg/common"

	"go.uber.org/zap"
)

// Synthesizer converts text into audio bytes. Implemented by Client; stubbed
// in tests.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// RecipeLookup is the read-only view of the recipe store this service needs.
type RecipeLookup interface {
	Get(id string) (recipe.Recipe, error)
}

// Service turns a stored recipe's instructions into a servable audio file.
// It only reads the recipe store; the session service owns mutation.
type Service struct {
	synthesizer Synthesizer
	recipes     RecipeLookup
	staticDir   string
}

// NewService creates the audio service. Files are written under
// <staticDir>/audio.
func NewService(synthesizer Synthesizer, recipes RecipeLookup, staticDir string) *Service {
	return &Service{
		synthesizer: synthesizer,
		recipes:     recipes,
		staticDir:   staticDir,
	}
}

// RequestAudio synthesizes the instructions of the recipe with the given id
// and returns a path relative to the static directory. The filename is
// derived from the id alone, so repeated requests for the same recipe
// overwrite the previous file instead of accumulating.
func (s *Service) RequestAudio(ctx context.Context, id string) (string, error) {
	r, err := s.recipes.Get(id)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(r.InstructionsText) == "" {
		return "", common.NewContentMissingError("Instruções não disponíveis para esta receita.")
	}

	stem := fmt.Sprintf("recipe_audio_%s", strings.ReplaceAll(id, " ", "_"))

	audio, err := s.synthesizer.Synthesize(ctx, r.InstructionsText)
	if err != nil {
		return "", common.NewSynthesisError("Falha ao gerar áudio.", err)
	}
	if len(audio) == 0 {
		return "", common.NewSynthesisError("Falha ao gerar áudio.", fmt.Errorf("synthesizer returned no audio"))
	}

	audioDir := filepath.Join(s.staticDir, "audio")
	if err := os.MkdirAll(audioDir, 0755); err != nil {
		return "", common.NewSynthesisError("Falha ao gerar áudio.", fmt.Errorf("failed to create audio directory: %w", err))
	}

	outputPath := filepath.Join(audioDir, stem+".mp3")
	if err := os.WriteFile(outputPath, audio, 0644); err != nil {
		return "", common.NewSynthesisError("Falha ao gerar áudio.", fmt.Errorf("failed to write audio file: %w", err))
	}

	common.LogInfo("audio file written",
		zap.String("recipe_id", id),
		zap.String("path", outputPath),
		zap.Int("bytes", len(audio)),
	)

	// Forward slashes regardless of platform; the result is a URL segment.
	return "audio/" + stem + ".mp3", nil
}
