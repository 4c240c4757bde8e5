package recipe

import (
	"context"
	"strings"

	"github.com/Caro-cyber/sistema-iareceita/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator produces free text from a prompt. Implemented by the AI service;
// stubbed in tests.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service orchestrates the recipe generation flow: normalize the ingredient
// input, call the generator, parse the reply, publish the batch to the
// store. It is the only writer of the store; the audio service and the
// follow-up path only read it.
type Service struct {
	generator Generator
	store     *Store
}

// NewService creates the recipe session service.
func NewService(generator Generator, store *Store) *Service {
	return &Service{
		generator: generator,
		store:     store,
	}
}

// Store exposes the store for read-only collaborators.
func (s *Service) Store() *Store {
	return s.store
}

// GenerateRecipes turns free-form ingredient text into a parsed recipe
// batch. The store is cleared up front: a new generation invalidates every
// id from the previous one, even if the external call later fails.
func (s *Service) GenerateRecipes(ctx context.Context, rawIngredients string) ([]Recipe, error) {
	s.store.Clear()

	ingredients := ProcessInput(rawIngredients)
	if len(ingredients) == 0 {
		return nil, common.NewValidationError("Ingredientes inválidos ou vazios após processamento.")
	}

	common.LogInfo("generating recipes",
		zap.Strings("ingredients", ingredients),
	)

	responseText, err := s.generator.Generate(ctx, buildGenerationPrompt(ingredients))
	if err != nil {
		return nil, common.NewUpstreamError("Erro ao gerar receitas.", err)
	}

	recipes := ParseRecipes(responseText)
	s.store.ReplaceAll(recipes)

	common.LogInfo("recipe batch stored",
		zap.Int("recipes", len(recipes)),
	)

	// Degraded entries stay in the result; the caller decides how to
	// surface them.
	return recipes, nil
}

// AnswerFollowUp answers a question about a previously generated recipe,
// using the stored recipe as context.
func (s *Service) AnswerFollowUp(ctx context.Context, id, question string) (string, error) {
	r, err := s.store.Get(id)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(question) == "" {
		return "", common.NewValidationError("Nenhuma pergunta fornecida.")
	}

	answer, err := s.generator.Generate(ctx, buildFollowUpPrompt(r, question))
	if err != nil {
		return "", common.NewUpstreamError("Erro ao processar a pergunta.", err)
	}

	return strings.TrimSpace(answer), nil
}
