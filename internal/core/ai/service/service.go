package service

import (
	"context"
	"errors"
	"time"

	"github.com/Caro-cyber/sistema-iareceita/internal/core/ai/cache"
	"github.com/Caro-cyber/sistema-iareceita/internal/pkg/common"

	"go.uber.org/zap"
)

// TextGenerator is the upstream model client. Satisfied by the Gemini
// client.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Service fronts the model client with the response cache. It satisfies the
// recipe package's Generator interface.
type Service struct {
	generator TextGenerator
	cache     *cache.Service
}

// NewService creates the AI service.
func NewService(generator TextGenerator, cacheSvc *cache.Service) *Service {
	return &Service{
		generator: generator,
		cache:     cacheSvc,
	}
}

// Generate returns the model response for the prompt, consulting the cache
// first. Cache failures are logged and ignored; the upstream call is the
// source of truth.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	if s.cache != nil {
		value, err := s.cache.Get(ctx, prompt)
		if err == nil && value != "" {
			common.LogDebug("response cache hit")
			return value, nil
		}
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) && !errors.Is(err, cache.ErrCacheDisabled) {
			common.LogWarn("response cache lookup failed", zap.Error(err))
		}
	}

	start := time.Now()
	response, err := s.generator.Generate(ctx, prompt)
	common.LogAICall(time.Since(start), err, requestIDFrom(ctx))
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, prompt, response); err != nil {
			common.LogWarn("response cache store failed", zap.Error(err))
		}
	}

	return response, nil
}

// Close releases the underlying model client.
func (s *Service) Close() error {
	return s.generator.Close()
}

// Unavailable is a TextGenerator that always fails. Installed when the model
// credentials are missing so startup can proceed and the failure surfaces
// per request, matching the credential warnings at boot.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Generate(ctx context.Context, prompt string) (string, error) {
	return "", errors.New(u.Reason)
}

func (u Unavailable) Close() error {
	return nil
}

type requestIDKey struct{}

// WithRequestID tags the context with the inbound request id for AI call
// logging.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
