package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	t.Run("should map codes to http statuses", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewValidationError("msg")))
		assert.Equal(t, http.StatusNotFound, HTTPStatus(NewNotFoundError("msg")))
		assert.Equal(t, http.StatusNotFound, HTTPStatus(NewContentMissingError("msg")))
		assert.Equal(t, http.StatusInternalServerError, HTTPStatus(NewUpstreamError("msg", nil)))
		assert.Equal(t, http.StatusInternalServerError, HTTPStatus(NewSynthesisError("msg", nil)))
	})

	t.Run("should classify wrapped errors", func(t *testing.T) {
		err := fmt.Errorf("handling request: %w", NewValidationError("entrada inválida"))
		assert.True(t, IsValidationError(err))
		assert.False(t, IsNotFoundError(err))
		assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
		assert.Equal(t, "entrada inválida", UserMessage(err))
	})

	t.Run("should keep the user message separate from the cause", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		err := NewUpstreamError("Erro ao gerar receitas.", cause)

		assert.Equal(t, "Erro ao gerar receitas.", UserMessage(err))
		assert.Equal(t, cause.Error(), err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("should hide unknown errors behind a generic message", func(t *testing.T) {
		err := errors.New("index out of range")
		assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
		assert.Equal(t, "Erro interno do servidor.", UserMessage(err))
	})
}
