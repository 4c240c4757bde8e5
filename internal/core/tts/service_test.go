package tts

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/Caro-cyber/sistema-iareceita/internal/core/recipe"
	"github.com/Caro-cyber/sistema-iareceita/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSynthesizer records inputs and replays canned audio.
type stubSynthesizer struct {
	audio []byte
	err   error
	calls int
	texts []string
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	s.calls++
	s.texts = append(s.texts, text)
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

func newStoreWith(recipes ...recipe.Recipe) *recipe.Store {
	store := recipe.NewStore()
	store.ReplaceAll(recipes)
	return store
}

func TestRequestAudio(t *testing.T) {
	ctx := context.Background()

	t.Run("should fail with not found for unknown id", func(t *testing.T) {
		synth := &stubSynthesizer{audio: []byte("mp3")}
		svc := NewService(synth, newStoreWith(), t.TempDir())

		_, err := svc.RequestAudio(ctx, "recipe_0")

		require.Error(t, err)
		assert.True(t, common.IsNotFoundError(err))
		assert.Equal(t, 0, synth.calls)
	})

	t.Run("should fail with content missing when instructions are empty", func(t *testing.T) {
		synth := &stubSynthesizer{audio: []byte("mp3")}
		store := newStoreWith(recipe.Recipe{ID: "unparsed_recipe_0", RawText: "texto"})
		svc := NewService(synth, store, t.TempDir())

		_, err := svc.RequestAudio(ctx, "unparsed_recipe_0")

		require.Error(t, err)
		assert.True(t, common.IsContentMissingError(err))
		assert.Equal(t, 0, synth.calls)
	})

	t.Run("should write the audio file and return its relative path", func(t *testing.T) {
		staticDir := t.TempDir()
		synth := &stubSynthesizer{audio: []byte("fake mp3 bytes")}
		store := newStoreWith(recipe.Recipe{
			ID:               "recipe_0",
			Name:             "Omelete",
			IngredientsText:  "- Ovos [*]",
			InstructionsText: "1. Bata os ovos.",
		})
		svc := NewService(synth, store, staticDir)

		ref, err := svc.RequestAudio(ctx, "recipe_0")

		require.NoError(t, err)
		assert.Equal(t, "audio/recipe_audio_recipe_0.mp3", ref)
		require.Equal(t, 1, synth.calls)
		assert.Equal(t, "1. Bata os ovos.", synth.texts[0])

		written, err := os.ReadFile(filepath.Join(staticDir, "audio", "recipe_audio_recipe_0.mp3"))
		require.NoError(t, err)
		assert.Equal(t, []byte("fake mp3 bytes"), written)
	})

	t.Run("should derive the same filename on repeated requests", func(t *testing.T) {
		staticDir := t.TempDir()
		synth := &stubSynthesizer{audio: []byte("v1")}
		store := newStoreWith(recipe.Recipe{ID: "recipe_0", Name: "Omelete", InstructionsText: "1. Bata."})
		svc := NewService(synth, store, staticDir)

		first, err := svc.RequestAudio(ctx, "recipe_0")
		require.NoError(t, err)

		synth.audio = []byte("v2")
		second, err := svc.RequestAudio(ctx, "recipe_0")
		require.NoError(t, err)
		assert.Equal(t, first, second)

		// Last write wins; files do not accumulate.
		entries, err := os.ReadDir(filepath.Join(staticDir, "audio"))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
		written, _ := os.ReadFile(filepath.Join(staticDir, "audio", entries[0].Name()))
		assert.Equal(t, []byte("v2"), written)
	})

	t.Run("should replace spaces in the id when deriving the filename", func(t *testing.T) {
		staticDir := t.TempDir()
		synth := &stubSynthesizer{audio: []byte("mp3")}
		store := newStoreWith(recipe.Recipe{ID: "my recipe", InstructionsText: "1. Misture."})
		svc := NewService(synth, store, staticDir)

		ref, err := svc.RequestAudio(ctx, "my recipe")

		require.NoError(t, err)
		assert.Equal(t, "audio/recipe_audio_my_recipe.mp3", ref)
	})

	t.Run("should fail with synthesis error when the synthesizer fails", func(t *testing.T) {
		synth := &stubSynthesizer{err: errors.New("quota exceeded")}
		store := newStoreWith(recipe.Recipe{ID: "recipe_0", InstructionsText: "1. Bata."})
		svc := NewService(synth, store, t.TempDir())

		_, err := svc.RequestAudio(ctx, "recipe_0")

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, common.HTTPStatus(err))
		assert.Equal(t, "Falha ao gerar áudio.", common.UserMessage(err))
	})

	t.Run("should fail when the synthesizer returns no audio", func(t *testing.T) {
		synth := &stubSynthesizer{audio: nil}
		store := newStoreWith(recipe.Recipe{ID: "recipe_0", InstructionsText: "1. Bata."})
		svc := NewService(synth, store, t.TempDir())

		_, err := svc.RequestAudio(ctx, "recipe_0")

		require.Error(t, err)
		assert.Equal(t, "Falha ao gerar áudio.", common.UserMessage(err))
	})
}
