package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Caro-cyber/sistema-iareceita/internal/infrastructure/config"
	"github.com/Caro-cyber/sistema-iareceita/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://texttospeech.googleapis.com/v1"

// Client calls the Google Cloud Text-to-Speech REST API.
type Client struct {
	config *config.Config
	client *resty.Client
}

// synthesizeRequest is the text:synthesize request body.
type synthesizeRequest struct {
	Input       synthesisInput `json:"input"`
	Voice       voiceParams    `json:"voice"`
	AudioConfig audioConfig    `json:"audioConfig"`
}

type synthesisInput struct {
	Text string `json:"text"`
}

type voiceParams struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name,omitempty"`
	SsmlGender   string `json:"ssmlGender,omitempty"`
}

type audioConfig struct {
	AudioEncoding string  `json:"audioEncoding"`
	SpeakingRate  float64 `json:"speakingRate,omitempty"`
	Pitch         float64 `json:"pitch"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// NewClient creates the TTS client.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("X-Goog-Api-Key", cfg.TTS.APIKey).
		SetTimeout(cfg.TTS.Timeout)

	return &Client{
		config: cfg,
		client: client,
	}
}

// Synthesize converts instruction text into MP3 bytes using the fixed voice
// and audio parameters: configured language and voice name, neutral gender,
// slightly slowed speaking rate, normal pitch.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := synthesizeRequest{
		Input: synthesisInput{Text: text},
		Voice: voiceParams{
			LanguageCode: c.config.TTS.LanguageCode,
			Name:         c.config.TTS.VoiceName,
			SsmlGender:   "NEUTRAL",
		},
		AudioConfig: audioConfig{
			AudioEncoding: "MP3",
			SpeakingRate:  c.config.TTS.SpeakingRate,
			Pitch:         0,
		},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/text:synthesize")

	if err != nil {
		return nil, fmt.Errorf("failed to send request to tts service: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("tts service returned error (status %d): %s", resp.StatusCode(), resp.String())
	}

	var result synthesizeResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse tts response: %w", err)
	}

	if result.AudioContent == "" {
		return nil, fmt.Errorf("no audio content in tts response")
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio content: %w", err)
	}

	return audio, nil
}

// Voice describes one synthesis voice offered by the service.
type Voice struct {
	Name                   string   `json:"name"`
	LanguageCodes          []string `json:"languageCodes"`
	SsmlGender             string   `json:"ssmlGender"`
	NaturalSampleRateHertz int      `json:"naturalSampleRateHertz"`
}

type listVoicesResponse struct {
	Voices []Voice `json:"voices"`
}

// ListVoices returns the voices available for a language. Used at startup
// for diagnostics when debug logging is on.
func (c *Client) ListVoices(ctx context.Context, languageCode string) ([]Voice, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("languageCode", languageCode).
		Get("/voices")

	if err != nil {
		return nil, fmt.Errorf("failed to list voices: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("tts service returned error (status %d): %s", resp.StatusCode(), resp.String())
	}

	var result listVoicesResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse voices response: %w", err)
	}

	for _, v := range result.Voices {
		common.LogDebug("available voice",
			zap.String("name", v.Name),
			zap.String("gender", v.SsmlGender),
			zap.Int("sample_rate_hz", v.NaturalSampleRateHertz),
		)
	}

	return result.Voices, nil
}
