package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/Caro-cyber/sistema-iareceita/internal/infrastructure/config"
	"github.com/Caro-cyber/sistema-iareceita/internal/pkg/common"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Client wraps the Google generative AI SDK with the fixed model
// configuration this service uses.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	config *config.Config
}

// NewClient creates a Gemini client. The model name, sampling parameters and
// safety thresholds come from configuration and stay fixed for the process
// lifetime.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Gemini.Model)
	model.SetTemperature(float32(cfg.Gemini.Temperature))
	model.SetTopP(float32(cfg.Gemini.TopP))
	model.SetTopK(int32(cfg.Gemini.TopK))
	model.SetMaxOutputTokens(int32(cfg.Gemini.MaxOutputTokens))
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockMediumAndAbove},
	}

	common.LogInfo("gemini client initialized",
		zap.String("model", cfg.Gemini.Model),
		zap.String("api_key", config.MaskAPIKey(cfg.Gemini.APIKey)),
	)

	return &Client{
		client: client,
		model:  model,
		config: cfg,
	}, nil
}

// Generate sends the prompt to the model and returns the concatenated text
// parts of the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.config.Gemini.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Gemini.Timeout)
		defer cancel()
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates in gemini response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("empty content in gemini response")
	}

	return sb.String(), nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.client.Close()
}
