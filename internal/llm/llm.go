package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"google.golang.org/genai"
)

// DefaultModel is the default Gemini model used for every completion.
const DefaultModel = "gemini-2.0-flash"

// Options contains per-request completion options.
type Options struct {
	System      string  // System instruction establishing persona and rules
	Temperature float32 // Sampling temperature (0 means provider default)
	MaxTokens   int32   // Maximum number of tokens to generate
	Model       string  // Model override (defaults to the client's model)
}

// Completer is the single-completion contract consumed by the keyword
// extractor, the content analyzer and the survey categorizer. Tests inject
// fakes through it.
type Completer interface {
	GenerateText(ctx context.Context, prompt string, options Options) (string, error)
}

// Client wraps the Gemini SDK behind the Completer contract.
type Client struct {
	modelName string
	gClient   *genai.Client
}

// NewClient creates a new LLM client. The API key is resolved from the
// environment (GEMINI_API_KEY and friends) or viper configuration.
func NewClient(modelName string) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		if apiKey = os.Getenv("GOOGLE_GEMINI_API_KEY"); apiKey == "" {
			if apiKey = os.Getenv("GOOGLE_AI_API_KEY"); apiKey == "" {
				apiKey = viper.GetString("ai.gemini.api_key")
			}
		}
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required. Set GEMINI_API_KEY or ai.gemini.api_key in config")
	}

	if modelName == "" {
		modelName = viper.GetString("ai.gemini.model")
		if modelName == "" {
			modelName = DefaultModel
		}
	}

	ctx := context.Background()
	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		modelName: modelName,
		gClient:   gClient,
	}, nil
}

// GenerateText sends one prompt and returns the model's text completion.
func (c *Client) GenerateText(ctx context.Context, prompt string, options Options) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	modelName := c.modelName
	if options.Model != "" {
		modelName = options.Model
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	var config *genai.GenerateContentConfig
	if options.System != "" || options.Temperature > 0 || options.MaxTokens > 0 {
		config = &genai.GenerateContentConfig{}
		if options.System != "" {
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: options.System}},
			}
		}
		if options.Temperature > 0 {
			config.Temperature = genai.Ptr(options.Temperature)
		}
		if options.MaxTokens > 0 {
			config.MaxOutputTokens = options.MaxTokens
		}
	}

	resp, err := c.gClient.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return strings.TrimSpace(text), nil
}

// GetModelName returns the model this client targets.
func (c *Client) GetModelName() string {
	return c.modelName
}
