// Package categorizer implements the categorization service on top of the
// Gemini API (google.golang.org/genai).
package categorizer

import (
	"context"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/agentstation/starlist/pkg/constants"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/logging"
)

// Client sends categorization prompts to Gemini.
type Client struct {
	apiKey  string
	model   string
	baseURL string

	// created on first use
	genaiClient *genai.Client

	mu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithModel selects the Gemini model (constants.DefaultGeminiModel).
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at another API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// New returns a Gemini client. An empty API key is an error matching
// errors.ErrAPIKeyRequired.
func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.NewAuthenticationError("gemini", "api_key",
			"set GEMINI_API_KEY or GOOGLE_API_KEY", errors.ErrAPIKeyRequired)
	}

	c := &Client{apiKey: apiKey, model: constants.DefaultGeminiModel}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the model used for requests.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) client(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.genaiClient != nil {
		return c.genaiClient, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, &errors.ConfigError{
			Component: "gemini",
			Message:   "failed to create client",
			Err:       err,
		}
	}
	c.genaiClient = client
	return client, nil
}

// Categorize sends prompt under the system instruction and returns the text
// of the reply.
func (c *Client) Categorize(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.CategorizeTimeout)
	defer cancel()

	client, err := c.client(ctx)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
	}

	logging.FromContext(ctx).Debug().
		Str("model", c.model).
		Int("prompt_bytes", len(prompt)).
		Msg("requesting categorization")

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.NewTimeoutError("categorize", constants.CategorizeTimeout.String(), err.Error())
		}
		return "", errors.WrapAPI("gemini", 0, err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.NewAPIError("gemini", 0, "empty response")
	}
	return text, nil
}
