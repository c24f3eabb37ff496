package image

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/infra"
)

const defaultGeminiModel = "gemini-2.5-flash-image"

var (
	// ErrMissingAPIKey indicates that the generator was configured without credentials.
	ErrMissingAPIKey = errors.New("gemini: api key is required")
	// ErrNoImageData is returned when the model answers without an image part.
	ErrNoImageData = errors.New("gemini: no image data found in response")
)

// GeminiOptions controls how the Gemini generator is configured.
type GeminiOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// GeminiGenerator asks a Gemini image-output model for one mockup per call.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	logger *infra.Logger
}

// NewGeminiGenerator builds a generator. An empty API key yields a generator
// whose HasCredentials reports false so the caller can surface the problem
// before starting any batch.
func NewGeminiGenerator(ctx context.Context, opts GeminiOptions) (*GeminiGenerator, error) {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultGeminiModel
	}

	logger := opts.Logger
	if logger == nil {
		l := infra.DiscardLogger()
		logger = &l
	}

	g := &GeminiGenerator{model: model, logger: logger}

	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return g, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	g.client = client
	return g, nil
}

// HasCredentials reports whether an API key was supplied.
func (g *GeminiGenerator) HasCredentials() bool {
	return g != nil && g.client != nil
}

// Name returns the configured model identifier.
func (g *GeminiGenerator) Name() string {
	if g == nil {
		return defaultGeminiModel
	}
	return g.model
}

// Generate sends the prompt and the source artwork and returns the first
// inline image of the response.
func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	if !g.HasCredentials() {
		return nil, ErrMissingAPIKey
	}
	if req.Source.Empty() {
		return nil, domain.ErrEmptySource
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = BuildMockupPrompt(req.Category, req.Description)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(req.Source.Data, normalizeFormat(req.Source.MIME)),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		g.logger.Warn().
			Err(err).
			Str("request_id", req.RequestID).
			Str("model", g.model).
			Msg("gemini: generate content failed")
		return nil, fmt.Errorf("gemini: generate content: %w", err)
	}

	asset, ok := firstInlineImage(resp)
	if !ok {
		return nil, ErrNoImageData
	}

	g.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", g.model).
		Int("bytes", len(asset.Data)).
		Msg("gemini: generated mockup")

	return asset, nil
}

func firstInlineImage(resp *genai.GenerateContentResponse) (*Asset, bool) {
	if resp == nil {
		return nil, false
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			return &Asset{
				MIME: normalizeFormat(part.InlineData.MIMEType),
				Data: part.InlineData.Data,
			}, true
		}
	}
	return nil, false
}

var _ Generator = (*GeminiGenerator)(nil)
