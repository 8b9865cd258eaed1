package claude

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/parser"
	"billscan/internal/port"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Extractor implements port.PageExtractor using the Anthropic Messages API.
type Extractor struct {
	apiKey          string
	model           string
	endpoint        string
	temperature     float64
	maxOutputTokens int
	client          *http.Client
}

// NewExtractor creates a Claude-based page extractor from a provider config.
func NewExtractor(cfg *config.ParserProviderConfig) *Extractor {
	return newExtractor(cfg, apiURL)
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API endpoint (for testing).
func NewExtractorWithEndpoint(cfg *config.ParserProviderConfig, endpoint string) *Extractor {
	return newExtractor(cfg, endpoint)
}

func newExtractor(cfg *config.ParserProviderConfig, endpoint string) *Extractor {
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	maxOutputTokens := cfg.MaxOutputTokens
	if maxOutputTokens == 0 {
		maxOutputTokens = 8192
	}
	return &Extractor{
		apiKey:          cfg.APIKey,
		model:           model,
		endpoint:        endpoint,
		temperature:     cfg.Temperature,
		maxOutputTokens: maxOutputTokens,
		client:          &http.Client{Timeout: timeout},
	}
}

func (e *Extractor) Extract(ctx context.Context, input port.PageInput) (*port.PageOutput, error) {
	contentBlocks, err := buildContentBlocks(input)
	if err != nil {
		return nil, fmt.Errorf("building content blocks: %w", err)
	}

	reqBody := map[string]interface{}{
		"model":       e.model,
		"max_tokens":  e.maxOutputTokens,
		"temperature": e.temperature,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": contentBlocks,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", e.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := parser.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, parser.NewRateLimitError("claude", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, e.model)
}

func buildContentBlocks(input port.PageInput) ([]map[string]interface{}, error) {
	switch input.ContentType {
	case "image/jpeg", "image/png":
	default:
		return nil, fmt.Errorf("unsupported content type for extraction: %s", input.ContentType)
	}

	encoded := base64.StdEncoding.EncodeToString(input.ImageBytes)

	return []map[string]interface{}{
		{
			"type": "image",
			"source": map[string]interface{}{
				"type":       "base64",
				"media_type": input.ContentType,
				"data":       encoded,
			},
		},
		{
			"type": "text",
			"text": parser.BuildBillExtractionPrompt(),
		},
	}, nil
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func parseResponse(body []byte, model string) (*port.PageOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	// The Anthropic API reports input and output counts; the total is derived.
	out := &port.PageOutput{
		Usage: domain.TokenUsage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
		ModelUsed: model,
	}

	if len(resp.Content) == 0 {
		return out, fmt.Errorf("%w: empty response from API", domain.ErrMalformedModelOutput)
	}
	if resp.StopReason == "max_tokens" {
		return out, fmt.Errorf("%w: output truncated (stop_reason: max_tokens)", domain.ErrMalformedModelOutput)
	}

	result, err := parser.ParsePageResult(resp.Content[0].Text)
	if err != nil {
		return out, err
	}

	out.Result = result
	return out, nil
}
