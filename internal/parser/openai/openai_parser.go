package openai

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
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Extractor implements port.PageExtractor using the OpenAI Chat Completions API.
type Extractor struct {
	apiKey          string
	model           string
	endpoint        string
	temperature     float64
	maxOutputTokens int
	client          *http.Client
}

// NewExtractor creates an OpenAI-based page extractor from a provider config.
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
		model = "gpt-4o"
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
		"model":                 e.model,
		"temperature":           e.temperature,
		"max_completion_tokens": e.maxOutputTokens,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": contentBlocks,
			},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
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
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := parser.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, parser.NewRateLimitError("openai", baseErr, retryAfter)
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
	dataURI := fmt.Sprintf("data:%s;base64,%s", input.ContentType, encoded)

	return []map[string]interface{}{
		{
			"type": "image_url",
			"image_url": map[string]interface{}{
				"url": dataURI,
			},
		},
		{
			"type": "text",
			"text": parser.BuildBillExtractionPrompt(),
		},
	}, nil
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func parseResponse(body []byte, model string) (*port.PageOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	out := &port.PageOutput{
		Usage: domain.TokenUsage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		ModelUsed: model,
	}

	if len(resp.Choices) == 0 {
		return out, fmt.Errorf("%w: empty response from API: no choices", domain.ErrMalformedModelOutput)
	}
	if resp.Choices[0].FinishReason == "length" {
		return out, fmt.Errorf("%w: output truncated (finish_reason: length)", domain.ErrMalformedModelOutput)
	}

	result, err := parser.ParsePageResult(resp.Choices[0].Message.Content)
	if err != nil {
		return out, err
	}

	out.Result = result
	return out, nil
}
