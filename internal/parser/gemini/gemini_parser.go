package gemini

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
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// Extractor implements port.PageExtractor using Google's Gemini API.
type Extractor struct {
	apiKey          string
	model           string
	endpoint        string
	temperature     float64
	maxOutputTokens int
	client          *http.Client
}

// NewExtractor creates a Gemini-based page extractor.
func NewExtractor(cfg *config.ParserProviderConfig) *Extractor {
	return newExtractor(cfg, "")
}

// NewExtractorWithEndpoint creates an extractor pointing at a custom API endpoint (for testing).
func NewExtractorWithEndpoint(cfg *config.ParserProviderConfig, endpoint string) *Extractor {
	return newExtractor(cfg, endpoint)
}

func newExtractor(cfg *config.ParserProviderConfig, endpoint string) *Extractor {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	maxOutputTokens := cfg.MaxOutputTokens
	if maxOutputTokens == 0 {
		maxOutputTokens = 8192
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
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
	mimeType, err := toGeminiMimeType(input.ContentType)
	if err != nil {
		return nil, err
	}

	encoded := base64.StdEncoding.EncodeToString(input.ImageBytes)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      encoded,
						},
					},
					{
						"text": parser.BuildBillExtractionPrompt(),
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      e.temperature,
			"responseMimeType": "application/json",
			"maxOutputTokens":  e.maxOutputTokens,
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
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := parser.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, parser.NewRateLimitError("gemini", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, e.model)
}

func toGeminiMimeType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg":
		return "image/jpeg", nil
	case "image/png":
		return "image/png", nil
	default:
		return "", fmt.Errorf("unsupported content type for extraction: %s", contentType)
	}
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func parseResponse(body []byte, model string) (*port.PageOutput, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	out := &port.PageOutput{
		Usage: domain.TokenUsage{
			InputTokens:  resp.UsageMetadata.PromptTokenCount,
			OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  resp.UsageMetadata.TotalTokenCount,
		},
		ModelUsed: model,
	}

	if len(resp.Candidates) == 0 {
		return out, fmt.Errorf("%w: empty response from API: no candidates", domain.ErrMalformedModelOutput)
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return out, fmt.Errorf("%w: empty response from API: no parts", domain.ErrMalformedModelOutput)
	}
	if resp.Candidates[0].FinishReason == "MAX_TOKENS" {
		return out, fmt.Errorf("%w: output truncated (finishReason: MAX_TOKENS)", domain.ErrMalformedModelOutput)
	}

	// Usage is returned alongside the error on parse failure: the tokens
	// were spent whether or not the output was usable.
	result, err := parser.ParsePageResult(resp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return out, err
	}

	out.Result = result
	return out, nil
}
