package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"billscan/internal/domain"
)

// BuildPageResultSchema returns the JSON schema every model response must
// satisfy before a page is accepted. page_no is not required here: the
// rasterizer's page index is authoritative and overwrites whatever the model
// reports.
func BuildPageResultSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"page_no": map[string]any{"type": "string"},
			"page_type": map[string]any{
				"type": "string",
				"enum": []any{
					string(domain.PageTypeBillDetail),
					string(domain.PageTypeFinalBill),
					string(domain.PageTypePharmacy),
				},
			},
			"bill_items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"item_name":     map[string]any{"type": "string"},
						"item_amount":   map[string]any{"type": "number"},
						"item_rate":     map[string]any{"type": "number"},
						"item_quantity": map[string]any{"type": "number"},
					},
					"required": []any{"item_name", "item_amount", "item_rate", "item_quantity"},
				},
			},
		},
		"required": []any{"page_type", "bill_items"},
	}
}

// ParsePageResult turns raw model text into a validated PageResult.
// Models occasionally wrap their output in code fences or prose despite the
// prompt, so the outermost JSON object is extracted before unmarshaling.
// Every failure path wraps domain.ErrMalformedModelOutput.
func ParsePageResult(text string) (*domain.PageResult, error) {
	candidate := extractJSONCandidate(text)
	if candidate == "" {
		return nil, fmt.Errorf("%w: no JSON object in model text (raw: %s)",
			domain.ErrMalformedModelOutput, truncate(text, 200))
	}

	var decoded any
	if err := json.Unmarshal([]byte(candidate), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v (raw: %s)",
			domain.ErrMalformedModelOutput, err, truncate(candidate, 200))
	}

	if err := validatePageResult(decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedModelOutput, err)
	}

	var result domain.PageResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedModelOutput, err)
	}
	return &result, nil
}

// validatePageResult checks a decoded model response against the page-result
// schema.
func validatePageResult(decoded any) error {
	schemaJSON, err := json.Marshal(BuildPageResultSchema())
	if err != nil {
		return fmt.Errorf("marshaling schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("pageresult.json", bytes.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("adding schema resource: %w", err)
	}
	schema, err := compiler.Compile("pageresult.json")
	if err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}

	return schema.Validate(decoded)
}

// extractJSONCandidate strips markdown code fences and returns the outermost
// JSON object in the text, or "" if none is found.
func extractJSONCandidate(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
