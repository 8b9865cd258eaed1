package port

import (
	"context"

	"billscan/internal/domain"
)

// PageInput carries one page image for extraction.
type PageInput struct {
	ImageBytes  []byte
	ContentType string
}

// PageOutput contains the structured result of one model invocation.
// Usage is populated whenever the provider returned a usage block, even if
// the model text failed validation; the tokens were spent either way.
type PageOutput struct {
	Result    *domain.PageResult
	Usage     domain.TokenUsage
	ModelUsed string
}

// PageExtractor abstracts the vision-model invocation for a single page.
// Implementations must treat provider failures (rate limit, auth, network)
// as ordinary errors, never as process faults.
type PageExtractor interface {
	Extract(ctx context.Context, input PageInput) (*PageOutput, error)
}
