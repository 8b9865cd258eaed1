package port

import (
	"context"

	"billscan/internal/domain"
)

// DocumentFetcher abstracts downloading a remote document by URL.
type DocumentFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*domain.FetchedDocument, error)
}
