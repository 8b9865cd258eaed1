package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billscan/internal/domain"
)

// MockDocumentFetcher is a mock implementation of port.DocumentFetcher.
type MockDocumentFetcher struct {
	mock.Mock
}

func (m *MockDocumentFetcher) Fetch(ctx context.Context, rawURL string) (*domain.FetchedDocument, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FetchedDocument), args.Error(1)
}
