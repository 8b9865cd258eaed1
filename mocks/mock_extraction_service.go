package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billscan/internal/domain"
)

// MockExtractionService is a mock implementation of service.ExtractionService.
type MockExtractionService struct {
	mock.Mock
}

func (m *MockExtractionService) ExtractBillData(ctx context.Context, documentURL string) (*domain.ExtractionResponse, error) {
	args := m.Called(ctx, documentURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResponse), args.Error(1)
}
