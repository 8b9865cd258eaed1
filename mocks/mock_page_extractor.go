package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billscan/internal/port"
)

// MockPageExtractor is a mock implementation of port.PageExtractor.
type MockPageExtractor struct {
	mock.Mock
}

func (m *MockPageExtractor) Extract(ctx context.Context, input port.PageInput) (*port.PageOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.PageOutput), args.Error(1)
}
