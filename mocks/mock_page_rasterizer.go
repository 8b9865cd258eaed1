package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billscan/internal/domain"
)

// MockPageRasterizer is a mock implementation of port.PageRasterizer.
type MockPageRasterizer struct {
	mock.Mock
}

func (m *MockPageRasterizer) Rasterize(ctx context.Context, data []byte, fileType domain.FileType) ([]domain.PageImage, error) {
	args := m.Called(ctx, data, fileType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PageImage), args.Error(1)
}
