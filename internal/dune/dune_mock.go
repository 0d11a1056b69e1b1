package dune

import (
	"context"

	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/schema"
	"github.com/stretchr/testify/mock"
)

// MockRowFetcher is a mock implementation of RowFetcher for testing.
type MockRowFetcher struct {
	mock.Mock
}

var _ contract.RowFetcher = &MockRowFetcher{} // Compile-time check

// FetchRows implements the RowFetcher interface.
func (m *MockRowFetcher) FetchRows(ctx context.Context, queryID int, limit int) (schema.ResultSet, error) {
	args := m.Called(ctx, queryID, limit)
	rows, _ := args.Get(0).(schema.ResultSet)
	return rows, args.Error(1)
}
