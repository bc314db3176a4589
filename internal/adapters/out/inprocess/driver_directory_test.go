package inprocess_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fooddelivery/internal/adapters/out/inprocess"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
)

type MockAvailableDriversHandler struct{ mock.Mock }

func (m *MockAvailableDriversHandler) Handle(
	ctx context.Context,
	query queries.ListAvailableDriversQuery,
) ([]queries.AvailableDriverResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.AvailableDriverResponse), args.Error(1)
}

type MockClaimHandler struct{ mock.Mock }

func (m *MockClaimHandler) Handle(ctx context.Context, cmd commands.ClaimDriverCommand) (bool, error) {
	args := m.Called(ctx, cmd)
	return args.Bool(0), args.Error(1)
}

func TestDriverDirectory_ListAvailable(t *testing.T) {
	ctx := t.Context()
	available := &MockAvailableDriversHandler{}
	available.On("Handle", ctx, mock.Anything).
		Return([]queries.AvailableDriverResponse{{DriverID: 5}, {DriverID: 8}}, nil).
		Once()

	ids, err := inprocess.NewDriverDirectory(available, &MockClaimHandler{}).ListAvailable(ctx)

	require.NoError(t, err)
	assert.Equal(t, []int64{5, 8}, ids)
}

func TestDriverDirectory_ListAvailable_Error(t *testing.T) {
	ctx := t.Context()
	boom := errors.New("connection refused")
	available := &MockAvailableDriversHandler{}
	available.On("Handle", ctx, mock.Anything).Return(nil, boom).Once()

	_, err := inprocess.NewDriverDirectory(available, &MockClaimHandler{}).ListAvailable(ctx)

	require.ErrorIs(t, err, boom)
}

func TestDriverDirectory_ClaimAndRelease(t *testing.T) {
	ctx := t.Context()
	claims := &MockClaimHandler{}
	mock.InOrder(
		claims.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ClaimDriverCommand) bool {
			return cmd.DriverID() == 5 && cmd.OrderID() == 42 && !cmd.IsRelease()
		})).Return(true, nil).Once(),
		claims.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ClaimDriverCommand) bool {
			return cmd.DriverID() == 5 && cmd.OrderID() == 42 && cmd.IsRelease()
		})).Return(true, nil).Once(),
	)

	directory := inprocess.NewDriverDirectory(&MockAvailableDriversHandler{}, claims)

	claimed, err := directory.Claim(ctx, 5, 42)
	require.NoError(t, err)
	assert.True(t, claimed)

	require.NoError(t, directory.Release(ctx, 5, 42))
	claims.AssertExpectations(t)
}
