package commands_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Freeway-project/Jaddpi-sub001/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewExpireOrdersCommand_ZeroTime(t *testing.T) {
	_, err := commands.NewExpireOrdersCommand(time.Time{})
	require.ErrorIs(t, err, commands.ErrSweepTimeIsRequired)
}

func TestExpireOrdersCommandHandler_Handle_CancelsExpired(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()
	cmd, err := commands.NewExpireOrdersCommand(now)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("FindExpiredNumbers", mock.Anything, now, 500).
		Return([]string{"ORD-A", "ORD-B"}, nil).Once()
	repo.On("CancelIfUnclaimed", mock.Anything, "ORD-A", now).Return(true, nil).Once()
	repo.On("CancelIfUnclaimed", mock.Anything, "ORD-B", now).Return(true, nil).Once()

	uow := new(MockUoW)
	uow.On("OrderRepository").Return(repo).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireOrdersCommandHandler(factory, 0, slog.New(slog.DiscardHandler))
	cancelled, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, cancelled)
	repo.AssertExpectations(t)
}

// An order claimed between the candidate scan and the conditional cancel is
// skipped without failing the sweep.
func TestExpireOrdersCommandHandler_Handle_SkipsConcurrentlyClaimed(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()
	cmd, err := commands.NewExpireOrdersCommand(now)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("FindExpiredNumbers", mock.Anything, now, 500).
		Return([]string{"ORD-A", "ORD-B", "ORD-C"}, nil).Once()
	repo.On("CancelIfUnclaimed", mock.Anything, "ORD-A", now).Return(true, nil).Once()
	repo.On("CancelIfUnclaimed", mock.Anything, "ORD-B", now).Return(false, nil).Once()
	repo.On("CancelIfUnclaimed", mock.Anything, "ORD-C", now).Return(true, nil).Once()

	uow := new(MockUoW)
	uow.On("OrderRepository").Return(repo).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireOrdersCommandHandler(factory, 0, slog.New(slog.DiscardHandler))
	cancelled, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, cancelled)
}

// One failing row must not abort the rest of the batch.
func TestExpireOrdersCommandHandler_Handle_ContinuesPastRowError(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()
	cmd, err := commands.NewExpireOrdersCommand(now)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("FindExpiredNumbers", mock.Anything, now, 500).
		Return([]string{"ORD-A", "ORD-B"}, nil).Once()
	repo.On("CancelIfUnclaimed", mock.Anything, "ORD-A", now).
		Return(false, errors.New("connection reset")).Once()
	repo.On("CancelIfUnclaimed", mock.Anything, "ORD-B", now).Return(true, nil).Once()

	uow := new(MockUoW)
	uow.On("OrderRepository").Return(repo).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireOrdersCommandHandler(factory, 0, slog.New(slog.DiscardHandler))
	cancelled, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, cancelled)
	repo.AssertExpectations(t)
}

func TestExpireOrdersCommandHandler_Handle_ScanError(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()
	cmd, err := commands.NewExpireOrdersCommand(now)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("FindExpiredNumbers", mock.Anything, now, 500).
		Return(nil, errors.New("query timeout")).Once()

	uow := new(MockUoW)
	uow.On("OrderRepository").Return(repo).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireOrdersCommandHandler(factory, 0, slog.New(slog.DiscardHandler))
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}
