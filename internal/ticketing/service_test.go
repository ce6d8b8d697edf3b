package ticketing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/transitops/internal/pricing"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is an in-package mock for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertTicket(ctx context.Context, t *Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockRepository) GetTicket(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Ticket), args.Error(1)
}

func (m *MockRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) ListTicketsForPassenger(ctx context.Context, passengerID uuid.UUID, limit, offset int) ([]*Ticket, int64, error) {
	args := m.Called(ctx, passengerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*Ticket), args.Get(1).(int64), args.Error(2)
}

// MockResolver is an in-package mock for testing
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ResolvePrice(ctx context.Context, ticketTypeID uuid.UUID, at time.Time) (*pricing.Quote, error) {
	args := m.Called(ctx, ticketTypeID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}

// fakeTx runs the function directly without a database
type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestIssueTicket_FixesPriceAndWindow(t *testing.T) {
	mockRepo := new(MockRepository)
	mockResolver := new(MockResolver)
	service := NewService(mockRepo, mockResolver, fakeTx{})
	ctx := context.Background()

	passengerID := uuid.New()
	ticketTypeID := uuid.New()
	now := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

	mockResolver.On("ResolvePrice", ctx, ticketTypeID, now).Return(&pricing.Quote{
		TicketTypeID:  ticketTypeID,
		TypeName:      "Day Pass",
		ValidityHours: 24,
		BasePrice:     6.00,
		Multiplier:    1.25,
		FinalPrice:    7.50,
	}, nil)
	mockRepo.On("InsertTicket", ctx, mock.AnythingOfType("*ticketing.Ticket")).Return(nil)

	view, err := service.IssueTicket(ctx, passengerID, ticketTypeID, PaymentMethodCard, now)

	require.NoError(t, err)
	assert.Equal(t, "Day Pass", view.TypeName)
	assert.Equal(t, 7.50, view.Price)
	assert.Equal(t, now, view.ValidFrom)
	assert.Equal(t, now.Add(24*time.Hour), view.ValidTo)
	assert.Equal(t, PaymentStatusCompleted, view.PaymentStatus)
	mockRepo.AssertExpectations(t)
	mockResolver.AssertExpectations(t)
}

func TestIssueTicket_UnknownTicketType(t *testing.T) {
	mockRepo := new(MockRepository)
	mockResolver := new(MockResolver)
	service := NewService(mockRepo, mockResolver, fakeTx{})
	ctx := context.Background()

	ticketTypeID := uuid.New()
	now := time.Now()
	mockResolver.On("ResolvePrice", ctx, ticketTypeID, now).
		Return(nil, common.NewNotFoundError("ticket type not found", nil))

	view, err := service.IssueTicket(ctx, uuid.New(), ticketTypeID, PaymentMethodCash, now)

	require.Error(t, err)
	assert.Nil(t, view)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindNotFound, appErr.Kind)
	mockRepo.AssertNotCalled(t, "InsertTicket", mock.Anything, mock.Anything)
}

func TestIssueTicket_InsertFailure(t *testing.T) {
	mockRepo := new(MockRepository)
	mockResolver := new(MockResolver)
	service := NewService(mockRepo, mockResolver, fakeTx{})
	ctx := context.Background()

	ticketTypeID := uuid.New()
	now := time.Now()
	mockResolver.On("ResolvePrice", ctx, ticketTypeID, now).Return(&pricing.Quote{
		TicketTypeID: ticketTypeID, TypeName: "Single Ride", ValidityHours: 2, FinalPrice: 2.50,
	}, nil)
	mockRepo.On("InsertTicket", ctx, mock.Anything).Return(errors.New("connection reset"))

	_, err := service.IssueTicket(ctx, uuid.New(), ticketTypeID, PaymentMethodWallet, now)

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindInternal, appErr.Kind)
}

func TestSetPaymentStatus_CompletedToRefunded(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockResolver), fakeTx{})
	ctx := context.Background()

	id := uuid.New()
	mockRepo.On("GetTicket", ctx, id).Return(&Ticket{ID: id, PaymentStatus: PaymentStatusCompleted}, nil)
	mockRepo.On("UpdatePaymentStatus", ctx, id, PaymentStatusRefunded).Return(nil)

	err := service.SetPaymentStatus(ctx, id, PaymentStatusRefunded)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestSetPaymentStatus_RefundedIsTerminal(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockResolver), fakeTx{})
	ctx := context.Background()

	id := uuid.New()
	mockRepo.On("GetTicket", ctx, id).Return(&Ticket{ID: id, PaymentStatus: PaymentStatusRefunded}, nil)

	err := service.SetPaymentStatus(ctx, id, PaymentStatusCompleted)

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindInvalidState, appErr.Kind)
	mockRepo.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetPaymentStatus_TicketNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockResolver), fakeTx{})
	ctx := context.Background()

	id := uuid.New()
	mockRepo.On("GetTicket", ctx, id).Return(nil, ErrTicketNotFound)

	err := service.SetPaymentStatus(ctx, id, PaymentStatusFailed)

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindNotFound, appErr.Kind)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(PaymentStatusCompleted, PaymentStatusFailed))
	assert.True(t, CanTransition(PaymentStatusCompleted, PaymentStatusRefunded))
	assert.False(t, CanTransition(PaymentStatusFailed, PaymentStatusCompleted))
	assert.False(t, CanTransition(PaymentStatusRefunded, PaymentStatusCompleted))
	assert.False(t, CanTransition(PaymentStatusCompleted, PaymentStatusCompleted))
}

func TestCoversBoardingAt_InclusiveBounds(t *testing.T) {
	validFrom := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	validTo := validFrom.Add(24 * time.Hour)
	ticket := &Ticket{ValidFrom: validFrom, ValidTo: validTo}

	assert.True(t, ticket.CoversBoardingAt(validFrom))
	assert.True(t, ticket.CoversBoardingAt(validTo))
	assert.True(t, ticket.CoversBoardingAt(validFrom.Add(12*time.Hour)))
	assert.False(t, ticket.CoversBoardingAt(validFrom.Add(-time.Second)))
	assert.False(t, ticket.CoversBoardingAt(validTo.Add(time.Second)))
}
