package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReader is an in-package mock for testing
type MockReader struct {
	mock.Mock
}

func (m *MockReader) GetTicketType(ctx context.Context, id uuid.UUID) (*TicketType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TicketType), args.Error(1)
}

func (m *MockReader) GetActivePricingRules(ctx context.Context) ([]*DynamicPricingRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*DynamicPricingRule), args.Error(1)
}





func (m *MockReader) ListTicketTypes(ctx context.Context) ([]*TicketType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*TicketType), args.Error(1)
}

func TestGetTicketType_MapsNotFound(t *testing.T) {
	mockReader := new(MockReader)
	service := NewService(mockReader, nil, nil, nil)
	ctx := context.Background()

	id := uuid.New()
	mockReader.On("GetTicketType", ctx, id).Return(nil, ErrNotFound)

	tt, err := service.GetTicketType(ctx, id)

	require.Error(t, err)
	assert.Nil(t, tt)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindNotFound, appErr.Kind)
}

func TestGetTicketType_Found(t *testing.T) {
	mockReader := new(MockReader)
	service := NewService(mockReader, nil, nil, nil)
	ctx := context.Background()

	want := &TicketType{ID: uuid.New(), Name: "Weekly Pass", BasePrice: 25.00, ValidityHours: 168}
	mockReader.On("GetTicketType", ctx, want.ID).Return(want, nil)

	got, err := service.GetTicketType(ctx, want.ID)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetTicketType_WrapsRepositoryFailure(t *testing.T) {
	mockReader := new(MockReader)
	service := NewService(mockReader, nil, nil, nil)
	ctx := context.Background()

	id := uuid.New()
	mockReader.On("GetTicketType", ctx, id).Return(nil, errors.New("connection refused"))

	_, err := service.GetTicketType(ctx, id)

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindInternal, appErr.Kind)
}

func TestUpdateZoneBaseFare_RejectsNegativeFare(t *testing.T) {
	service := NewService(new(MockReader), nil, nil, nil)

	err := service.UpdateZoneBaseFare(context.Background(), uuid.New(), -1.00, "admin", time.Now())

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindValidation, appErr.Kind)
}

func TestListPricingRules_PassesThrough(t *testing.T) {
	mockReader := new(MockReader)
	service := NewService(mockReader, nil, nil, nil)
	ctx := context.Background()

	rules := []*DynamicPricingRule{{ID: uuid.New(), Name: "Morning Peak", Multiplier: 1.25}}
	mockReader.On("GetActivePricingRules", ctx).Return(rules, nil)

	got, err := service.ListPricingRules(ctx)

	require.NoError(t, err)
	assert.Equal(t, rules, got)
}
