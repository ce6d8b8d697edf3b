package positions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/transitops/internal/catalog"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is an in-package mock for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertPosition(ctx context.Context, pos *VehiclePosition) error {
	args := m.Called(ctx, pos)
	return args.Error(0)
}

func (m *MockRepository) ListPositions(ctx context.Context, vehicleID uuid.UUID, limit, offset int) ([]VehiclePosition, int64, error) {
	args := m.Called(ctx, vehicleID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]VehiclePosition), args.Get(1).(int64), args.Error(2)
}

// MockCatalog is an in-package mock for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetVehicle(ctx context.Context, id uuid.UUID) (*catalog.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Vehicle), args.Error(1)
}

// MockPublisher is an in-package mock for testing
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishPosition(pos *VehiclePosition) error {
	args := m.Called(pos)
	return args.Error(0)
}

// fakeTx runs the function directly without a database
type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func floatPtr(v float64) *float64 { return &v }

func TestRecordPosition_StoresAndPublishes(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCatalog := new(MockCatalog)
	mockPub := new(MockPublisher)
	service := NewService(mockRepo, mockCatalog, fakeTx{}, mockPub)
	ctx := context.Background()

	vehicleID := uuid.New()
	recordedAt := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)

	mockCatalog.On("GetVehicle", ctx, vehicleID).Return(&catalog.Vehicle{ID: vehicleID}, nil)
	mockRepo.On("InsertPosition", ctx, mock.AnythingOfType("*positions.VehiclePosition")).Return(nil)
	mockPub.On("PublishPosition", mock.AnythingOfType("*positions.VehiclePosition")).Return(nil)

	pos, err := service.RecordPosition(ctx, &RecordPositionRequest{
		VehicleID:  vehicleID,
		Latitude:   floatPtr(52.52),
		Longitude:  floatPtr(13.405),
		SpeedKmh:   31.5,
		Bearing:    270,
		RecordedAt: &recordedAt,
	})

	require.NoError(t, err)
	assert.Equal(t, vehicleID, pos.VehicleID)
	assert.Equal(t, 52.52, pos.Latitude)
	assert.Equal(t, recordedAt, pos.RecordedAt)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestRecordPosition_UnknownVehicle(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCatalog := new(MockCatalog)
	service := NewService(mockRepo, mockCatalog, fakeTx{}, NoopPublisher{})
	ctx := context.Background()

	vehicleID := uuid.New()
	mockCatalog.On("GetVehicle", ctx, vehicleID).Return(nil, catalog.ErrNotFound)

	pos, err := service.RecordPosition(ctx, &RecordPositionRequest{
		VehicleID: vehicleID,
		Latitude:  floatPtr(0),
		Longitude: floatPtr(0),
	})

	require.Error(t, err)
	assert.Nil(t, pos)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindNotFound, appErr.Kind)
	mockRepo.AssertNotCalled(t, "InsertPosition", mock.Anything, mock.Anything)
}

func TestRecordPosition_PublishFailureDoesNotFailRequest(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCatalog := new(MockCatalog)
	mockPub := new(MockPublisher)
	service := NewService(mockRepo, mockCatalog, fakeTx{}, mockPub)
	ctx := context.Background()

	vehicleID := uuid.New()
	mockCatalog.On("GetVehicle", ctx, vehicleID).Return(&catalog.Vehicle{ID: vehicleID}, nil)
	mockRepo.On("InsertPosition", ctx, mock.Anything).Return(nil)
	mockPub.On("PublishPosition", mock.Anything).Return(errors.New("nats unavailable"))

	pos, err := service.RecordPosition(ctx, &RecordPositionRequest{
		VehicleID: vehicleID,
		Latitude:  floatPtr(41.0),
		Longitude: floatPtr(29.0),
	})

	require.NoError(t, err)
	assert.NotNil(t, pos)
}

func TestRecordPosition_DefaultsRecordedAt(t *testing.T) {
	mockRepo := new(MockRepository)
	mockCatalog := new(MockCatalog)
	service := NewService(mockRepo, mockCatalog, fakeTx{}, NoopPublisher{})
	ctx := context.Background()

	vehicleID := uuid.New()
	mockCatalog.On("GetVehicle", ctx, vehicleID).Return(&catalog.Vehicle{ID: vehicleID}, nil)
	mockRepo.On("InsertPosition", ctx, mock.Anything).Return(nil)

	before := time.Now()
	pos, err := service.RecordPosition(ctx, &RecordPositionRequest{
		VehicleID: vehicleID,
		Latitude:  floatPtr(41.0),
		Longitude: floatPtr(29.0),
	})
	after := time.Now()

	require.NoError(t, err)
	assert.False(t, pos.RecordedAt.Before(before))
	assert.False(t, pos.RecordedAt.After(after))
}
