package trips

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/richxcame/transitops/internal/catalog"
	"github.com/richxcame/transitops/internal/ticketing"
	"github.com/richxcame/transitops/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is an in-package mock for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertTrip(ctx context.Context, t *TripRecord) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockRepository) GetTrip(ctx context.Context, id uuid.UUID) (*TripRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TripRecord), args.Error(1)
}

func (m *MockRepository) CompleteTrip(ctx context.Context, t *TripRecord) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// MockTicketReader is an in-package mock for testing
type MockTicketReader struct {
	mock.Mock
}

func (m *MockTicketReader) GetTicket(ctx context.Context, id uuid.UUID) (*ticketing.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ticketing.Ticket), args.Error(1)
}

// MockCatalog is an in-package mock for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetTicketType(ctx context.Context, id uuid.UUID) (*catalog.TicketType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.TicketType), args.Error(1)
}

func (m *MockCatalog) GetVehicle(ctx context.Context, id uuid.UUID) (*catalog.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Vehicle), args.Error(1)
}

// fakeTx runs the function directly without a database
type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	repo    *MockRepository
	tickets *MockTicketReader
	catalog *MockCatalog
	service *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:    new(MockRepository),
		tickets: new(MockTicketReader),
		catalog: new(MockCatalog),
	}
	f.service = NewService(f.repo, f.tickets, f.catalog, fakeTx{})
	return f
}

var validFrom = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func dayPassTicket(typeID uuid.UUID) *ticketing.Ticket {
	return &ticketing.Ticket{
		ID:            uuid.New(),
		TicketTypeID:  typeID,
		ValidFrom:     validFrom,
		ValidTo:       validFrom.Add(24 * time.Hour),
		Price:         7.50,
		PaymentStatus: ticketing.PaymentStatusCompleted,
	}
}

func TestRecordBoarding_DayPassChargesNothingPerLeg(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	typeID := uuid.New()
	vehicleID := uuid.New()
	ticket := dayPassTicket(typeID)

	f.tickets.On("GetTicket", ctx, ticket.ID).Return(ticket, nil)
	f.catalog.On("GetVehicle", ctx, vehicleID).Return(&catalog.Vehicle{ID: vehicleID}, nil)
	f.catalog.On("GetTicketType", ctx, typeID).Return(&catalog.TicketType{ID: typeID, Name: "Day Pass"}, nil)
	f.repo.On("InsertTrip", ctx, mock.AnythingOfType("*trips.TripRecord")).Return(nil)

	trip, err := f.service.RecordBoarding(ctx, ticket.ID, vehicleID, nil, validFrom.Add(time.Hour))

	require.NoError(t, err)
	assert.Equal(t, 0.0, trip.FareCharged)
	assert.Nil(t, trip.AlightingTime)
	f.repo.AssertExpectations(t)
}

func TestRecordBoarding_SingleRideChargesIssuedPrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	typeID := uuid.New()
	vehicleID := uuid.New()
	ticket := dayPassTicket(typeID)
	ticket.Price = 2.53

	f.tickets.On("GetTicket", ctx, ticket.ID).Return(ticket, nil)
	f.catalog.On("GetVehicle", ctx, vehicleID).Return(&catalog.Vehicle{ID: vehicleID}, nil)
	f.catalog.On("GetTicketType", ctx, typeID).Return(&catalog.TicketType{ID: typeID, Name: "Single Ride"}, nil)
	f.repo.On("InsertTrip", ctx, mock.Anything).Return(nil)

	trip, err := f.service.RecordBoarding(ctx, ticket.ID, vehicleID, nil, validFrom.Add(time.Hour))

	require.NoError(t, err)
	assert.Equal(t, 2.53, trip.FareCharged)
}

func TestRecordBoarding_AtWindowEndAccepted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	typeID := uuid.New()
	vehicleID := uuid.New()
	ticket := dayPassTicket(typeID)

	f.tickets.On("GetTicket", ctx, ticket.ID).Return(ticket, nil)
	f.catalog.On("GetVehicle", ctx, vehicleID).Return(&catalog.Vehicle{ID: vehicleID}, nil)
	f.catalog.On("GetTicketType", ctx, typeID).Return(&catalog.TicketType{ID: typeID, Name: "Day Pass"}, nil)
	f.repo.On("InsertTrip", ctx, mock.Anything).Return(nil)

	trip, err := f.service.RecordBoarding(ctx, ticket.ID, vehicleID, nil, ticket.ValidTo)

	require.NoError(t, err)
	assert.NotNil(t, trip)
}

func TestRecordBoarding_PastWindowEndRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ticket := dayPassTicket(uuid.New())
	f.tickets.On("GetTicket", ctx, ticket.ID).Return(ticket, nil)

	trip, err := f.service.RecordBoarding(ctx, ticket.ID, uuid.New(), nil, ticket.ValidTo.Add(time.Second))

	require.Error(t, err)
	assert.Nil(t, trip)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindInvalidState, appErr.Kind)
	f.repo.AssertNotCalled(t, "InsertTrip", mock.Anything, mock.Anything)
}

func TestRecordBoarding_UnknownTicket(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	id := uuid.New()
	f.tickets.On("GetTicket", ctx, id).Return(nil, ticketing.ErrTicketNotFound)

	_, err := f.service.RecordBoarding(ctx, id, uuid.New(), nil, validFrom)

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindNotFound, appErr.Kind)
}

func TestRecordBoarding_UnknownVehicle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ticket := dayPassTicket(uuid.New())
	vehicleID := uuid.New()
	f.tickets.On("GetTicket", ctx, ticket.ID).Return(ticket, nil)
	f.catalog.On("GetVehicle", ctx, vehicleID).Return(nil, catalog.ErrNotFound)

	_, err := f.service.RecordBoarding(ctx, ticket.ID, vehicleID, nil, validFrom)

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindNotFound, appErr.Kind)
}

func TestRecordAlighting_CompletesOpenLeg(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tripID := uuid.New()
	open := &TripRecord{ID: tripID, BoardingTime: validFrom}
	f.repo.On("GetTrip", ctx, tripID).Return(open, nil)
	f.repo.On("CompleteTrip", ctx, open).Return(nil)

	alightAt := validFrom.Add(35 * time.Minute)
	trip, err := f.service.RecordAlighting(ctx, tripID, nil, alightAt)

	require.NoError(t, err)
	require.NotNil(t, trip.AlightingTime)
	assert.Equal(t, alightAt, *trip.AlightingTime)
	f.repo.AssertExpectations(t)
}

func TestRecordAlighting_AlreadyCompleted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tripID := uuid.New()
	done := validFrom.Add(time.Hour)
	f.repo.On("GetTrip", ctx, tripID).Return(&TripRecord{
		ID: tripID, BoardingTime: validFrom, AlightingTime: &done,
	}, nil)

	_, err := f.service.RecordAlighting(ctx, tripID, nil, done.Add(time.Hour))

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindInvalidState, appErr.Kind)
	f.repo.AssertNotCalled(t, "CompleteTrip", mock.Anything, mock.Anything)
}

func TestRecordAlighting_BeforeBoardingRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tripID := uuid.New()
	f.repo.On("GetTrip", ctx, tripID).Return(&TripRecord{ID: tripID, BoardingTime: validFrom}, nil)

	_, err := f.service.RecordAlighting(ctx, tripID, nil, validFrom.Add(-time.Minute))

	require.Error(t, err)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.KindValidation, appErr.Kind)
}

func TestLegFare_UnknownTypeChargesPerLeg(t *testing.T) {
	assert.Equal(t, 4.20, LegFare("Ferry Day Ticket", 4.20))
	assert.Equal(t, 0.0, LegFare("Weekly Pass", 25.00))
	assert.Equal(t, 0.0, LegFare("Monthly Pass", 80.00))
	assert.Equal(t, 3.10, LegFare("Airport Express", 3.10))
}
