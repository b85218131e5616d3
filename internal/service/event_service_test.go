package service

import (
	"errors"
	"testing"
	"time"

	"github.com/indrek777/whtzup-app-sub002/internal/errs"
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MockEventStore is a mock implementation of EventStore.
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Create(event *models.Event) (*models.Event, error) {
	args := m.Called(event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventStore) GetByID(id uint) (*models.Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventStore) List(filter models.EventFilter) ([]models.Event, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventStore) GetUserEvents(userID uint) ([]models.Event, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventStore) Update(event *models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventStore) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockRatingSummaryStore is a mock implementation of RatingSummaryStore.
type MockRatingSummaryStore struct {
	mock.Mock
}

func (m *MockRatingSummaryStore) GetEventSummary(eventID uint) (*models.RatingSummary, error) {
	args := m.Called(eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RatingSummary), args.Error(1)
}

func newEventService(eventRepo *MockEventStore, ratingRepo *MockRatingSummaryStore) *EventService {
	return NewEventService(eventRepo, ratingRepo, zap.NewNop())
}

func floatPtr(v float64) *float64 {
	return &v
}

// Tallinn kent merkezi etrafında test verisi
var (
	tallinnLat = 59.436962
	tallinnLon = 24.753574

	centerEvent = models.Event{ID: 1, Name: "Old Town Concert", Latitude: 59.436962, Longitude: 24.753574, CreatedBy: uintPtr(7)}
	tartuEvent  = models.Event{ID: 2, Name: "Tartu Fair", Latitude: 58.377983, Longitude: 26.729038, CreatedBy: uintPtr(7)}
	remoteOwned = models.Event{ID: 3, Name: "Singapore Meetup", Latitude: 1.352083, Longitude: 103.819836, CreatedBy: uintPtr(42)}
)

func TestListEvents_NoGeoFilterReturnsAll(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	all := []models.Event{centerEvent, tartuEvent, remoteOwned}
	eventRepo.On("List", mock.Anything).Return(all, nil)

	// radius eksik -> mesafe filtresi tamamen atlanır
	events, err := svc.ListEvents(models.EventFilter{
		Latitude:  floatPtr(tallinnLat),
		Longitude: floatPtr(tallinnLon),
	})

	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestListEvents_RadiusFilter(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	all := []models.Event{centerEvent, tartuEvent, remoteOwned}
	eventRepo.On("List", mock.Anything).Return(all, nil)

	events, err := svc.ListEvents(models.EventFilter{
		Latitude:  floatPtr(tallinnLat),
		Longitude: floatPtr(tallinnLon),
		Radius:    floatPtr(10),
	})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint(1), events[0].ID) // tam merkezdeki event, mesafe 0
}

func TestListEvents_OwnEventsOverrideDistance(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	all := []models.Event{centerEvent, tartuEvent, remoteOwned}
	eventRepo.On("List", mock.Anything).Return(all, nil)

	// 5000+ km uzaktaki event, sahibi sorguladığı için dahil
	events, err := svc.ListEvents(models.EventFilter{
		Latitude:  floatPtr(tallinnLat),
		Longitude: floatPtr(tallinnLon),
		Radius:    floatPtr(10),
		UserID:    uintPtr(42),
	})

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint(1), events[0].ID)
	assert.Equal(t, uint(3), events[1].ID)
}

func TestListEvents_RadiusZero(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	all := []models.Event{centerEvent, tartuEvent, remoteOwned}
	eventRepo.On("List", mock.Anything).Return(all, nil)

	// radius 0: anonim çağrıda boş sonuç, mesafe 0 olsa bile
	events, err := svc.ListEvents(models.EventFilter{
		Latitude:  floatPtr(tallinnLat),
		Longitude: floatPtr(tallinnLon),
		Radius:    floatPtr(0),
	})
	require.NoError(t, err)
	assert.Empty(t, events)

	// authenticated çağrıda yalnızca kullanıcının kendi eventleri
	events, err = svc.ListEvents(models.EventFilter{
		Latitude:  floatPtr(tallinnLat),
		Longitude: floatPtr(tallinnLon),
		Radius:    floatPtr(0),
		UserID:    uintPtr(42),
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint(3), events[0].ID)
}

func TestListEvents_AnonymousHasNoOverride(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	all := []models.Event{remoteOwned}
	eventRepo.On("List", mock.Anything).Return(all, nil)

	events, err := svc.ListEvents(models.EventFilter{
		Latitude:  floatPtr(tallinnLat),
		Longitude: floatPtr(tallinnLon),
		Radius:    floatPtr(10),
	})

	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCreateEvent_RequiresCoordinates(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	_, err := svc.CreateEvent(uintPtr(1), models.EventRequest{
		Name:     "No Coordinates",
		Category: "music",
		StartsAt: time.Now(),
	})

	assert.ErrorIs(t, err, errs.ErrValidation)
	eventRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateEvent_RejectsOutOfRangeCoordinates(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	_, err := svc.CreateEvent(uintPtr(1), models.EventRequest{
		Name:      "Bad Coordinates",
		Category:  "music",
		Latitude:  floatPtr(95),
		Longitude: floatPtr(24.75),
		StartsAt:  time.Now(),
	})

	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCreateEvent_Success(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	eventRepo.On("Create", mock.AnythingOfType("*models.Event")).Return(&models.Event{
		ID:        5,
		Name:      "Song Festival",
		Latitude:  59.443574,
		Longitude: 24.802446,
		Category:  "music",
		CreatedBy: uintPtr(9),
		Source:    models.SourceUser,
	}, nil)

	created, err := svc.CreateEvent(uintPtr(9), models.EventRequest{
		Name:      "Song Festival",
		Category:  "music",
		Latitude:  floatPtr(59.443574),
		Longitude: floatPtr(24.802446),
		StartsAt:  time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, uint(5), created.ID)
	assert.Equal(t, models.SourceUser, created.Source)

	captured := eventRepo.Calls[0].Arguments.Get(0).(*models.Event)
	assert.Equal(t, 59.443574, captured.Latitude)
	assert.Equal(t, 24.802446, captured.Longitude)
	assert.Equal(t, uintPtr(9), captured.CreatedBy)
}

func TestGetEvent_RoundTripAfterCreate(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	stored := models.Event{
		ID:        5,
		Name:      "Song Festival",
		Latitude:  59.443574,
		Longitude: 24.802446,
		Category:  "music",
		CreatedBy: uintPtr(9),
		Source:    models.SourceUser,
	}
	eventRepo.On("GetByID", uint(5)).Return(&stored, nil)
	ratingRepo.On("GetEventSummary", uint(5)).Return(&models.RatingSummary{}, nil)

	got, err := svc.GetEvent(5)
	require.NoError(t, err)

	assert.Equal(t, stored, got.Event)
}

func TestGetEvent_RatingSummaryFailureIsBestEffort(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	eventRepo.On("GetByID", uint(1)).Return(&centerEvent, nil)
	ratingRepo.On("GetEventSummary", uint(1)).Return(nil, errors.New("redis: connection refused"))

	// özet alınamasa bile event sıfır rating değerleriyle döner
	got, err := svc.GetEvent(1)

	require.NoError(t, err)
	assert.Equal(t, centerEvent, got.Event)
	assert.Zero(t, got.AverageRating)
	assert.Zero(t, got.RatingCount)
}

func TestGetEvent_NotFound(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	eventRepo.On("GetByID", uint(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetEvent(404)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdateEvent_DeniedForStranger(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	eventRepo.On("GetByID", uint(1)).Return(&centerEvent, nil)

	stranger := &models.Principal{UserID: 99}
	_, err := svc.UpdateEvent(stranger, 1, models.UpdateEventRequest{Name: strPtr("Hijacked")})

	assert.ErrorIs(t, err, errs.ErrAuthorization)
	eventRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestUpdateEvent_PremiumEditsAnyEvent(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	existing := centerEvent
	eventRepo.On("GetByID", uint(1)).Return(&existing, nil)
	eventRepo.On("Update", mock.AnythingOfType("*models.Event")).Return(nil)

	premium := &models.Principal{UserID: 99, Premium: true}
	updated, err := svc.UpdateEvent(premium, 1, models.UpdateEventRequest{Name: strPtr("Renamed")})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestDeleteEvent_OwnerSoftDeletes(t *testing.T) {
	eventRepo := new(MockEventStore)
	ratingRepo := new(MockRatingSummaryStore)
	svc := newEventService(eventRepo, ratingRepo)

	existing := centerEvent
	eventRepo.On("GetByID", uint(1)).Return(&existing, nil)
	eventRepo.On("Delete", uint(1)).Return(nil)

	owner := &models.Principal{UserID: 7}
	err := svc.DeleteEvent(owner, 1)

	require.NoError(t, err)
	eventRepo.AssertCalled(t, "Delete", uint(1))
}

func strPtr(v string) *string {
	return &v
}
