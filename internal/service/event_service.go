package service

import (
	"errors"
	"fmt"

	"github.com/indrek777/whtzup-app-sub002/internal/errs"
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"github.com/indrek777/whtzup-app-sub002/pkg/geo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventStore, event servisinin ihtiyaç duyduğu repository yüzeyi.
type EventStore interface {
	Create(event *models.Event) (*models.Event, error)
	GetByID(id uint) (*models.Event, error)
	List(filter models.EventFilter) ([]models.Event, error)
	GetUserEvents(userID uint) ([]models.Event, error)
	Update(event *models.Event) error
	Delete(id uint) error
}

type RatingSummaryStore interface {
	GetEventSummary(eventID uint) (*models.RatingSummary, error)
}

type EventService struct {
	eventRepo  EventStore
	ratingRepo RatingSummaryStore
	logger     *zap.Logger
}

func NewEventService(eventRepo EventStore, ratingRepo RatingSummaryStore, logger *zap.Logger) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

func (s *EventService) CreateEvent(createdBy *uint, req models.EventRequest) (*models.Event, error) {
	// validator tagleri nil'i yakalar, aralık kontrolü burada da yapılır
	if req.Latitude == nil || req.Longitude == nil {
		return nil, fmt.Errorf("%w: latitude and longitude are required", errs.ErrValidation)
	}
	if !geo.ValidCoordinates(*req.Latitude, *req.Longitude) {
		return nil, fmt.Errorf("%w: coordinates out of range", errs.ErrValidation)
	}

	event := &models.Event{
		Name:        req.Name,
		Description: req.Description,
		Venue:       req.Venue,
		Address:     req.Address,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Category:    req.Category,
		StartsAt:    req.StartsAt,
		CreatedBy:   createdBy,
		Source:      models.SourceUser,
	}

	created, err := s.eventRepo.Create(event)
	if err != nil {
		return nil, err
	}

	s.logger.Info("event created",
		zap.Uint("event_id", created.ID),
		zap.String("category", created.Category),
	)

	return created, nil
}

// ListEvents, geo dışı filtreleri store'a uygular, sonra yarıçap kuralını işletir:
// event ya merkeze radius km içindedir ya da authenticated kullanıcının kendi
// eventidir (mesafeden bağımsız). Geo parametreleri eksikse mesafe filtresi yok.
// radius <= 0 ise yalnızca kullanıcının kendi eventleri döner.
func (s *EventService) ListEvents(filter models.EventFilter) ([]models.Event, error) {
	events, err := s.eventRepo.List(filter)
	if err != nil {
		return nil, err
	}

	if !filter.HasGeo() {
		return events, nil
	}

	filtered := make([]models.Event, 0, len(events))
	for _, event := range events {
		if filter.UserID != nil && event.CreatedBy != nil && *event.CreatedBy == *filter.UserID {
			filtered = append(filtered, event)
			continue
		}
		if *filter.Radius <= 0 {
			continue
		}
		distance := geo.Distance(*filter.Latitude, *filter.Longitude, event.Latitude, event.Longitude)
		if distance <= *filter.Radius {
			filtered = append(filtered, event)
		}
	}

	return filtered, nil
}

func (s *EventService) GetEvent(eventID uint) (*models.EventResponse, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: event", errs.ErrNotFound)
		}
		return nil, err
	}

	resp := &models.EventResponse{Event: *event}
	// Rating özeti best-effort: hata event'i engellemez ama loglanır
	summary, err := s.ratingRepo.GetEventSummary(eventID)
	if err != nil {
		s.logger.Warn("rating summary lookup failed",
			zap.Uint("event_id", eventID),
			zap.Error(err),
		)
	} else {
		resp.AverageRating = summary.Average
		resp.RatingCount = summary.Count
	}

	return resp, nil
}

func (s *EventService) GetUserEvents(userID uint) ([]models.Event, error) {
	return s.eventRepo.GetUserEvents(userID)
}

func (s *EventService) UpdateEvent(principal *models.Principal, eventID uint, req models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: event", errs.ErrNotFound)
		}
		return nil, err
	}

	if !CanEditEvent(principal, event) {
		return nil, fmt.Errorf("%w: you cannot edit this event", errs.ErrAuthorization)
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.Address != nil {
		event.Address = *req.Address
	}
	if req.Latitude != nil {
		event.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		event.Longitude = *req.Longitude
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}

	if !geo.ValidCoordinates(event.Latitude, event.Longitude) {
		return nil, fmt.Errorf("%w: coordinates out of range", errs.ErrValidation)
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}

	return event, nil
}

// DeleteEvent soft delete uygular; satır deleted_at ile işaretlenir.
func (s *EventService) DeleteEvent(principal *models.Principal, eventID uint) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: event", errs.ErrNotFound)
		}
		return err
	}

	if !CanEditEvent(principal, event) {
		return fmt.Errorf("%w: you cannot delete this event", errs.ErrAuthorization)
	}

	if err := s.eventRepo.Delete(eventID); err != nil {
		return err
	}

	s.logger.Info("event soft-deleted",
		zap.Uint("event_id", eventID),
		zap.Uint("user_id", principal.UserID),
	)

	return nil
}

// SetCoverURL, kapak görseli yüklendikten sonra URL'i kaydeder.
func (s *EventService) SetCoverURL(principal *models.Principal, eventID uint, url string) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: event", errs.ErrNotFound)
		}
		return nil, err
	}

	if !CanEditEvent(principal, event) {
		return nil, fmt.Errorf("%w: you cannot edit this event", errs.ErrAuthorization)
	}

	event.CoverURL = url
	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}

	return event, nil
}
