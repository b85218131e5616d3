package service

import (
	"errors"
	"fmt"

	"github.com/indrek777/whtzup-app-sub002/internal/errs"
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"gorm.io/gorm"
)

type RatingStore interface {
	Upsert(rating *models.Rating) error
	GetEventRatings(eventID uint) ([]models.Rating, error)
	GetEventSummary(eventID uint) (*models.RatingSummary, error)
}

type RatingService struct {
	ratingRepo RatingStore
	eventRepo  EventStore
}

func NewRatingService(ratingRepo RatingStore, eventRepo EventStore) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		eventRepo:  eventRepo,
	}
}

// RateEvent, kullanıcının event için oyunu kaydeder; tekrar oylama günceller.
func (s *RatingService) RateEvent(userID, eventID uint, req models.RatingRequest) (*models.Rating, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: event", errs.ErrNotFound)
		}
		return nil, err
	}

	rating := &models.Rating{
		EventID: eventID,
		UserID:  userID,
		Value:   req.Value,
		Comment: req.Comment,
	}
	if err := s.ratingRepo.Upsert(rating); err != nil {
		return nil, err
	}

	return rating, nil
}

func (s *RatingService) GetEventRatings(eventID uint) ([]models.Rating, *models.RatingSummary, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: event", errs.ErrNotFound)
		}
		return nil, nil, err
	}

	ratings, err := s.ratingRepo.GetEventRatings(eventID)
	if err != nil {
		return nil, nil, err
	}

	summary, err := s.ratingRepo.GetEventSummary(eventID)
	if err != nil {
		return nil, nil, err
	}

	return ratings, summary, nil
}
