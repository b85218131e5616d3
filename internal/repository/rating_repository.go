package repository

import (
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert, kullanıcının event için mevcut oyunu günceller, yoksa oluşturur.
func (r *RatingRepository) Upsert(rating *models.Rating) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "comment", "updated_at"}),
	}).Create(rating).Error
}

func (r *RatingRepository) GetEventRatings(eventID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Where("event_id = ?", eventID).Order("id DESC").Find(&ratings).Error
	return ratings, err
}

func (r *RatingRepository) GetEventSummary(eventID uint) (*models.RatingSummary, error) {
	var summary models.RatingSummary
	err := r.db.Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0) AS average, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
