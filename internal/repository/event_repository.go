package repository

import (
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *models.Event) (*models.Event, error) {
	if err := r.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List, geo dışındaki filtreleri uygular ve oluşturulma sırasıyla döner.
// Soft delete edilenler gorm tarafından otomatik dışlanır.
// Mesafe + own-events kuralı service katmanında uygulanır.
func (r *EventRepository) List(filter models.EventFilter) ([]models.Event, error) {
	query := r.db.Model(&models.Event{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Venue != "" {
		query = query.Where("venue ILIKE ?", "%"+filter.Venue+"%")
	}
	if filter.From != nil {
		query = query.Where("starts_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("starts_at <= ?", *filter.To)
	}

	var events []models.Event
	err := query.Order("id").Find(&events).Error
	return events, err
}

func (r *EventRepository) GetUserEvents(userID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("created_by = ?", userID).Order("id").Find(&events).Error
	return events, err
}

func (r *EventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete soft delete uygular (deleted_at işaretlenir, satır silinmez).
func (r *EventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}
