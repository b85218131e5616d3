package models

import (
	"time"

	"gorm.io/gorm"
)

// Event kaynakları
const (
	SourceUser     = "user"
	SourceMigrated = "migrated"
	SourcePublic   = "public"
)

type Event struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Venue       string         `json:"venue"`
	Address     string         `json:"address"`
	Latitude    float64        `json:"latitude" gorm:"not null"`
	Longitude   float64        `json:"longitude" gorm:"not null"`
	Category    string         `json:"category" gorm:"index"`
	StartsAt    time.Time      `json:"starts_at"`
	CreatedBy   *uint          `json:"created_by" gorm:"index"` // legacy/public eventlerde NULL
	Source      string         `json:"source" gorm:"not null;default:'user'"`
	CoverURL    string         `json:"cover_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type EventRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	Address     string    `json:"address"`
	Latitude    *float64  `json:"latitude" validate:"required,latitude"`
	Longitude   *float64  `json:"longitude" validate:"required,longitude"`
	Category    string    `json:"category" validate:"required"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Venue       *string    `json:"venue"`
	Address     *string    `json:"address"`
	Latitude    *float64   `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64   `json:"longitude" validate:"omitempty,longitude"`
	Category    *string    `json:"category"`
	StartsAt    *time.Time `json:"starts_at"`
}

// EventFilter, GET /events sorgu parametrelerini taşır.
// Mesafe filtresi yalnızca üç geo alanı birden doluysa uygulanır.
type EventFilter struct {
	Latitude  *float64
	Longitude *float64
	Radius    *float64 // km
	Category  string
	Venue     string
	From      *time.Time
	To        *time.Time
	UserID    *uint // authenticated caller, "own events" override için
}

// HasGeo reports whether all three geo parameters were supplied.
func (f *EventFilter) HasGeo() bool {
	return f.Latitude != nil && f.Longitude != nil && f.Radius != nil
}

type EventResponse struct {
	Event
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
}
