package models

import (
	"time"
)

// Rating: kullanıcı başına event başına tek oy.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   uint      `json:"event_id" gorm:"not null;uniqueIndex:idx_event_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_event_user"`
	Value     int       `json:"value" gorm:"not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RatingRequest struct {
	Value   int    `json:"value" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
