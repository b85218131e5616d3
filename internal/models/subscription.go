package models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionFree    SubscriptionStatus = "free"
	SubscriptionPremium SubscriptionStatus = "premium"
)

type Subscription struct {
	ID        uint               `json:"id" gorm:"primaryKey"`
	UserID    uint               `json:"user_id" gorm:"uniqueIndex;not null"`
	Status    SubscriptionStatus `json:"status" gorm:"not null;default:'free'"`
	PlanType  string             `json:"plan_type"`
	StartDate *time.Time         `json:"start_date"`
	EndDate   *time.Time         `json:"end_date"` // nil = süresiz
	AutoRenew bool               `json:"auto_renew" gorm:"default:false"`
	Features  []string           `json:"features" gorm:"type:json;serializer:json"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// IsActivePremium reports whether the subscription grants premium rights:
// status premium ve EndDate ya nil ya da gelecekte.
func (s *Subscription) IsActivePremium() bool {
	if s == nil || s.Status != SubscriptionPremium {
		return false
	}
	return s.EndDate == nil || s.EndDate.After(time.Now())
}

// Plan, satın alınabilir premium planları tanımlar.
type Plan struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	PlanType     string    `json:"plan_type" gorm:"unique;not null"` // monthly, yearly
	DurationDays int       `json:"duration_days" gorm:"not null"`
	Price        float64   `json:"price" gorm:"not null"`
	Features     []string  `json:"features" gorm:"type:json;serializer:json"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SubscriptionPurchase, stripe checkout oturumlarını takip eder.
type SubscriptionPurchase struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"not null"`
	PlanID          uint      `json:"plan_id" gorm:"not null"`
	Price           float64   `json:"price" gorm:"not null"`
	StripeSessionID string    `json:"stripe_session_id" gorm:"unique;not null"`
	Status          string    `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CheckoutSession struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}
