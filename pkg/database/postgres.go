package database

import (
	"log"

	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(databaseURL string) *gorm.DB {
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Subscription{},
		&models.SubscriptionPurchase{},
		&models.Plan{},
		&models.Rating{},
	)
	if err != nil {
		return err
	}

	return seedPlans(db)
}

// seedPlans, premium planları ekler (yoksa).
func seedPlans(db *gorm.DB) error {
	plans := []models.Plan{
		{
			Name:         "Premium Monthly",
			Description:  "Edit any event, unlimited radius, priority support",
			PlanType:     "monthly",
			DurationDays: 30,
			Price:        4.99,
			Features:     []string{"edit_any_event", "extended_radius", "priority_support"},
			IsActive:     true,
		},
		{
			Name:         "Premium Yearly",
			Description:  "Edit any event, unlimited radius, priority support, 2 months free",
			PlanType:     "yearly",
			DurationDays: 365,
			Price:        49.99,
			Features:     []string{"edit_any_event", "extended_radius", "priority_support"},
			IsActive:     true,
		},
	}

	for _, plan := range plans {
		var count int64
		db.Model(&models.Plan{}).Where("plan_type = ?", plan.PlanType).Count(&count)
		if count == 0 {
			if err := db.Create(&plan).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
