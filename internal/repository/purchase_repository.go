package repository

import (
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"gorm.io/gorm"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(purchase *models.SubscriptionPurchase) error {
	return r.db.Create(purchase).Error
}

func (r *PurchaseRepository) GetBySessionID(sessionID string) (*models.SubscriptionPurchase, error) {
	var purchase models.SubscriptionPurchase
	if err := r.db.Where("stripe_session_id = ?", sessionID).First(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *PurchaseRepository) Update(purchase *models.SubscriptionPurchase) error {
	return r.db.Save(purchase).Error
}

func (r *PurchaseRepository) GetUserPurchases(userID uint) ([]models.SubscriptionPurchase, error) {
	var purchases []models.SubscriptionPurchase
	err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&purchases).Error
	return purchases, err
}
