package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/indrek777/whtzup-app-sub002/internal/errs"
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"github.com/indrek777/whtzup-app-sub002/pkg/payment"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/price"
	"github.com/stripe/stripe-go/v74/product"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Purchase durumları
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusFailed    = "failed"
)

type PlanStore interface {
	GetAllActive() ([]models.Plan, error)
	GetByID(id uint) (*models.Plan, error)
}

type PurchaseStore interface {
	Create(purchase *models.SubscriptionPurchase) error
	GetBySessionID(sessionID string) (*models.SubscriptionPurchase, error)
	Update(purchase *models.SubscriptionPurchase) error
	GetUserPurchases(userID uint) ([]models.SubscriptionPurchase, error)
}

type PremiumEmailSender interface {
	SendPremiumActivatedEmail(to, fullName, planName string) error
}

type SubscriptionService struct {
	subRepo       SubscriptionStore
	planRepo      PlanStore
	purchaseRepo  PurchaseStore
	userRepo      UserStore
	stripeService *payment.StripeService
	email         PremiumEmailSender
	logger        *zap.Logger
}

func NewSubscriptionService(subRepo SubscriptionStore, planRepo PlanStore, purchaseRepo PurchaseStore, userRepo UserStore, stripeService *payment.StripeService, email PremiumEmailSender, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		subRepo:       subRepo,
		planRepo:      planRepo,
		purchaseRepo:  purchaseRepo,
		userRepo:      userRepo,
		stripeService: stripeService,
		email:         email,
		logger:        logger,
	}
}

// ResolvePrincipal, authenticated kullanıcı için Principal kurar.
// Premium bayrağı: status premium VE (endDate nil VEYA gelecekte).
// Süresi dolmuş premium = free.
func (s *SubscriptionService) ResolvePrincipal(userID uint, email string) *models.Principal {
	principal := &models.Principal{
		UserID: userID,
		Email:  email,
	}

	sub, err := s.subRepo.GetByUserID(userID)
	if err == nil {
		principal.Premium = sub.IsActivePremium()
	}

	return principal
}

func (s *SubscriptionService) GetMySubscription(userID uint) (*models.Subscription, error) {
	sub, err := s.subRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: subscription", errs.ErrNotFound)
		}
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionService) GetPlans() ([]models.Plan, error) {
	return s.planRepo.GetAllActive()
}

func (s *SubscriptionService) GetPurchaseHistory(userID uint) ([]models.SubscriptionPurchase, error) {
	return s.purchaseRepo.GetUserPurchases(userID)
}

// CreateCheckoutSession, plan için stripe checkout oturumu açar ve
// pending purchase kaydı oluşturur.
func (s *SubscriptionService) CreateCheckoutSession(userID, planID uint) (*models.CheckoutSession, error) {
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: plan", errs.ErrNotFound)
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	// Plan için stripe product + price oluştur
	prod, err := product.New(&stripe.ProductParams{
		Name:        stripe.String(plan.Name),
		Description: stripe.String(plan.Description),
	})
	if err != nil {
		return nil, err
	}

	p, err := price.New(&stripe.PriceParams{
		Product:    stripe.String(prod.ID),
		UnitAmount: stripe.Int64(int64(plan.Price * 100)), // USD to cents
		Currency:   stripe.String(string(stripe.CurrencyUSD)),
	})
	if err != nil {
		return nil, err
	}

	session, err := s.stripeService.CreateCheckoutSession(user.Email, p.ID, map[string]string{
		"user_id": strconv.FormatUint(uint64(userID), 10),
		"plan_id": strconv.FormatUint(uint64(planID), 10),
	})
	if err != nil {
		return nil, err
	}

	purchase := &models.SubscriptionPurchase{
		UserID:          userID,
		PlanID:          planID,
		Price:           plan.Price,
		StripeSessionID: session.ID,
		Status:          PurchaseStatusPending,
	}
	if err := s.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}

	return &models.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}

// HandleStripeWebhook, checkout sonucunu aboneliğe işler.
func (s *SubscriptionService) HandleStripeWebhook(event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}
		return s.activatePremium(session.ID)

	case "checkout.session.expired", "checkout.session.async_payment_failed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}

		purchase, err := s.purchaseRepo.GetBySessionID(session.ID)
		if err != nil {
			return err
		}
		purchase.Status = PurchaseStatusFailed
		return s.purchaseRepo.Update(purchase)

	default:
		return nil
	}
}

func (s *SubscriptionService) activatePremium(sessionID string) error {
	purchase, err := s.purchaseRepo.GetBySessionID(sessionID)
	if err != nil {
		return err
	}

	plan, err := s.planRepo.GetByID(purchase.PlanID)
	if err != nil {
		return err
	}

	purchase.Status = PurchaseStatusCompleted
	if err := s.purchaseRepo.Update(purchase); err != nil {
		return err
	}

	sub, err := s.subRepo.GetByUserID(purchase.UserID)
	if err != nil {
		return err
	}

	now := time.Now()
	endDate := now.AddDate(0, 0, plan.DurationDays)
	sub.Status = models.SubscriptionPremium
	sub.PlanType = plan.PlanType
	sub.StartDate = &now
	sub.EndDate = &endDate
	sub.AutoRenew = true
	sub.Features = plan.Features

	if err := s.subRepo.Update(sub); err != nil {
		return err
	}

	s.logger.Info("premium activated",
		zap.Uint("user_id", purchase.UserID),
		zap.String("plan_type", plan.PlanType),
	)

	if s.email != nil {
		if user, err := s.userRepo.GetByID(purchase.UserID); err == nil {
			go func() {
				if err := s.email.SendPremiumActivatedEmail(user.Email, user.FullName, plan.Name); err != nil {
					s.logger.Warn("premium email failed", zap.String("email", user.Email), zap.Error(err))
				}
			}()
		}
	}

	return nil
}

// Cancel, otomatik yenilemeyi kapatır; premium mevcut dönem sonuna kadar sürer.
// EndDate'i olmayan (süresiz) abonelikler hemen free'ye düşer.
func (s *SubscriptionService) Cancel(userID uint) (*models.Subscription, error) {
	sub, err := s.subRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: subscription", errs.ErrNotFound)
		}
		return nil, err
	}

	if sub.Status != models.SubscriptionPremium {
		return nil, fmt.Errorf("%w: no premium subscription to cancel", errs.ErrValidation)
	}

	sub.AutoRenew = false
	if sub.EndDate == nil {
		now := time.Now()
		sub.EndDate = &now
		sub.Status = models.SubscriptionFree
	}

	if err := s.subRepo.Update(sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// Reactivate, henüz süresi dolmamış iptal edilmiş aboneliği yeniden açar.
// Süresi dolmuşsa yeni bir plan satın alınması gerekir.
func (s *SubscriptionService) Reactivate(userID uint) (*models.Subscription, error) {
	sub, err := s.subRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: subscription", errs.ErrNotFound)
		}
		return nil, err
	}

	if !sub.IsActivePremium() {
		return nil, fmt.Errorf("%w: subscription expired, purchase a new plan", errs.ErrValidation)
	}

	sub.AutoRenew = true
	if err := s.subRepo.Update(sub); err != nil {
		return nil, err
	}

	return sub, nil
}
