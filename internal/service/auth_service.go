package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/indrek777/whtzup-app-sub002/internal/errs"
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"github.com/indrek777/whtzup-app-sub002/pkg/bcrypt"
	jwtPkg "github.com/indrek777/whtzup-app-sub002/pkg/jwt"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserStore interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	Update(user *models.User) error
	UpdatePassword(id uint, hashedPassword string) error
}

type SubscriptionStore interface {
	Create(sub *models.Subscription) error
	GetByUserID(userID uint) (*models.Subscription, error)
	Update(sub *models.Subscription) error
}

// RefreshTokenStore, refresh tokenları JTI ile saklar ve signout'ta
// access tokenları kara listeye alır (redis).
type RefreshTokenStore interface {
	StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email, deviceID string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (userID uint, email string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
	BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

type EmailSender interface {
	SendWelcomeEmail(to, fullName string) error
}

type AuthService struct {
	userRepo   UserStore
	subRepo    SubscriptionStore
	tokens     *jwtPkg.Maker
	tokenStore RefreshTokenStore
	email      EmailSender
	logger     *zap.Logger
}

func NewAuthService(userRepo UserStore, subRepo SubscriptionStore, tokens *jwtPkg.Maker, tokenStore RefreshTokenStore, email EmailSender, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		subRepo:    subRepo,
		tokens:     tokens,
		tokenStore: tokenStore,
		email:      email,
		logger:     logger,
	}
}

func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest, deviceID string) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email already registered", errs.ErrConflict)
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// Her kullanıcı free abonelikle başlar
	if err := s.subRepo.Create(&models.Subscription{
		UserID: user.ID,
		Status: models.SubscriptionFree,
	}); err != nil {
		return nil, err
	}

	if s.email != nil {
		go func() {
			if err := s.email.SendWelcomeEmail(user.Email, user.FullName); err != nil {
				s.logger.Warn("welcome email failed", zap.String("email", user.Email), zap.Error(err))
			}
		}()
	}

	s.logger.Info("user signed up", zap.Uint("user_id", user.ID))

	return s.issueTokenPair(ctx, user, deviceID)
}

func (s *AuthService) Signin(ctx context.Context, req models.SigninRequest, deviceID string) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", errs.ErrAuthentication)
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", errs.ErrAuthentication)
	}

	return s.issueTokenPair(ctx, user, deviceID)
}

// Refresh, geçerli bir refresh token'ı yeni bir token çiftiyle değiştirir.
// Eski token iptal edilir (rotation); süresi dolmuş veya iptal edilmiş
// refresh token tam yeniden kimlik doğrulama gerektirir.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, deviceID string) (*models.AuthResponse, error) {
	claims, err := s.tokens.ValidateToken(refreshToken, jwtPkg.TokenTypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired refresh token", errs.ErrAuthentication)
	}

	// Redis'te yoksa token iptal edilmiş demektir
	if _, _, err := s.tokenStore.GetRefreshToken(ctx, claims.ID); err != nil {
		return nil, fmt.Errorf("%w: refresh token revoked", errs.ErrAuthentication)
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", errs.ErrNotFound)
		}
		return nil, err
	}

	return s.issueTokenPair(ctx, user, deviceID)
}

// Signout, refresh token'ı siler ve access token'ı kalan ömrü boyunca
// kara listeye alır.
func (s *AuthService) Signout(ctx context.Context, accessClaims *jwtPkg.Claims, refreshToken string) error {
	if claims, err := s.tokens.ValidateToken(refreshToken, jwtPkg.TokenTypeRefresh); err == nil {
		if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
			return err
		}
	}

	remaining := time.Until(accessClaims.ExpiresAt.Time)
	if err := s.tokenStore.BlacklistAccessToken(ctx, accessClaims.ID, remaining); err != nil {
		return err
	}

	s.logger.Info("user signed out", zap.Uint("user_id", accessClaims.UserID))
	return nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user *models.User, deviceID string) (*models.AuthResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	tokenID, refreshToken, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, deviceID, s.tokens.RefreshTTL()); err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
	}, nil
}
