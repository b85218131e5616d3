package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType, access ve refresh tokenları tip seviyesinde ayırır.
// Refresh token asla access token yerine kabul edilmez.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	// ErrTokenExpired is returned when the signature is valid but the
	// token is past its expiry. Clients can retry via refresh exchange.
	ErrTokenExpired = errors.New("token has expired")
	// ErrInvalidToken covers bad signatures and malformed tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrWrongTokenType is returned when a token of the wrong type is
	// presented, e.g. a refresh token on a protected endpoint.
	ErrWrongTokenType = errors.New("unexpected token type")
)

type Claims struct {
	UserID uint      `json:"user_id"`
	Email  string    `json:"email"`
	Type   TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Maker, imzalı access/refresh token üretir ve doğrular.
type Maker struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewMaker(secret string, accessTTL, refreshTTL time.Duration) *Maker {
	return &Maker{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken issues a short-lived access token for the user.
func (m *Maker) GenerateAccessToken(userID uint, email string) (string, error) {
	return m.generate(userID, email, TokenTypeAccess, m.accessTTL, uuid.New().String())
}

// GenerateRefreshToken issues a refresh token. JTI ayrıca döner,
// sunucu tarafında (redis) saklanıp signout'ta iptal edilir.
func (m *Maker) GenerateRefreshToken(userID uint, email string) (tokenID string, token string, err error) {
	tokenID = uuid.New().String()
	token, err = m.generate(userID, email, TokenTypeRefresh, m.refreshTTL, tokenID)
	return tokenID, token, err
}

func (m *Maker) generate(userID uint, email string, typ TokenType, ttl time.Duration, jti string) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken verifies signature, expiry and token type.
// Süresi dolmuş token için ErrTokenExpired döner ki caller
// imza hatasından ayırt edip refresh deneyebilsin.
func (m *Maker) ValidateToken(tokenString string, expected TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != expected {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

// RefreshTTL, refresh tokenların yaşam süresi (redis TTL için).
func (m *Maker) RefreshTTL() time.Duration {
	return m.refreshTTL
}
