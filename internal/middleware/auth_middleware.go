package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	jwtPkg "github.com/indrek777/whtzup-app-sub002/pkg/jwt"
)

// TokenBlacklist, signout ile iptal edilmiş access tokenları sorgular.
type TokenBlacklist interface {
	IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware, Authorization header'daki access token'ı doğrular ve
// kimliği locals'a yazar. Süresi dolmuş token TOKEN_EXPIRED koduyla döner
// ki client refresh exchange deneyebilsin.
func AuthMiddleware(tokens *jwtPkg.Maker, blacklist TokenBlacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, httpErr := authenticate(c, tokens, blacklist)
		if httpErr != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(*httpErr)
		}

		c.Locals("userID", claims.UserID)
		c.Locals("userEmail", claims.Email)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// OptionalAuthMiddleware, geçerli bir token varsa kimliği locals'a yazar,
// yoksa isteği anonim olarak geçirir. Public event listesi own-events
// override'ı için kullanılır. Bozuk token burada da reddedilir.
func OptionalAuthMiddleware(tokens *jwtPkg.Maker, blacklist TokenBlacklist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}

		claims, httpErr := authenticate(c, tokens, blacklist)
		if httpErr != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(*httpErr)
		}

		c.Locals("userID", claims.UserID)
		c.Locals("userEmail", claims.Email)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// DeviceIDMiddleware, X-Device-ID header'ını korelasyon için locals'a taşır.
// Opak bir client tanımlayıcısıdır, yetki taşımaz.
func DeviceIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("deviceID", c.Get("X-Device-ID"))
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, tokens *jwtPkg.Maker, blacklist TokenBlacklist) (*jwtPkg.Claims, *models.Response) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		resp := models.ErrorResponseWithCode("Authorization header is required", "AUTHENTICATION_ERROR")
		return nil, &resp
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		resp := models.ErrorResponseWithCode("Invalid authorization header format", "AUTHENTICATION_ERROR")
		return nil, &resp
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := tokens.ValidateToken(tokenString, jwtPkg.TokenTypeAccess)
	if err != nil {
		if errors.Is(err, jwtPkg.ErrTokenExpired) {
			resp := models.ErrorResponseWithCode("Access token has expired", "TOKEN_EXPIRED")
			return nil, &resp
		}
		resp := models.ErrorResponseWithCode("Invalid token", "AUTHENTICATION_ERROR")
		return nil, &resp
	}

	if blacklist != nil {
		revoked, err := blacklist.IsAccessTokenBlacklisted(c.Context(), claims.ID)
		if err == nil && revoked {
			resp := models.ErrorResponseWithCode("Token has been revoked", "AUTHENTICATION_ERROR")
			return nil, &resp
		}
	}

	return claims, nil
}
