package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/indrek777/whtzup-app-sub002/internal/errs"
	"github.com/indrek777/whtzup-app-sub002/internal/models"
)

// respondError, domain hatasını status + stable code ile envelope'a çevirir.
func respondError(c *fiber.Ctx, err error, production bool) error {
	httpErr := errs.MapToHTTP(err, production)
	return c.Status(httpErr.StatusCode).JSON(models.ErrorResponseWithCode(httpErr.Message, httpErr.Code))
}

// currentUserID, auth middleware'inin yazdığı kimliği döner; anonim istekte nil.
func currentUserID(c *fiber.Ctx) *uint {
	if v, ok := c.Locals("userID").(uint); ok {
		return &v
	}
	return nil
}

func currentUserEmail(c *fiber.Ctx) string {
	if v, ok := c.Locals("userEmail").(string); ok {
		return v
	}
	return ""
}

func currentDeviceID(c *fiber.Ctx) string {
	if v, ok := c.Locals("deviceID").(string); ok {
		return v
	}
	return ""
}

// parseFloatQuery, sorgu parametresini parse eder. Sayısal olmayan değer
// hata değildir: filtre yok sayılır (kasıtlı toleranslı davranış).
func parseFloatQuery(c *fiber.Ctx, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseTimeQuery, RFC3339 tarih parametresini parse eder; bozuk değer yok sayılır.
func parseTimeQuery(c *fiber.Ctx, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}
