package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"github.com/indrek777/whtzup-app-sub002/internal/service"
	"github.com/indrek777/whtzup-app-sub002/pkg/utils"
)

type RatingHandler struct {
	ratingService *service.RatingService
	validator     *utils.Validator
	production    bool
}

func NewRatingHandler(ratingService *service.RatingService, validator *utils.Validator, production bool) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validator:     validator,
		production:    production,
	}
}

// RateEvent, kullanıcının oyu varsa günceller, yoksa oluşturur.
func (h *RatingHandler) RateEvent(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid event ID", "VALIDATION_ERROR"))
	}

	userID := currentUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	var req models.RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid request body", "VALIDATION_ERROR"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode(err.Error(), "VALIDATION_ERROR"))
	}

	rating, err := h.ratingService.RateEvent(*userID, uint(eventID), req)
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(rating, "Rating saved successfully"))
}

func (h *RatingHandler) GetEventRatings(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid event ID", "VALIDATION_ERROR"))
	}

	ratings, summary, err := h.ratingService.GetEventRatings(uint(eventID))
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"ratings": ratings,
		"summary": summary,
	}, "Ratings retrieved successfully"))
}
