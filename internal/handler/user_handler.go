package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"github.com/indrek777/whtzup-app-sub002/internal/service"
	"github.com/indrek777/whtzup-app-sub002/pkg/utils"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
	production  bool
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator, production bool) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
		production:  production,
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	user, err := h.userService.GetUserByID(*userID)
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(user, "Profile retrieved successfully"))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid request body", "VALIDATION_ERROR"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode(err.Error(), "VALIDATION_ERROR"))
	}

	user, err := h.userService.UpdateProfile(*userID, req)
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(user, "Profile updated successfully"))
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid request body", "VALIDATION_ERROR"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode(err.Error(), "VALIDATION_ERROR"))
	}

	if err := h.userService.ChangePassword(*userID, req); err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(nil, "Password changed successfully"))
}
