package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"github.com/indrek777/whtzup-app-sub002/internal/service"
	jwtPkg "github.com/indrek777/whtzup-app-sub002/pkg/jwt"
	"github.com/indrek777/whtzup-app-sub002/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
	production  bool
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator, production bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
		production:  production,
	}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid request body", "VALIDATION_ERROR"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode(err.Error(), "VALIDATION_ERROR"))
	}

	resp, err := h.authService.Signup(c.Context(), req, currentDeviceID(c))
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, "User registered successfully"))
}

func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var req models.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid request body", "VALIDATION_ERROR"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode(err.Error(), "VALIDATION_ERROR"))
	}

	resp, err := h.authService.Signin(c.Context(), req, currentDeviceID(c))
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(resp, "Signin successful"))
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req models.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid request body", "VALIDATION_ERROR"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode(err.Error(), "VALIDATION_ERROR"))
	}

	resp, err := h.authService.Refresh(c.Context(), req.RefreshToken, currentDeviceID(c))
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(resp, "Token refreshed"))
}

func (h *AuthHandler) Signout(c *fiber.Ctx) error {
	var req models.SignoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid request body", "VALIDATION_ERROR"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode(err.Error(), "VALIDATION_ERROR"))
	}

	claims, ok := c.Locals("claims").(*jwtPkg.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	if err := h.authService.Signout(c.Context(), claims, req.RefreshToken); err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(nil, "Signed out"))
}
