package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"github.com/indrek777/whtzup-app-sub002/internal/service"
	"github.com/stripe/stripe-go/v74/webhook"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
	webhookSecret       string
	logger              *zap.Logger
	production          bool
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService, webhookSecret string, logger *zap.Logger, production bool) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		webhookSecret:       webhookSecret,
		logger:              logger,
		production:          production,
	}
}

func (h *SubscriptionHandler) GetMySubscription(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	sub, err := h.subscriptionService.GetMySubscription(*userID)
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(sub, "Subscription retrieved successfully"))
}

func (h *SubscriptionHandler) GetPlans(c *fiber.Ctx) error {
	plans, err := h.subscriptionService.GetPlans()
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(plans, "Plans retrieved successfully"))
}

func (h *SubscriptionHandler) GetPurchaseHistory(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	purchases, err := h.subscriptionService.GetPurchaseHistory(*userID)
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(purchases, "Purchase history retrieved successfully"))
}

func (h *SubscriptionHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	planID, err := strconv.ParseUint(c.Params("planId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid plan ID", "VALIDATION_ERROR"))
	}

	userID := currentUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	session, err := h.subscriptionService.CreateCheckoutSession(*userID, uint(planID))
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(session, "Checkout session created"))
}

func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	sub, err := h.subscriptionService.Cancel(*userID)
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(sub, "Subscription cancelled"))
}

func (h *SubscriptionHandler) Reactivate(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	sub, err := h.subscriptionService.Reactivate(*userID)
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(sub, "Subscription reactivated"))
}

func (h *SubscriptionHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	// API version mismatch'i ignore et
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		h.logger.Warn("stripe webhook signature verification failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Webhook verification failed", "VALIDATION_ERROR"))
	}

	if err := h.subscriptionService.HandleStripeWebhook(&event); err != nil {
		h.logger.Error("stripe webhook processing failed", zap.String("type", string(event.Type)), zap.Error(err))
		return respondError(c, err, h.production)
	}

	return c.SendStatus(fiber.StatusOK)
}
