package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/indrek777/whtzup-app-sub002/internal/models"
	"github.com/indrek777/whtzup-app-sub002/internal/service"
	"github.com/indrek777/whtzup-app-sub002/pkg/qrcode"
	"github.com/indrek777/whtzup-app-sub002/pkg/storage"
	"github.com/indrek777/whtzup-app-sub002/pkg/utils"
)

type EventHandler struct {
	eventService         *service.EventService
	subscriptionService  *service.SubscriptionService
	storage              *storage.R2Storage
	qrService            *qrcode.QRService
	validator            *utils.Validator
	allowAnonymousEvents bool
	production           bool
}

func NewEventHandler(eventService *service.EventService, subscriptionService *service.SubscriptionService, r2 *storage.R2Storage, qrService *qrcode.QRService, validator *utils.Validator, allowAnonymousEvents, production bool) *EventHandler {
	return &EventHandler{
		eventService:         eventService,
		subscriptionService:  subscriptionService,
		storage:              r2,
		qrService:            qrService,
		validator:            validator,
		allowAnonymousEvents: allowAnonymousEvents,
		production:           production,
	}
}

// GetEvents lists events around a center. Geo parametreleri (latitude,
// longitude, radius) üçü birden verilmemişse ya da sayısal değilse mesafe
// filtresi uygulanmaz; authenticated çağrılarda kullanıcının kendi eventleri
// mesafeden bağımsız dahildir.
func (h *EventHandler) GetEvents(c *fiber.Ctx) error {
	filter := models.EventFilter{
		Latitude:  parseFloatQuery(c, "latitude"),
		Longitude: parseFloatQuery(c, "longitude"),
		Radius:    parseFloatQuery(c, "radius"),
		Category:  c.Query("category"),
		Venue:     c.Query("venue"),
		From:      parseTimeQuery(c, "from"),
		To:        parseTimeQuery(c, "to"),
		UserID:    currentUserID(c),
	}

	events, err := h.eventService.ListEvents(filter)
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(events, "Events retrieved successfully"))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid event ID", "VALIDATION_ERROR"))
	}

	event, err := h.eventService.GetEvent(uint(eventID))
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(event, "Event retrieved successfully"))
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid request body", "VALIDATION_ERROR"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode(err.Error(), "VALIDATION_ERROR"))
	}

	userID := currentUserID(c)
	if userID == nil && !h.allowAnonymousEvents {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	event, err := h.eventService.CreateEvent(userID, req)
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid event ID", "VALIDATION_ERROR"))
	}

	var req models.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid request body", "VALIDATION_ERROR"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode(err.Error(), "VALIDATION_ERROR"))
	}

	principal := h.resolvePrincipal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	event, err := h.eventService.UpdateEvent(principal, uint(eventID), req)
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(event, "Event updated successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid event ID", "VALIDATION_ERROR"))
	}

	principal := h.resolvePrincipal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	if err := h.eventService.DeleteEvent(principal, uint(eventID)); err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(nil, "Event deleted successfully"))
}

func (h *EventHandler) GetMyEvents(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	events, err := h.eventService.GetUserEvents(*userID)
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(events, "Events retrieved successfully"))
}

// UploadCover, multipart "cover" dosyasını R2'ye yükler ve event'e bağlar.
func (h *EventHandler) UploadCover(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid event ID", "VALIDATION_ERROR"))
	}

	principal := h.resolvePrincipal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponseWithCode("User not authenticated", "AUTHENTICATION_ERROR"))
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Cover file is required", "VALIDATION_ERROR"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err, h.production)
	}
	defer file.Close()

	key := utils.CoverObjectKey(uint(eventID))
	url, err := h.storage.Upload(c.Context(), key, file)
	if err != nil {
		return respondError(c, err, h.production)
	}

	event, err := h.eventService.SetCoverURL(principal, uint(eventID), url)
	if err != nil {
		return respondError(c, err, h.production)
	}

	return c.JSON(models.SuccessResponse(event, "Cover uploaded successfully"))
}

// GetEventQR, event paylaşım linki için PNG QR kod döner.
func (h *EventHandler) GetEventQR(c *fiber.Ctx) error {
	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponseWithCode("Invalid event ID", "VALIDATION_ERROR"))
	}

	if _, err := h.eventService.GetEvent(uint(eventID)); err != nil {
		return respondError(c, err, h.production)
	}

	png, err := h.qrService.GenerateQRCode(uint(eventID), 256)
	if err != nil {
		return respondError(c, err, h.production)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

func (h *EventHandler) resolvePrincipal(c *fiber.Ctx) *models.Principal {
	userID := currentUserID(c)
	if userID == nil {
		return nil
	}
	return h.subscriptionService.ResolvePrincipal(*userID, currentUserEmail(c))
}
