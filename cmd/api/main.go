package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/indrek777/whtzup-app-sub002/internal/config"
	"github.com/indrek777/whtzup-app-sub002/internal/handler"
	"github.com/indrek777/whtzup-app-sub002/internal/middleware"
	"github.com/indrek777/whtzup-app-sub002/internal/repository"
	"github.com/indrek777/whtzup-app-sub002/internal/service"
	"github.com/indrek777/whtzup-app-sub002/pkg/cache"
	"github.com/indrek777/whtzup-app-sub002/pkg/database"
	"github.com/indrek777/whtzup-app-sub002/pkg/email"
	jwtPkg "github.com/indrek777/whtzup-app-sub002/pkg/jwt"
	"github.com/indrek777/whtzup-app-sub002/pkg/logger"
	"github.com/indrek777/whtzup-app-sub002/pkg/payment"
	"github.com/indrek777/whtzup-app-sub002/pkg/qrcode"
	"github.com/indrek777/whtzup-app-sub002/pkg/storage"
	"github.com/indrek777/whtzup-app-sub002/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load .env (production'da env doğrudan gelir)
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	zapLogger, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Database (migrations + plan seed dahil)
	db := database.NewDatabase(cfg.DatabaseURL)

	// Redis (refresh token store + access token blacklist)
	redisClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("failed to connect to redis", zap.Error(err))
	}
	tokenStore := cache.NewTokenStore(redisClient)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	planRepo := repository.NewPlanRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// Infra services
	tokenMaker := jwtPkg.NewMaker(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	emailService := email.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName, zapLogger)
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL)
	qrService := qrcode.NewQRService(cfg.ShareBaseURL)

	r2Storage, err := storage.NewR2Storage(storage.R2Config{
		AccountID:       cfg.R2.AccountID,
		AccessKeyID:     cfg.R2.AccessKeyID,
		SecretAccessKey: cfg.R2.SecretAccessKey,
		Bucket:          cfg.R2.Bucket,
		PublicURL:       cfg.R2.PublicURL,
	})
	if err != nil {
		zapLogger.Fatal("failed to initialize R2 storage", zap.Error(err))
	}

	// Services
	authService := service.NewAuthService(userRepo, subRepo, tokenMaker, tokenStore, emailService, zapLogger)
	userService := service.NewUserService(userRepo)
	eventService := service.NewEventService(eventRepo, ratingRepo, zapLogger)
	subscriptionService := service.NewSubscriptionService(subRepo, planRepo, purchaseRepo, userRepo, stripeService, emailService, zapLogger)
	ratingService := service.NewRatingService(ratingRepo, eventRepo)

	validator := utils.NewValidator()
	production := cfg.IsProduction()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator, production)
	eventHandler := handler.NewEventHandler(eventService, subscriptionService, r2Storage, qrService, validator, cfg.AllowAnonymousEvents, production)
	userHandler := handler.NewUserHandler(userService, validator, production)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService, cfg.Stripe.WebhookSecret, zapLogger, production)
	ratingHandler := handler.NewRatingHandler(ratingService, validator, production)

	// Router
	app := fiber.New()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Device-ID",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))
	app.Use(middleware.DeviceIDMiddleware())

	requireAuth := middleware.AuthMiddleware(tokenMaker, tokenStore)
	optionalAuth := middleware.OptionalAuthMiddleware(tokenMaker, tokenStore)

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/signin", authHandler.Signin)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/signout", requireAuth, authHandler.Signout)

	// Event listesi publictir; token varsa own-events override devreye girer
	api.Get("/events", optionalAuth, eventHandler.GetEvents)
	api.Get("/events/:id", eventHandler.GetEvent)
	api.Get("/events/:id/qrcode", eventHandler.GetEventQR)
	api.Get("/events/:id/ratings", ratingHandler.GetEventRatings)

	// Anonim event oluşturma deployment'a göre açılır (ALLOW_ANONYMOUS_EVENTS)
	api.Post("/events", optionalAuth, eventHandler.CreateEvent)

	// Stripe webhook (public)
	api.Post("/payments/webhook", subscriptionHandler.HandleStripeWebhook)
	api.Get("/subscriptions/plans", subscriptionHandler.GetPlans)

	// Protected routes
	api.Put("/events/:id", requireAuth, eventHandler.UpdateEvent)
	api.Delete("/events/:id", requireAuth, eventHandler.DeleteEvent)
	api.Post("/events/:id/cover", requireAuth, eventHandler.UploadCover)
	api.Post("/events/:id/ratings", requireAuth, ratingHandler.RateEvent)

	user := api.Group("/user", requireAuth)
	user.Get("/profile", userHandler.GetMyProfile)
	user.Put("/profile", userHandler.UpdateProfile)
	user.Post("/change-password", userHandler.ChangePassword)
	user.Get("/events", eventHandler.GetMyEvents)

	subscriptions := api.Group("/subscriptions", requireAuth)
	subscriptions.Get("/me", subscriptionHandler.GetMySubscription)
	subscriptions.Get("/history", subscriptionHandler.GetPurchaseHistory)
	subscriptions.Post("/checkout/:planId", subscriptionHandler.CreateCheckoutSession)
	subscriptions.Post("/cancel", subscriptionHandler.Cancel)
	subscriptions.Post("/reactivate", subscriptionHandler.Reactivate)

	zapLogger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	log.Fatal(app.Listen(":" + cfg.Port))
}
