package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/roleready/roleready-api/config"
	"github.com/roleready/roleready-api/internal/cache"
	"github.com/roleready/roleready-api/internal/email"
	"github.com/roleready/roleready-api/internal/handlers"
	"github.com/roleready/roleready-api/internal/middleware"
	"github.com/roleready/roleready-api/internal/models"
	"github.com/roleready/roleready-api/internal/repository"
	"github.com/roleready/roleready-api/internal/services"
	"github.com/roleready/roleready-api/pkg/db"
	"github.com/roleready/roleready-api/pkg/httpclient"
	"github.com/roleready/roleready-api/pkg/jwt"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"github.com/roleready/roleready-api/pkg/profiling"
	"github.com/roleready/roleready-api/pkg/recaptcha"
	"github.com/roleready/roleready-api/pkg/storage"
	"github.com/roleready/roleready-api/pkg/tracing"
	"github.com/roleready/roleready-api/pkg/trigger"
)

const defaultBodyLimit = 1 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	}
	if err := logger.Initialize(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting RoleReady API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Cancelled on shutdown; stops the background samplers and limiter cleanup
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	tracerShutdown, err := tracing.Init(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.Start(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Error("Failed to start profiler", zap.Error(err))
		stopProfiler = func() {}
	}
	defer stopProfiler()

	metrics.RecordInfrastructureMetrics(appCtx)

	pool, err := db.NewPool(appCtx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer pool.Close()

	// Migrations run separately: ./migrate -direction up

	var avatars services.AvatarStore = storage.DisabledStore{}
	if cfg.StorageEnabled() {
		avatars = storage.NewS3Client(cfg.Storage)
	} else {
		logger.Warn("Avatar uploads disabled: S3 credentials not configured")
	}

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	skillRepo := repository.NewSkillRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	listingRepo := repository.NewListingRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	roleCache := cache.NewRoleCache(roleRepo, cfg.Cache.RoleTTLSeconds)

	// Email
	emailFactory, err := email.NewFactory(cfg.Server.AppURL)
	if err != nil {
		logger.Fatal("Failed to load email templates", zap.Error(err))
	}
	// A job covers the webhook call plus its retries
	runner := trigger.NewRunner(3 * time.Duration(cfg.Email.TimeoutSeconds) * time.Second)
	mailer := email.NewWebhookMailer(cfg.Email, emailFactory, runner)
	notifier := services.NewNotifier(notificationRepo, mailer)

	captcha := recaptcha.NewVerifier(cfg.ReCAPTCHA.SecretKey, httpclient.NewStandardClient(10*time.Second))
	if !captcha.Enabled() {
		logger.Warn("reCAPTCHA disabled: RECAPTCHA_SECRET_KEY not set")
	}
	tokenManager := jwt.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, cfg.Session.SessionTTLHours)

	// Services
	authService := services.NewAuthService(userRepo, tokenManager, captcha, notifier)
	profileService, err := services.NewProfileService(userRepo, roleCache, avatars)
	if err != nil {
		logger.Fatal("Failed to initialize profile service", zap.Error(err))
	}
	mentorService := services.NewMentorService(userRepo, skillRepo, notifier)
	skillService := services.NewSkillService(skillRepo, userRepo, mentorService, notifier)
	validationService := services.NewValidationService(skillRepo, notifier)
	applicationService := services.NewApplicationService(applicationRepo, userRepo, notifier)
	readinessService := services.NewReadinessService(userRepo, skillRepo, roleCache, notifier)
	roleService := services.NewRoleService(roleRepo, roleCache, roleCache)
	listingService := services.NewListingService(listingRepo)
	userAdminService := services.NewUserAdminService(userRepo, mentorService, notifier)
	ticketService := services.NewTicketService(ticketRepo, notifier)
	notificationService := services.NewNotificationService(notificationRepo)
	bulkEmailService := services.NewBulkEmailService(userRepo, notifier)

	// Handlers
	handlers.UseJSONFieldNames()
	frontendLog := logger.NewFileWriter(logCfg, "frontend.log")
	defer frontendLog.Close() //nolint:errcheck

	h := apiHandlers{
		health:        handlers.NewHealthHandler(pool.Ping),
		logs:          handlers.NewLogsHandler(frontendLog),
		auth:          handlers.NewAuthHandler(authService, handlers.CookieSettings{Domain: cfg.Session.CookieDomain, Secure: cfg.Session.CookieSecure}),
		profile:       handlers.NewProfileHandler(profileService),
		skills:        handlers.NewSkillHandler(skillService),
		validations:   handlers.NewValidationHandler(validationService),
		mentors:       handlers.NewMentorHandler(mentorService),
		applications:  handlers.NewApplicationHandler(applicationService),
		readiness:     handlers.NewReadinessHandler(readinessService),
		roles:         handlers.NewRoleHandler(roleService),
		jobs:          handlers.NewListingHandler(listingService, models.KindJob),
		internships:   handlers.NewListingHandler(listingService, models.KindInternship),
		users:         handlers.NewUserAdminHandler(userAdminService),
		tickets:       handlers.NewTicketHandler(ticketService),
		notifications: handlers.NewNotificationHandler(notificationService),
		bulkEmail:     handlers.NewBulkEmailHandler(bulkEmailService),
	}

	// Router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // session cookie
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.BodySizeLimitMiddleware(defaultBodyLimit, routeBodyLimits))
	router.Use(middleware.SessionMiddleware(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure))

	registerRoutes(router, h, rateLimiters{
		general: middleware.NewRateLimiter(appCtx, 50, 100),   // 50 req/sec, burst of 100
		auth:    middleware.NewRateLimiter(appCtx, 0.2, 5),    // 1 req/5s, burst of 5 (credential stuffing)
		mail:    middleware.NewRateLimiter(appCtx, 0.0167, 3), // 1 req/min, burst of 3
	}, userRepo)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Let queued emails finish before the pool closes
	if err := runner.Wait(ctx); err != nil {
		logger.Warn("Background jobs did not finish", zap.Error(err))
	}
	stopApp()

	logger.Info("Server exited")
}
