// @title HM Dashboard API
// @version 1.0
// @description API do painel administrativo e do site público do hospital.
// @BasePath /api/v1
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/ahbm/hospital-backend/docs"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	httphandlers "github.com/ahbm/hospital-backend/internal/handlers/http"
	"github.com/ahbm/hospital-backend/internal/handlers/validation"
	"github.com/ahbm/hospital-backend/internal/infrastructure/config"
	"github.com/ahbm/hospital-backend/internal/infrastructure/email"
	"github.com/ahbm/hospital-backend/internal/infrastructure/i18n"
	"github.com/ahbm/hospital-backend/internal/infrastructure/logging"
	"github.com/ahbm/hospital-backend/internal/infrastructure/messaging/rabbitmq"
	"github.com/ahbm/hospital-backend/internal/infrastructure/persistence/postgres"
	"github.com/ahbm/hospital-backend/internal/infrastructure/ratelimit"
	"github.com/ahbm/hospital-backend/internal/infrastructure/realtime"
	"github.com/ahbm/hospital-backend/internal/infrastructure/sanitizer"
	"github.com/ahbm/hospital-backend/internal/infrastructure/security"
	"github.com/ahbm/hospital-backend/internal/infrastructure/storage/s3"
	"github.com/ahbm/hospital-backend/internal/services"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting hm dashboard backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger, cfg.IsProduction())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	defer postgres.Close(db)

	if err := postgres.RunMigrations(context.Background(), db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewDefaultService(cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	if err := validation.Register(); err != nil {
		log.Fatal(err)
	}

	// E-mail: fila quando houver broker, SMTP direto ou apenas log em desenvolvimento
	var mailer ports.Mailer
	switch {
	case cfg.RabbitMQ.URL != "":
		client, err := rabbitmq.NewClient(cfg.RabbitMQ.URL, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			log.Fatal(err)
		}
		defer client.Close()
		mailer = client
	case cfg.SMTP.Host != "":
		mailer = email.NewSMTPMailer(cfg.SMTP, email.NewRenderer(i18nService, cfg.SMTP.From), logger)
	case cfg.IsProduction():
		log.Fatal("no mail transport configured in production")
	default:
		logger.Warn("no mail transport configured, reset links will only be logged")
		mailer = email.NewLogMailer(logger)
	}

	hub := realtime.NewHub(cfg.CORS.Origins(), logger)
	defer hub.Close()

	rateStore, err := ratelimit.NewStore(cfg.Redis.URL)
	if err != nil {
		logger.Error("failed to initialize rate limit store", "error", err)
		log.Fatal(err)
	}
	defer rateStore.Close()

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	articleRepo := postgres.NewArticleRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	hasher := security.NewBcryptHasher(security.PasswordCost)
	sessions := security.NewJWTSessions(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	resetBaseURL := cfg.Server.BaseURL + "/api/v1/admin/auth/reset-password"

	authService := services.NewAuthService(userRepo, hasher, sessions, security.NewResetTokenGenerator(), mailer, logger, resetBaseURL)
	rootService := services.NewRootService(userRepo, uow, hasher, hub, logger)
	userService := services.NewUserService(userRepo, hasher, hub, logger)
	articleService := services.NewArticleService(articleRepo, sanitizer.NewArticleSanitizer(), hub, logger)
	doctorService := services.NewDoctorService(doctorRepo, uow, hub, logger)

	// Inicializar handlers
	cookie := httphandlers.CookieConfig{
		Path:   "/api/v1/admin",
		MaxAge: cfg.JWT.CookieMaxAge(),
		Secure: cfg.IsProduction(),
	}

	var uploadHandler *httphandlers.UploadHandler
	if cfg.S3.Bucket != "" {
		presigner, err := s3.NewPresigner(context.Background(), cfg.S3)
		if err != nil {
			logger.Error("failed to initialize s3 presigner", "error", err)
			log.Fatal(err)
		}
		uploadHandler = httphandlers.NewUploadHandler(presigner)
	}

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterDeps{
		Config: httphandlers.RouterConfig{
			Errors: httphandlers.ErrorConfig{
				BaseURL:     cfg.Server.BaseURL,
				Development: cfg.IsDevelopment(),
			},
			Production:    cfg.IsProduction(),
			CORSOrigins:   cfg.CORS.Origins(),
			BodyLimit:     cfg.Server.BodyLimitBytes,
			RateLimit:     ratelimit.PerHour(cfg.RateLimit.PerHour),
			EnableSwagger: !cfg.IsProduction(),
		},
		Logger:         logger,
		I18n:           i18nService,
		Authenticator:  authService,
		RateLimitStore: rateStore,
		Auth:           httphandlers.NewAuthHandler(authService, rootService, cookie),
		Users:          httphandlers.NewUserHandler(userService, rootService, authService, cookie),
		Articles:       httphandlers.NewArticleHandler(articleService),
		Doctors:        httphandlers.NewDoctorHandler(doctorService),
		Health:         httphandlers.NewHealthHandler(cfg.Env, postgres.Pinger(db)),
		Uploads:        uploadHandler,
		Events:         httphandlers.NewEventsHandler(hub, logger),
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
