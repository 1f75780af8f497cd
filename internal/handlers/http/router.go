package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/handlers/middleware"
	"github.com/ahbm/hospital-backend/internal/infrastructure/i18n"
)

// RouterConfig reúne as opções de borda HTTP
type RouterConfig struct {
	Errors        ErrorConfig
	Production    bool
	CORSOrigins   []string
	BodyLimit     int64
	RateLimit     limiter.Rate
	EnableSwagger bool
}

// RouterDeps são os handlers e serviços de borda; Uploads e Events são opcionais
type RouterDeps struct {
	Config         RouterConfig
	Logger         ports.Logger
	I18n           *i18n.Service
	Authenticator  middleware.Authenticator
	RateLimitStore limiter.Store

	Auth     *AuthHandler
	Users    *UserHandler
	Articles *ArticleHandler
	Doctors  *DoctorHandler
	Health   *HealthHandler
	Uploads  *UploadHandler
	Events   *EventsHandler
}

// NewRouter registra middlewares e rotas da API
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	router := gin.New()

	router.Use(Recovery(cfg.Errors, deps.Logger))
	router.Use(middleware.NewI18nMiddleware(deps.I18n).DetectLanguage())
	router.Use(ErrorHandler(cfg.Errors, deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.SecureHeaders(cfg.Production))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.NoRoute(NoRoute)

	if deps.Health != nil {
		router.GET("/health", deps.Health.Health)
	}
	if cfg.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := router.Group("/api/v1", middleware.BodyLimit(cfg.BodyLimit))

	admin := v1.Group("/admin")
	if deps.RateLimitStore != nil {
		admin.Use(middleware.RateLimit(deps.RateLimitStore, cfg.RateLimit))
	}

	auth := admin.Group("/auth")
	{
		auth.GET("/check-root", deps.Auth.CheckRoot)
		auth.POST("/create-root", deps.Auth.CreateRoot)
		auth.POST("/login", deps.Auth.Login)
		auth.GET("/logout", deps.Auth.Logout)
		auth.POST("/forgot-password", deps.Auth.ForgotPassword)
		auth.PATCH("/reset-password/:token", deps.Auth.ResetPassword)
	}

	protected := admin.Group("", middleware.Authenticate(deps.Authenticator))
	staff := middleware.RequireRole(entities.RoleAdmin, entities.RoleRoot)
	rootOnly := middleware.RequireRole(entities.RoleRoot)

	users := protected.Group("/users")
	{
		users.GET("/me", deps.Users.GetMe)
		users.PATCH("/me", deps.Users.UpdateMe)
		users.DELETE("/me", deps.Users.DeleteMe)
		users.PATCH("/me/password", deps.Users.UpdateMyPassword)

		users.GET("/eligible-for-root", rootOnly, deps.Users.EligibleForRoot)
		users.POST("/transfer-root", rootOnly, deps.Users.TransferRoot)

		users.GET("", staff, deps.Users.ListUsers)
		users.POST("", staff, deps.Users.CreateUser)
		users.GET("/:username", staff, deps.Users.GetUser)
		users.PATCH("/:username", staff, deps.Users.UpdateUser)
		users.PATCH("/:username/active", staff, deps.Users.ToggleUserActive)
		users.DELETE("/:username", rootOnly, deps.Users.DeleteUser)
		users.PATCH("/:username/password", rootOnly, deps.Users.SetUserPassword)
	}

	articles := protected.Group("/articles")
	{
		articles.GET("", deps.Articles.ListArticles)
		articles.POST("", deps.Articles.CreateArticle)
		articles.GET("/:id", deps.Articles.GetArticle)
		articles.PATCH("/:id", deps.Articles.UpdateArticle)
		articles.PATCH("/:id/publish", deps.Articles.TogglePublish)
		articles.DELETE("/:id", staff, deps.Articles.DeleteArticle)
		articles.PATCH("/:id/archive", staff, deps.Articles.ToggleArchive)
	}

	doctors := protected.Group("/doctors", staff)
	{
		doctors.GET("", deps.Doctors.ListDoctors)
		doctors.POST("", deps.Doctors.CreateDoctor)
		doctors.GET("/:id", deps.Doctors.GetDoctor)
		doctors.PATCH("/:id", deps.Doctors.UpdateDoctor)
		doctors.DELETE("/:id", deps.Doctors.DeleteDoctor)
		doctors.PATCH("/:id/visibility", deps.Doctors.ToggleVisibility)
	}

	if deps.Uploads != nil {
		protected.POST("/uploads", deps.Uploads.PresignUpload)
	}
	if deps.Events != nil {
		protected.GET("/events", deps.Events.Stream)
	}

	public := v1.Group("/public")
	{
		public.GET("/articles", deps.Articles.ListPublished)
		public.GET("/articles/:slug", deps.Articles.GetPublishedBySlug)
		public.GET("/doctors", deps.Doctors.ListVisible)
	}

	return router
}
