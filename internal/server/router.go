package server

import (
	"log/slog"
	"net/http"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/handlers"
	"backoffice/internal/middleware"
	"backoffice/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config, api *handlers.API, metrics http.Handler, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 12 * 60 * 60, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("backoffice_session", store))

	r.Use(middleware.InjectUser(api.Accounts))

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	// ПУБЛИЧНЫЕ СТРАНИЦЫ (карьера, блог)
	public := r.Group("/public")
	public.GET("/jobs", api.PublicJobs)
	public.GET("/blog", api.PublicBlog)
	public.GET("/blog/:slug", api.PublicBlogPost)

	// AUTH
	r.POST("/api/auth/login", api.Login)
	r.POST("/api/auth/logout", api.Logout)

	auth := r.Group("/api")
	auth.Use(middleware.RequireAuth())

	admin := middleware.RequireRole(models.RoleAdmin)
	recruiting := middleware.RequireRole(models.RoleAdmin, models.RoleRecruiter)
	editorial := middleware.RequireRole(models.RoleAdmin, models.RoleEditor)

	auth.GET("/auth/me", api.Me)
	auth.GET("/dashboard", api.Dashboard)

	// КАНДИДАТЫ, ВАКАНСИИ, ЗАЯВКИ РАБОТОДАТЕЛЕЙ
	api.Candidates.Register(auth, recruiting)
	auth.PATCH("/candidates/:id/status", recruiting, api.ChangeCandidateStatus)
	auth.GET("/candidates/:id/documents/:kind", recruiting, api.CandidateDocument)
	api.Jobs.Register(auth, recruiting)
	api.EmployerRequests.Register(auth, recruiting)

	// БЛОГ
	api.BlogPosts.Register(auth, editorial)

	// УВЕДОМЛЕНИЯ: отмечать прочитанными может любой оператор, остальное только админ
	api.Notifications.Register(auth, admin)

	// НАСТРОЙКИ: только админ
	api.Settings.Register(auth, admin)

	// АУДИТ
	api.RegisterAuditLog(auth, admin)

	// РЕЖИМ ДАННЫХ И СТОРЫ
	auth.GET("/mode", api.GetMode)
	auth.PUT("/mode", admin, api.SetMode)
	auth.GET("/stores", api.ListStores)
	auth.POST("/stores/:name/refresh", admin, api.RefreshStore)

	// ОПЕРАТОРЫ
	auth.GET("/operators", admin, api.ListOperators)
	auth.POST("/operators", admin, api.CreateOperator)

	return r
}
