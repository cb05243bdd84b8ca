package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bghomes-backend/internal/shared/middleware"
	"bghomes-backend/internal/shared/response"
	"bghomes-backend/internal/shared/seo"
	"bghomes-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	adminOnly := middleware.AdminAuth(c.JWTManager)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		homes := api.Group("/homes")
		{
			homes.GET("", c.HomeHandler.List)
			homes.GET("/map", c.HomeHandler.MapMarkers)
			homes.GET("/:slugOrId", c.HomeHandler.Get)
			homes.POST("", adminOnly, c.HomeHandler.Create)
			homes.POST("/import", adminOnly, c.HomeHandler.Import)
			homes.PUT("/:id", adminOnly, c.HomeHandler.Update)
			homes.DELETE("/:id", adminOnly, c.HomeHandler.Delete)
		}

		api.GET("/tags", c.HomeHandler.Tags)

		calendar := api.Group("/calendar")
		{
			calendar.GET("", c.CalendarHandler.Month)
			calendar.GET("/today", c.CalendarHandler.Today)
		}

		partners := api.Group("/partners")
		{
			partners.GET("", c.PartnerHandler.List)
			partners.POST("", adminOnly, c.PartnerHandler.Create)
			partners.PUT("/:id", adminOnly, c.PartnerHandler.Update)
			partners.DELETE("/:id", adminOnly, c.PartnerHandler.Delete)
		}

		api.POST("/admin/login", adminLoginHandler(c))
	}

	router.GET("/robots.txt", robotsHandler(c))
	router.GET("/sitemap.xml", sitemapHandler(c))

	// Server-rendered pages, when a static directory is configured.
	if dir := c.Config.App.StaticDir; dir != "" {
		fs := http.Dir(dir)
		router.NoRoute(func(ctx *gin.Context) {
			if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
				response.NotFound(ctx, "not found")
				return
			}
			ctx.FileFromFS(ctx.Request.URL.Path, fs)
		})
	}

	return router
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		dbStatus := "ok"
		statusCode := http.StatusOK

		if err := appCtx.DB.HealthCheck(c.Request.Context()); err != nil {
			dbStatus = "error: " + err.Error()
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		cacheStatus := "ok"
		if err := appCtx.Cache.Ping(c.Request.Context()); err != nil {
			cacheStatus = "error: " + err.Error()
		}

		c.JSON(statusCode, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services": gin.H{
				"database": dbStatus,
				"cache":    cacheStatus,
			},
		})
	}
}

// adminLoginHandler checks the panel password against the configured bcrypt
// hash and issues an admin token.
func adminLoginHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Password string `json:"password"`
		}
		if err := c.BindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}

		hash := appCtx.Config.Admin.PasswordHash
		if hash == "" {
			response.Error(c, http.StatusServiceUnavailable, "admin login is not configured")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
			response.Unauthorized(c, "invalid password")
			return
		}

		token, err := appCtx.JWTManager.GenerateAdminToken()
		if err != nil {
			log.Error().Err(err).Msg("failed to sign admin token")
			response.InternalServerError(c, "internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func robotsHandler(appCtx *container.Container) gin.HandlerFunc {
	body := seo.RobotsTXT(appCtx.Config.App.BaseURL)
	return func(c *gin.Context) {
		c.String(http.StatusOK, body)
	}
}

func sitemapHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		const key = "seo:sitemap"

		var body string
		if hit, err := appCtx.Cache.Get(c.Request.Context(), key, &body); err == nil && hit {
			c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(body))
			return
		}

		slugs, err := appCtx.HomeService.PublishedSlugs(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("sitemap generation failed")
			response.InternalServerError(c, "failed to generate sitemap")
			return
		}

		body = seo.SitemapXML(appCtx.Config.App.BaseURL, slugs, time.Now())
		appCtx.Cache.Set(c.Request.Context(), key, body, appCtx.Config.Cache.SitemapTTL)

		c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(body))
	}
}
