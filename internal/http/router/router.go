// Package router assembles the Gin engine from the application's modules.
package router

import (
	"net/http"
	"os"
	"time"

	apphttp "aurora_leads_backend/internal/http"
	"aurora_leads_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Served when no landing page file is present on disk.
const fallbackLandingPage = `<!DOCTYPE html>
<html>
<head><title>Aurora Lead Response</title></head>
<body><h1>Aurora Lead Response</h1><p>POST /api/submit-lead to get started.</p></body>
</html>`

// New builds the HTTP engine: global middleware, health and landing routes,
// and every module's routes under /api.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app.Config))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	landing := app.Config.GetLandingPagePath()
	engine.GET("/", func(c *gin.Context) {
		if _, err := os.Stat(landing); err == nil {
			c.File(landing)
			return
		}
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, fallbackLandingPage)
	})

	ctx := &apphttp.RouterContext{
		Engine:            engine,
		API:               engine.Group("/api"),
		SubmitRateLimiter: httpkit.NewSubmitRateLimiter(app.Logger),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("registered module routes", "module", module.Name())
	}

	return engine
}

func corsMiddleware(cfg apphttp.RouterConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", httpkit.HeaderRequestID},
		ExposeHeaders:    []string{httpkit.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	}

	return cors.New(corsCfg)
}
