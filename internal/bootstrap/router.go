package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	httpapi "github.com/aura-blueprint/aura/internal/api/http"
	"github.com/aura-blueprint/aura/internal/api/http/middleware"
	bphttp "github.com/aura-blueprint/aura/internal/blueprint/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Provider    string
	Redis       httpapi.Pinger
	Analyzer    bphttp.Analyzer
	Asker       bphttp.Asker
	Limiter     *rate.Limiter
	Logger      *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	if dep.Logger == nil {
		dep.Logger = zap.L()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(middleware.Metrics())
	r.Use(cors.New(corsConfig()))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Provider, dep.Redis)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(dep.Limiter))

	blueprintHandler := bphttp.New(dep.Analyzer, dep.Asker)
	blueprintHandler.Register(api)

	return r
}

// corsConfig answers browser preflights for any origin.
func corsConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type", "X-Request-Id"},
		ExposeHeaders:   []string{"X-Request-Id"},
		MaxAge:          12 * time.Hour,
	}
}
