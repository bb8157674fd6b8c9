package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	targethandler "treasure_backend/internal/feature/target/transport/handler"
	validationhandler "treasure_backend/internal/feature/validation/transport/handler"
	"treasure_backend/internal/platform/http/handler"
	"treasure_backend/internal/platform/http/middleware"
)

func NewRouter(health *handler.HealthHandler, targets *targethandler.TargetHandler,
	validation *validationhandler.ValidationHandler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())
	r.Use(cors.New(corsConfig(allowedOrigins)))

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	v1 := r.Group("/v1")
	{
		v1.GET("/targets", targets.List)
		v1.GET("/targets/:id", targets.Get)
		// 撮影画像の判定
		v1.POST("/targets/:id/validate", validation.Validate)
	}

	return r
}

// corsConfig は許可オリジンが空または"*"を含む場合、すべてのオリジンを許可します。
func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	cfg.AllowMethods = []string{"GET", "HEAD", "POST", "OPTIONS"}
	cfg.ExposeHeaders = []string{"X-Request-ID"}

	allowAll := len(allowedOrigins) == 0
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cfg
}
