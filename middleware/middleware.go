// middleware/middleware.go

package middleware

import (
	"net/http"
	"time"

	"github.com/KIPRAS-GROUP/KiprasSoon/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Config struct {
	EnableLogger   bool
	AllowedOrigins []string
}

// SetupMiddleware ortak middleware zincirini kurar
func SetupMiddleware(r *gin.Engine, cfg *Config) {
	r.Use(gin.Recovery())

	if cfg.EnableLogger {
		r.Use(GinLogger())
	}

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(CORS(cfg.AllowedOrigins))
	}
}

// CORS site kökeni için izin listesi uygular; form tarayıcıdan gönderildiği
// için preflight istekleri de burada yanıtlanır.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Max-Age", "86400")

		for _, allowed := range allowedOrigins {
			if origin == allowed {
				c.Header("Access-Control-Allow-Origin", origin)
				break
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// GinLogger istek loglama middleware'i
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user-agent", c.Request.UserAgent()),
		}

		if errors := c.Errors.ByType(gin.ErrorTypePrivate).String(); errors != "" {
			fields = append(fields, zap.String("errors", errors))
		}

		logRequestWithLevel(c, fields...)
	}
}

// logRequestWithLevel durum koduna göre log seviyesi seçer
func logRequestWithLevel(c *gin.Context, fields ...zap.Field) {
	switch {
	case c.Writer.Status() >= 500:
		logger.Logger.Error("sunucu hatası", fields...)
	case c.Writer.Status() >= 400:
		logger.Logger.Warn("istemci hatası", fields...)
	default:
		logger.Logger.Info("istek tamamlandı", fields...)
	}
}
