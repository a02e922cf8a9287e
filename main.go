package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KIPRAS-GROUP/KiprasSoon/config"
	"github.com/KIPRAS-GROUP/KiprasSoon/handlers"
	"github.com/KIPRAS-GROUP/KiprasSoon/logger"
	"github.com/KIPRAS-GROUP/KiprasSoon/middleware"
	"github.com/KIPRAS-GROUP/KiprasSoon/ratelimit"
	"github.com/KIPRAS-GROUP/KiprasSoon/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Yapılandırmanın başlatılması
	cfg, err := config.InitConfig()
	if err != nil {
		logger.Logger.Fatal("yapılandırma başlatılamadı", zap.Error(err))
	}

	// Servislerin başlatılması
	limiter := ratelimit.New(cfg.RateLimitPoints, cfg.RateLimitWindow, cfg.RateLimitBlock)
	verifier := services.NewRecaptchaService(cfg.RecaptchaSecret)
	collector := services.NewClientInfoService(cfg.IPAPIBaseURL)
	mailer := services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.EmailFromName, cfg.EmailFromAddr, cfg.CareersToAddr)

	// Router ayarları
	r := gin.New()
	middleware.SetupMiddleware(r, &middleware.Config{
		EnableLogger:   true,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Endpoint ayarları
	careerHandler := handlers.NewCareerHandler(limiter, verifier, collector, mailer)
	r.GET("/health", handleHealthCheck)
	r.GET("/api/config", handleSiteConfig(cfg))
	r.POST("/api/careers", careerHandler.HandleSubmit)

	// Sunucunun kurulması ve başlatılması
	srv := config.SetupServer(r, cfg)

	handleGracefulShutdown(srv, cfg.ShutdownTimeout)
}

func handleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSiteConfig istemci form bileşeninin ihtiyaç duyduğu açık anahtarı verir
func handleSiteConfig(cfg *config.ServerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"recaptchaSiteKey": cfg.RecaptchaSiteKey,
		})
	}
}

func handleGracefulShutdown(srv *http.Server, timeout time.Duration) {
	// Sunucuyu ayrı goroutine'de başlat
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("sunucu başlatılamadı", zap.Error(err))
		}
	}()

	// Sinyal bekle
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Logger.Info("kapanış başlatılıyor...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("sunucu kapanışında hata oluştu", zap.Error(err))
	}

	logger.Logger.Info("sunucu kapatıldı")
}
