package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/KIPRAS-GROUP/KiprasSoon/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

type ServerConfig struct {
	Port             string
	GinMode          string
	LogLevel         zapcore.Level
	SendGridAPIKey   string
	EmailFromName    string
	EmailFromAddr    string
	CareersToAddr    string
	RecaptchaSecret  string
	RecaptchaSiteKey string
	IPAPIBaseURL     string
	AllowedOrigins   []string
	RateLimitPoints  int
	RateLimitWindow  time.Duration
	RateLimitBlock   time.Duration
	Environment      string
	ServiceName      string
	ShutdownTimeout  time.Duration
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
}

// InitConfig ortam ayarlarını yükler ve doğrular
func InitConfig() (*ServerConfig, error) {
	// .env dosyasını oku
	if err := godotenv.Load(); err != nil {
		fmt.Println(".env dosyası bulunamadı")
	}

	// Log seviyesini ayarla
	logLevel := initLogLevel()

	// Gin modunu ayarla
	ginMode := initGinMode()

	config := &ServerConfig{
		Port:             getEnv("SERVER_PORT", "8080"),
		GinMode:          ginMode,
		LogLevel:         logLevel,
		SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Kipras Kariyer"),
		EmailFromAddr:    getEnv("EMAIL_FROM_ADDRESS", ""),
		CareersToAddr:    getEnv("CAREERS_TO_ADDRESS", "info@kipras.com.tr"),
		RecaptchaSecret:  getEnv("RECAPTCHA_SECRET_KEY", ""),
		RecaptchaSiteKey: getEnv("RECAPTCHA_SITE_KEY", ""),
		IPAPIBaseURL:     getEnv("IPAPI_BASE_URL", "http://ip-api.com"),
		AllowedOrigins:   getList("ALLOWED_ORIGINS", nil),
		RateLimitPoints:  getInt("RATE_LIMIT_POINTS", 3),
		RateLimitWindow:  getDuration("RATE_LIMIT_WINDOW", 60*time.Second),
		RateLimitBlock:   getDuration("RATE_LIMIT_BLOCK", time.Hour),
		Environment:      getEnv("ENVIRONMENT", "development"),
		ServiceName:      getEnv("SERVICE_NAME", "careers-service"),
		ShutdownTimeout:  getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		ReadTimeout:      getDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:     getDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:      getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}

	return config, config.Validate()
}

// SetupServer HTTP sunucusunu yapılandırır
func SetupServer(r *gin.Engine, config *ServerConfig) *http.Server {
	displayServerConfig(r, config)

	return &http.Server{
		Addr:              ":" + config.Port,
		Handler:           r,
		ReadTimeout:       config.ReadTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func initLogLevel() zapcore.Level {
	logLevelStr := getEnv("LOG_LEVEL", "info")
	var logLevel zapcore.Level
	if err := logLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		fmt.Printf("Geçersiz LOG_LEVEL '%s', 'info' kullanılacak\n", logLevelStr)
		logLevel = zapcore.InfoLevel
	}
	logger.LogLevel.SetLevel(logLevel)
	return logLevel
}

func initGinMode() string {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = "release"
	}
	gin.SetMode(ginMode)
	return ginMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

func (c *ServerConfig) Validate() error {
	required := map[string]string{
		"SendGridAPIKey":  c.SendGridAPIKey,
		"EmailFromAddr":   c.EmailFromAddr,
		"RecaptchaSecret": c.RecaptchaSecret,
	}

	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	return nil
}

func displayServerConfig(r *gin.Engine, config *ServerConfig) {
	var routeInfo strings.Builder
	routeInfo.WriteString("Registered Endpoints:\n")
	for _, route := range r.Routes() {
		routeInfo.WriteString(fmt.Sprintf("- %s: %s -> %s\n",
			route.Method,
			route.Path,
			route.Handler))
	}

	fmt.Printf("\n"+
		"=================================\n"+
		"Careers Service Configuration:\n"+
		"- Port: %s\n"+
		"- Mode: %s\n"+
		"- Log Level: %s\n"+
		"- Environment: %s\n"+
		"- Service: %s\n"+
		"- Rate Limit: %d / %s (blok: %s)\n"+
		"=================================\n"+
		"%s"+
		"=================================\n",
		config.Port,
		config.GinMode,
		logger.LogLevel.String(),
		config.Environment,
		config.ServiceName,
		config.RateLimitPoints,
		config.RateLimitWindow,
		config.RateLimitBlock,
		routeInfo.String())
}
