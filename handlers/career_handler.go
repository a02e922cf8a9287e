package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/KIPRAS-GROUP/KiprasSoon/logger"
	"github.com/KIPRAS-GROUP/KiprasSoon/models"
	"github.com/KIPRAS-GROUP/KiprasSoon/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenVerifier bot doğrulama belirtecini denetler.
type TokenVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) bool
}

// InfoCollector istek metadata'sını toplar; hiçbir koşulda başarısız olmaz.
type InfoCollector interface {
	Collect(ctx context.Context, ip, userAgent, referer string) models.SystemInfo
}

// Mailer doğrulanmış başvuruyu dışarıya iletir.
type Mailer interface {
	Send(ctx context.Context, form *models.CareerForm) error
}

// Terminal sonuç etiketleri
const (
	outcomeThrottled      = "throttled"
	outcomeUnexpected     = "unexpected"
	outcomeUntrusted      = "untrusted"
	outcomeInvalid        = "invalid"
	outcomeDeliveryFailed = "delivery_failed"
	outcomeSuccess        = "success"
)

// CareerHandler başvuru hattını yürütür: kota → çözümleme → bot doğrulama →
// metadata → alan doğrulama → e-posta. İlk hatada durur.
type CareerHandler struct {
	limiter   *ratelimit.Limiter
	verifier  TokenVerifier
	collector InfoCollector
	mailer    Mailer
}

func NewCareerHandler(limiter *ratelimit.Limiter, verifier TokenVerifier, collector InfoCollector, mailer Mailer) *CareerHandler {
	return &CareerHandler{
		limiter:   limiter,
		verifier:  verifier,
		collector: collector,
		mailer:    mailer,
	}
}

// HandleSubmit POST /api/careers isteğini işler.
func (h *CareerHandler) HandleSubmit(c *gin.Context) {
	start := time.Now()
	ip := clientIP(c)

	logFields := []zap.Field{
		zap.String("handler", "HandleSubmit"),
		zap.String("submission_id", uuid.NewString()),
		zap.String("client_ip", ip),
	}

	// Kota denetimi her şeyden önce gelir: kota aşan istemci aşağıdaki dış
	// servislere tek bir çağrı bile tetikleyememelidir.
	if !h.limiter.Allow(ip) {
		logger.Logger.Info("başvuru kotası aşıldı",
			append(logFields, outcomeFields(outcomeThrottled, start)...)...)
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error": "Çok fazla deneme yaptınız. Lütfen bir süre bekleyin.",
		})
		return
	}

	var form models.CareerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		logger.Logger.Error("istek gövdesi çözümlenemedi",
			append(logFields, append(outcomeFields(outcomeUnexpected, start), zap.Error(err))...)...)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Form gönderilirken bir hata oluştu",
		})
		return
	}

	ctx := c.Request.Context()

	if !h.verifier.Verify(ctx, form.RecaptchaToken, ip) {
		logger.Logger.Warn("bot doğrulaması reddedildi",
			append(logFields, outcomeFields(outcomeUntrusted, start)...)...)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "reCAPTCHA doğrulaması başarısız",
		})
		return
	}

	// Metadata toplama her zaman çalışır; sunucu gözlemleri istemcinin
	// bildirdiği alanlara üstün gelir.
	serverInfo := h.collector.Collect(ctx, ip, headerOr(c, "User-Agent", "Unknown"), headerOr(c, "Referer", "Direct"))
	merged := models.MergeSystemInfo(serverInfo, form.SystemInfo)
	form.SystemInfo = &merged

	logFields = append(logFields,
		zap.String("position", form.Position),
		zap.String("browser", merged.Browser),
		zap.String("os", merged.OS),
		zap.String("device", merged.Device),
		zap.String("isp", merged.ISP),
		zap.String("asn", merged.ASN),
	)

	form.Normalize()
	if violations := form.Validate(); violations != nil {
		logger.Logger.Warn("form doğrulaması başarısız",
			append(logFields, append(outcomeFields(outcomeInvalid, start), zap.Any("violations", violations))...)...)
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Form verileri geçersiz",
			"details": violations,
		})
		return
	}

	if err := h.mailer.Send(ctx, &form); err != nil {
		logger.Logger.Error("başvuru e-postası gönderilemedi",
			append(logFields, append(outcomeFields(outcomeDeliveryFailed, start), zap.Error(err))...)...)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Mail gönderme hatası",
		})
		return
	}

	logger.Logger.Info("başvuru alındı",
		append(logFields, outcomeFields(outcomeSuccess, start)...)...)
	c.JSON(http.StatusOK, gin.H{
		"message": "Form başarıyla gönderildi",
		"success": true,
	})
}

func outcomeFields(outcome string, start time.Time) []zap.Field {
	return []zap.Field{
		zap.String("outcome", outcome),
		zap.Duration("latency", time.Since(start)),
	}
}

// clientIP forwarded-for zincirinin ilk adresini, yoksa X-Real-IP'yi esas
// alır. Aynı değer hem kota anahtarı hem metadata kaynağıdır.
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "Unknown"
}

func headerOr(c *gin.Context, key, fallback string) string {
	if value := c.GetHeader(key); value != "" {
		return value
	}
	return fallback
}
