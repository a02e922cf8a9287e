package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KIPRAS-GROUP/KiprasSoon/logger"

	"go.uber.org/zap"
)

const (
	defaultSiteverifyEndpoint = "https://www.google.com/recaptcha/api/siteverify"
	recaptchaTimeout          = 10 * time.Second

	// v3 yanıtlarında kabul edilen en düşük skor
	minRecaptchaScore = 0.5
)

// RecaptchaService istemcinin ilettiği doğrulama belirtecini Google siteverify
// üzerinden sunucudan sunucuya denetler.
type RecaptchaService struct {
	secret   string
	endpoint string
	client   *http.Client
}

func NewRecaptchaService(secret string) *RecaptchaService {
	return &RecaptchaService{
		secret:   secret,
		endpoint: defaultSiteverifyEndpoint,
		client: &http.Client{
			Timeout: recaptchaTimeout,
		},
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify belirteci doğrular. Boş belirteç ağ çağrısı yapılmadan reddedilir;
// üst servise erişilememesi de dahil her hata ret sayılır (fail closed).
// Yeniden deneme yapılmaz; istemci formu tekrar gönderebilir.
func (s *RecaptchaService) Verify(ctx context.Context, token, remoteIP string) bool {
	if token == "" {
		return false
	}
	if s.secret == "" {
		logger.Logger.Error("reCAPTCHA gizli anahtarı ayarlanmamış")
		return false
	}

	form := url.Values{
		"secret":   {s.secret},
		"response": {token},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		logger.Logger.Error("siteverify isteği oluşturulamadı", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Logger.Warn("siteverify çağrısı başarısız", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Logger.Warn("siteverify beklenmeyen durum kodu döndürdü",
			zap.Int("status_code", resp.StatusCode))
		return false
	}

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Logger.Warn("siteverify yanıtı çözümlenemedi", zap.Error(err))
		return false
	}

	if !result.Success {
		logger.Logger.Warn("reCAPTCHA doğrulaması reddedildi",
			zap.Strings("error_codes", result.ErrorCodes))
		return false
	}

	// v2 yanıtlarında skor alanı bulunmaz; yalnızca v3 skoru denetlenir
	if result.Score > 0 && result.Score < minRecaptchaScore {
		logger.Logger.Warn("reCAPTCHA skoru eşiğin altında",
			zap.Float64("score", result.Score),
			zap.String("action", result.Action))
		return false
	}

	return true
}
