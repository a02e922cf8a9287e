package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/KIPRAS-GROUP/KiprasSoon/logger"
	"github.com/KIPRAS-GROUP/KiprasSoon/models"

	"github.com/mileusna/useragent"
	"go.uber.org/zap"
)

const (
	defaultIPAPIBaseURL = "http://ip-api.com"
	ipLookupTimeout     = 5 * time.Second
)

// ClientInfoService istek başlıklarından ve ip-api sorgusundan istek
// metadata'sını üretir. Durumsuzdur; başvuru başına en fazla bir dış çağrı
// yapar.
type ClientInfoService struct {
	baseURL string
	client  *http.Client
}

func NewClientInfoService(baseURL string) *ClientInfoService {
	if baseURL == "" {
		baseURL = defaultIPAPIBaseURL
	}
	return &ClientInfoService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: ipLookupTimeout,
		},
	}
}

type ipAPIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ISP     string `json:"isp"`
	AS      string `json:"as"`
	Org     string `json:"org"`
}

// Collect SystemInfo üretir. Hiçbir koşulda hata döndürmez; elde edilemeyen
// her alan yer tutucu değere düşer.
func (s *ClientInfoService) Collect(ctx context.Context, ip, userAgent, referer string) models.SystemInfo {
	ua := useragent.Parse(userAgent)

	device := "desktop"
	switch {
	case ua.Mobile:
		device = "mobile"
	case ua.Tablet:
		device = "tablet"
	case ua.Bot:
		device = "bot"
	}

	isp, asn := s.lookupIP(ctx, ip)

	return models.SystemInfo{
		Browser:        orDefault(ua.Name, "Unknown"),
		BrowserVersion: orDefault(ua.Version, "Unknown"),
		OS:             orDefault(ua.OS, "Unknown"),
		OSVersion:      orDefault(ua.OSVersion, "Unknown"),
		Device:         device,
		UserAgent:      userAgent,
		Referrer:       referer,
		IPAddress:      ip,
		ISP:            isp,
		ASN:            asn,
	}
}

// lookupIP adresin ISP ve ASN bilgisini ip-api'den sorgular. Loopback
// adresler dış çağrı yapılmadan yerel istemci olarak işaretlenir; sorgu
// hatası sessizce yer tutucuya düşer.
func (s *ClientInfoService) lookupIP(ctx context.Context, ip string) (isp, asn string) {
	if ip == "::1" || ip == "127.0.0.1" {
		return "Localhost", "Localhost"
	}

	lookupURL := fmt.Sprintf("%s/json/%s?fields=status,message,isp,as,org", s.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		logger.Logger.Debug("IP sorgu isteği oluşturulamadı", zap.Error(err))
		return models.Unknown, models.Unknown
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Logger.Debug("IP bilgisi alınamadı", zap.Error(err), zap.String("ip", ip))
		return models.Unknown, models.Unknown
	}
	defer resp.Body.Close()

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Logger.Debug("IP sorgu yanıtı çözümlenemedi", zap.Error(err))
		return models.Unknown, models.Unknown
	}

	if result.Status != "success" {
		logger.Logger.Debug("IP sorgusu başarısız",
			zap.String("ip", ip),
			zap.String("message", result.Message))
		return models.Unknown, models.Unknown
	}

	isp = result.ISP
	if isp == "" {
		isp = result.Org
	}
	if isp == "" {
		isp = models.Unknown
	}

	asn = models.Unknown
	if fields := strings.Fields(result.AS); len(fields) > 0 {
		asn = fields[0]
	}

	return isp, asn
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
