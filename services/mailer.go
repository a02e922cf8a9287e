package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"strings"

	"github.com/KIPRAS-GROUP/KiprasSoon/logger"
	"github.com/KIPRAS-GROUP/KiprasSoon/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridMailer doğrulanmış başvuruyu tek bir bildirim e-postasına dönüştürüp
// SendGrid üzerinden kariyer adresine iletir.
type SendGridMailer struct {
	apiKey   string
	fromName string
	fromAddr string
	toAddr   string
}

func NewSendGridMailer(apiKey, fromName, fromAddr, toAddr string) *SendGridMailer {
	return &SendGridMailer{
		apiKey:   apiKey,
		fromName: fromName,
		fromAddr: fromAddr,
		toAddr:   toAddr,
	}
}

// Send başvuruyu gönderir. Kimlik bilgisi eksikliği ya da üst servis hatası bu
// istek için kalıcıdır; kuyruk veya yeniden deneme yoktur.
func (m *SendGridMailer) Send(ctx context.Context, form *models.CareerForm) error {
	if m.apiKey == "" || m.fromAddr == "" {
		return fmt.Errorf("e-posta kimlik bilgileri eksik")
	}

	attachments, err := form.Attachments()
	if err != nil {
		return fmt.Errorf("CV dosyaları hazırlanamadı: %w", err)
	}

	from := mail.NewEmail(m.fromName, m.fromAddr)
	to := mail.NewEmail("", m.toAddr)
	message := mail.NewSingleEmail(from, subjectFor(form), to, plainBody(form), htmlBody(form))

	for i, att := range attachments {
		a := mail.NewAttachment()
		a.SetContent(base64.StdEncoding.EncodeToString(att.Content))
		a.SetType(att.MIMEType)
		a.SetFilename(attachmentName(form, i, att.Ext))
		a.SetDisposition("attachment")
		message.AddAttachment(a)
	}

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("mail gönderme hatası: %w", err)
	}

	if response.StatusCode >= 300 {
		logger.Logger.Error("SendGrid hata yanıtı döndürdü",
			zap.Int("status_code", response.StatusCode),
			zap.String("response_body", response.Body))
		return fmt.Errorf("mail gönderme hatası: sendgrid durum kodu %d", response.StatusCode)
	}

	return nil
}

func subjectFor(form *models.CareerForm) string {
	return fmt.Sprintf("🎓 Yeni başvuru %s - %s %s",
		models.PositionLabel(form.Position), form.Name, form.Surname)
}

func attachmentName(form *models.CareerForm, index int, ext string) string {
	return fmt.Sprintf("CV_%s_%s_%d.%s", form.Name, form.Surname, index+1, ext)
}

// htmlBody başvurunun ve metadata'nın tamamını sabit düzende basar. İnceleyen
// ekip satır düzenine güvendiğinden yer tutucu değerler de dahil hiçbir satır
// atlanmaz.
func htmlBody(form *models.CareerForm) string {
	info := form.SystemInfo
	if info == nil {
		info = &models.SystemInfo{}
	}

	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "<p><strong>%s:</strong> %s</p>", label, html.EscapeString(value))
	}

	b.WriteString("<h2>Form Bilgileri</h2>")
	line("Ad", form.Name)
	line("Soyad", form.Surname)
	line("Telefon", form.Phone)
	line("E-posta", form.Email)
	line("Pozisyon", models.PositionLabel(form.Position))
	line("Mesaj", form.Message)

	b.WriteString("<br><h3>Sistem Log Bilgileri</h3>")
	line("Tarayıcı", info.Browser+" "+info.BrowserVersion)
	line("İşletim Sistemi", info.OS+" "+info.OSVersion)
	line("Cihaz", info.Device)
	line("Ekran Çözünürlüğü", info.ScreenResolution)
	line("Dil", info.Language)
	line("IP Adresi", info.IPAddress)
	line("ISP", info.ISP)
	line("ASN", info.ASN)
	line("Zaman Dilimi", info.TimeZone)
	line("Yerel Tarih/Saat", info.LocalDateTime)
	line("Referrer", info.Referrer)
	line("Mevcut URL", info.CurrentURL)

	return b.String()
}

func plainBody(form *models.CareerForm) string {
	return fmt.Sprintf("Ad: %s\nSoyad: %s\nTelefon: %s\nE-posta: %s\nPozisyon: %s\nMesaj: %s\n",
		form.Name, form.Surname, form.Phone, form.Email,
		models.PositionLabel(form.Position), form.Message)
}
