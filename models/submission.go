package models

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Unknown dış kaynaktan elde edilemeyen alanlar için kullanılan yer tutucudur.
const Unknown = "Bilinmiyor"

// SystemInfo istek hakkında sunucu ve istemci tarafından gözlemlenen bilgilerdir.
// Doğrulamaya tabi değildir; boş kalan her alan yer tutucuya düşer.
type SystemInfo struct {
	Browser          string `json:"browser"`
	BrowserVersion   string `json:"browserVersion"`
	OS               string `json:"os"`
	OSVersion        string `json:"osVersion"`
	Device           string `json:"device"`
	UserAgent        string `json:"userAgent"`
	Referrer         string `json:"referrer"`
	ScreenResolution string `json:"screenResolution"`
	Language         string `json:"language"`
	IPAddress        string `json:"ipAddress"`
	CurrentURL       string `json:"currentUrl"`
	ISP              string `json:"isp"`
	ASN              string `json:"asn"`
	LocalDateTime    string `json:"localDateTime"`
	TimeZone         string `json:"timeZone"`
	TimeZoneOffset   string `json:"timeZoneOffset"`
}

// CareerForm kariyer formundan gelen başvuru verisidir.
type CareerForm struct {
	Name           string      `json:"name" validate:"required,min=2,max=50,trharf"`
	Surname        string      `json:"surname" validate:"required,min=2,max=50,trharf"`
	Email          string      `json:"email" validate:"required,min=5,max=100,email"`
	Phone          string      `json:"phone" validate:"required"`
	Position       string      `json:"position" validate:"required"`
	Message        string      `json:"message" validate:"required,min=30,max=1000"`
	CV             []string    `json:"cv" validate:"required,min=1"`
	RecaptchaToken string      `json:"recaptchaToken"`
	SystemInfo     *SystemInfo `json:"systemInfo"`
}

// Attachment base64 data URL olarak gelen CV dosyasının çözülmüş halidir.
type Attachment struct {
	MIMEType string
	Ext      string
	Content  []byte
}

var positionLabels = map[string]string{
	"mimar":              "Mimar",
	"ic-mimar":           "İç Mimar",
	"insaat-muhendisi":   "İnşaat Mühendisi",
	"elektrik-muhendisi": "Elektrik Mühendisi",
	"makine-muhendisi":   "Makine Mühendisi",
	"peyzaj-mimari":      "Peyzaj Mimarı",
	"tasarimci":          "Tasarımcı",
	"tekniker":           "Tekniker",
	"teknisyen":          "Teknisyen",
	"diger":              "Diğer",
}

// PositionLabel pozisyon kodunun görünen adını döndürür; bilinmeyen kod olduğu
// gibi geçer.
func PositionLabel(value string) string {
	if label, ok := positionLabels[value]; ok {
		return label
	}
	return value
}

// İzin verilen CV dosya türleri
var allowedCVTypes = map[string]string{
	"application/pdf":    "pdf",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"text/plain": "txt",
}

// NormalizePhone rakam dışındaki tüm karakterleri ayıklar.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize doğrulama öncesi alanları sadeleştirir. Telefon yalnızca rakam
// kalacak şekilde saklanır; işlem tekrarlanabilirdir.
func (f *CareerForm) Normalize() {
	f.Phone = NormalizePhone(f.Phone)
}

// ParseCV "data:application/pdf;base64,..." biçimindeki dosyayı çözer.
func ParseCV(raw string) (*Attachment, error) {
	meta, data, found := strings.Cut(raw, ",")
	if !found {
		return nil, fmt.Errorf("CV dosyası geçerli değil")
	}
	meta = strings.TrimPrefix(meta, "data:")
	mimeType, _, _ := strings.Cut(meta, ";")
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	ext, ok := allowedCVTypes[mimeType]
	if !ok {
		return nil, fmt.Errorf("Desteklenmeyen dosya türü")
	}

	content, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("CV dosyası geçerli değil")
	}

	return &Attachment{MIMEType: mimeType, Ext: ext, Content: content}, nil
}

// Attachments formdaki tüm CV dosyalarını çözer; herhangi biri geçersizse hata
// döndürür.
func (f *CareerForm) Attachments() ([]Attachment, error) {
	attachments := make([]Attachment, 0, len(f.CV))
	for _, raw := range f.CV {
		att, err := ParseCV(raw)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, *att)
	}
	return attachments, nil
}

// MergeSystemInfo sunucu gözlemleriyle istemcinin bildirdiği alanları
// birleştirir. Sunucunun görebildiği alanlarda sunucu değeri geçerlidir;
// istemci yalnızca kendi görebildiği alanları doldurur.
func MergeSystemInfo(server SystemInfo, client *SystemInfo) SystemInfo {
	merged := server
	if client != nil {
		merged.ScreenResolution = client.ScreenResolution
		merged.Language = client.Language
		merged.CurrentURL = client.CurrentURL
		merged.LocalDateTime = client.LocalDateTime
		merged.TimeZone = client.TimeZone
		merged.TimeZoneOffset = client.TimeZoneOffset
	}

	// E-posta şablonu her satırı koşulsuz bastığından boş alan bırakılmaz
	fillUnknown(&merged.ScreenResolution)
	fillUnknown(&merged.Language)
	fillUnknown(&merged.CurrentURL)
	fillUnknown(&merged.LocalDateTime)
	fillUnknown(&merged.TimeZone)
	fillUnknown(&merged.TimeZoneOffset)
	fillUnknown(&merged.Browser)
	fillUnknown(&merged.BrowserVersion)
	fillUnknown(&merged.OS)
	fillUnknown(&merged.OSVersion)
	fillUnknown(&merged.Device)
	fillUnknown(&merged.ISP)
	fillUnknown(&merged.ASN)
	fillUnknown(&merged.IPAddress)
	fillUnknown(&merged.Referrer)
	return merged
}

func fillUnknown(field *string) {
	if *field == "" {
		*field = Unknown
	}
}
