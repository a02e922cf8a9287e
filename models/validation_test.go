package models

import (
	"strings"
	"testing"
)

// validForm tüm kuralları sağlayan örnek bir başvuru döndürür.
func validForm() *CareerForm {
	return &CareerForm{
		Name:     "Ahmet",
		Surname:  "Yılmaz",
		Email:    "ahmet@example.com",
		Phone:    "05321234567",
		Position: "mimar",
		Message:  strings.Repeat("a", 30),
		CV:       []string{"data:application/pdf;base64,AAAA"},
	}
}

func TestValidate_AcceptsValidForm(t *testing.T) {
	if violations := validForm().Validate(); violations != nil {
		t.Fatalf("geçerli form reddedildi: %v", violations)
	}
}

func TestValidate_MessageBounds(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{"çok kısa", 29, true},
		{"alt sınır", 30, false},
		{"üst sınır", 1000, false},
		{"çok uzun", 1001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.Message = strings.Repeat("m", tt.length)
			violations := form.Validate()
			if tt.wantErr {
				if violations == nil || violations["message"] == "" {
					t.Fatalf("mesaj uzunluğu %d için ihlal bekleniyordu, sonuç: %v", tt.length, violations)
				}
			} else if violations != nil {
				t.Fatalf("mesaj uzunluğu %d reddedildi: %v", tt.length, violations)
			}
		})
	}
}

func TestValidate_NameCharacters(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"türkçe karakterler", "Çağla Şükran", false},
		{"rakam içeren", "Ahmet4", true},
		{"noktalama içeren", "Ahmet!", true},
		{"tek karakter", "A", true},
		{"51 karakter", strings.Repeat("a", 51), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.Name = tt.value
			violations := form.Validate()
			if tt.wantErr {
				if violations == nil || violations["name"] == "" {
					t.Fatalf("%q için ad ihlali bekleniyordu, sonuç: %v", tt.value, violations)
				}
			} else if violations != nil {
				t.Fatalf("%q reddedildi: %v", tt.value, violations)
			}
		})
	}
}

func TestValidate_AttachmentRules(t *testing.T) {
	tests := []struct {
		name    string
		cv      []string
		wantErr bool
	}{
		{"pdf", []string{"data:application/pdf;base64,AAAA"}, false},
		{"doc", []string{"data:application/msword;base64,AAAA"}, false},
		{"docx", []string{"data:application/vnd.openxmlformats-officedocument.wordprocessingml.document;base64,AAAA"}, false},
		{"txt", []string{"data:text/plain;base64,AAAA"}, false},
		{"büyük harfli tür", []string{"data:APPLICATION/PDF;base64,AAAA"}, false},
		{"png reddedilir", []string{"data:image/png;base64,AAAA"}, true},
		{"data URL değil", []string{"AAAA"}, true},
		{"bozuk base64", []string{"data:application/pdf;base64,%%%%"}, true},
		{"boş liste", []string{}, true},
		{"biri geçersiz", []string{"data:application/pdf;base64,AAAA", "data:image/png;base64,AAAA"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.CV = tt.cv
			violations := form.Validate()
			if tt.wantErr {
				if violations == nil || violations["cv"] == "" {
					t.Fatalf("cv ihlali bekleniyordu, sonuç: %v", violations)
				}
			} else if violations != nil {
				t.Fatalf("geçerli cv reddedildi: %v", violations)
			}
		})
	}
}

func TestValidate_ReportsAllFields(t *testing.T) {
	form := &CareerForm{}
	violations := form.Validate()
	if violations == nil {
		t.Fatal("boş form kabul edildi")
	}
	for _, field := range []string{"name", "surname", "email", "phone", "position", "message", "cv"} {
		if violations[field] == "" {
			t.Errorf("%s alanı için ihlal eksik", field)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0532 123 45 67", "05321234567"},
		{"+90 (532) 123-45-67", "905321234567"},
		{"05321234567", "05321234567"},
		{"abc", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.input); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, beklenen %q", tt.input, got, tt.want)
		}
	}

	// Normalize edilmiş değer tekrar normalize edildiğinde değişmez
	once := NormalizePhone("0532 123 45 67")
	if twice := NormalizePhone(once); twice != once {
		t.Errorf("normalizasyon idempotent değil: %q != %q", twice, once)
	}
}

func TestPositionLabel(t *testing.T) {
	if got := PositionLabel("mimar"); got != "Mimar" {
		t.Errorf("PositionLabel(mimar) = %q", got)
	}
	if got := PositionLabel("insaat-muhendisi"); got != "İnşaat Mühendisi" {
		t.Errorf("PositionLabel(insaat-muhendisi) = %q", got)
	}
	// Bilinmeyen kod olduğu gibi geçer
	if got := PositionLabel("astronot"); got != "astronot" {
		t.Errorf("PositionLabel(astronot) = %q", got)
	}
}

func TestMergeSystemInfo(t *testing.T) {
	server := SystemInfo{
		Browser:   "Chrome",
		OS:        "Windows",
		Device:    "desktop",
		IPAddress: "1.2.3.4",
		ISP:       "Turk Telekom",
		ASN:       "AS9121",
		Referrer:  "Direct",
		UserAgent: "Mozilla/5.0",
	}
	client := &SystemInfo{
		// Sunucunun gözlemlediği alanlar istemciden gelse bile yok sayılır
		IPAddress:        "9.9.9.9",
		Browser:          "Sahte",
		ScreenResolution: "1920x1080",
		Language:         "tr-TR",
		TimeZone:         "Europe/Istanbul",
	}

	merged := MergeSystemInfo(server, client)

	if merged.IPAddress != "1.2.3.4" {
		t.Errorf("sunucu IP değeri korunmadı: %q", merged.IPAddress)
	}
	if merged.Browser != "Chrome" {
		t.Errorf("sunucu tarayıcı değeri korunmadı: %q", merged.Browser)
	}
	if merged.ScreenResolution != "1920x1080" {
		t.Errorf("istemci ekran çözünürlüğü alınmadı: %q", merged.ScreenResolution)
	}
	if merged.Language != "tr-TR" {
		t.Errorf("istemci dili alınmadı: %q", merged.Language)
	}

	// İstemcinin doldurmadığı alanlar yer tutucuya düşer
	if merged.CurrentURL != Unknown || merged.LocalDateTime != Unknown {
		t.Errorf("boş istemci alanları yer tutucuya düşmedi: %q / %q", merged.CurrentURL, merged.LocalDateTime)
	}
}

func TestMergeSystemInfo_NilClient(t *testing.T) {
	merged := MergeSystemInfo(SystemInfo{Browser: "Safari"}, nil)
	if merged.Browser != "Safari" {
		t.Errorf("sunucu değeri korunmadı: %q", merged.Browser)
	}
	if merged.ScreenResolution != Unknown {
		t.Errorf("istemci alanı yer tutucuya düşmedi: %q", merged.ScreenResolution)
	}
}
