package models

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Ad ve soyad yalnızca harf ve boşluk içerebilir (Türkçe karakterler dahil)
var letterPattern = regexp.MustCompile(`^[a-zA-ZğüşıöçĞÜŞİÖÇ\s]+$`)

func init() {
	validate = validator.New()

	// Hata haritasında JSON alan adları kullanılır
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("trharf", func(fl validator.FieldLevel) bool {
		return letterPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// Alan ve kural bazında istemciye dönen Türkçe mesajlar
var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Ad gereklidir",
		"min":      "Ad en az 2 karakter olmalıdır",
		"max":      "Ad en fazla 50 karakter olabilir",
		"trharf":   "Ad sadece harflerden oluşmalıdır",
	},
	"surname": {
		"required": "Soyad gereklidir",
		"min":      "Soyad en az 2 karakter olmalıdır",
		"max":      "Soyad en fazla 50 karakter olabilir",
		"trharf":   "Soyad sadece harflerden oluşmalıdır",
	},
	"email": {
		"required": "Geçerli bir e-posta adresi giriniz",
		"email":    "Geçerli bir e-posta adresi giriniz",
		"min":      "E-posta adresi çok kısa",
		"max":      "E-posta adresi çok uzun",
	},
	"phone": {
		"required": "Telefon numarası gereklidir",
	},
	"position": {
		"required": "Lütfen bir pozisyon seçiniz",
	},
	"message": {
		"required": "Mesajınız en az 30 karakter olmalıdır",
		"min":      "Mesajınız en az 30 karakter olmalıdır",
		"max":      "Mesajınız en fazla 1000 karakter olabilir",
	},
	"cv": {
		"required": "Gerekli",
		"min":      "Gerekli",
	},
}

func messageFor(field, tag string) string {
	if tags, ok := fieldMessages[field]; ok {
		if msg, ok := tags[tag]; ok {
			return msg
		}
	}
	return "Geçersiz değer"
}

// Validate tüm alanları denetler ve ihlalleri alan bazında Türkçe mesajlarla
// döndürür. Hiç ihlal yoksa nil döner; kısmi kabul yapılmaz. Telefonun önceden
// Normalize edilmiş olması beklenir.
func (f *CareerForm) Validate() map[string]string {
	violations := make(map[string]string)

	if err := validate.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, e := range fieldErrs {
				// Alan başına ilk ihlal yeterli
				if _, seen := violations[e.Field()]; seen {
					continue
				}
				violations[e.Field()] = messageFor(e.Field(), e.Tag())
			}
		} else {
			violations["form"] = "Form verileri geçersiz"
		}
	}

	// Dosya içeriği tag ile ifade edilemez; tür ve kodlama ayrıca denetlenir
	if _, seen := violations["cv"]; !seen && len(f.CV) > 0 {
		if _, err := f.Attachments(); err != nil {
			violations["cv"] = err.Error()
		}
	}

	if len(violations) == 0 {
		return nil
	}
	return violations
}
