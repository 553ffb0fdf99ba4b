package helper

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"kompetensi_backend/internals/helpers/apperr"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator dibagi semua controller; field dilaporkan memakai nama json.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	})
	return validate
}

// ValidateStruct menjalankan validator dan mengubah hasilnya ke apperr.FieldErrors.
func ValidateStruct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperr.Validation(err.Error())
	}
	out := apperr.FieldErrors{}
	for _, fe := range ves {
		field := fe.Field()
		if field == "" {
			field = strings.ToLower(fe.StructField())
		}
		out.Add(field, messageFor(fe))
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "wajib diisi"
	case "min":
		return "minimal " + fe.Param() + " karakter"
	case "max":
		return "maksimal " + fe.Param() + " karakter"
	case "uuid", "uuid4":
		return "harus UUID yang valid"
	case "url", "http_url":
		return "harus URL yang valid"
	case "oneof":
		return "harus salah satu dari: " + fe.Param()
	default:
		return "tidak valid (" + fe.Tag() + ")"
	}
}
