// Package validation проверяет входные DTO через go-playground/validator.
// Экземпляр валидатора один на процесс: он кэширует разбор структур.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/GoArmGo/MoviesApp/internal/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	// now подменяется в тестах
	now = time.Now
)

// FieldError — ошибка одного поля в том виде, в котором она уходит клиенту.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// RequestValidationError собирает все ошибки полей запроса.
type RequestValidationError struct {
	Fields []FieldError
}

func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		messages = append(messages, f.Message)
	}
	return strings.Join(messages, "; ")
}

// NewFieldError строит ошибку для проверок, которые делаются вне тегов (например, разбор query).
func NewFieldError(field, tag, message string) *RequestValidationError {
	return &RequestValidationError{Fields: []FieldError{{Field: field, Tag: tag, Message: message}}}
}

// GetValidator возвращает общий валидатор с зарегистрированными правилами.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// В ошибках поля называются так же, как в JSON
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tagName := range []string{"json", "query"} {
				name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		if err := validate.RegisterValidation("releaseyear", validateReleaseYear); err != nil {
			panic(fmt.Sprintf("validation: register releaseyear: %v", err))
		}
		if err := validate.RegisterValidation("bcryptmax", validateBcryptMax); err != nil {
			panic(fmt.Sprintf("validation: register bcryptmax: %v", err))
		}
	})
	return validate
}

// validateReleaseYear допускает годы от первого фильма до now+10.
func validateReleaseYear(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		year := int(field.Int())
		return year >= domain.MinReleaseYear && year <= domain.MaxReleaseYear(now())
	default:
		return false
	}
}

// MaxPasswordBytes — предел bcrypt; более длинный пароль не хэшируется.
const MaxPasswordBytes = 72

// validateBcryptMax считает байты, а не символы: кириллица занимает по два.
func validateBcryptMax(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return len(field.String()) <= MaxPasswordBytes
}

// ValidateStruct проверяет структуру; nil, если всё в порядке.
func ValidateStruct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validation: %w", err)
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: translateError(fe),
		}
	}
	return &RequestValidationError{Fields: fields}
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"email":    "%s must be an email",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, field)
	}

	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "bcryptmax":
		return fmt.Sprintf("%s must be at most %d bytes", field, MaxPasswordBytes)
	case "releaseyear":
		return fmt.Sprintf("%s must be between %d and %d", field, domain.MinReleaseYear, domain.MaxReleaseYear(now()))
	case "min":
		if isString {
			if param == "1" {
				return fmt.Sprintf("%s should not be empty", field)
			}
			return fmt.Sprintf("%s must be longer than or equal to %s characters", field, param)
		}
		return fmt.Sprintf("%s must not be less than %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, param)
		}
		return fmt.Sprintf("%s must not be greater than %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
