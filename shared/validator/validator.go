package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"atoll/shared/base64"
	"atoll/shared/constant"
	"atoll/shared/failure"
	"atoll/shared/timezone"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMB = 1024.0 * 1024.0

var (
	validate *val.Validate

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	locales     = []string{constant.LocaleEnglish, constant.LocaleRussian, constant.LocaleChinese}
)

// Enum is implemented by string types with a closed set of values.
type Enum interface {
	IsValid() bool
}

func registerMimetypeValidation(field val.FieldLevel) bool {
	var contentType string

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		contentType = value.Header.Get(constant.RequestHeaderContentType)
	case string:
		contentType = base64.GetContentType(value)
	}

	if contentType == "" {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0

	switch value := field.Field().Interface().(type) {
	case multipart.FileHeader:
		fileSize = int(value.Size)
	case string:
		fileSize = base64.DecodedSize(value)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return fileSize <= int(maxSizeMB*bytesPerMB)
}

func registerEnumValidation(field val.FieldLevel) bool {
	if enum, ok := field.Field().Interface().(Enum); ok {
		return enum.IsValid()
	}

	return false
}

func registerSlugValidation(field val.FieldLevel) bool {
	return slugPattern.MatchString(field.Field().String())
}

func registerDateValidation(field val.FieldLevel) bool {
	_, err := timezone.ParseDate(field.Field().String())

	return err == nil
}

func registerLocaleValidation(field val.FieldLevel) bool {
	return slices.Contains(locales, field.Field().String())
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	customValidations := map[string]val.Func{
		"empty":       func(fl val.FieldLevel) bool { return fl.Field().IsZero() },
		"enum":        registerEnumValidation,
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
		"slug":        registerSlugValidation,
		"date":        registerDateValidation,
		"locale":      registerLocaleValidation,
	}

	for tag, fn := range customValidations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
