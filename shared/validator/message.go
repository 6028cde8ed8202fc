package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":    "{field} is required",
		"gte":         "{field} must be greater than or equal to {param}",
		"lte":         "{field} must be less than or equal to {param}",
		"gt":          "{field} must be greater than {param}",
		"lt":          "{field} must be less than {param}",
		"oneof":       "{field} must be one of {param}",
		"max":         "{field} must be less than or equal to {param}",
		"min":         "{field} must be greater than or equal to {param}",
		"email":       "{field} must be a valid email address",
		"url":         "{field} must be a valid URL",
		"uuid":        "{field} must be a valid UUID",
		"unique":      "{field} must not contain duplicates",
		"empty":       "{field} must be empty",
		"enum":        "{field} has an unsupported value",
		"mimetypes":   "{field} must be one of the types {param}",
		"maxfilesize": "{field} must not be larger than {param} MB",
		"slug":        "{field} may only contain lowercase letters, digits and single dashes",
		"date":        "{field} must be a date in the format YYYY-MM-DD",
		"locale":      "{field} must be one of en ru zh",
		"gtfield":     "{field} must be greater than {param}",
		"gtefield":    "{field} must be greater than or equal to {param}",
		"nefield":     "{field} must differ from {param}",
	}
)

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			errStr := messages[valErr.Tag()]
			if errStr == "" {
				continue
			}

			errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
			errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

			return errStr
		}

		return valErrors.Error()
	}

	return err.Error()
}
