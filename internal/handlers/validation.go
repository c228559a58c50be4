package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseValidationErrors converts validator errors to user-friendly format
func ParseValidationErrors(err error) []ValidationError {
	var out []ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			out = append(out, ValidationError{
				Field:   fieldError.Field(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return out
}

// UseJSONFieldNames makes gin's validator report fields by their json tag,
// so details name "skillId" rather than "SkillID"
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "uuid":
		return fe.Field() + " must be a valid id"
	case "url":
		return "Invalid URL format"
	default:
		return fe.Field() + " is invalid"
	}
}

// bindJSON binds the request body into req and writes the 400/413 response
// when that fails
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(c, http.StatusRequestEntityTooLarge, "Request body too large", err)
		return false
	}

	if details := ParseValidationErrors(err); len(details) > 0 {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", details, err)
		return false
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			[]ValidationError{{Field: typeErr.Field, Message: "has the wrong type"}}, err)
		return false
	}
	if errors.As(err, &syntaxErr) {
		respondError(c, http.StatusBadRequest, "Malformed JSON", err)
		return false
	}

	respondError(c, http.StatusBadRequest, "Invalid request body", err)
	return false
}
