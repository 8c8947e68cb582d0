package dto

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	res "openclass/lms-backend/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

func CreatedResponse(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, res.SuccessResponse(data))
}

// ErrorResponse serves a business error with the HTTP status its code maps
// to. The wrapped cause is logged server-side only, never serialized.
func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	if err.Err != nil {
		log.Printf("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, err.Msg, err.Err)
	}
	c.JSON(res.HTTPStatus(err.Code), res.ErrorResponse(err.Code, err.Msg))
}

// ValidationErrorResponse turns a binding error into a response naming the
// offending JSON field.
func ValidationErrorResponse(c *gin.Context, err error) {
	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		firstErr := validationErrs[0]
		jsonField := toSnakeCase(firstErr.Field())

		var message string
		switch firstErr.Tag() {
		case "required":
			message = fmt.Sprintf("field '%s' is required", jsonField)
		case "email":
			message = fmt.Sprintf("field '%s' must be a valid email address", jsonField)
		case "max":
			message = fmt.Sprintf("field '%s' must be at most %s characters", jsonField, firstErr.Param())
		case "min":
			message = fmt.Sprintf("field '%s' must be at least %s characters", jsonField, firstErr.Param())
		case "oneof":
			message = fmt.Sprintf("field '%s' must be one of: %s", jsonField, firstErr.Param())
		default:
			message = fmt.Sprintf("field '%s' failed validation: %s", jsonField, firstErr.Tag())
		}

		ErrorResponse(c, res.NewBusinessError(
			res.WithErrorCode(res.ParseError),
			res.WithErrorMessage(message),
		))
		return
	}

	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("invalid request: "+err.Error()),
	))
}

// toSnakeCase maps a Go field name to its wire name. Runs of capitals stay
// together, so CourseID becomes course_id rather than course_i_d.
func toSnakeCase(s string) string {
	runes := []rune(s)
	var result strings.Builder
	for i, r := range runes {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z' ||
				runes[i-1] >= '0' && runes[i-1] <= '9'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
