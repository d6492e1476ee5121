package catalog

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
}

func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		// drop the request type from "createProductRequest.items[0].product_id"
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		out = append(out, FieldError{Field: field, Message: fieldMessage(fe), Tag: fe.Tag()})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "gtfield":
		return "must be after " + fe.Param()
	case "numeric":
		return "must be a decimal number"
	}
	return "is invalid"
}

// bindJSON decodes the body into req and validates its tags. It writes the
// 400 response itself and reports whether the handler should go on.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeStatus(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := validate.Struct(req); err != nil {
		details := fieldErrors(err)
		if details == nil {
			writeStatus(c, http.StatusBadRequest, err.Error())
			return false
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: errorDetail{
			Code:    http.StatusBadRequest,
			Message: "invalid request",
			Details: details,
		}})
		return false
	}
	return true
}
