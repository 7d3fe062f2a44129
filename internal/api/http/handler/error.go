package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dtroode/autocompany-server/internal/apierrors"
	"github.com/dtroode/autocompany-server/internal/logger"
)

var registerFieldNames sync.Once

// UseJSONFieldNames makes validation errors name fields by their JSON or form key.
func UseJSONFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

func writeError(c *gin.Context, log *logger.Logger, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) && apiErr.Kind != apierrors.KindInternal {
		if apiErr.HTTPCode >= http.StatusInternalServerError {
			log.Error("HTTP handler: request failed",
				"path", c.Request.URL.Path,
				"error", err.Error())
		}
		_ = c.Error(err)
		c.JSON(apiErr.HTTPCode, gin.H{"detail": apiErr.Message})
		return
	}

	log.Error("HTTP handler: internal error",
		"path", c.Request.URL.Path,
		"error", err.Error())
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}

// bindError separates field validation failures (422) from unreadable bodies (400).
func bindError(err error) *apierrors.APIError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describeField(fe))
		}
		return apierrors.NewErrValidation(strings.Join(msgs, "; "))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apierrors.NewErrValidation(fmt.Sprintf("%s must be %s", typeErr.Field, typeErr.Type))
	}

	return apierrors.NewErrBadRequest("malformed request body")
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must have length %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
