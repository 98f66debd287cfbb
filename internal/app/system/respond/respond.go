// internal/app/system/respond/respond.go
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/dalemusser/bloodhub/internal/app/system/apperr"
	"github.com/dalemusser/bloodhub/internal/app/system/limits"
	"github.com/dalemusser/bloodhub/internal/app/system/reqlog"
	"github.com/dalemusser/bloodhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// envelope is the body of every error response.
type envelope struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, envelope{Message: msg})
}

// Error writes the error envelope for err. Internal errors are logged with the
// request id and route and answered with a generic message; client errors are
// logged at debug.
func Error(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	e := apperr.As(err)
	status := e.Kind.Status()

	if log != nil {
		fields := []zap.Field{
			zap.String("request_id", reqlog.ID(r.Context())),
			zap.String("method", r.Method),
			zap.String("route", routePattern(r)),
			zap.Int("status", status),
		}
		if e.Err != nil {
			fields = append(fields, zap.Error(e.Err))
		}
		if e.Kind == apperr.KindInternal {
			log.Error("request failed", fields...)
		} else {
			log.Debug(e.Message, fields...)
		}
	}

	JSON(w, status, envelope{Message: e.Message, ErrorCode: e.Code})
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names, not Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("bloodgroup", func(fl validator.FieldLevel) bool {
		return models.IsValidBloodGroup(fl.Field().String())
	})
	return v
}

// Decode reads a JSON body into dst. It returns an *apperr.Error with code
// invalid_json when the body cannot be parsed.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("Request body is required").WithCode(apperr.CodeInvalidJSON)
		}
		return apperr.Validation("Request body is invalid JSON").WithCode(apperr.CodeInvalidJSON).Wrap(err)
	}
	return nil
}

// Validate runs the validate tags on v.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.Validation(describe(verrs[0])).WithCode(apperr.CodeValidationFailed)
	}
	return apperr.Internal(err)
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "bloodgroup":
		return fmt.Sprintf("%s must be a valid blood group", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
