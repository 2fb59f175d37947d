package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sandeepkv93/catalog-api/internal/http/response"
	"github.com/sandeepkv93/catalog-api/internal/repository"
	"github.com/sandeepkv93/catalog-api/internal/service"
)

const (
	msgFound            = "Found successfully"
	msgCreated          = "Created successfully"
	msgInvalidBody      = "Invalid request body"
	msgInvalidID        = "Invalid id"
	msgValidationFailed = "Validation failed"
	msgCategoryNotFound = "Category not found"
	msgProductNotFound  = "Product not found"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=128"`
	Description string `json:"description" validate:"required,notblank"`
}

type productRequest struct {
	Name        string   `json:"name" validate:"required,notblank,max=128"`
	Description string   `json:"description" validate:"required,notblank"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	CategoryID  *uint    `json:"categoryId" validate:"required,gt=0"`
}

// decodeAndValidate reads a JSON body into dst and runs its struct tags.
// It writes the 400 response itself and reports whether the caller may proceed.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		response.Error(w, r, http.StatusBadRequest, msgInvalidBody, nil)
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		response.Error(w, r, http.StatusBadRequest, msgInvalidBody, nil)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.Error(w, r, http.StatusBadRequest, msgValidationFailed, fieldErrors(verrs))
			return false
		}
		response.Error(w, r, http.StatusBadRequest, msgInvalidBody, nil)
		return false
	}
	return true
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "notblank":
			out[fe.Field()] = "This value should not be blank."
		case "max":
			out[fe.Field()] = fmt.Sprintf("This value is too long. It should have %s characters or less.", fe.Param())
		case "gte":
			out[fe.Field()] = fmt.Sprintf("This value should be greater than or equal to %s.", fe.Param())
		case "gt":
			out[fe.Field()] = fmt.Sprintf("This value should be greater than %s.", fe.Param())
		default:
			out[fe.Field()] = "This value is not valid."
		}
	}
	return out
}

func parsePathID(input string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(input), 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return uint(n), nil
}

// parsePageRequest never fails: unparsable values read as 0 and are clamped
// by NormalizePageRequest. A missing limit means the configured maximum.
func parsePageRequest(r *http.Request, maxLimit int) repository.PageRequest {
	q := r.URL.Query()
	req := repository.PageRequest{Page: repository.DefaultPage, Limit: maxLimit}
	if q.Has("page") {
		req.Page = atoiOrZero(q.Get("page"))
	}
	if q.Has("limit") {
		req.Limit = atoiOrZero(q.Get("limit"))
	}
	return repository.NormalizePageRequest(req, maxLimit)
}

func atoiOrZero(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

// writeServiceError maps service and repository errors onto the envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		response.Error(w, r, http.StatusNotFound, msgCategoryNotFound, nil)
	case errors.Is(err, repository.ErrProductNotFound):
		response.Error(w, r, http.StatusNotFound, msgProductNotFound, nil)
	case service.IsValidationError(err):
		response.Error(w, r, http.StatusBadRequest, msgValidationFailed, err.Error())
	default:
		slog.ErrorContext(r.Context(), "catalog request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		response.Error(w, r, http.StatusInternalServerError, response.MessageInternal, nil)
	}
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func auditOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, repository.ErrCategoryNotFound), errors.Is(err, repository.ErrProductNotFound):
		return "not_found"
	case service.IsValidationError(err):
		return "rejected"
	default:
		return "failure"
	}
}

func auditReason(err error) string {
	if err == nil {
		return ""
	}
	if auditOutcome(err) == "failure" {
		return "internal_error"
	}
	return err.Error()
}
