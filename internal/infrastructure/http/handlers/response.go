// Package handlers provides the HTTP handlers for the REST API. Every
// endpoint responds with the shared envelope and, where it lists resources,
// the shared page shape.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "github.com/smartrecipe/server/pkg/errors"
)

var validate = validator.New()

// envelope is the response wrapper used by every endpoint. Code mirrors the
// HTTP status.
type envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := envelope{Code: status, Message: message, Data: data}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

func writeData(w http.ResponseWriter, logger *zap.Logger, data interface{}) {
	writeJSON(w, logger, http.StatusOK, "success", data)
}

func writeCreated(w http.ResponseWriter, logger *zap.Logger, data interface{}) {
	writeJSON(w, logger, http.StatusCreated, "created", data)
}

func writeMessage(w http.ResponseWriter, logger *zap.Logger, message string) {
	writeJSON(w, logger, http.StatusOK, message, nil)
}

// writeError maps application errors to their HTTP status. Unknown errors
// surface as 500 without leaking internals.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		status := appErr.StatusCode()
		message := appErr.Message
		if appErr.Details != "" {
			message = fmt.Sprintf("%s: %s", appErr.Message, appErr.Details)
		}
		if status >= http.StatusInternalServerError {
			logger.Error("Request failed", zap.String("code", string(appErr.Code)), zap.Error(err))
			message = appErr.Message
		}
		writeJSON(w, logger, status, message, nil)
		return
	}

	logger.Error("Unhandled error", zap.Error(err))
	writeJSON(w, logger, http.StatusInternalServerError, "An unexpected error occurred", nil)
}

func writeBadRequest(w http.ResponseWriter, logger *zap.Logger, message string) {
	writeJSON(w, logger, http.StatusBadRequest, message, nil)
}

func writeUnauthorized(w http.ResponseWriter, logger *zap.Logger) {
	writeJSON(w, logger, http.StatusUnauthorized, "Authentication required", nil)
}

// decodeBody decodes and validates a JSON request body. Validation failures
// come back as field-tagged messages.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewBadRequestError("Invalid JSON payload")
	}
	if err := validate.Struct(dst); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return apperrors.NewValidationError(fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag()))
		}
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// pageProfile bounds page sizes per endpoint class.
type pageProfile struct {
	defaultSize int
	maxSize     int
}

var (
	standardPage = pageProfile{defaultSize: 20, maxSize: 100}
	smallPage    = pageProfile{defaultSize: 10, maxSize: 50}
	largePage    = pageProfile{defaultSize: 50, maxSize: 500}
)

// pageParams are the parsed page-number pagination parameters.
type pageParams struct {
	Page int
	Size int
}

func (p pageParams) Offset() int {
	return (p.Page - 1) * p.Size
}

// parsePage reads page and page_size, clamping to the profile.
func parsePage(r *http.Request, profile pageProfile) pageParams {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	size := profile.defaultSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			size = v
		}
	}
	if size > profile.maxSize {
		size = profile.maxSize
	}

	return pageParams{Page: page, Size: size}
}

// page is the paginated data payload.
type page struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// newPage builds the page payload with absolute next/previous URLs derived
// from the request.
func newPage(r *http.Request, params pageParams, count int, results interface{}) page {
	p := page{Count: count, Results: results}

	if params.Offset()+params.Size < count {
		p.Next = pageURL(r, params.Page+1)
	}
	if params.Page > 1 {
		p.Previous = pageURL(r, params.Page-1)
	}
	return p
}

func pageURL(r *http.Request, pageNum int) *string {
	u := *r.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(pageNum))
	u.RawQuery = q.Encode()

	abs := url.URL{
		Scheme:   requestScheme(r),
		Host:     r.Host,
		Path:     u.Path,
		RawQuery: u.RawQuery,
	}
	s := abs.String()
	return &s
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
