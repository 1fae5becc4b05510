package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"solar-system-server/internal/shared/errors"
)

// Seconds a client is asked to wait before retrying a retryable error.
const retryAfterSeconds = 1

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type errorPolicy struct {
	status int
	level  slog.Level
	msg    string
}

// Client mistakes and pointer-move noise stay at debug so hover traffic does
// not flood the logs; store and server failures are errors.
var policies = map[errors.ErrorType]errorPolicy{
	errors.ErrorTypeNotFound:         {http.StatusNotFound, slog.LevelDebug, "Resource not found"},
	errors.ErrorTypeValidation:       {http.StatusBadRequest, slog.LevelDebug, "Validation error"},
	errors.ErrorTypeMethodNotAllowed: {http.StatusMethodNotAllowed, slog.LevelDebug, "Method not allowed"},
	errors.ErrorTypeUnauthorized:     {http.StatusUnauthorized, slog.LevelWarn, "Session error"},
	errors.ErrorTypeRateLimited:      {http.StatusTooManyRequests, slog.LevelWarn, "Rate limit exceeded"},
	errors.ErrorTypeExternal:         {http.StatusServiceUnavailable, slog.LevelError, "Scene store error"},
	errors.ErrorTypeInternal:         {http.StatusInternalServerError, slog.LevelError, "Internal server error"},
}

func policyFor(errorType errors.ErrorType) errorPolicy {
	if p, ok := policies[errorType]; ok {
		return p
	}
	return policies[errors.ErrorTypeInternal]
}

// Error logs err and writes it as a JSON error response. Handlers report
// errors only through here so each failure is logged exactly once.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	write(w, r, logger, err, err.Error())
}

// ErrorWithMessage is Error with a client message that hides the internal cause.
func ErrorWithMessage(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, clientMessage string) {
	write(w, r, logger, err, clientMessage)
}

func write(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, clientMessage string) {
	errorType := errors.GetType(err)
	policy := policyFor(errorType)

	logger.Log(r.Context(), policy.level, policy.msg,
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", policy.status,
		"error", err,
	)

	if errors.Retryable(err) {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(policy.status)

	// The status is already sent; an encode failure has nowhere to go.
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   string(errorType),
		Message: clientMessage,
		Code:    policy.status,
	})
}

// Success writes data as a JSON body with the given status.
func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
