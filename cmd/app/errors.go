package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sushihentaime/blogsphere/internal/common"
	"github.com/sushihentaime/blogsphere/internal/userservice"
)

// errorBody is the shape of every error response.
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Error      string `json:"error"`
	Message    any    `json:"message"`
}

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		url     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.Error(message, slog.String("method", method), slog.String("url", url))
}

func (app *application) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message any, cause error) {
	app.writeNamedErrorResponse(w, r, status, http.StatusText(status), message, cause)
}

func (app *application) writeNamedErrorResponse(w http.ResponseWriter, r *http.Request, status int, name string, message any, cause error) {
	body := errorBody{
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Path:       r.URL.Path,
		Method:     r.Method,
		Error:      name,
		Message:    message,
	}

	app.recordError(r, status, message, cause)

	err := app.writeJSON(w, status, body, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func (app *application) recordError(r *http.Request, status int, message any, cause error) {
	event := common.ErrorEvent{
		Timestamp:  time.Now().UTC(),
		StatusCode: status,
		Method:     r.Method,
		Path:       r.URL.Path,
		Message:    fmt.Sprint(message),
		UserID:     "anonymous",
		IP:         clientIP(r),
		UserAgent:  r.UserAgent(),
	}
	if cause != nil {
		event.Cause = cause.Error()
	}
	if user := app.getUserContext(r); !user.IsAnonymous() {
		event.UserID = user.ID.String()
	}
	if query := r.URL.Query(); len(query) > 0 {
		event.Query = make(map[string]any, len(query))
		for key := range query {
			event.Query[key] = query.Get(key)
		}
	}
	if info := app.getRequestContext(r); info != nil {
		event.Body = decodeBody(info.body)
	}

	app.errors.Record(event)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.writeErrorResponse(w, r, http.StatusInternalServerError, "An unexpected error occurred", err)
}

func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Error(), err)
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusNotFound, "the requested resource could not be found", nil)
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	app.writeErrorResponse(w, r, http.StatusMethodNotAllowed, message, nil)
}

func (app *application) failedValidationErrorResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.writeNamedErrorResponse(w, r, http.StatusBadRequest, "Validation Error", errors, nil)
}

func (app *application) invalidCredentialsErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "invalid authentication credentials", nil)
}

func (app *application) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "invalid or missing authentication token", nil)
}

func (app *application) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "you must be authenticated to access this resource", nil)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded", nil)
}

// serviceErrorResponse maps an error returned by a service to its response.
func (app *application) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr common.ValidationError

	switch {
	case errors.As(err, &validationErr):
		app.failedValidationErrorResponse(w, r, validationErr.Errors)
	case errors.Is(err, common.ErrRecordNotFound):
		app.writeErrorResponse(w, r, http.StatusNotFound, common.Message(err, "the requested resource could not be found"), err)
	case errors.Is(err, common.ErrForbidden):
		app.writeErrorResponse(w, r, http.StatusForbidden, common.Message(err, "access denied"), err)
	case errors.Is(err, common.ErrConflict):
		app.writeErrorResponse(w, r, http.StatusConflict, common.Message(err, "resource already exists"), err)
	case errors.Is(err, common.ErrForeignKey):
		app.writeNamedErrorResponse(w, r, http.StatusBadRequest, "Database Error", common.Message(err, "Referenced record does not exist"), err)
	case errors.Is(err, userservice.ErrInvalidCredentials):
		app.invalidCredentialsErrorResponse(w, r)
	case errors.Is(err, userservice.ErrInvalidToken):
		app.invalidAuthenticationTokenResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
