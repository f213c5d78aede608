package main

import (
	"net/http"

	"imageproxy/internal/fetcher"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.errorResponse(w, r, http.StatusInternalServerError, "Failed to process image")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.errorResponse(w, r, http.StatusForbidden, "Source domain not allowed")
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Warnw("method not allowed", "method", r.Method, "path", r.URL.Path)

	app.errorResponse(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func (app *application) upstreamErrorResponse(w http.ResponseWriter, r *http.Request, upstreamErr *fetcher.UpstreamStatusError) {
	app.logger.Warnw("upstream fetch failed", "path", r.URL.Path, "status", upstreamErr.Status, "source", upstreamErr.URL)

	// the upstream status is propagated verbatim
	app.errorResponse(w, r, upstreamErr.Status, "Failed to fetch source image")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "path", r.URL.Path, "remote", r.RemoteAddr)

	w.Header().Set("Retry-After", retryAfter)
	app.errorResponse(w, r, http.StatusTooManyRequests, "Rate limit exceeded, retry after: "+retryAfter)
}

// errorResponse writes the minimal plain-text error the client is allowed to
// see. Causes stay in the logs.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(message))
}
