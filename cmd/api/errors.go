package main

import (
	"errors"
	"net/http"

	"github.com/suyeshs/tandoor-pos/internal/catalog"
	"github.com/suyeshs/tandoor-pos/internal/service"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, "not found")
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("conflict", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusConflict, err.Error())
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}

// serviceError maps the session managers' validation errors onto HTTP
// statuses: missing sessions are 404, double billing is a conflict,
// everything else rejected by the state machine is a plain bad request.
func (app *application) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrLineNotFound),
		errors.Is(err, service.ErrAlertNotFound),
		errors.Is(err, catalog.ErrItemNotFound):
		app.notFoundError(w, r, err)
	case errors.Is(err, service.ErrAlreadyBilled),
		errors.Is(err, service.ErrSessionFrozen),
		errors.Is(err, catalog.ErrItemUnavailable):
		app.conflictResponse(w, r, err)
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrNoTicket),
		errors.Is(err, service.ErrKitchenNotReady),
		errors.Is(err, service.ErrNotBilled),
		errors.Is(err, service.ErrPickupStillStaged),
		errors.Is(err, service.ErrInvalidGuests),
		errors.Is(err, service.ErrInvalidPayment),
		errors.Is(err, service.ErrInvalidDiscount),
		errors.Is(err, catalog.ErrUnknownModifier),
		errors.Is(err, errItemRequired):
		app.badRequestResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
