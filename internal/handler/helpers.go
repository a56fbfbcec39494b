package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/FlamingoLogic/chat-markdown-app/internal/domain"
	"github.com/FlamingoLogic/chat-markdown-app/internal/httputil"

	"github.com/go-chi/chi/v5"
)

// handleError converts domain errors to HTTP responses. Typed errors carry
// their own status; wrapped sentinels are mapped here.
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError
	var httpErr domain.HTTPError

	switch {
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrCorruptTree):
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// HandleCreateConflict returns the existing resource with 409 when err is a
// ConflictError, and handles any other error normally
func HandleCreateConflict[T any](w http.ResponseWriter, err error, fetchFn func(id string) (*T, error)) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		existing, fetchErr := fetchFn(conflictErr.ResourceID)
		if fetchErr != nil {
			handleError(w, fetchErr)
			return
		}
		httputil.RespondJSON(w, http.StatusConflict, existing)
		return
	}
	handleError(w, err)
}

// pathID returns the {id} route parameter, writing a 400 when it is empty
func pathID(w http.ResponseWriter, r *http.Request, what string) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, what+" ID is required")
		return "", false
	}
	return id, true
}

// includeDrafts is true for manager sessions; users see published documents only
func includeDrafts(r *http.Request) bool {
	return httputil.IsManager(r)
}

func forbidden(w http.ResponseWriter, msg string) {
	handleError(w, &domain.ForbiddenError{Message: msg})
}

func notFound(kind, id string) error {
	return &domain.NotFoundError{Message: fmt.Sprintf("%s %q not found", kind, id)}
}
