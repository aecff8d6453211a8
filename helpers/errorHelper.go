package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"go-restaurant-pos/logger"

	"github.com/gin-gonic/gin"
)

// ValidationError reports a request that is missing or has malformed fields.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports an unknown order, bill, room or menu item.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s was not found", e.Resource, e.ID)
}

// ConflictError reports a write rejected because of the current state of the
// document: an illegal status transition, a lost race or an unavailable room.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// PersistenceError wraps a store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *PersistenceError) Unwrap() error { return e.Err }

func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// StatusCode maps err onto an HTTP status.
func StatusCode(err error) int {
	var (
		ve *ValidationError
		nf *NotFoundError
		ce *ConflictError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ce):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a JSON error body and logs it against the
// request.
func RespondError(c *gin.Context, err error) {
	status := StatusCode(err)
	body := gin.H{"error": err.Error()}
	var ve *ValidationError
	if errors.As(err, &ve) && len(ve.Fields) > 0 {
		body["fields"] = ve.Fields
	}

	log := logger.FromCtx(c.Request.Context())
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "status", status, "error", err)
	} else {
		log.Info("request rejected", "status", status, "error", err)
	}
	c.AbortWithStatusJSON(status, body)
}
