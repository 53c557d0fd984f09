package handlers

import (
	"errors"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/sirupsen/logrus"

	"github.com/devconnect/devconnect-api/internal/apperrors"
)

// respondError maps service errors to HTTP responses. Anything outside the
// taxonomy is a 500 and gets logged; taxonomy errors are the client's
// problem and are returned as-is.
func respondError(c *drift.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated),
		errors.Is(err, apperrors.ErrInvalidCredentials):
		c.Unauthorized(err.Error())
	case errors.Is(err, apperrors.ErrForbidden),
		errors.Is(err, apperrors.ErrInsufficientPermission):
		c.Forbidden(err.Error())
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrNotFoundOrForbidden):
		c.NotFound(err.Error())
	case errors.Is(err, apperrors.ErrEmailTaken),
		errors.Is(err, apperrors.ErrAlreadyMember),
		errors.Is(err, apperrors.ErrCannotRemoveLastOwner):
		_ = c.JSON(409, map[string]string{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidRoom),
		errors.Is(err, apperrors.ErrInvalidRole),
		errors.Is(err, apperrors.ErrInvalidTaskStatus):
		c.BadRequest(err.Error())
	default:
		logrus.WithError(err).Error("request failed")
		c.InternalServerError("internal error")
	}
}
