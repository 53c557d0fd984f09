package apperrors

import "errors"

var (
	ErrUnauthenticated        = errors.New("unauthenticated")
	ErrForbidden              = errors.New("forbidden")
	ErrInsufficientPermission = errors.New("insufficient permission")
	ErrNotFound               = errors.New("not found")
	ErrNotFoundOrForbidden    = errors.New("not found or forbidden")
	ErrEmailTaken             = errors.New("email already registered")
	ErrAlreadyMember          = errors.New("user is already a member of this team")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrCannotRemoveLastOwner  = errors.New("cannot remove the last owner of a team")
	ErrInvalidRoom            = errors.New("invalid room identifier")
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidTaskStatus      = errors.New("invalid task status")
)
