package service

import (
	"errors"
	"fmt"
)

// Error classes. Handlers map these onto status codes with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

var (
	ErrAlbumNotFound      = classify(ErrNotFound, "album not found")
	ErrAlbumNotDeleted    = classify(ErrNotFound, "album could not be deleted")
	ErrReviewNotFound     = classify(ErrNotFound, "review not found")
	ErrUserNotFound       = classify(ErrNotFound, "user not found")
	ErrAlreadyReviewed    = classify(ErrConflict, "you have already reviewed this album")
	ErrNameInUse          = classify(ErrConflict, "username already in use")
	ErrEmailInUse         = classify(ErrConflict, "email already in use")
	ErrAccountTaken       = classify(ErrConflict, "username or email already in use")
	ErrInvalidCredentials = classify(ErrUnauthorized, "invalid credentials")
	ErrInvalidToken       = classify(ErrUnauthorized, "invalid token")
	ErrExpiredToken       = classify(ErrUnauthorized, "token has expired")
	ErrNotReviewOwner     = classify(ErrForbidden, "only the author can change this review")
	ErrNotAccountOwner    = classify(ErrForbidden, "you can only change your own account")
)

// classError carries a caller-facing message and unwraps to its class.
type classError struct {
	class error
	msg   string
}

func (e *classError) Error() string { return e.msg }

func (e *classError) Unwrap() error { return e.class }

func classify(class error, msg string) error {
	return &classError{class: class, msg: msg}
}

func validationError(format string, args ...any) error {
	return classify(ErrValidation, fmt.Sprintf(format, args...))
}
