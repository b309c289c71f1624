package services

import "errors"

var (
	ErrSessionNotStarted   = errors.New("no editing session; open a patient case first")
	ErrUploadInProgress    = errors.New("an image upload is in progress for this entry")
	ErrMissingCategory     = errors.New("every result needs a category")
	ErrUnknownCategory     = errors.New("unknown category")
	ErrSuperAdminProtected = errors.New("super admin roles cannot be changed")
	ErrUnknownRole         = errors.New("unknown role")
)
