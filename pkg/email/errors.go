package email

import "errors"

var (
	ErrNoRecipients = errors.New("email has no recipients")
	ErrEmptyBody    = errors.New("email has no body")
)
