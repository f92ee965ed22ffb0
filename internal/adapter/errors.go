package adapter

import (
	"errors"
	"strings"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("client unauthorized")
	ErrConflict           = errors.New("conflict")
	ErrServerUnavailable  = errors.New("server unavailable")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// Reason extracts the human-readable message from an error of the form
// "<sentinel>: <message>". Errors without a message yield their full text.
func Reason(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, sentinel := range []error{ErrBadRequest, ErrUnauthorized, ErrConflict, ErrServerUnavailable, ErrUnexpectedResponse} {
		prefix := sentinel.Error() + ": "
		if idx := strings.Index(msg, prefix); idx != -1 {
			return msg[idx+len(prefix):]
		}
	}
	return msg
}
