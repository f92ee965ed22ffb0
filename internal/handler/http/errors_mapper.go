package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/bullbear-client/internal/adapter"
	"github.com/MKhiriev/bullbear-client/internal/app"
)

// statusClientClosedRequest is the non-standard status nginx uses when the
// caller disconnects first.
const statusClientClosedRequest = 499

var errorStatusMap = map[error]int{
	adapter.ErrBadRequest:         http.StatusBadRequest,
	adapter.ErrUnauthorized:       http.StatusUnauthorized,
	adapter.ErrConflict:           http.StatusConflict,
	adapter.ErrServerUnavailable:  http.StatusServiceUnavailable,
	adapter.ErrUnexpectedResponse: http.StatusBadGateway,

	context.Canceled:         statusClientClosedRequest,
	context.DeadlineExceeded: http.StatusGatewayTimeout,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageForStatus(status int) string {
	switch status {
	case statusClientClosedRequest:
		return app.MsgRequestCancelled
	case http.StatusInternalServerError:
		return app.MsgInternalServerError
	default:
		return http.StatusText(status)
	}
}
