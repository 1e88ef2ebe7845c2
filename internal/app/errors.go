package app

import (
	"errors"
	"net/http"

	"sakan/console/internal/upstream"
)

// mapError translates a failure from the lower layers into an HTTP response.
// Transport failures read generically; protocol failures keep the service's
// status and message so the page can show something specific.
func mapError(err error) (status int, code, message string) {
	if errors.Is(err, upstream.ErrNoCredential) {
		return http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized"
	}
	var pe *upstream.ProtocolError
	if errors.As(err, &pe) {
		status := pe.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		return status, "UPSTREAM_ERROR", pe.Message
	}
	if upstream.IsTransport(err) {
		return http.StatusBadGateway, "UPSTREAM_UNREACHABLE", "Could not reach the housing service"
	}
	return http.StatusInternalServerError, "SERVER_ERROR", "Server error"
}
