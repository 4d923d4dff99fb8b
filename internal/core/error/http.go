package errx

import "net/http"

// WrapUpstream wraps an external data-source error with a consistent status and message.
func WrapUpstream(err error) error {
	if err == nil {
		return nil
	}
	return New(err, http.StatusBadGateway, UpstreamErrorMessage)
}
