package classify

import (
	"net/http"
	"time"
)

// NewHTTPClient creates an *http.Client for the classification service.
// timeout is the per-request deadline (0 = no timeout).
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout, Transport: http.DefaultTransport}
}
