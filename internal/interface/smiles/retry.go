package smiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// retryLimit is attempts in total, not extra retries. Being more persistent
// than one retry raises the rate at which the upstream flags us as abusive.
const retryLimit = 2

// flightListErrors are the known degenerate upstream bodies that stand in
// for an empty flight list and are worth one more attempt
var flightListErrors = []string{
	"TypeError: Cannot read properties of undefined (reading 'flightList')",
	"TypeError: Cannot read property 'flightList' of undefined",
}

// statusError is a non-2xx upstream reply
type statusError struct {
	Status    int
	BodyError string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.BodyError)
}

// shouldRetry classifies a fetch failure as transient or terminal. Transient:
// timeout, DNS failure, connection reset, malformed response body, 503, or a
// known degenerate flight-list error shape.
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}

	var se *statusError
	if errors.As(err, &se) {
		if se.Status == 503 {
			return true
		}
		for _, known := range flightListErrors {
			if se.BodyError == known {
				return true
			}
		}
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return true
	}

	return false
}
