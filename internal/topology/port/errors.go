package port

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrConfigUnreachable = errors.New("configuration unreachable")
	ErrConfigParse       = errors.New("configuration parse error")
	ErrConfigNotFound    = errors.New("configuration not found")
	ErrClientBuild       = errors.New("client build failed")
	ErrAuthRejected      = errors.New("authentication rejected")

	ErrInvalidBucket    = errors.New("invalid bucket")
	ErrRelativeEndpoint = errors.New("endpoint must be absolute")
	ErrProviderClosed   = errors.New("configuration provider is shut down")
	ErrManagerClosed    = errors.New("client manager is shut down")
	ErrKeyNotFound      = errors.New("key not found")
)

// FetchError reports a failed control-plane request.
type FetchError struct {
	URI        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URI, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URI, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches ErrConfigUnreachable for every failure except rejected credentials.
func (e *FetchError) Is(target error) bool {
	if target != ErrConfigUnreachable {
		return false
	}
	return e.StatusCode != http.StatusUnauthorized && e.StatusCode != http.StatusForbidden
}
