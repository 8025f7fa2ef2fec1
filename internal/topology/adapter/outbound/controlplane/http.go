package controlplane

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/anthanhphan/gosdk/logger"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/port"
)

const (
	// ClientSpecVersion is the control-plane client specification we speak.
	ClientSpecVersion = "1.0"

	acceptHeader      = "application/com.northscale.store+json"
	specVersionHeader = "X-memcachekv-Store-Client-Specification-Version"
	userAgentPrefix   = "go-bucket-topology"
)

// HTTPControlPlane fetches and streams control-plane documents over HTTP.
// Credentials travel with each request.
type HTTPControlPlane struct {
	client    *http.Client
	userAgent string
}

var _ port.ControlPlane = (*HTTPControlPlane)(nil)

// NewHTTPControlPlane builds the adapter. client may be nil; it must not set
// a Timeout since change feed bodies stay open indefinitely.
func NewHTTPControlPlane(client *http.Client, clientID string) *HTTPControlPlane {
	if client == nil {
		client = &http.Client{}
	}
	userAgent := userAgentPrefix + "/" + ClientSpecVersion
	if clientID != "" {
		userAgent += " (" + clientID + ")"
	}
	return &HTTPControlPlane{
		client:    client,
		userAgent: userAgent,
	}
}

func (c *HTTPControlPlane) Fetch(ctx context.Context, uri *url.URL, creds *domain.Credentials) ([]byte, error) {
	resp, err := c.do(ctx, uri, creds)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &port.FetchError{URI: uri.Redacted(), Err: err}
	}
	return data, nil
}

func (c *HTTPControlPlane) Stream(ctx context.Context, uri *url.URL, creds *domain.Credentials) (io.ReadCloser, error) {
	resp, err := c.do(ctx, uri, creds)
	if err != nil {
		return nil, err
	}
	logger.Debugw("Change feed connected", "uri", uri.Redacted())
	return resp.Body, nil
}

func (c *HTTPControlPlane) do(ctx context.Context, uri *url.URL, creds *domain.Credentials) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri.String(), nil)
	if err != nil {
		return nil, &port.FetchError{URI: uri.Redacted(), Err: err}
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(specVersionHeader, ClientSpecVersion)
	if creds != nil {
		req.SetBasicAuth(creds.Username, creds.Password)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &port.FetchError{URI: uri.Redacted(), Err: err}
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	// Drain a little so the connection can be reused.
	_, _ = io.CopyN(io.Discard, resp.Body, 4096)
	_ = resp.Body.Close()

	fetchErr := &port.FetchError{URI: uri.Redacted(), StatusCode: resp.StatusCode}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		fetchErr.Err = fmt.Errorf("%w: service does not accept the authentication credentials", port.ErrAuthRejected)
	default:
		fetchErr.Err = fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil, fetchErr
}
