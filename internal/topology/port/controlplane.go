package port

import (
	"context"
	"io"
	"net/url"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
)

//go:generate mockgen -destination=../service/mocks/controlplane_mock.go -package=mocks -source=controlplane.go

// ControlPlane talks to the REST control plane of the cluster.
type ControlPlane interface {
	// Fetch reads a whole document. Credentials may be nil.
	Fetch(ctx context.Context, uri *url.URL, creds *domain.Credentials) ([]byte, error)

	// Stream opens a long-lived change feed. The caller closes the body; the
	// stream also ends when ctx is canceled.
	Stream(ctx context.Context, uri *url.URL, creds *domain.Credentials) (io.ReadCloser, error)
}

// DocumentParser turns control-plane documents into the topology model.
// Implementations must be stateless.
type DocumentParser interface {
	ParseBase(data []byte) (map[string]domain.Pool, error)
	ParsePool(pool domain.Pool, data []byte) (domain.Pool, error)
	ParseBuckets(data []byte) (map[string]domain.Topology, error)
	ParseBucket(data []byte) (domain.Topology, error)
}
