package port

import (
	"context"
	"time"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
)

//go:generate mockgen -destination=../service/mocks/client_mock.go -package=mocks -source=client.go

// NodeClient is a ready connection pool to the nodes of one bucket.
type NodeClient interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// ClientSpec describes the client a NodeClientFactory has to build.
type ClientSpec struct {
	Kind        domain.ClientKind
	Servers     []string
	VBuckets    *domain.VBucketMap
	Hash        domain.HashAlgorithm
	Locator     domain.Locator
	FailureMode domain.FailureMode
	Credentials *domain.Credentials
}

// NodeClientFactory builds node clients. Build returns only once every
// connection is established.
type NodeClientFactory interface {
	Build(ctx context.Context, spec ClientSpec) (NodeClient, error)
}

// ClientStatus reports the state of a bucket's client slots.
type ClientStatus interface {
	Bucket() string
	Topology() domain.Topology
	Ready(kind domain.ClientKind) bool
}
