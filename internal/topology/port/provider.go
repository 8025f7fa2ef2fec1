package port

import (
	"context"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
)

//go:generate mockgen -destination=../service/mocks/provider_mock.go -package=mocks -source=provider.go

// Reconfigurable receives a bucket's new topology each time the change feed
// reports one.
//
// Reconfigure runs on the watcher's goroutine. It must not call Shutdown on
// the provider or the watcher directly, since Shutdown waits for that
// goroutine to exit; start the shutdown on a new goroutine instead.
type Reconfigurable interface {
	Reconfigure(topology domain.Topology)
}

// ConfigurationProvider resolves bucket topologies and fans out changes to
// subscribers.
type ConfigurationProvider interface {
	// GetTopology returns the cached topology of a bucket, fetching it from the
	// control plane on first use.
	GetTopology(ctx context.Context, bucket string) (domain.Topology, error)

	// Subscribe registers sub for changes of bucket and starts the bucket's
	// change feed watcher if none is running yet.
	Subscribe(ctx context.Context, bucket string, sub Reconfigurable) error

	// Unsubscribe removes one registration of sub. The watcher keeps running.
	Unsubscribe(bucket string, sub Reconfigurable)

	// AnonymousBucket is the bucket that can be used without credentials.
	AnonymousBucket() string

	// Shutdown stops every watcher. It is safe to call more than once but
	// must not be called synchronously from Reconfigure.
	Shutdown()
}

// TopologyQuery exposes cached topologies without touching the network.
type TopologyQuery interface {
	Buckets() []string
	Lookup(bucket string) (domain.Topology, bool)
}
