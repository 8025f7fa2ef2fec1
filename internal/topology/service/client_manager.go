package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anthanhphan/gosdk/logger"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/port"
	"github.com/anthanhphan/go-bucket-topology/pkg/resilience"
)

const (
	defaultPublishAttempts = 8
	defaultRetireWorkers   = 2
	retireQueueSize        = 64
)

// ManagerConfig identifies the bucket. Control plane endpoints belong to
// the provider, which rejects relative ones when it is built.
type ManagerConfig struct {
	Username string
	Password string
	Bucket   string

	// PreferredPort picks the node port used by plain clients.
	PreferredPort domain.PortRole

	// RetireGrace delays closing a superseded client so requests already
	// holding it can finish. Zero closes it right away.
	RetireGrace   time.Duration
	RetireWorkers int

	// MaxPublishAttempts bounds the build and publish loop of one accessor
	// call.
	MaxPublishAttempts int
}

// slotEntry is a published client and the topology generation it was built
// from.
type slotEntry struct {
	client port.NodeClient
	gen    uint64
}

// ClientManager owns at most one plain and one topology-aware client for a
// bucket. Clients are built on first use and dropped whenever the bucket's
// topology changes.
type ClientManager struct {
	bucket        string
	creds         *domain.Credentials
	preferredPort domain.PortRole
	retireGrace   time.Duration
	maxAttempts   int

	provider port.ConfigurationProvider
	factory  port.NodeClientFactory
	retirer  *resilience.WorkerPool

	// topoMu pairs a topology with its generation.
	topoMu   sync.RWMutex
	topology domain.Topology
	gen      atomic.Uint64

	slots [2]atomic.Pointer[slotEntry]

	closed   atomic.Bool
	stopOnce sync.Once
}

var (
	_ port.Reconfigurable = (*ClientManager)(nil)
	_ port.ClientStatus   = (*ClientManager)(nil)
)

// NewClientManager validates the bucket identity, loads the bucket topology
// and subscribes to its changes.
func NewClientManager(
	ctx context.Context,
	cfg ManagerConfig,
	provider port.ConfigurationProvider,
	factory port.NodeClientFactory,
) (*ClientManager, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("%w: bucket name is blank", port.ErrInvalidBucket)
	}
	if cfg.Bucket != cfg.Username && cfg.Bucket != provider.AnonymousBucket() {
		return nil, fmt.Errorf("%w: %q is neither the authenticated bucket nor %q",
			port.ErrInvalidBucket, cfg.Bucket, provider.AnonymousBucket())
	}

	if cfg.PreferredPort == "" {
		cfg.PreferredPort = domain.PortDirect
	}
	if cfg.MaxPublishAttempts <= 0 {
		cfg.MaxPublishAttempts = defaultPublishAttempts
	}
	if cfg.RetireWorkers <= 0 {
		cfg.RetireWorkers = defaultRetireWorkers
	}

	var creds *domain.Credentials
	if cfg.Bucket != provider.AnonymousBucket() && cfg.Username != "" {
		creds = &domain.Credentials{Username: cfg.Username, Password: cfg.Password}
	}

	m := &ClientManager{
		bucket:        cfg.Bucket,
		creds:         creds,
		preferredPort: cfg.PreferredPort,
		retireGrace:   cfg.RetireGrace,
		maxAttempts:   cfg.MaxPublishAttempts,
		provider:      provider,
		factory:       factory,
		retirer:       resilience.NewWorkerPool(cfg.RetireWorkers, retireQueueSize),
	}

	topology, err := provider.GetTopology(ctx, cfg.Bucket)
	if err != nil {
		m.retirer.Stop()
		return nil, err
	}
	m.topology = topology

	if err := provider.Subscribe(ctx, cfg.Bucket, m); err != nil {
		m.retirer.Stop()
		return nil, err
	}
	return m, nil
}

func (m *ClientManager) Bucket() string {
	return m.bucket
}

func (m *ClientManager) Topology() domain.Topology {
	t, _ := m.snapshot()
	return t
}

// Ready reports whether a client of kind is published for the current
// topology.
func (m *ClientManager) Ready(kind domain.ClientKind) bool {
	e := m.slot(kind).Load()
	return e != nil && e.gen == m.gen.Load()
}

// GetClient returns the plain client, building it if needed. It routes keys by
// consistent hashing over the nodes that are not unhealthy.
func (m *ClientManager) GetClient(ctx context.Context) (port.NodeClient, error) {
	return m.getOrBuild(ctx, domain.ClientPlain)
}

// GetTopologyAwareClient returns the client that routes keys through the
// bucket's vbucket map, building it if needed.
func (m *ClientManager) GetTopologyAwareClient(ctx context.Context) (port.NodeClient, error) {
	return m.getOrBuild(ctx, domain.ClientTopologyAware)
}

// Reconfigure installs a new topology and retires both clients. Callers
// already holding a retired client keep a usable reference until it is
// closed.
func (m *ClientManager) Reconfigure(topology domain.Topology) {
	m.topoMu.Lock()
	m.topology = topology
	m.gen.Add(1)
	m.topoMu.Unlock()

	logger.Infow("List of servers changed", "bucket", m.bucket, "nodes", len(topology.Nodes))

	for _, kind := range []domain.ClientKind{domain.ClientPlain, domain.ClientTopologyAware} {
		if old := m.slot(kind).Swap(nil); old != nil {
			m.retire(kind, old.client)
		}
	}
}

// Shutdown unsubscribes from the provider and closes both clients. Pending
// delayed closes run before it returns.
func (m *ClientManager) Shutdown() {
	m.stopOnce.Do(func() {
		m.closed.Store(true)
		m.provider.Unsubscribe(m.bucket, m)

		for _, kind := range []domain.ClientKind{domain.ClientPlain, domain.ClientTopologyAware} {
			if old := m.slot(kind).Swap(nil); old != nil {
				m.closeClient(kind, old.client)
			}
		}
		m.retirer.Stop()
		logger.Infow("Client manager shut down", "bucket", m.bucket)
	})
}

func (m *ClientManager) getOrBuild(ctx context.Context, kind domain.ClientKind) (port.NodeClient, error) {
	slot := m.slot(kind)

	for attempt := 0; attempt < m.maxAttempts; attempt++ {
		if m.closed.Load() {
			return nil, port.ErrManagerClosed
		}

		topology, gen := m.snapshot()
		if e := slot.Load(); e != nil {
			if e.gen == gen {
				return e.client, nil
			}
			// Built from an older topology.
			if slot.CompareAndSwap(e, nil) {
				m.retire(kind, e.client)
			}
			continue
		}

		client, err := m.build(ctx, kind, topology)
		if err != nil {
			return nil, err
		}

		entry := &slotEntry{client: client, gen: gen}
		if !slot.CompareAndSwap(nil, entry) {
			// Another caller published first; use theirs.
			m.closeClient(kind, client)
			continue
		}

		// A reconfiguration or shutdown between snapshot and publish makes
		// the entry stale. Whoever takes it out of the slot closes it.
		if m.gen.Load() != gen || m.closed.Load() {
			if slot.CompareAndSwap(entry, nil) {
				m.retire(kind, client)
			}
			continue
		}

		logger.Infow("Node client published", "bucket", m.bucket, "kind", kind.String(), "generation", gen)
		return client, nil
	}

	return nil, fmt.Errorf("%w: %s client not published after %d attempts", port.ErrClientBuild, kind, m.maxAttempts)
}

func (m *ClientManager) build(ctx context.Context, kind domain.ClientKind, topology domain.Topology) (port.NodeClient, error) {
	spec := m.clientSpec(kind, topology)
	if len(spec.Servers) == 0 {
		err := fmt.Errorf("%w: no usable servers for bucket %s", port.ErrClientBuild, m.bucket)
		logger.Errorw("Failed to build node client", "bucket", m.bucket, "kind", kind.String(), "error", err.Error())
		return nil, err
	}

	client, err := m.factory.Build(ctx, spec)
	if err != nil {
		if !errors.Is(err, port.ErrClientBuild) {
			err = fmt.Errorf("%w: %w", port.ErrClientBuild, err)
		}
		logger.Errorw("Failed to build node client",
			"bucket", m.bucket, "kind", kind.String(), "servers", spec.Servers, "error", err.Error())
		return nil, err
	}
	return client, nil
}

// clientSpec selects the distribution payload and locator for kind.
func (m *ClientManager) clientSpec(kind domain.ClientKind, topology domain.Topology) port.ClientSpec {
	spec := port.ClientSpec{
		Kind:        kind,
		FailureMode: domain.FailureRetry,
		Credentials: m.creds,
	}

	switch kind {
	case domain.ClientTopologyAware:
		vbuckets := topology.VBuckets
		spec.Servers = vbuckets.ServerList
		spec.VBuckets = &vbuckets
		spec.Hash = hashFromPayload(vbuckets.HashAlgorithm)
		spec.Locator = domain.LocatorVBucket
	default:
		spec.Servers = CreateServerList(topology.Nodes, m.preferredPort)
		spec.Hash = domain.HashKetama
		spec.Locator = domain.LocatorConsistent
	}
	return spec
}

func hashFromPayload(algorithm string) domain.HashAlgorithm {
	if strings.EqualFold(algorithm, string(domain.HashCRC)) {
		return domain.HashCRC
	}
	return domain.HashKetama
}

func (m *ClientManager) snapshot() (domain.Topology, uint64) {
	m.topoMu.RLock()
	defer m.topoMu.RUnlock()
	return m.topology, m.gen.Load()
}

func (m *ClientManager) slot(kind domain.ClientKind) *atomic.Pointer[slotEntry] {
	return &m.slots[kind]
}

// retire closes a client taken out of its slot, after the grace period when
// one is configured.
func (m *ClientManager) retire(kind domain.ClientKind, client port.NodeClient) {
	if m.retireGrace <= 0 {
		m.closeClient(kind, client)
		return
	}
	err := m.retirer.SubmitAfter(context.Background(), m.retireGrace, func() {
		m.closeClient(kind, client)
	})
	if err != nil {
		m.closeClient(kind, client)
	}
}

func (m *ClientManager) closeClient(kind domain.ClientKind, client port.NodeClient) {
	if err := client.Close(); err != nil {
		logger.Warnw("Failed to close node client", "bucket", m.bucket, "kind", kind.String(), "error", err.Error())
	}
}
