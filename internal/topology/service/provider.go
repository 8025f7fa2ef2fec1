package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"golang.org/x/sync/singleflight"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/port"
	"github.com/anthanhphan/go-bucket-topology/pkg/resilience"
)

// AnonymousBucket can be opened without credentials.
const AnonymousBucket = "default"

// defaultPool must exist on a candidate for it to be considered.
const defaultPool = "default"

const (
	defaultFetchTimeout       = 5 * time.Second
	defaultBreakerThreshold   = 3
	defaultBreakerOpenTimeout = 30 * time.Second
)

type ProviderConfig struct {
	Endpoints   []string
	Credentials *domain.Credentials

	// FetchTimeout bounds the whole scan of one candidate endpoint.
	FetchTimeout time.Duration

	BreakerFailureThreshold int
	BreakerOpenTimeout      time.Duration

	Watcher WatcherConfig
}

// Provider is the ConfigurationProvider backed by a REST control plane. It
// caches bucket topologies and runs one change feed watcher per subscribed
// bucket.
type Provider struct {
	endpoints    []*url.URL
	breakers     []*resilience.CircuitBreaker
	creds        *domain.Credentials
	fetchTimeout time.Duration
	watcherCfg   WatcherConfig

	controlPlane port.ControlPlane
	parser       port.DocumentParser
	store        *TopologyStore
	lookups      singleflight.Group

	mu       sync.Mutex
	bases    map[string]*url.URL
	watchers map[string]*ChangeFeedWatcher
	closed   bool
}

var (
	_ port.ConfigurationProvider = (*Provider)(nil)
	_ port.TopologyQuery         = (*Provider)(nil)
)

func NewProvider(cfg ProviderConfig, controlPlane port.ControlPlane, parser port.DocumentParser) (*Provider, error) {
	endpoints, err := ParseEndpoints(cfg.Endpoints)
	if err != nil {
		return nil, err
	}
	if controlPlane == nil || parser == nil {
		return nil, errors.New("control plane and document parser are required")
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.BreakerFailureThreshold <= 0 {
		cfg.BreakerFailureThreshold = defaultBreakerThreshold
	}
	if cfg.BreakerOpenTimeout <= 0 {
		cfg.BreakerOpenTimeout = defaultBreakerOpenTimeout
	}

	breakers := make([]*resilience.CircuitBreaker, len(endpoints))
	for i, e := range endpoints {
		breakers[i] = resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:             e.Redacted(),
			FailureThreshold: cfg.BreakerFailureThreshold,
			OpenTimeout:      cfg.BreakerOpenTimeout,
			IsFailure:        isCandidateFailure,
		})
	}

	return &Provider{
		endpoints:    endpoints,
		breakers:     breakers,
		creds:        cfg.Credentials,
		fetchTimeout: cfg.FetchTimeout,
		watcherCfg:   cfg.Watcher.withDefaults(),
		controlPlane: controlPlane,
		parser:       parser,
		store:        NewTopologyStore(),
		bases:        make(map[string]*url.URL),
		watchers:     make(map[string]*ChangeFeedWatcher),
	}, nil
}

// ParseEndpoints parses candidate control-plane endpoints. Every entry must
// be an absolute URL with a host.
func ParseEndpoints(endpoints []string) ([]*url.URL, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("%w: no control plane endpoint configured", port.ErrRelativeEndpoint)
	}

	out := make([]*url.URL, 0, len(endpoints))
	for _, raw := range endpoints {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", port.ErrRelativeEndpoint, raw, err)
		}
		if !u.IsAbs() || u.Host == "" {
			return nil, fmt.Errorf("%w: %q", port.ErrRelativeEndpoint, raw)
		}
		out = append(out, u)
	}
	return out, nil
}

func (p *Provider) AnonymousBucket() string {
	return AnonymousBucket
}

func (p *Provider) GetTopology(ctx context.Context, bucket string) (domain.Topology, error) {
	if strings.TrimSpace(bucket) == "" {
		return domain.Topology{}, port.ErrInvalidBucket
	}
	if t, ok := p.store.Get(bucket); ok {
		return t, nil
	}
	if p.isClosed() {
		return domain.Topology{}, port.ErrProviderClosed
	}

	// The shared lookup runs detached from any one caller; each candidate
	// is still bounded by fetchTimeout.
	lookupCtx := context.WithoutCancel(ctx)
	ch := p.lookups.DoChan(bucket, func() (interface{}, error) {
		return p.resolve(lookupCtx, bucket)
	})
	select {
	case <-ctx.Done():
		return domain.Topology{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Topology{}, res.Err
		}
		return res.Val.(domain.Topology), nil
	}
}

// Lookup returns the cached topology without contacting the control plane.
func (p *Provider) Lookup(bucket string) (domain.Topology, bool) {
	return p.store.Get(bucket)
}

// Buckets lists every bucket with a cached topology.
func (p *Provider) Buckets() []string {
	return p.store.Names()
}

// ServerList returns the server list of the bucket's distribution payload.
func (p *Provider) ServerList(ctx context.Context, bucket string) ([]string, error) {
	t, err := p.GetTopology(ctx, bucket)
	if err != nil {
		return nil, err
	}
	return t.VBuckets.ServerList, nil
}

// LatestDistribution returns the bucket's current distribution payload.
func (p *Provider) LatestDistribution(ctx context.Context, bucket string) (domain.VBucketMap, error) {
	t, err := p.GetTopology(ctx, bucket)
	if err != nil {
		return domain.VBucketMap{}, err
	}
	return t.VBuckets, nil
}

// BaseEndpoint returns the candidate endpoint that satisfied the lookup of
// bucket.
func (p *Provider) BaseEndpoint(bucket string) (*url.URL, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	base, ok := p.bases[bucket]
	return base, ok
}

// StreamingURI resolves the bucket's change feed URI against the endpoint
// that satisfied its lookup.
func (p *Provider) StreamingURI(bucket string) (*url.URL, error) {
	t, ok := p.store.Get(bucket)
	if !ok {
		return nil, fmt.Errorf("%w: bucket %q", port.ErrConfigNotFound, bucket)
	}
	base, ok := p.BaseEndpoint(bucket)
	if !ok {
		return nil, fmt.Errorf("%w: no base endpoint for bucket %q", port.ErrConfigNotFound, bucket)
	}
	if t.StreamingURI == "" {
		return nil, fmt.Errorf("%w: bucket %q has no streaming uri", port.ErrConfigParse, bucket)
	}
	return resolveRef(base, t.StreamingURI)
}

func (p *Provider) Subscribe(ctx context.Context, bucket string, sub port.Reconfigurable) error {
	if sub == nil {
		return errors.New("subscriber is required")
	}
	if _, err := p.GetTopology(ctx, bucket); err != nil {
		return err
	}
	uri, err := p.StreamingURI(bucket)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return port.ErrProviderClosed
	}

	w, ok := p.watchers[bucket]
	if !ok {
		w = NewChangeFeedWatcher(bucket, uri, p.creds, p.controlPlane, p.parser, p.store, p.watcherCfg)
		p.watchers[bucket] = w
		w.Start()
	}
	w.AddSubscriber(sub)
	return nil
}

func (p *Provider) Unsubscribe(bucket string, sub port.Reconfigurable) {
	p.mu.Lock()
	w, ok := p.watchers[bucket]
	p.mu.Unlock()
	if !ok {
		return
	}
	w.RemoveSubscriber(sub)
}

// Shutdown stops every watcher and waits until their goroutines have exited.
// A subscriber that wants to stop the provider from Reconfigure must call it
// on a new goroutine.
func (p *Provider) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	watchers := p.watchers
	p.watchers = make(map[string]*ChangeFeedWatcher)
	p.mu.Unlock()

	for _, w := range watchers {
		w.Shutdown()
	}
	logger.Infow("Configuration provider shut down", "watchers", len(watchers))
}

func (p *Provider) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Provider) rememberBase(bucket string, base *url.URL) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.bases[bucket]; !ok {
		p.bases[bucket] = base
	}
}
