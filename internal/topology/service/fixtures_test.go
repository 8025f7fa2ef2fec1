package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/mock/gomock"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/port"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/service/mocks"
)

// fakeCluster serves control-plane fixtures through the gomock control plane
// and parser. A fetched document is its own URI, which the parser uses to
// look the fixture up.
type fakeCluster struct {
	mu       sync.Mutex
	bases    map[string]map[string]domain.Pool
	pools    map[string]string
	buckets  map[string]map[string]domain.Topology
	failures map[string]error
	fetches  []string

	// When gate is set every fetch reports on started and then blocks until
	// gate is closed or its context ends.
	gate    chan struct{}
	started chan struct{}
}

func newFakeCluster() *fakeCluster {
	return &fakeCluster{
		bases:    make(map[string]map[string]domain.Pool),
		pools:    make(map[string]string),
		buckets:  make(map[string]map[string]domain.Topology),
		failures: make(map[string]error),
	}
}

// withDefaultPool registers a candidate whose default pool lists buckets.
func (c *fakeCluster) withDefaultPool(base string, buckets ...domain.Topology) *fakeCluster {
	host := strings.TrimSuffix(base, "/pools")
	c.bases[base] = map[string]domain.Pool{
		"default": {Name: "default", URI: "/pools/default"},
	}
	c.pools[host+"/pools/default"] = "/pools/default/buckets"
	list := make(map[string]domain.Topology, len(buckets))
	for _, b := range buckets {
		list[b.Bucket] = b
	}
	c.buckets[host+"/pools/default/buckets"] = list
	return c
}

// withFailingPool adds a second pool to base whose document cannot be fetched.
func (c *fakeCluster) withFailingPool(base, name string) *fakeCluster {
	host := strings.TrimSuffix(base, "/pools")
	uri := "/pools/" + name
	c.bases[base][name] = domain.Pool{Name: name, URI: uri}
	c.failures[host+uri] = &port.FetchError{URI: host + uri, Err: errors.New("connection reset by peer")}
	return c
}

// blockFetches makes every fetch wait until the returned release is called.
func (c *fakeCluster) blockFetches() (release func()) {
	c.gate = make(chan struct{})
	c.started = make(chan struct{}, 64)
	var once sync.Once
	return func() { once.Do(func() { close(c.gate) }) }
}

func (c *fakeCluster) fetch(ctx context.Context, u *url.URL, _ *domain.Credentials) ([]byte, error) {
	if c.gate != nil {
		c.started <- struct{}{}
		select {
		case <-c.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetches = append(c.fetches, u.String())
	if err, ok := c.failures[u.String()]; ok {
		return nil, err
	}
	return []byte(u.String()), nil
}

func (c *fakeCluster) fetched() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.fetches...)
}

func (c *fakeCluster) expect(cp *mocks.MockControlPlane, parser *mocks.MockDocumentParser) {
	cp.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(c.fetch).AnyTimes()
	cp.EXPECT().Stream(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ *url.URL, _ *domain.Credentials) (io.ReadCloser, error) {
			return idleStream(ctx), nil
		}).AnyTimes()

	parser.EXPECT().ParseBase(gomock.Any()).DoAndReturn(func(data []byte) (map[string]domain.Pool, error) {
		pools, ok := c.bases[string(data)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", port.ErrConfigParse, data)
		}
		return pools, nil
	}).AnyTimes()
	parser.EXPECT().ParsePool(gomock.Any(), gomock.Any()).DoAndReturn(func(pool domain.Pool, data []byte) (domain.Pool, error) {
		pool.BucketsURI = c.pools[string(data)]
		return pool, nil
	}).AnyTimes()
	parser.EXPECT().ParseBuckets(gomock.Any()).DoAndReturn(func(data []byte) (map[string]domain.Topology, error) {
		return c.buckets[string(data)], nil
	}).AnyTimes()
	parser.EXPECT().ParseBucket(gomock.Any()).DoAndReturn(parseFrame).AnyTimes()
}

// idleStream stays open until ctx is canceled.
func idleStream(ctx context.Context) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		<-ctx.Done()
		_ = pw.CloseWithError(ctx.Err())
	}()
	return pr
}

// parseFrame understands "bucket:revision" frames. The revision ends up in
// StreamingURI so tests can tell snapshots apart.
func parseFrame(data []byte) (domain.Topology, error) {
	name, rev, ok := strings.Cut(string(data), ":")
	if !ok {
		return domain.Topology{}, fmt.Errorf("%w: %q", port.ErrConfigParse, data)
	}
	if _, err := strconv.Atoi(rev); err != nil {
		return domain.Topology{}, fmt.Errorf("%w: %q", port.ErrConfigParse, data)
	}
	return domain.Topology{Bucket: name, StreamingURI: "rev-" + rev}, nil
}

// recorder is a Reconfigurable that keeps every topology it receives.
type recorder struct {
	mu   sync.Mutex
	seen []domain.Topology
}

func (r *recorder) Reconfigure(t domain.Topology) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, t)
}

func (r *recorder) revisions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.seen))
	for _, t := range r.seen {
		out = append(out, t.StreamingURI)
	}
	return out
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}
