package nodeclient

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spaolacci/murmur3"
	"golang.org/x/sync/errgroup"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/port"
)

var ErrNoMaster = errors.New("vbucket has no master")

func (f *RedisFactory) buildVBucket(spec port.ClientSpec) (*vbucketClient, error) {
	if spec.VBuckets == nil || len(spec.VBuckets.VBuckets) == 0 {
		return nil, fmt.Errorf("%w: topology-aware client needs a vbucket map", port.ErrClientBuild)
	}

	clients := make(map[string]*redis.Client, len(spec.Servers))
	for _, s := range spec.Servers {
		opts := f.options(spec)
		opts.Addr = s
		clients[s] = redis.NewClient(opts)
	}
	return newVBucketClient(*spec.VBuckets, spec.Hash, clients), nil
}

// vbucketClient sends each key to the master server of the key's vbucket.
type vbucketClient struct {
	vbuckets domain.VBucketMap
	hash     domain.HashAlgorithm
	clients  map[string]*redis.Client
}

func newVBucketClient(vbuckets domain.VBucketMap, hash domain.HashAlgorithm, clients map[string]*redis.Client) *vbucketClient {
	return &vbucketClient{
		vbuckets: vbuckets,
		hash:     hash,
		clients:  clients,
	}
}

// vbucketOf maps key to a vbucket index.
func (c *vbucketClient) vbucketOf(key string) int {
	n := uint32(len(c.vbuckets.VBuckets))
	if c.hash == domain.HashCRC {
		crc := crc32.ChecksumIEEE([]byte(key))
		return int(((crc >> 16) & 0x7fff) % n)
	}
	return int(murmur3.Sum32([]byte(key)) % n)
}

func (c *vbucketClient) clientFor(key string) (*redis.Client, error) {
	vb := c.vbucketOf(key)
	master := c.vbuckets.VBuckets[vb][0]
	if master < 0 || master >= len(c.vbuckets.ServerList) {
		return nil, fmt.Errorf("%w: vbucket %d", ErrNoMaster, vb)
	}
	client, ok := c.clients[c.vbuckets.ServerList[master]]
	if !ok {
		return nil, fmt.Errorf("%w: vbucket %d: server %s not connected", ErrNoMaster, vb, c.vbuckets.ServerList[master])
	}
	return client, nil
}

func (c *vbucketClient) Get(ctx context.Context, key string) ([]byte, error) {
	client, err := c.clientFor(key)
	if err != nil {
		return nil, err
	}
	return readBytes(client.Get(ctx, key))
}

func (c *vbucketClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	client, err := c.clientFor(key)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, value, ttl).Err()
}

func (c *vbucketClient) Delete(ctx context.Context, key string) error {
	client, err := c.clientFor(key)
	if err != nil {
		return err
	}
	return client.Del(ctx, key).Err()
}

// Ping checks every server in parallel.
func (c *vbucketClient) Ping(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for addr, client := range c.clients {
		g.Go(func() error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("%s: %w", addr, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (c *vbucketClient) Close() error {
	var errs []error
	for _, client := range c.clients {
		if err := client.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
