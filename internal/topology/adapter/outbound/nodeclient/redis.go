package nodeclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/port"
	"github.com/anthanhphan/go-bucket-topology/pkg/shard"
)

const (
	defaultDialTimeout   = 2 * time.Second
	defaultVNodesPerNode = 160
)

type FactoryConfig struct {
	DialTimeout time.Duration
	// MaxRetries applies to FailureRetry clients. FailureCancel clients never
	// retry.
	MaxRetries    int
	VNodesPerNode int
}

// RedisFactory builds node clients on go-redis. Plain clients are a
// redis.Ring placed by the murmur3 ring; topology-aware clients route every
// key to the master of its vbucket.
type RedisFactory struct {
	cfg FactoryConfig
}

var _ port.NodeClientFactory = (*RedisFactory)(nil)

func NewRedisFactory(cfg FactoryConfig) *RedisFactory {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.VNodesPerNode <= 0 {
		cfg.VNodesPerNode = defaultVNodesPerNode
	}
	return &RedisFactory{cfg: cfg}
}

// Build returns a client once every server answered a ping.
func (f *RedisFactory) Build(ctx context.Context, spec port.ClientSpec) (port.NodeClient, error) {
	if len(spec.Servers) == 0 {
		return nil, fmt.Errorf("%w: empty server list", port.ErrClientBuild)
	}

	var (
		client port.NodeClient
		err    error
	)
	switch spec.Locator {
	case domain.LocatorVBucket:
		client, err = f.buildVBucket(spec)
	default:
		client = f.buildRing(spec)
	}
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", port.ErrClientBuild, err)
	}

	logger.Infow("Node client connected",
		"kind", spec.Kind.String(), "locator", string(spec.Locator), "servers", len(spec.Servers))
	return client, nil
}

func (f *RedisFactory) options(spec port.ClientSpec) *redis.Options {
	opts := &redis.Options{
		DialTimeout: f.cfg.DialTimeout,
		MaxRetries:  f.maxRetries(spec.FailureMode),
	}
	if spec.Credentials != nil {
		opts.Username = spec.Credentials.Username
		opts.Password = spec.Credentials.Password
	}
	return opts
}

func (f *RedisFactory) maxRetries(mode domain.FailureMode) int {
	if mode == domain.FailureCancel {
		return -1
	}
	if f.cfg.MaxRetries <= 0 {
		return -1
	}
	return f.cfg.MaxRetries
}

func (f *RedisFactory) buildRing(spec port.ClientSpec) *ringClient {
	addrs := make(map[string]string, len(spec.Servers))
	for _, s := range spec.Servers {
		addrs[s] = s
	}

	opts := f.options(spec)
	vnodes := f.cfg.VNodesPerNode
	ring := redis.NewRing(&redis.RingOptions{
		Addrs: addrs,
		NewConsistentHash: func(shards []string) redis.ConsistentHash {
			return shard.NewConsistentHash(shards, vnodes)
		},
		Username:    opts.Username,
		Password:    opts.Password,
		DialTimeout: opts.DialTimeout,
		MaxRetries:  opts.MaxRetries,
	})
	return &ringClient{ring: ring}
}

// ringClient spreads keys over the healthy servers by consistent hashing.
type ringClient struct {
	ring *redis.Ring
}

func (c *ringClient) Get(ctx context.Context, key string) ([]byte, error) {
	return readBytes(c.ring.Get(ctx, key))
}

func (c *ringClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.ring.Set(ctx, key, value, ttl).Err()
}

func (c *ringClient) Delete(ctx context.Context, key string) error {
	return c.ring.Del(ctx, key).Err()
}

func (c *ringClient) Ping(ctx context.Context) error {
	return c.ring.ForEachShard(ctx, func(ctx context.Context, node *redis.Client) error {
		return node.Ping(ctx).Err()
	})
}

func (c *ringClient) Close() error {
	return c.ring.Close()
}

func readBytes(cmd *redis.StringCmd) ([]byte, error) {
	b, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrKeyNotFound
	}
	return b, err
}
