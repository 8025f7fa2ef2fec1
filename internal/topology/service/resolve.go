package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/hashicorp/go-multierror"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/port"
)

// resolve scans the candidates in order until one of them knows bucket.
// Buckets discovered on the way are cached too once their candidate scanned
// cleanly; the first candidate to report a bucket wins.
func (p *Provider) resolve(ctx context.Context, bucket string) (domain.Topology, error) {
	if t, ok := p.store.Get(bucket); ok {
		return t, nil
	}

	var (
		errs    *multierror.Error
		reached bool
	)
	for i, base := range p.endpoints {
		if err := ctx.Err(); err != nil {
			return domain.Topology{}, err
		}

		var found map[string]domain.Topology
		err := p.breakers[i].Execute(ctx, func(ctx context.Context) error {
			var err error
			found, err = p.scanCandidate(ctx, base)
			return err
		})
		if err != nil {
			logger.Warnw("Skipping control plane candidate",
				"endpoint", base.Redacted(), "bucket", bucket, "error", err.Error())
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", base.Redacted(), err))
			continue
		}
		reached = true

		for name, t := range found {
			if p.store.PutIfAbsent(name, t) {
				p.rememberBase(name, base)
			}
		}

		if t, ok := p.store.Get(bucket); ok {
			if b, ok := p.BaseEndpoint(bucket); ok {
				logger.Infow("Bucket topology resolved", "bucket", bucket, "base", b.Redacted(), "nodes", len(t.Nodes))
			}
			return t, nil
		}
	}

	if !reached {
		return domain.Topology{}, fmt.Errorf("%w: %w", port.ErrConfigUnreachable, errs.ErrorOrNil())
	}
	if errs != nil {
		return domain.Topology{}, fmt.Errorf("%w: bucket %q: %w", port.ErrConfigNotFound, bucket, errs)
	}
	return domain.Topology{}, fmt.Errorf("%w: bucket %q", port.ErrConfigNotFound, bucket)
}

// scanCandidate returns every bucket the candidate reports. Nothing is
// returned unless all of its pools load. A candidate without a default pool
// is reachable but contributes nothing.
func (p *Provider) scanCandidate(ctx context.Context, base *url.URL) (map[string]domain.Topology, error) {
	ctx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	data, err := p.controlPlane.Fetch(ctx, base, p.creds)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty base document", port.ErrConfigParse)
	}

	pools, err := p.parser.ParseBase(data)
	if err != nil {
		return nil, err
	}
	if _, ok := pools[defaultPool]; !ok {
		logger.Warnw("Control plane candidate has no default pool", "endpoint", base.Redacted())
		return nil, nil
	}

	found := make(map[string]domain.Topology)
	for _, name := range poolOrder(pools) {
		buckets, err := p.fetchPoolBuckets(ctx, base, pools[name])
		if err != nil {
			return nil, fmt.Errorf("pool %s: %w", name, err)
		}
		for bucketName, t := range buckets {
			if _, seen := found[bucketName]; seen {
				continue
			}
			if t.Bucket == "" {
				t.Bucket = bucketName
			}
			found[bucketName] = t
		}
	}
	return found, nil
}

func (p *Provider) fetchPoolBuckets(ctx context.Context, base *url.URL, pool domain.Pool) (map[string]domain.Topology, error) {
	poolURI, err := resolveRef(base, pool.URI)
	if err != nil {
		return nil, err
	}
	data, err := p.controlPlane.Fetch(ctx, poolURI, p.creds)
	if err != nil {
		return nil, err
	}
	pool, err = p.parser.ParsePool(pool, data)
	if err != nil {
		return nil, err
	}
	if pool.BucketsURI == "" {
		return nil, fmt.Errorf("%w: pool %s has no buckets uri", port.ErrConfigParse, pool.Name)
	}

	bucketsURI, err := resolveRef(base, pool.BucketsURI)
	if err != nil {
		return nil, err
	}
	data, err = p.controlPlane.Fetch(ctx, bucketsURI, p.creds)
	if err != nil {
		return nil, err
	}
	buckets, err := p.parser.ParseBuckets(data)
	if err != nil {
		return nil, err
	}

	// Buckets embedded in the pool document come first.
	merged := make(map[string]domain.Topology, len(pool.Buckets)+len(buckets))
	for name, t := range pool.Buckets {
		merged[name] = t
	}
	for name, t := range buckets {
		if _, ok := merged[name]; !ok {
			merged[name] = t
		}
	}
	return merged, nil
}

// poolOrder puts the default pool first and the rest in name order.
func poolOrder(pools map[string]domain.Pool) []string {
	names := make([]string, 0, len(pools))
	for name := range pools {
		if name != defaultPool {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{defaultPool}, names...)
}

func resolveRef(base *url.URL, ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: bad uri %q: %v", port.ErrConfigParse, ref, err)
	}
	return base.ResolveReference(u), nil
}

func isCandidateFailure(err error) bool {
	return errors.Is(err, port.ErrConfigUnreachable) || errors.Is(err, port.ErrAuthRejected)
}
