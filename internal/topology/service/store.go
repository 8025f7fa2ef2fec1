package service

import (
	"sort"
	"sync"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
)

// TopologyStore caches the current topology of every known bucket.
type TopologyStore struct {
	mu      sync.RWMutex
	buckets map[string]domain.Topology
}

func NewTopologyStore() *TopologyStore {
	return &TopologyStore{
		buckets: make(map[string]domain.Topology),
	}
}

func (s *TopologyStore) Get(bucket string) (domain.Topology, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.buckets[bucket]
	return t, ok
}

// Put replaces the topology of a bucket. Only the bucket's watcher calls it
// once the bucket is cached.
func (s *TopologyStore) Put(bucket string, topology domain.Topology) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[bucket] = topology
}

// PutIfAbsent stores topology unless the bucket is already known and reports
// whether it was stored. Resolution uses it so a bucket seen on an earlier
// candidate is never overwritten by a later one.
func (s *TopologyStore) PutIfAbsent(bucket string, topology domain.Topology) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buckets[bucket]; ok {
		return false
	}
	s.buckets[bucket] = topology
	return true
}

// Names returns the cached bucket names in sorted order.
func (s *TopologyStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.buckets))
	for name := range s.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
