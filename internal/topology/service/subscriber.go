package service

import (
	"sync"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/port"
)

// ChanSubscriber turns reconfiguration callbacks into a channel. The channel
// holds at most one pending topology; a newer one replaces it, so a slow
// reader only ever sees the latest state.
type ChanSubscriber struct {
	ch chan domain.Topology

	mu     sync.Mutex
	latest *domain.Topology
}

var _ port.Reconfigurable = (*ChanSubscriber)(nil)

func NewChanSubscriber() *ChanSubscriber {
	return &ChanSubscriber{ch: make(chan domain.Topology, 1)}
}

func (s *ChanSubscriber) Reconfigure(topology domain.Topology) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = &topology
	select {
	case s.ch <- topology:
		return
	default:
	}

	// Replace the pending value.
	select {
	case <-s.ch:
	default:
	}
	s.ch <- topology
}

// C delivers topology changes.
func (s *ChanSubscriber) C() <-chan domain.Topology {
	return s.ch
}

// Latest returns the most recent topology received, if any.
func (s *ChanSubscriber) Latest() (domain.Topology, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return domain.Topology{}, false
	}
	return *s.latest, true
}
