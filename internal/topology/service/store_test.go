package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
)

func TestTopologyStore_PutIfAbsent(t *testing.T) {
	s := NewTopologyStore()

	first := domain.Topology{Bucket: "beer", StreamingURI: "/first"}
	second := domain.Topology{Bucket: "beer", StreamingURI: "/second"}

	assert.True(t, s.PutIfAbsent("beer", first))
	assert.False(t, s.PutIfAbsent("beer", second))

	got, ok := s.Get("beer")
	assert.True(t, ok)
	assert.Equal(t, "/first", got.StreamingURI)

	s.Put("beer", second)
	got, _ = s.Get("beer")
	assert.Equal(t, "/second", got.StreamingURI)
}

func TestTopologyStore_Names(t *testing.T) {
	s := NewTopologyStore()
	_, ok := s.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, s.Names())

	s.Put("zeta", domain.Topology{})
	s.Put("alpha", domain.Topology{})
	assert.Equal(t, []string{"alpha", "zeta"}, s.Names())
}
