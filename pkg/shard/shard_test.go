package shard

import (
	"fmt"
	"testing"
)

func TestRing_AddNode(t *testing.T) {
	ring := NewRing(10)

	ring.AddNode(Node{ID: "node1", Addr: "127.0.0.1:11210"})
	if len(ring.nodes) != 1 {
		t.Errorf("Expected 1 node, got %d", len(ring.nodes))
	}
	if len(ring.vnodes) != 10 {
		t.Errorf("Expected 10 vnodes, got %d", len(ring.vnodes))
	}

	ring.AddNode(Node{ID: "node2", Addr: "127.0.0.1:11211"})
	if len(ring.nodes) != 2 {
		t.Errorf("Expected 2 nodes, got %d", len(ring.nodes))
	}
	if len(ring.vnodes) != 20 {
		t.Errorf("Expected 20 vnodes, got %d", len(ring.vnodes))
	}

	// Re-adding refreshes metadata without adding vnodes.
	ring.AddNode(Node{ID: "node2", Addr: "10.0.0.2:11211"})
	if len(ring.vnodes) != 20 {
		t.Errorf("Expected 20 vnodes after refresh, got %d", len(ring.vnodes))
	}
	if got := ring.GetNodes()[1].Addr; got != "10.0.0.2:11211" {
		t.Errorf("Expected refreshed addr, got %s", got)
	}
}

func TestRing_LocateKey(t *testing.T) {
	ring := NewRing(10)
	if _, ok := ring.LocateKey([]byte("k")); ok {
		t.Fatal("expected empty ring to locate nothing")
	}

	ring.AddNode(Node{ID: "node1", Addr: "1"})
	ring.AddNode(Node{ID: "node2", Addr: "2"})

	owner, ok := ring.LocateKey([]byte("some-key"))
	if !ok {
		t.Fatal("expected a node")
	}
	if owner.ID != "node1" && owner.ID != "node2" {
		t.Errorf("LocateKey returned unknown node: %v", owner)
	}
}

func TestConsistentHash_OrderStable(t *testing.T) {
	a := NewConsistentHash([]string{"a:11210", "b:11210", "c:11210"}, 0)
	b := NewConsistentHash([]string{"c:11210", "a:11210", "b:11210"}, 0)

	for i := 0; i < 1000; i++ {
		key := fmt.Sprintf("key-%d", i)
		if a.Get(key) != b.Get(key) {
			t.Fatalf("placement of %s depends on shard order: %s vs %s", key, a.Get(key), b.Get(key))
		}
	}
}

func TestConsistentHash_Empty(t *testing.T) {
	h := NewConsistentHash(nil, 10)
	if got := h.Get("key"); got != "" {
		t.Fatalf("expected empty shard, got %q", got)
	}
}
