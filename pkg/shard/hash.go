package shard

// ConsistentHash maps keys to shard names. It satisfies the ConsistentHash
// interface of go-redis' Ring so a Ring of servers can drive key placement of
// a redis.Ring client.
type ConsistentHash struct {
	ring *Ring
}

// NewConsistentHash builds a ring where every shard name is its own node.
func NewConsistentHash(shards []string, vnodesPerNode int) *ConsistentHash {
	ring := NewRing(vnodesPerNode)
	for _, s := range shards {
		ring.AddNode(Node{ID: s, Addr: s})
	}
	return &ConsistentHash{ring: ring}
}

// Get returns the shard that owns key, or "" when there are no shards.
func (h *ConsistentHash) Get(key string) string {
	node, ok := h.ring.LocateKey([]byte(key))
	if !ok {
		return ""
	}
	return node.ID
}
