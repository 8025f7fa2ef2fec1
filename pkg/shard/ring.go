package shard

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spaolacci/murmur3"
)

const (
	// DefaultVNodesPerNode is the default number of virtual nodes per physical node.
	// A higher number improves distribution balance but increases ring size.
	DefaultVNodesPerNode = 160
)

// Ring manages the consistent hashing ring. Tokens depend only on node IDs, so
// the same set of nodes always yields the same key placement regardless of the
// order in which they were added.
type Ring struct {
	mu            sync.RWMutex
	vnodes        []VNode // Sorted list of all vnodes on the ring
	nodes         map[string]Node
	vnodesPerNode int
}

// NewRing creates a new consistent hashing ring.
func NewRing(vnodesPerNode int) *Ring {
	if vnodesPerNode <= 0 {
		vnodesPerNode = DefaultVNodesPerNode
	}
	return &Ring{
		vnodes:        make([]VNode, 0),
		nodes:         make(map[string]Node),
		vnodesPerNode: vnodesPerNode,
	}
}

// AddNode adds a physical node to the ring.
func (r *Ring) AddNode(node Node) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.nodes[node.ID]; exists {
		r.nodes[node.ID] = node
		return
	}

	r.nodes[node.ID] = node

	for i := 0; i < r.vnodesPerNode; i++ {
		token := hashData([]byte(fmt.Sprintf("%s-%d", node.ID, i)))
		r.vnodes = append(r.vnodes, VNode{
			Token:  token,
			NodeID: node.ID,
		})
	}

	// Ties are broken by node ID to keep placement independent of insertion order.
	sort.Slice(r.vnodes, func(i, j int) bool {
		if r.vnodes[i].Token == r.vnodes[j].Token {
			return r.vnodes[i].NodeID < r.vnodes[j].NodeID
		}
		return r.vnodes[i].Token < r.vnodes[j].Token
	})
}

// LocateKey finds the node that owns the given key.
func (r *Ring) LocateKey(key []byte) (Node, bool) {
	return r.LocateToken(hashData(key))
}

// LocateToken finds the node that owns the given token.
func (r *Ring) LocateToken(token uint64) (Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.vnodes) == 0 {
		return Node{}, false
	}

	// Binary search for the first vnode with token >= target token
	idx := sort.Search(len(r.vnodes), func(i int) bool {
		return r.vnodes[i].Token >= token
	})

	// Wrap around to the first vnode if we reached the end
	if idx == len(r.vnodes) {
		idx = 0
	}

	return r.nodes[r.vnodes[idx].NodeID], true
}

// GetNodes returns all physical nodes in the ring, sorted by ID.
func (r *Ring) GetNodes() []Node {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodes := make([]Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

func hashData(data []byte) uint64 {
	return murmur3.Sum64(data)
}
