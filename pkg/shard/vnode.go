package shard

import (
	"fmt"
)

// Node represents a physical server on the ring.
type Node struct {
	ID   string `json:"id"`
	Addr string `json:"addr"`
}

func (n Node) String() string {
	return fmt.Sprintf("%s@%s", n.ID, n.Addr)
}

// VNode represents a virtual node on the ring.
// It points to a physical Node.
type VNode struct {
	Token  uint64
	NodeID string
}
