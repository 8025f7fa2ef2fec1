package domain

import (
	"fmt"
	"net"
)

// Status is the health state the control plane reports for a node.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusWarmup    Status = "warmup"
)

// PortRole names one of the ports a node exposes.
type PortRole string

const (
	PortDirect PortRole = "direct"
	PortProxy  PortRole = "proxy"
)

// Node is a single cluster member as described by the control plane.
type Node struct {
	Hostname string           `json:"hostname"`
	Ports    map[PortRole]int `json:"ports"`
	Status   Status           `json:"status"`
}

// Host returns the hostname without the control-plane port, if any.
func (n Node) Host() string {
	if host, _, err := net.SplitHostPort(n.Hostname); err == nil {
		return host
	}
	return n.Hostname
}

func (n Node) String() string {
	return fmt.Sprintf("%s[%s]", n.Hostname, n.Status)
}

// VBucketMap is the distribution policy of a bucket. The core passes it to the
// node client factory untouched.
type VBucketMap struct {
	HashAlgorithm string   `json:"hash_algorithm"`
	NumReplicas   int      `json:"num_replicas"`
	ServerList    []string `json:"server_list"`
	VBuckets      [][]int  `json:"vbuckets"`
}

// Topology is an immutable snapshot of one bucket. A change replaces the whole
// value; callers must not modify the slices or maps it carries.
type Topology struct {
	Bucket       string     `json:"bucket"`
	StreamingURI string     `json:"streaming_uri"`
	Nodes        []Node     `json:"nodes"`
	VBuckets     VBucketMap `json:"vbuckets"`
}

// Pool groups buckets on the control plane.
type Pool struct {
	Name       string
	URI        string
	BucketsURI string
	Buckets    map[string]Topology
}

// Credentials authenticate against the control plane and the nodes.
type Credentials struct {
	Username string
	Password string
}
