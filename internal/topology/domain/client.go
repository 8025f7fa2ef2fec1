package domain

// ClientKind selects which distribution payload a node client is built from.
type ClientKind int

const (
	// ClientPlain routes keys by consistent hashing over healthy nodes.
	ClientPlain ClientKind = iota
	// ClientTopologyAware routes keys through the bucket's vbucket map.
	ClientTopologyAware
)

func (k ClientKind) String() string {
	switch k {
	case ClientPlain:
		return "plain"
	case ClientTopologyAware:
		return "topology_aware"
	default:
		return "unknown"
	}
}

type HashAlgorithm string

const (
	HashKetama HashAlgorithm = "ketama"
	HashCRC    HashAlgorithm = "crc"
)

type Locator string

const (
	LocatorConsistent Locator = "consistent"
	LocatorVBucket    Locator = "vbucket"
)

// FailureMode tells the node client what to do with a request whose node
// connection has failed.
type FailureMode string

const (
	FailureRetry  FailureMode = "retry"
	FailureCancel FailureMode = "cancel"
)
