package docparser

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/port"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type baseDoc struct {
	Pools []poolRef `json:"pools"`
}

type poolRef struct {
	Name         string `json:"name"`
	URI          string `json:"uri"`
	StreamingURI string `json:"streamingUri"`
}

type poolDoc struct {
	Name    string `json:"name"`
	Buckets struct {
		URI string `json:"uri"`
	} `json:"buckets"`
}

type bucketDoc struct {
	Name             string      `json:"name"`
	URI              string      `json:"uri"`
	StreamingURI     string      `json:"streamingUri"`
	Nodes            []nodeDoc   `json:"nodes"`
	VBucketServerMap *vbucketDoc `json:"vBucketServerMap"`
}

type nodeDoc struct {
	Hostname string         `json:"hostname"`
	Status   string         `json:"status"`
	Ports    map[string]int `json:"ports"`
}

type vbucketDoc struct {
	HashAlgorithm string   `json:"hashAlgorithm"`
	NumReplicas   int      `json:"numReplicas"`
	ServerList    []string `json:"serverList"`
	VBucketMap    [][]int  `json:"vBucketMap"`
}

// Parser decodes control-plane JSON documents. It keeps no state.
type Parser struct{}

var _ port.DocumentParser = Parser{}

func New() Parser {
	return Parser{}
}

func (Parser) ParseBase(data []byte) (map[string]domain.Pool, error) {
	var doc baseDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: base document: %v", port.ErrConfigParse, err)
	}

	pools := make(map[string]domain.Pool, len(doc.Pools))
	for _, p := range doc.Pools {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: base document: pool without name", port.ErrConfigParse)
		}
		pools[p.Name] = domain.Pool{Name: p.Name, URI: p.URI}
	}
	return pools, nil
}

func (Parser) ParsePool(pool domain.Pool, data []byte) (domain.Pool, error) {
	var doc poolDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Pool{}, fmt.Errorf("%w: pool %s: %v", port.ErrConfigParse, pool.Name, err)
	}
	pool.BucketsURI = doc.Buckets.URI
	return pool, nil
}

func (Parser) ParseBuckets(data []byte) (map[string]domain.Topology, error) {
	var docs []bucketDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: bucket list: %v", port.ErrConfigParse, err)
	}

	buckets := make(map[string]domain.Topology, len(docs))
	for _, doc := range docs {
		t, err := toTopology(doc)
		if err != nil {
			return nil, err
		}
		buckets[t.Bucket] = t
	}
	return buckets, nil
}

func (Parser) ParseBucket(data []byte) (domain.Topology, error) {
	var doc bucketDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Topology{}, fmt.Errorf("%w: bucket: %v", port.ErrConfigParse, err)
	}
	return toTopology(doc)
}

func toTopology(doc bucketDoc) (domain.Topology, error) {
	if doc.Name == "" {
		return domain.Topology{}, fmt.Errorf("%w: bucket without name", port.ErrConfigParse)
	}

	t := domain.Topology{
		Bucket:       doc.Name,
		StreamingURI: doc.StreamingURI,
		Nodes:        make([]domain.Node, 0, len(doc.Nodes)),
	}
	for _, n := range doc.Nodes {
		if n.Hostname == "" {
			return domain.Topology{}, fmt.Errorf("%w: bucket %s: node without hostname", port.ErrConfigParse, doc.Name)
		}
		ports := make(map[domain.PortRole]int, len(n.Ports))
		for role, p := range n.Ports {
			ports[domain.PortRole(role)] = p
		}
		t.Nodes = append(t.Nodes, domain.Node{
			Hostname: n.Hostname,
			Status:   domain.Status(n.Status),
			Ports:    ports,
		})
	}

	if vb := doc.VBucketServerMap; vb != nil {
		if err := validateVBuckets(doc.Name, vb); err != nil {
			return domain.Topology{}, err
		}
		t.VBuckets = domain.VBucketMap{
			HashAlgorithm: vb.HashAlgorithm,
			NumReplicas:   vb.NumReplicas,
			ServerList:    vb.ServerList,
			VBuckets:      vb.VBucketMap,
		}
	}
	return t, nil
}

// validateVBuckets checks that every vbucket entry points into the server
// list. -1 marks a missing replica.
func validateVBuckets(bucket string, vb *vbucketDoc) error {
	for i, entry := range vb.VBucketMap {
		if len(entry) == 0 {
			return fmt.Errorf("%w: bucket %s: vbucket %d is empty", port.ErrConfigParse, bucket, i)
		}
		for _, idx := range entry {
			if idx < -1 || idx >= len(vb.ServerList) {
				return fmt.Errorf("%w: bucket %s: vbucket %d references server %d of %d",
					port.ErrConfigParse, bucket, i, idx, len(vb.ServerList))
			}
		}
	}
	return nil
}
