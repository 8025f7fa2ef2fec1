package docparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/port"
)

const bucketJSON = `{
	"name": "beer",
	"uri": "/pools/default/buckets/beer",
	"streamingUri": "/pools/default/bucketsStreaming/beer",
	"nodes": [
		{"hostname": "10.0.0.1:8091", "status": "healthy", "ports": {"direct": 11210, "proxy": 11211}},
		{"hostname": "10.0.0.2:8091", "status": "unhealthy", "ports": {"direct": 11210, "proxy": 11211}}
	],
	"vBucketServerMap": {
		"hashAlgorithm": "CRC",
		"numReplicas": 1,
		"serverList": ["10.0.0.1:11210", "10.0.0.2:11210"],
		"vBucketMap": [[0, 1], [1, 0], [0, -1]]
	}
}`

func TestParser_ParseBase(t *testing.T) {
	pools, err := New().ParseBase([]byte(`{"pools":[{"name":"default","uri":"/pools/default","streamingUri":"/poolsStreaming/default"}],"isAdminCreds":false}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Pool{
		"default": {Name: "default", URI: "/pools/default"},
	}, pools)

	_, err = New().ParseBase([]byte(`{"pools":`))
	assert.ErrorIs(t, err, port.ErrConfigParse)
}

func TestParser_ParsePool(t *testing.T) {
	pool, err := New().ParsePool(domain.Pool{Name: "default", URI: "/pools/default"},
		[]byte(`{"name":"default","buckets":{"uri":"/pools/default/buckets?v=1"}}`))
	require.NoError(t, err)
	assert.Equal(t, "/pools/default", pool.URI)
	assert.Equal(t, "/pools/default/buckets?v=1", pool.BucketsURI)
}

func TestParser_ParseBucket(t *testing.T) {
	got, err := New().ParseBucket([]byte(bucketJSON))
	require.NoError(t, err)

	assert.Equal(t, "beer", got.Bucket)
	assert.Equal(t, "/pools/default/bucketsStreaming/beer", got.StreamingURI)
	require.Len(t, got.Nodes, 2)
	assert.Equal(t, domain.StatusHealthy, got.Nodes[0].Status)
	assert.Equal(t, domain.StatusUnhealthy, got.Nodes[1].Status)
	assert.Equal(t, 11211, got.Nodes[0].Ports[domain.PortProxy])
	assert.Equal(t, "CRC", got.VBuckets.HashAlgorithm)
	assert.Equal(t, []string{"10.0.0.1:11210", "10.0.0.2:11210"}, got.VBuckets.ServerList)
	assert.Equal(t, [][]int{{0, 1}, {1, 0}, {0, -1}}, got.VBuckets.VBuckets)
}

func TestParser_ParseBucketErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "Truncated", doc: `{"name":"beer","nodes":[`},
		{name: "NoName", doc: `{"nodes":[]}`},
		{name: "NodeWithoutHost", doc: `{"name":"beer","nodes":[{"status":"healthy"}]}`},
		{name: "ServerOutOfRange", doc: `{"name":"beer","vBucketServerMap":{"serverList":["a:1"],"vBucketMap":[[1]]}}`},
		{name: "EmptyVBucket", doc: `{"name":"beer","vBucketServerMap":{"serverList":["a:1"],"vBucketMap":[[]]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().ParseBucket([]byte(tt.doc))
			assert.ErrorIs(t, err, port.ErrConfigParse)
		})
	}
}

func TestParser_ParseBuckets(t *testing.T) {
	got, err := New().ParseBuckets([]byte(`[` + bucketJSON + `,{"name":"default","streamingUri":"/s/default"}]`))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "/s/default", got["default"].StreamingURI)
	assert.Len(t, got["beer"].Nodes, 2)
}
