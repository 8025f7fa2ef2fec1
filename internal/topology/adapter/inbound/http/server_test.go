package http_handler

import (
	"io"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/service/mocks"
)

func TestServer_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockTopologyQuery(ctrl)
	status := mocks.NewMockClientStatus(ctrl)

	beer := domain.Topology{
		Bucket:       "beer",
		StreamingURI: "/pools/default/bucketsStreaming/beer",
		Nodes:        []domain.Node{{Hostname: "10.0.0.1:8091", Status: domain.StatusHealthy}},
	}
	query.EXPECT().Buckets().Return([]string{"beer"}).AnyTimes()
	query.EXPECT().Lookup("beer").Return(beer, true).AnyTimes()
	query.EXPECT().Lookup("wine").Return(domain.Topology{}, false).AnyTimes()
	status.EXPECT().Bucket().Return("beer").AnyTimes()
	status.EXPECT().Topology().Return(beer).AnyTimes()
	status.EXPECT().Ready(domain.ClientPlain).Return(true).AnyTimes()
	status.EXPECT().Ready(domain.ClientTopologyAware).Return(false).AnyTimes()

	s := NewServer(":0", query, status)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "Health", path: "/healthz", wantStatus: 200, wantBody: `{"status":"ok"}`},
		{name: "Buckets", path: "/buckets", wantStatus: 200, wantBody: `{"buckets":["beer"]}`},
		{
			name:       "Bucket",
			path:       "/buckets/beer",
			wantStatus: 200,
			wantBody:   `{"bucket":"beer","streaming_uri":"/pools/default/bucketsStreaming/beer","nodes":[{"hostname":"10.0.0.1:8091","ports":null,"status":"healthy"}],"vbuckets":{"hash_algorithm":"","num_replicas":0,"server_list":null,"vbuckets":null}}`,
		},
		{name: "UnknownBucket", path: "/buckets/wine", wantStatus: 404, wantBody: `{"error":"bucket not found: wine"}`},
		{
			name:       "Clients",
			path:       "/client",
			wantStatus: 200,
			wantBody:   `{"clients":[{"bucket":"beer","nodes":1,"plain_ready":true,"topology_aware_ready":false}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.True(t, jsoniter.Valid(body))
			assert.JSONEq(t, tt.wantBody, string(body))
		})
	}
}
