package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
)

func TestCreateServerList(t *testing.T) {
	tests := []struct {
		name  string
		nodes []domain.Node
		role  domain.PortRole
		want  []string
	}{
		{
			name: "ExcludesUnhealthy",
			nodes: []domain.Node{
				{Hostname: "A", Status: domain.StatusHealthy, Ports: map[domain.PortRole]int{domain.PortDirect: 11210}},
				{Hostname: "B", Status: domain.StatusUnhealthy, Ports: map[domain.PortRole]int{domain.PortDirect: 11210}},
				{Hostname: "C", Status: domain.StatusHealthy, Ports: map[domain.PortRole]int{domain.PortDirect: 11210}},
			},
			role: domain.PortDirect,
			want: []string{"A:11210", "C:11210"},
		},
		{
			name: "WarmupIncluded",
			nodes: []domain.Node{
				{Hostname: "A", Status: domain.StatusWarmup, Ports: map[domain.PortRole]int{domain.PortDirect: 11210}},
			},
			role: domain.PortDirect,
			want: []string{"A:11210"},
		},
		{
			name: "PreferredRole",
			nodes: []domain.Node{
				{Hostname: "10.0.0.1:8091", Status: domain.StatusHealthy, Ports: map[domain.PortRole]int{
					domain.PortDirect: 11210,
					domain.PortProxy:  11211,
				}},
			},
			role: domain.PortProxy,
			want: []string{"10.0.0.1:11211"},
		},
		{
			name: "MissingPortSkipped",
			nodes: []domain.Node{
				{Hostname: "A", Status: domain.StatusHealthy, Ports: map[domain.PortRole]int{domain.PortProxy: 11211}},
			},
			role: domain.PortDirect,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreateServerList(tt.nodes, tt.role))
		})
	}
}
