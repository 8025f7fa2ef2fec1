package service

import (
	"net"
	"strconv"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
)

// CreateServerList returns host:port addresses of every node that is not
// unhealthy, using the port registered for role. Nodes without that port are
// skipped. Order follows the topology's node order.
func CreateServerList(nodes []domain.Node, role domain.PortRole) []string {
	servers := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.Status == domain.StatusUnhealthy {
			continue
		}
		port, ok := n.Ports[role]
		if !ok || port <= 0 {
			continue
		}
		servers = append(servers, net.JoinHostPort(n.Host(), strconv.Itoa(port)))
	}
	return servers
}
