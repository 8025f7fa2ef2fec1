package grpc_handler

import (
	"fmt"
	"net"

	"github.com/anthanhphan/gosdk/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthReporter serves the standard gRPC health service. Every bucket is a
// service name; the empty name reports the agent as a whole.
type HealthReporter struct {
	addr   string
	health *health.Server
	server *grpc.Server
}

func NewHealthReporter(addr string) *HealthReporter {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	server := grpc.NewServer()
	healthpb.RegisterHealthServer(server, hs)

	return &HealthReporter{
		addr:   addr,
		health: hs,
		server: server,
	}
}

// MarkServing reports bucket, and the agent, as serving.
func (h *HealthReporter) MarkServing(bucket string) {
	h.health.SetServingStatus(bucket, healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}

func (h *HealthReporter) MarkNotServing(bucket string) {
	h.health.SetServingStatus(bucket, healthpb.HealthCheckResponse_NOT_SERVING)
}

func (h *HealthReporter) Health() healthpb.HealthServer {
	return h.health
}

func (h *HealthReporter) Start() error {
	lis, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", h.addr, err)
	}
	logger.Infow("gRPC health server listening", "addr", lis.Addr().String())
	return h.server.Serve(lis)
}

// Stop flips every service to NOT_SERVING and drains the server.
func (h *HealthReporter) Stop() {
	h.health.Shutdown()
	h.server.GracefulStop()
}
