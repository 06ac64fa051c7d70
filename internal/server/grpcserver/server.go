// Package grpcserver exposes the standard health service so orchestrators can probe
// the back office the same way they probe the other services.
package grpcserver

import (
	"context"
	"fmt"
	"net"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
)

// ServiceName is reported alongside the overall ("") status.
const ServiceName = "omnipos.backoffice.v1.Backoffice"

type Server struct {
	addr   string
	server *grpc.Server
	health *health.Server
	logger logger.ZapLogger
}

func New(addr string, log logger.ZapLogger) *Server {
	if !strings.HasPrefix(addr, ":") && !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	s := &Server{
		addr:   addr,
		server: grpc.NewServer(),
		health: health.NewServer(),
		logger: log,
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	return s
}

// Start listens and serves until Stop. Both statuses report SERVING once the
// listener is up.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	s.logger.Info("Starting gRPC server", zap.String("addr", lis.Addr().String()))
	if err := s.server.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("failed to serve gRPC: %w", err)
	}
	return nil
}

// Stop marks the service NOT_SERVING and drains in-flight calls, forcing the
// stop when ctx ends first.
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down gRPC server...")
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
		<-done
	}
}
