// Package rpcx holds the gRPC plumbing shared by the identity and content
// services and by the gateway's clients: server lifecycle with health
// reporting, interceptors and client dialing.
package rpcx

import (
	"context"
	"net"

	"github.com/dmitrijs2005/blogmesh/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server wraps a grpc.Server configured with the common interceptor chain and
// the standard health service.
type Server struct {
	address string
	service string
	logger  logging.Logger
	srv     *grpc.Server
	health  *health.Server
}

// NewServer builds a server for the named service. Register service
// implementations on Registrar() before calling Run.
func NewServer(address, service string, l logging.Logger, opts ...grpc.ServerOption) *Server {
	logger := l.With("module", "grpc_server", "service", service)

	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(UnaryServerInterceptor(service, logger)),
	}, opts...)

	srv := grpc.NewServer(opts...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{
		address: address,
		service: service,
		logger:  logger,
		srv:     srv,
		health:  hs,
	}
}

func (s *Server) Registrar() grpc.ServiceRegistrar {
	return s.srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		s.srv.GracefulStop()
	}()

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(s.service, healthpb.HealthCheckResponse_SERVING)

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := s.srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
