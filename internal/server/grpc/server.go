// Package grpc runs the gRPC side of the server. It carries the standard
// health service so orchestrators can probe the inbox over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophinbox/internal/logging"
	"github.com/dmitrijs2005/gophinbox/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health-check name reported for the inbox.
const ServiceName = "inbox"

// Authenticator resolves a bearer token to a live identity.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*models.Identity, error)
}

type GRPCServer struct {
	address string
	logger  logging.Logger
	auth    Authenticator
	health  *health.Server
}

func NewGRPCServer(a string, l logging.Logger, auth Authenticator) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		auth:    auth,
		health:  health.NewServer(),
	}
}

// register attaches the services to srv and marks the inbox as serving.
func (s *GRPCServer) register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	s.register(srv)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
