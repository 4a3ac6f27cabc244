package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/metrics"
	"github.com/dmitrijs2005/baconnect/internal/query"
	"github.com/dmitrijs2005/baconnect/internal/search"
	"github.com/dmitrijs2005/baconnect/internal/services"
	"google.golang.org/grpc"
)

// Services are the data core components the feed server exposes.
type Services struct {
	Auth     *services.AuthService
	Comments *services.CommentService
	Engine   *search.Engine
	Queries  *query.Queries
}

type GRPCServer struct {
	address  string
	svc      Services
	logger   logging.Logger
	metrics  *metrics.Metrics
	secret   []byte
	tokenTTL time.Duration
}

var _ FeedServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string, tokenTTL time.Duration, m *metrics.Metrics) *GRPCServer {
	return &GRPCServer{
		address:  a,
		svc:      svc,
		logger:   l.With("module", "grpc_server"),
		metrics:  m,
		secret:   []byte(secretKey),
		tokenTTL: tokenTTL,
	}
}

// Run listens on the configured address and serves until ctx ends.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx ends, then stops gracefully. Open
// WatchFeed streams end with their request context.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.metricsUnaryInterceptor, s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.metricsStreamInterceptor),
	)
	RegisterFeedServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())
	return srv.Serve(lis)
}
