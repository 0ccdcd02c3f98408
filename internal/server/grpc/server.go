// Package grpc exposes the gallery services over gRPC.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/logging"
	"github.com/dmitrijs2005/drawgallery/internal/rpc"
	"github.com/dmitrijs2005/drawgallery/internal/server/models"
	"github.com/dmitrijs2005/drawgallery/internal/server/services"
	"google.golang.org/grpc"
)

// AccountService is the part of services.AccountService the transport uses.
type AccountService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// DrawingService is the part of services.DrawingService the transport uses.
type DrawingService interface {
	List(ctx context.Context, token string) ([]*models.Drawing, error)
	Get(ctx context.Context, token, id string) (*models.Drawing, error)
	Save(ctx context.Context, token string, in services.SaveInput) (*models.Drawing, bool, error)
}

type GRPCServer struct {
	address       string
	accounts      AccountService
	drawings      DrawingService
	logger        logging.Logger
	tokenValidity time.Duration
	maxMsgBytes   int
}

func NewGRPCServer(address string, l logging.Logger, as AccountService, ds DrawingService, tokenValidity time.Duration, maxMsgBytes int) *GRPCServer {
	return &GRPCServer{
		address:       address,
		logger:        l.With("module", "grpc_server"),
		accounts:      as,
		drawings:      ds,
		tokenValidity: tokenValidity,
		maxMsgBytes:   maxMsgBytes,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	opts := []grpc.ServerOption{
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.ChainUnaryInterceptor(s.recoveryInterceptor, s.loggingInterceptor, s.accessTokenInterceptor),
	}
	if s.maxMsgBytes > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(s.maxMsgBytes), grpc.MaxSendMsgSize(s.maxMsgBytes))
	}

	srv := grpc.NewServer(opts...)
	rpc.RegisterGalleryServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
