// Package grpc exposes the jourin services over gRPC using the hand-written
// descriptor and Struct codec from internal/api.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/jourin/internal/api"
	"github.com/dmitrijs2005/jourin/internal/logging"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/dmitrijs2005/jourin/internal/server/services"
	"github.com/dmitrijs2005/jourin/internal/streak"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type entrySvc interface {
	List(ctx context.Context, userID string) ([]*models.Entry, error)
	Create(ctx context.Context, userID string, e *models.Entry) (*models.Entry, error)
	Export(ctx context.Context, userID string) (*services.Export, error)
}

type streakSvc interface {
	Get(ctx context.Context, userID, today string) (streak.Record, error)
	Advance(ctx context.Context, userID, today string) (streak.Record, error)
}

type syncSvc interface {
	Sync(ctx context.Context, userID string, batch services.SyncBatch) (int, error)
}

// Services groups the collaborators GRPCServer dispatches to.
type Services struct {
	Users   userSvc
	Entries entrySvc
	Streaks streakSvc
	Sync    syncSvc
}

type GRPCServer struct {
	api.UnimplementedJournalServer
	address   string
	users     userSvc
	entries   entrySvc
	streaks   streakSvc
	sync      syncSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(address string, l logging.Logger, svc Services, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		users:     svc.Users,
		entries:   svc.Entries,
		streaks:   svc.Streaks,
		sync:      svc.Sync,
		jwtSecret: []byte(secretKey),
	}
}

// NewServer builds a grpc.Server with the auth interceptor and the journal
// service registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterJournalServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done, then
// stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if err != nil {
		s.logger.Warn(ctx, "rpc failed", "method", info.FullMethod, "duration", time.Since(start), "error", err)
	}
	return resp, err
}
