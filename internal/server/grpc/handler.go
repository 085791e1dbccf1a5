package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/jourin/internal/api"
	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/journal"
	"github.com/dmitrijs2005/jourin/internal/server/auth"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/dmitrijs2005/jourin/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC status codes. Messages of internal
// errors are not passed to the client.
func toStatus(err error) error {
	switch {
	case errors.Is(err, journal.ErrValidation), errors.Is(err, common.ErrorInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	}
	return status.Error(codes.Internal, "internal error")
}

func userID(ctx context.Context) (string, error) {
	id, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing token")
	}
	return id, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	u, err := s.users.Register(ctx, req.Username, req.Salt, req.Verifier)
	if err != nil {
		s.logger.Error(ctx, "registration failed", "username", req.Username, "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username)
	return &api.RegisterResponse{UserID: u.ID}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *api.GetSaltRequest) (*api.GetSaltResponse, error) {
	salt, err := s.users.GetSalt(ctx, req.Username)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenPair, error) {
	tokens, err := s.users.Login(ctx, req.Username, req.Verifier)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.TokenPair{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.TokenPair, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.TokenPair{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) ListEntries(ctx context.Context, _ *api.ListEntriesRequest) (*api.ListEntriesResponse, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := s.entries.List(ctx, uid)
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]api.EntryRecord, 0, len(stored))
	for _, m := range stored {
		out = append(out, api.FromEntry(m.Journal()))
	}
	return &api.ListEntriesResponse{Entries: out}, nil
}

func (s *GRPCServer) CreateEntry(ctx context.Context, req *api.CreateEntryRequest) (*api.CreateEntryResponse, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := s.entries.Create(ctx, uid, models.EntryFromJournal(uid, req.Entry.Entry()))
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.CreateEntryResponse{Entry: api.FromEntry(stored.Journal())}, nil
}

func (s *GRPCServer) ExportEntries(ctx context.Context, _ *api.ExportEntriesRequest) (*api.ExportEntriesResponse, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}

	exp, err := s.entries.Export(ctx, uid)
	if err != nil {
		s.logger.Error(ctx, "export failed", "user_id", uid, "error", err)
		return nil, toStatus(err)
	}
	return &api.ExportEntriesResponse{Key: exp.Key, URL: exp.URL}, nil
}

func (s *GRPCServer) GetStreak(ctx context.Context, req *api.StreakRequest) (*api.StreakResponse, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.streaks.Get(ctx, uid, req.Today)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.StreakResponse{Count: rec.Count, LastActivityDate: rec.LastActivityDate}, nil
}

func (s *GRPCServer) AdvanceStreak(ctx context.Context, req *api.StreakRequest) (*api.StreakResponse, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.streaks.Advance(ctx, uid, req.Today)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.StreakResponse{Count: rec.Count, LastActivityDate: rec.LastActivityDate}, nil
}

func (s *GRPCServer) Sync(ctx context.Context, req *api.SyncRequest) (*api.SyncResponse, error) {
	uid, err := userID(ctx)
	if err != nil {
		return nil, err
	}

	merged, err := s.sync.Sync(ctx, uid, services.BatchFromRequest(uid, req))
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "synced", "user_id", uid, "entries_merged", merged)
	return &api.SyncResponse{EntriesMerged: merged}, nil
}
