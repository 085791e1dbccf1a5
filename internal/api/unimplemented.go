package api

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnimplementedJournalServer answers every method with codes.Unimplemented.
// Embed it to implement a subset of the service.
type UnimplementedJournalServer struct{}

func (UnimplementedJournalServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedJournalServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}

func (UnimplementedJournalServer) GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSalt not implemented")
}

func (UnimplementedJournalServer) Login(context.Context, *LoginRequest) (*TokenPair, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedJournalServer) RefreshToken(context.Context, *RefreshTokenRequest) (*TokenPair, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}

func (UnimplementedJournalServer) ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEntries not implemented")
}

func (UnimplementedJournalServer) CreateEntry(context.Context, *CreateEntryRequest) (*CreateEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateEntry not implemented")
}

func (UnimplementedJournalServer) ExportEntries(context.Context, *ExportEntriesRequest) (*ExportEntriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportEntries not implemented")
}

func (UnimplementedJournalServer) GetStreak(context.Context, *StreakRequest) (*StreakResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStreak not implemented")
}

func (UnimplementedJournalServer) AdvanceStreak(context.Context, *StreakRequest) (*StreakResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AdvanceStreak not implemented")
}

func (UnimplementedJournalServer) Sync(context.Context, *SyncRequest) (*SyncResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Sync not implemented")
}
