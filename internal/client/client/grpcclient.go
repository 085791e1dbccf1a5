package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/jourin/internal/api"
	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/streak"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const saltTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.JournalClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (access, refresh string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = access, refresh
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, refresh := s.tokens()

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" || method == api.MethodRefreshToken {
		return err
	}

	pair, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refresh})
	if err != nil {
		return err
	}
	s.setTokens(pair.AccessToken, pair.RefreshToken)

	return invoker(withAccessToken(ctx, pair.AccessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient prepares a lazy connection to endpointURL; nothing is dialed
// until the first call.
func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	conn, err := grpc.NewClient(endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewJournalClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Register(ctx context.Context, userName string, salt []byte, verifier []byte) error {
	req := &api.RegisterRequest{Username: userName, Salt: salt, Verifier: verifier}
	if _, err := s.client.Register(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GetSalt(ctx context.Context, userName string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, saltTimeout)
	defer cancel()

	resp, err := s.client.GetSalt(ctx, &api.GetSaltRequest{Username: userName})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Salt, nil
}

func (s *GRPCClient) Login(ctx context.Context, userName string, verifier []byte) error {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: userName, Verifier: verifier})
	if err != nil {
		return s.mapError(err)
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) ListEntries(ctx context.Context) ([]api.EntryRecord, error) {
	resp, err := s.client.ListEntries(ctx, &api.ListEntriesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Entries, nil
}

func (s *GRPCClient) CreateEntry(ctx context.Context, rec api.EntryRecord) (api.EntryRecord, error) {
	resp, err := s.client.CreateEntry(ctx, &api.CreateEntryRequest{Entry: rec})
	if err != nil {
		return api.EntryRecord{}, s.mapError(err)
	}
	return resp.Entry, nil
}

func (s *GRPCClient) ExportEntries(ctx context.Context) (string, error) {
	resp, err := s.client.ExportEntries(ctx, &api.ExportEntriesRequest{})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

func (s *GRPCClient) GetStreak(ctx context.Context, today string) (streak.Record, error) {
	resp, err := s.client.GetStreak(ctx, &api.StreakRequest{Today: today})
	if err != nil {
		return streak.Record{}, s.mapError(err)
	}
	return streak.Record{Count: resp.Count, LastActivityDate: resp.LastActivityDate}, nil
}

func (s *GRPCClient) AdvanceStreak(ctx context.Context, today string) (streak.Record, error) {
	resp, err := s.client.AdvanceStreak(ctx, &api.StreakRequest{Today: today})
	if err != nil {
		return streak.Record{}, s.mapError(err)
	}
	return streak.Record{Count: resp.Count, LastActivityDate: resp.LastActivityDate}, nil
}

func (s *GRPCClient) Sync(ctx context.Context, req *api.SyncRequest) (int, error) {
	resp, err := s.client.Sync(ctx, req)
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.EntriesMerged, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
