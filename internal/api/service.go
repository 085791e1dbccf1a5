package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "jourin.v1.Journal"

const (
	MethodPing          = "/" + ServiceName + "/Ping"
	MethodRegister      = "/" + ServiceName + "/Register"
	MethodGetSalt       = "/" + ServiceName + "/GetSalt"
	MethodLogin         = "/" + ServiceName + "/Login"
	MethodRefreshToken  = "/" + ServiceName + "/RefreshToken"
	MethodListEntries   = "/" + ServiceName + "/ListEntries"
	MethodCreateEntry   = "/" + ServiceName + "/CreateEntry"
	MethodExportEntries = "/" + ServiceName + "/ExportEntries"
	MethodGetStreak     = "/" + ServiceName + "/GetStreak"
	MethodAdvanceStreak = "/" + ServiceName + "/AdvanceStreak"
	MethodSync          = "/" + ServiceName + "/Sync"
)

// PublicMethods do not require an access token.
var PublicMethods = map[string]bool{
	MethodPing:         true,
	MethodRegister:     true,
	MethodGetSalt:      true,
	MethodLogin:        true,
	MethodRefreshToken: true,
}

// JournalServer is implemented by the server's gRPC layer.
type JournalServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*TokenPair, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenPair, error)
	ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error)
	CreateEntry(context.Context, *CreateEntryRequest) (*CreateEntryResponse, error)
	ExportEntries(context.Context, *ExportEntriesRequest) (*ExportEntriesResponse, error)
	GetStreak(context.Context, *StreakRequest) (*StreakResponse, error)
	AdvanceStreak(context.Context, *StreakRequest) (*StreakResponse, error)
	Sync(context.Context, *SyncRequest) (*SyncResponse, error)
}

func unary[Req, Resp any](fullMethod string, call func(JournalServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(JournalServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(JournalServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func method[Req, Resp any](name string, call func(JournalServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{MethodName: name, Handler: unary("/"+ServiceName+"/"+name, call)}
}

// ServiceDesc describes the journal service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*JournalServer)(nil),
	Methods: []grpc.MethodDesc{
		method("Ping", JournalServer.Ping),
		method("Register", JournalServer.Register),
		method("GetSalt", JournalServer.GetSalt),
		method("Login", JournalServer.Login),
		method("RefreshToken", JournalServer.RefreshToken),
		method("ListEntries", JournalServer.ListEntries),
		method("CreateEntry", JournalServer.CreateEntry),
		method("ExportEntries", JournalServer.ExportEntries),
		method("GetStreak", JournalServer.GetStreak),
		method("AdvanceStreak", JournalServer.AdvanceStreak),
		method("Sync", JournalServer.Sync),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jourin/v1/journal",
}

// RegisterJournalServer attaches srv to s.
func RegisterJournalServer(s grpc.ServiceRegistrar, srv JournalServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// JournalClient is the client side of the journal service.
type JournalClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenPair, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenPair, error)
	ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error)
	CreateEntry(ctx context.Context, in *CreateEntryRequest, opts ...grpc.CallOption) (*CreateEntryResponse, error)
	ExportEntries(ctx context.Context, in *ExportEntriesRequest, opts ...grpc.CallOption) (*ExportEntriesResponse, error)
	GetStreak(ctx context.Context, in *StreakRequest, opts ...grpc.CallOption) (*StreakResponse, error)
	AdvanceStreak(ctx context.Context, in *StreakRequest, opts ...grpc.CallOption) (*StreakResponse, error)
	Sync(ctx context.Context, in *SyncRequest, opts ...grpc.CallOption) (*SyncResponse, error)
}

type journalClient struct {
	cc grpc.ClientConnInterface
}

func NewJournalClient(cc grpc.ClientConnInterface) JournalClient {
	return &journalClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *journalClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *journalClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *journalClient) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, MethodGetSalt, in, opts)
}

func (c *journalClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[TokenPair](ctx, c.cc, MethodLogin, in, opts)
}

func (c *journalClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenPair, error) {
	return invoke[TokenPair](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *journalClient) ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error) {
	return invoke[ListEntriesResponse](ctx, c.cc, MethodListEntries, in, opts)
}

func (c *journalClient) CreateEntry(ctx context.Context, in *CreateEntryRequest, opts ...grpc.CallOption) (*CreateEntryResponse, error) {
	return invoke[CreateEntryResponse](ctx, c.cc, MethodCreateEntry, in, opts)
}

func (c *journalClient) ExportEntries(ctx context.Context, in *ExportEntriesRequest, opts ...grpc.CallOption) (*ExportEntriesResponse, error) {
	return invoke[ExportEntriesResponse](ctx, c.cc, MethodExportEntries, in, opts)
}

func (c *journalClient) GetStreak(ctx context.Context, in *StreakRequest, opts ...grpc.CallOption) (*StreakResponse, error) {
	return invoke[StreakResponse](ctx, c.cc, MethodGetStreak, in, opts)
}

func (c *journalClient) AdvanceStreak(ctx context.Context, in *StreakRequest, opts ...grpc.CallOption) (*StreakResponse, error) {
	return invoke[StreakResponse](ctx, c.cc, MethodAdvanceStreak, in, opts)
}

func (c *journalClient) Sync(ctx context.Context, in *SyncRequest, opts ...grpc.CallOption) (*SyncResponse, error) {
	return invoke[SyncResponse](ctx, c.cc, MethodSync, in, opts)
}
