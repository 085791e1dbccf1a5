package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/jourin/internal/api"
	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/logging"
	"github.com/dmitrijs2005/jourin/internal/server/auth"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/dmitrijs2005/jourin/internal/server/services"
	"github.com/dmitrijs2005/jourin/internal/streak"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

const testSecret = "k"

type fakeUsers struct {
	regResp     *models.User
	regErr      error
	saltResp    []byte
	saltErr     error
	loginResp   *services.TokenPair
	loginErr    error
	refreshResp *services.TokenPair
	refreshErr  error
}

func (f *fakeUsers) Register(context.Context, string, []byte, []byte) (*models.User, error) {
	return f.regResp, f.regErr
}
func (f *fakeUsers) GetSalt(context.Context, string) ([]byte, error) { return f.saltResp, f.saltErr }
func (f *fakeUsers) Login(context.Context, string, []byte) (*services.TokenPair, error) {
	return f.loginResp, f.loginErr
}
func (f *fakeUsers) RefreshToken(context.Context, string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}

type fakeEntries struct {
	listUser  string
	list      []*models.Entry
	listErr   error
	created   *models.Entry
	createErr error
	export    *services.Export
	exportErr error
}

func (f *fakeEntries) List(_ context.Context, userID string) ([]*models.Entry, error) {
	f.listUser = userID
	return f.list, f.listErr
}

func (f *fakeEntries) Create(_ context.Context, userID string, e *models.Entry) (*models.Entry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *e
	stored.ID = "e-1"
	stored.UserID = userID
	f.created = &stored
	return &stored, nil
}

func (f *fakeEntries) Export(context.Context, string) (*services.Export, error) {
	return f.export, f.exportErr
}

type fakeStreaks struct {
	today    string
	advanced bool
	rec      streak.Record
	err      error
}

func (f *fakeStreaks) Get(_ context.Context, _ string, today string) (streak.Record, error) {
	f.today = today
	return f.rec, f.err
}

func (f *fakeStreaks) Advance(_ context.Context, _ string, today string) (streak.Record, error) {
	f.today = today
	f.advanced = true
	return f.rec, f.err
}

type fakeSync struct {
	userID string
	batch  services.SyncBatch
	merged int
	err    error
}

func (f *fakeSync) Sync(_ context.Context, userID string, b services.SyncBatch) (int, error) {
	f.userID, f.batch = userID, b
	return f.merged, f.err
}

type fakes struct {
	users   *fakeUsers
	entries *fakeEntries
	streaks *fakeStreaks
	sync    *fakeSync
}

func newFakes() *fakes {
	return &fakes{users: &fakeUsers{}, entries: &fakeEntries{}, streaks: &fakeStreaks{}, sync: &fakeSync{}}
}

func (f *fakes) server() *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Discard(), Services{
		Users:   f.users,
		Entries: f.entries,
		Streaks: f.streaks,
		Sync:    f.sync,
	}, testSecret)
}

// newBufClient serves f over an in-memory listener and returns a client.
func newBufClient(t *testing.T, f *fakes) api.JournalClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = f.server().Serve(ctx, lis)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return api.NewJournalClient(conn)
}

func authed(t *testing.T, userID string) context.Context {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, token)
}
