package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/common"
	"github.com/dmitrijs2005/drawgallery/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// fakeGallery records the token each call carried and answers with preset
// values.
type fakeGallery struct {
	mu     sync.Mutex
	tokens []string

	loginErr  error
	listResp  *rpc.ListDrawingsResponse
	listErr   error
	getErr    error
	saveReq   *rpc.SaveDrawingRequest
	pingState string
}

func (f *fakeGallery) record(ctx context.Context) {
	md, _ := metadata.FromIncomingContext(ctx)
	tok := ""
	if v := md.Get(common.AccessTokenHeaderName); len(v) > 0 {
		tok = v[0]
	}
	f.mu.Lock()
	f.tokens = append(f.tokens, tok)
	f.mu.Unlock()
}

func (f *fakeGallery) lastToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tokens) == 0 {
		return ""
	}
	return f.tokens[len(f.tokens)-1]
}

func (f *fakeGallery) Login(ctx context.Context, in *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	f.record(ctx)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &rpc.LoginResponse{AccessToken: "tok-" + in.Email, ExpiresIn: 60}, nil
}

func (f *fakeGallery) ListDrawings(ctx context.Context, _ *rpc.Empty) (*rpc.ListDrawingsResponse, error) {
	f.record(ctx)
	return f.listResp, f.listErr
}

func (f *fakeGallery) GetDrawing(ctx context.Context, in *rpc.GetDrawingRequest) (*rpc.Drawing, error) {
	f.record(ctx)
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &rpc.Drawing{ID: in.ID, Name: "cat", Content: "data:image/png;base64,AA=="}, nil
}

func (f *fakeGallery) SaveDrawing(ctx context.Context, in *rpc.SaveDrawingRequest) (*rpc.SaveDrawingResponse, error) {
	f.record(ctx)
	f.saveReq = in
	id := in.ID
	if id == "" {
		id = "new-id"
	}
	return &rpc.SaveDrawingResponse{Drawing: &rpc.Drawing{ID: id, Name: in.Name, Content: in.Content}, Created: in.ID == ""}, nil
}

func (f *fakeGallery) Ping(ctx context.Context, _ *rpc.Empty) (*rpc.PingResponse, error) {
	f.record(ctx)
	return &rpc.PingResponse{Status: f.pingState}, nil
}

func startFake(t *testing.T, f *fakeGallery) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ForceServerCodec(rpc.Codec{}))
	rpc.RegisterGalleryServiceServer(srv, f)
	go func() { _ = srv.Serve(lis) }()

	c, err := NewGalleryClient("passthrough:///bufnet", 5*time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		srv.Stop()
	})
	return c
}

func TestGRPCClient_LoginAttachesToken(t *testing.T) {
	f := &fakeGallery{listResp: &rpc.ListDrawingsResponse{Drawings: []*rpc.Drawing{{ID: "d1"}}}}
	c := startFake(t, f)
	ctx := context.Background()

	require.False(t, c.LoggedIn())
	require.NoError(t, c.Login(ctx, "a@x.com", "pw"))
	require.True(t, c.LoggedIn())
	assert.Equal(t, "", f.lastToken(), "login itself carries no token")

	list, err := c.ListDrawings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "tok-a@x.com", f.lastToken())

	d, err := c.GetDrawing(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "d1", d.ID)
	assert.Equal(t, "tok-a@x.com", f.lastToken())
}

func TestGRPCClient_CallsRequireLogin(t *testing.T) {
	f := &fakeGallery{}
	c := startFake(t, f)
	ctx := context.Background()

	_, err := c.ListDrawings(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = c.GetDrawing(ctx, "x")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, _, err = c.SaveDrawing(ctx, "", "n", "c")
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	assert.Empty(t, f.tokens, "nothing reached the server")
}

func TestGRPCClient_ListNilBecomesEmpty(t *testing.T) {
	f := &fakeGallery{listResp: &rpc.ListDrawingsResponse{}}
	c := startFake(t, f)
	require.NoError(t, c.Login(context.Background(), "a@x.com", "pw"))

	list, err := c.ListDrawings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestGRPCClient_SaveCreateAndUpdate(t *testing.T) {
	f := &fakeGallery{}
	c := startFake(t, f)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "a@x.com", "pw"))

	d, created, err := c.SaveDrawing(ctx, "", "cat", "data:x")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "new-id", d.ID)
	assert.Equal(t, "", f.saveReq.ID)

	d, created, err = c.SaveDrawing(ctx, "d1", "dog", "data:y")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "d1", d.ID)
	assert.Equal(t, "dog", f.saveReq.Name)
}

func TestGRPCClient_UnauthenticatedDropsToken(t *testing.T) {
	f := &fakeGallery{listErr: status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())}
	c := startFake(t, f)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "a@x.com", "pw"))

	_, err := c.ListDrawings(ctx)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.False(t, c.LoggedIn())
}

func TestGRPCClient_FailedLoginKeepsPreviousState(t *testing.T) {
	f := &fakeGallery{}
	c := startFake(t, f)
	ctx := context.Background()
	require.NoError(t, c.Login(ctx, "a@x.com", "pw"))

	f.loginErr = status.Error(codes.Unauthenticated, common.ErrorInvalidCredentials.Error())
	err := c.Login(ctx, "a@x.com", "bad")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
	assert.True(t, c.LoggedIn())
}

func TestGRPCClient_Logout(t *testing.T) {
	c := startFake(t, &fakeGallery{})
	require.NoError(t, c.Login(context.Background(), "a@x.com", "pw"))

	c.Logout()
	assert.False(t, c.LoggedIn())
}

func TestGRPCClient_TokenExpires(t *testing.T) {
	c := &GRPCClient{}

	c.setToken("tok", time.Hour)
	assert.True(t, c.LoggedIn())

	c.setToken("tok", 0)
	assert.True(t, c.LoggedIn(), "no expiry reported")

	c.mu.Lock()
	c.expiresAt = time.Now().Add(-time.Second)
	c.mu.Unlock()
	assert.False(t, c.LoggedIn())

	_, err := c.ListDrawings(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestGRPCClient_Ping(t *testing.T) {
	f := &fakeGallery{pingState: "OK"}
	c := startFake(t, f)

	require.NoError(t, c.Ping(context.Background()))

	f.pingState = "DEGRADED"
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestGRPCClient_GetErrorsAreMapped(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", status.Error(codes.NotFound, "not found"), common.ErrorNotFound},
		{"forbidden", status.Error(codes.PermissionDenied, "forbidden"), common.ErrorForbidden},
		{"invalid", status.Error(codes.InvalidArgument, "invalid argument"), common.ErrorInvalidArgument},
		{"internal", status.Error(codes.Internal, "internal error"), common.ErrorInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeGallery{getErr: tt.err}
			c := startFake(t, f)
			require.NoError(t, c.Login(context.Background(), "a@x.com", "pw"))

			_, err := c.GetDrawing(context.Background(), "x")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"unauthenticated", status.Error(codes.Unauthenticated, "unauthorized"), common.ErrorUnauthorized},
		{"invalid credentials", status.Error(codes.Unauthenticated, "invalid credentials"), common.ErrorInvalidCredentials},
		{"missing credentials", status.Error(codes.InvalidArgument, "missing credentials"), common.ErrorMissingCredentials},
		{"invalid argument", status.Error(codes.InvalidArgument, "invalid argument"), common.ErrorInvalidArgument},
		{"not found", status.Error(codes.NotFound, ""), common.ErrorNotFound},
		{"permission denied", status.Error(codes.PermissionDenied, ""), common.ErrorForbidden},
		{"internal", status.Error(codes.Internal, ""), common.ErrorInternal},
		{"unavailable", status.Error(codes.Unavailable, ""), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, ""), ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, c.mapError(tt.in), tt.want)
		})
	}

	assert.NoError(t, c.mapError(nil))

	other := status.Error(codes.ResourceExhausted, "slow down")
	got := c.mapError(other)
	assert.True(t, errors.Is(got, other))
	assert.Contains(t, got.Error(), "rpc error")
}

func TestWithAccessToken(t *testing.T) {
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, "old", "x-other", "1")

	ctx = withAccessToken(ctx, "new")
	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"new"}, md.Get(common.AccessTokenHeaderName))
	assert.Equal(t, []string{"1"}, md.Get("x-other"))

	ctx = withAccessToken(ctx, "")
	md, _ = metadata.FromOutgoingContext(ctx)
	assert.Empty(t, md.Get(common.AccessTokenHeaderName))
}
