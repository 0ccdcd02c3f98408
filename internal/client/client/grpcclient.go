package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/common"
	"github.com/dmitrijs2005/drawgallery/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      *rpc.GalleryServiceClient

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
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

// token returns the session token, or "" once it has expired.
func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.expiresAt.IsZero() && !time.Now().Before(s.expiresAt) {
		return ""
	}
	return s.accessToken
}

func (s *GRPCClient) setToken(token string, validity time.Duration) {
	s.mu.Lock()
	s.accessToken = token
	s.expiresAt = time.Time{}
	if token != "" && validity > 0 {
		s.expiresAt = time.Now().Add(validity)
	}
	s.mu.Unlock()
}

// accessTokenInterceptor attaches the session token to every call. An
// Unauthenticated answer to anything but Login drops the token.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	ctx = withAccessToken(ctx, s.token())

	err := invoker(ctx, method, req, reply, cc, opts...)
	if err != nil && method != rpc.FullMethod("Login") && status.Code(err) == codes.Unauthenticated {
		s.setToken("", 0)
	}
	return err
}

// NewGalleryClient connects lazily to endpointURL; every call gets its own
// timeout deadline.
func NewGalleryClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(extra ...grpc.DialOption) error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, extra...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewGalleryServiceClient(conn)
	return nil
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Email: email, Password: password})
	if err != nil {
		return s.mapError(err)
	}

	s.setToken(resp.AccessToken, time.Duration(resp.ExpiresIn)*time.Second)
	return nil
}

// Logout forgets the session token. Tokens are not revoked server-side.
func (s *GRPCClient) Logout() {
	s.setToken("", 0)
}

func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &rpc.Empty{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) ListDrawings(ctx context.Context) ([]*rpc.Drawing, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ListDrawings(ctx, &rpc.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Drawings == nil {
		return []*rpc.Drawing{}, nil
	}
	return resp.Drawings, nil
}

func (s *GRPCClient) GetDrawing(ctx context.Context, id string) (*rpc.Drawing, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetDrawing(ctx, &rpc.GetDrawingRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// SaveDrawing creates a drawing when id is empty and updates it otherwise.
// The boolean reports whether a new drawing was created.
func (s *GRPCClient) SaveDrawing(ctx context.Context, id, name, content string) (*rpc.Drawing, bool, error) {
	if !s.LoggedIn() {
		return nil, false, ErrNotLoggedIn
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.SaveDrawing(ctx, &rpc.SaveDrawingRequest{ID: id, Name: name, Content: content})
	if err != nil {
		return nil, false, s.mapError(err)
	}
	return resp.Drawing, resp.Created, nil
}

// mapError turns a gRPC status back into the shared sentinel errors.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		if st.Message() == common.ErrorInvalidCredentials.Error() {
			return common.ErrorInvalidCredentials
		}
		return common.ErrorUnauthorized
	case codes.InvalidArgument:
		if st.Message() == common.ErrorMissingCredentials.Error() {
			return common.ErrorMissingCredentials
		}
		return common.ErrorInvalidArgument
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.PermissionDenied:
		return common.ErrorForbidden
	case codes.Internal:
		return common.ErrorInternal
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
