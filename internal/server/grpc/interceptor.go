package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/common"
	"github.com/dmitrijs2005/drawgallery/internal/logging"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const accessTokenKey ctxKey = "accessToken"

// requestIDHeader is honoured on incoming metadata and echoed back.
const requestIDHeader = "x-request-id"

// tokenFromContext returns the raw token stored by accessTokenInterceptor,
// or "" when the caller sent none.
func tokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(accessTokenKey).(string)
	return tok
}

// accessTokenInterceptor copies the access token from request metadata into
// the context. Verification is left to the services.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	var accessToken string

	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		} else if values := md.Get("authorization"); len(values) > 0 {
			if tok, ok := strings.CutPrefix(values[0], "Bearer "); ok {
				accessToken = tok
			}
		}
	}

	if accessToken != "" {
		ctx = context.WithValue(ctx, accessTokenKey, accessToken)
	}

	return handler(ctx, req)
}

func requestIDFromMetadata(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(requestIDHeader); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}

// loggingInterceptor tags the call with a request id and logs its outcome.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	reqID := requestIDFromMetadata(ctx)
	ctx = logging.WithRequestID(ctx, reqID)
	// fails outside a real server stream, e.g. in tests
	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, reqID))

	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	if code == codes.Internal || code == codes.Unknown {
		s.logger.Error(ctx, "grpc request", args...)
	} else {
		s.logger.Info(ctx, "grpc request", args...)
	}

	return resp, err
}

func (s *GRPCServer) recoveryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error(ctx, "panic in grpc handler", "method", info.FullMethod, "panic", p)
			err = status.Error(codes.Internal, common.ErrorInternal.Error())
		}
	}()
	return handler(ctx, req)
}
