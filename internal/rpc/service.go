package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "gallery.GalleryService"

// FullMethod returns the wire name of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// GalleryServiceServer is implemented by the gRPC transport.
type GalleryServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	ListDrawings(context.Context, *Empty) (*ListDrawingsResponse, error)
	GetDrawing(context.Context, *GetDrawingRequest) (*Drawing, error)
	SaveDrawing(context.Context, *SaveDrawingRequest) (*SaveDrawingResponse, error)
	Ping(context.Context, *Empty) (*PingResponse, error)
}

func unary[Req, Resp any](method string, call func(GalleryServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			// Decoding runs before the interceptor chain, so a malformed
			// body is rejected ahead of the access token check.
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, status.Error(codes.InvalidArgument, "malformed request")
			}
			s := srv.(GalleryServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GalleryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Login", GalleryServiceServer.Login),
		unary("ListDrawings", GalleryServiceServer.ListDrawings),
		unary("GetDrawing", GalleryServiceServer.GetDrawing),
		unary("SaveDrawing", GalleryServiceServer.SaveDrawing),
		unary("Ping", GalleryServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gallery.proto",
}

func RegisterGalleryServiceServer(s grpc.ServiceRegistrar, srv GalleryServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
