package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// GalleryServiceClient calls the gallery service over cc.
type GalleryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGalleryServiceClient(cc grpc.ClientConnInterface) *GalleryServiceClient {
	return &GalleryServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GalleryServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, "Login", in, opts)
}

func (c *GalleryServiceClient) ListDrawings(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListDrawingsResponse, error) {
	return invoke[ListDrawingsResponse](ctx, c.cc, "ListDrawings", in, opts)
}

func (c *GalleryServiceClient) GetDrawing(ctx context.Context, in *GetDrawingRequest, opts ...grpc.CallOption) (*Drawing, error) {
	return invoke[Drawing](ctx, c.cc, "GetDrawing", in, opts)
}

func (c *GalleryServiceClient) SaveDrawing(ctx context.Context, in *SaveDrawingRequest, opts ...grpc.CallOption) (*SaveDrawingResponse, error) {
	return invoke[SaveDrawingResponse](ctx, c.cc, "SaveDrawing", in, opts)
}

func (c *GalleryServiceClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", in, opts)
}
