package grpc

import (
	"context"

	"github.com/dmitrijs2005/drawgallery/internal/rpc"
	"github.com/dmitrijs2005/drawgallery/internal/server/models"
	"github.com/dmitrijs2005/drawgallery/internal/server/services"
)

func toRPCDrawing(d *models.Drawing) *rpc.Drawing {
	return &rpc.Drawing{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	token, err := s.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.LoginResponse{AccessToken: token, ExpiresIn: int64(s.tokenValidity.Seconds())}, nil
}

func (s *GRPCServer) ListDrawings(ctx context.Context, _ *rpc.Empty) (*rpc.ListDrawingsResponse, error) {
	list, err := s.drawings.List(ctx, tokenFromContext(ctx))
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &rpc.ListDrawingsResponse{Drawings: make([]*rpc.Drawing, 0, len(list))}
	for _, d := range list {
		resp.Drawings = append(resp.Drawings, toRPCDrawing(d))
	}
	return resp, nil
}

func (s *GRPCServer) GetDrawing(ctx context.Context, req *rpc.GetDrawingRequest) (*rpc.Drawing, error) {
	d, err := s.drawings.Get(ctx, tokenFromContext(ctx), req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toRPCDrawing(d), nil
}

func (s *GRPCServer) SaveDrawing(ctx context.Context, req *rpc.SaveDrawingRequest) (*rpc.SaveDrawingResponse, error) {
	d, created, err := s.drawings.Save(ctx, tokenFromContext(ctx), services.SaveInput{
		ID:      req.ID,
		Name:    req.Name,
		Content: req.Content,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SaveDrawingResponse{Drawing: toRPCDrawing(d), Created: created}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *rpc.Empty) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}
