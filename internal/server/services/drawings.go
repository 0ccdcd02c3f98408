package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/drawgallery/internal/common"
	"github.com/dmitrijs2005/drawgallery/internal/logging"
	"github.com/dmitrijs2005/drawgallery/internal/server/auth"
	"github.com/dmitrijs2005/drawgallery/internal/server/models"
	"github.com/dmitrijs2005/drawgallery/internal/server/repositories/drawings"
	"github.com/dmitrijs2005/drawgallery/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenVerifier turns a session token into an identity. Any failure must be
// reported as common.ErrorUnauthorized.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// SaveInput carries a save request. An empty ID asks for a new drawing.
type SaveInput struct {
	ID      string
	Name    string
	Content string
}

type DrawingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	verifier    TokenVerifier
	logger      logging.Logger

	// hideForeign reports foreign drawings as missing instead of forbidden.
	hideForeign bool
}

func NewDrawingService(db *sql.DB, m repomanager.RepositoryManager, verifier TokenVerifier, logger logging.Logger, hideForeign bool) *DrawingService {
	return &DrawingService{
		db:          db,
		repomanager: m,
		verifier:    verifier,
		logger:      logger.With("module", "drawings"),
		hideForeign: hideForeign,
	}
}

func (s *DrawingService) repo() drawings.Repository {
	return s.repomanager.Drawings(s.db)
}

func (s *DrawingService) authenticate(ctx context.Context, token string) (auth.Identity, error) {
	id, err := s.verifier.Verify(token)
	if err != nil {
		s.logger.Debug(ctx, "token rejected", "error", err)
		return auth.Identity{}, common.ErrorUnauthorized
	}
	return id, nil
}

// Authenticate checks token without touching storage. Transports call it
// before reading a request body.
func (s *DrawingService) Authenticate(ctx context.Context, token string) error {
	_, err := s.authenticate(ctx, token)
	return err
}

func (s *DrawingService) internal(ctx context.Context, msg string, err error, args ...any) error {
	s.logger.Error(ctx, msg, append(args, "error", err)...)
	return common.ErrorInternal
}

func (s *DrawingService) forbidden() error {
	if s.hideForeign {
		return common.ErrorNotFound
	}
	return common.ErrorForbidden
}

// parseID returns the canonical form of a drawing id.
func parseID(id string) (string, error) {
	if id == "" {
		return "", common.ErrorInvalidArgument
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return "", common.ErrorInvalidArgument
	}
	return u.String(), nil
}

// List returns the caller's drawings, newest first.
func (s *DrawingService) List(ctx context.Context, token string) ([]*models.Drawing, error) {
	id, err := s.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	list, err := s.repo().FindAllByOwner(ctx, id.UserID)
	if err != nil {
		return nil, s.internal(ctx, "list drawings failed", err, "user_id", id.UserID)
	}
	if list == nil {
		list = []*models.Drawing{}
	}

	return list, nil
}

// Get returns one of the caller's drawings.
func (s *DrawingService) Get(ctx context.Context, token, drawingID string) (*models.Drawing, error) {
	id, err := s.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	drawingID, err = parseID(drawingID)
	if err != nil {
		return nil, err
	}

	d, err := s.repo().FindByID(ctx, drawingID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, s.internal(ctx, "get drawing failed", err, "drawing_id", drawingID)
	}

	if !d.OwnedBy(id.UserID) {
		s.logger.Warn(ctx, "foreign drawing requested", "user_id", id.UserID, "drawing_id", drawingID)
		return nil, s.forbidden()
	}

	return d, nil
}

// Save creates a drawing when in.ID is empty and updates the caller's
// drawing otherwise. created reports which of the two happened.
func (s *DrawingService) Save(ctx context.Context, token string, in SaveInput) (d *models.Drawing, created bool, err error) {
	id, err := s.authenticate(ctx, token)
	if err != nil {
		return nil, false, err
	}

	if in.Name == "" || in.Content == "" {
		return nil, false, common.ErrorInvalidArgument
	}

	repo := s.repo()

	if in.ID == "" {
		d, err = repo.Create(ctx, id.UserID, in.Name, in.Content)
		if err != nil {
			return nil, false, s.internal(ctx, "create drawing failed", err, "user_id", id.UserID)
		}
		s.logger.Info(ctx, "drawing created", "user_id", id.UserID, "drawing_id", d.ID)
		return d, true, nil
	}

	drawingID, err := parseID(in.ID)
	if err != nil {
		return nil, false, err
	}

	existing, err := repo.FindByID(ctx, drawingID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, false, common.ErrorNotFound
		}
		return nil, false, s.internal(ctx, "load drawing failed", err, "drawing_id", drawingID)
	}

	if !existing.OwnedBy(id.UserID) {
		s.logger.Warn(ctx, "foreign drawing update rejected", "user_id", id.UserID, "drawing_id", drawingID)
		return nil, false, s.forbidden()
	}

	d, err = repo.Update(ctx, drawingID, id.UserID, in.Name, in.Content)
	if err != nil {
		// deleted or reassigned between the read and the write
		if errors.Is(err, common.ErrorNotFound) {
			return nil, false, common.ErrorNotFound
		}
		return nil, false, s.internal(ctx, "update drawing failed", err, "drawing_id", drawingID)
	}

	s.logger.Info(ctx, "drawing updated", "user_id", id.UserID, "drawing_id", d.ID)
	return d, false, nil
}
