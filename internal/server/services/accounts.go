// Package services holds the gallery business logic. Services are
// transport-agnostic and return only the sentinel errors from
// internal/common.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/drawgallery/internal/common"
	"github.com/dmitrijs2005/drawgallery/internal/dbx"
	"github.com/dmitrijs2005/drawgallery/internal/logging"
	"github.com/dmitrijs2005/drawgallery/internal/server/auth"
	"github.com/dmitrijs2005/drawgallery/internal/server/models"
	"github.com/dmitrijs2005/drawgallery/internal/server/repositories/repomanager"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      TokenIssuer
	hasher      auth.PasswordHasher
	logger      logging.Logger

	// dummyHash is verified against when the email is unknown so that both
	// failure paths cost one hash comparison.
	dummyHash string
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, issuer TokenIssuer, hasher auth.PasswordHasher, logger logging.Logger) (*AccountService, error) {
	dummy, err := hasher.Hash(common.MustRandHexString(16))
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	return &AccountService{
		db:          db,
		repomanager: m,
		issuer:      issuer,
		hasher:      hasher,
		logger:      logger.With("module", "accounts"),
		dummyHash:   dummy,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks the credentials and returns a fresh session token.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", common.ErrorMissingCredentials
	}

	account, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "account lookup failed", "error", err)
			return "", common.ErrorInternal
		}
		_, _ = s.hasher.Verify(password, s.dummyHash)
		return "", common.ErrorInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored password hash is unusable", "user_id", account.ID, "error", err)
		return "", common.ErrorInvalidCredentials
	}
	if !ok {
		return "", common.ErrorInvalidCredentials
	}

	token, err := s.issuer.Issue(account.ID)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err)
		return "", common.ErrorInternal
	}

	s.logger.Info(ctx, "login", "user_id", account.ID)
	return token, nil
}

// Register provisions an account. The email must be a bare address.
func (s *AccountService) Register(ctx context.Context, email, password string) (*models.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrorMissingCredentials
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, common.ErrorInvalidArgument
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	var account *models.Account

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		_, err := repo.GetByEmail(ctx, email)
		if err == nil {
			return common.ErrorAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		account, err = repo.Create(ctx, &models.Account{Email: email, PasswordHash: hash})
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "account creation failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "account created", "user_id", account.ID)
	return account, nil
}
