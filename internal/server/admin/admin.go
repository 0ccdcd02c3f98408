// Package admin implements the account provisioning commands of the admin
// tool. Accounts are only ever created here; the server itself has no
// sign-up endpoint.
package admin

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/drawgallery/internal/common"
	"github.com/dmitrijs2005/drawgallery/internal/flagx"
	"github.com/dmitrijs2005/drawgallery/internal/server/models"
)

var ErrUsage = errors.New("usage: admin adduser -email <email>")

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, email, password string) (*models.Account, error)
}

// PasswordReader shows prompt and reads a password without echo.
type PasswordReader func(prompt string) ([]byte, error)

// ParseAddUser extracts -email from the arguments that follow the
// subcommand name. Server flags mixed into args are ignored.
func ParseAddUser(args []string) (string, error) {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	email := fs.String("email", "", "account email")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-email"})); err != nil {
		return "", ErrUsage
	}
	if *email == "" {
		return "", ErrUsage
	}
	return *email, nil
}

// AddUser asks for the password twice and registers the account.
func AddUser(ctx context.Context, r Registrar, email string, readPassword PasswordReader, w io.Writer) error {
	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(password)

	confirm, err := readPassword("Repeat password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(password, confirm) {
		return errors.New("passwords do not match")
	}

	account, err := r.Register(ctx, email, string(password))
	switch {
	case err == nil:
	case errors.Is(err, common.ErrorAlreadyExists):
		return fmt.Errorf("account %s already exists", email)
	case errors.Is(err, common.ErrorMissingCredentials):
		return errors.New("email and password must not be empty")
	case errors.Is(err, common.ErrorInvalidArgument):
		return fmt.Errorf("%q is not a valid email address", email)
	default:
		return fmt.Errorf("create account: %w", err)
	}

	fmt.Fprintf(w, "created account %s (%s)\n", account.Email, account.ID)
	return nil
}
