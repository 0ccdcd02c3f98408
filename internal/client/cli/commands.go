package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/drawgallery/internal/client/client"
	"github.com/dmitrijs2005/drawgallery/internal/common"
)

// describe turns a client error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		return "Please log in first"
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable"
	case errors.Is(err, common.ErrorInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, common.ErrorMissingCredentials):
		return "Missing email or password"
	case errors.Is(err, common.ErrorUnauthorized):
		return "Session expired, please log in again"
	case errors.Is(err, common.ErrorNotFound):
		return "Drawing not found"
	case errors.Is(err, common.ErrorForbidden):
		return "Access denied"
	case errors.Is(err, common.ErrorInvalidArgument):
		return "Invalid request"
	default:
		return "error: " + err.Error()
	}
}

func (a *App) fail(err error) error {
	fmt.Fprintln(a.out, describe(err))
	return err
}

func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = GetSimpleText(a.reader, "-Enter email", a.out); err != nil {
			return a.fail(err)
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return a.fail(err)
	}
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, email, string(password)); err != nil {
		return a.fail(err)
	}

	a.email = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.email = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) List(ctx context.Context) error {
	drawings, err := a.client.ListDrawings(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(drawings) == 0 {
		fmt.Fprintln(a.out, "No drawings yet")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tUPDATED")
	for _, d := range drawings {
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, d.Name, d.UpdatedAt.Local().Format(time.DateTime))
	}
	return w.Flush()
}

// Show prints a drawing's details. With a second argument the image is
// decoded from its data URL and written to that file.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: show <id> [file]")
		return nil
	}

	d, err := a.client.GetDrawing(ctx, args[0])
	if err != nil {
		return a.fail(err)
	}

	data, mime, decodeErr := decodeDataURL(d.Content)

	fmt.Fprintf(a.out, "ID:      %s\n", d.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", d.Name)
	fmt.Fprintf(a.out, "Created: %s\n", d.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(a.out, "Updated: %s\n", d.UpdatedAt.Local().Format(time.DateTime))
	if decodeErr == nil {
		fmt.Fprintf(a.out, "Image:   %s, %d bytes\n", mime, len(data))
	} else {
		fmt.Fprintf(a.out, "Image:   %d characters of opaque content\n", len(d.Content))
	}

	if len(args) < 2 {
		return nil
	}
	if decodeErr != nil {
		return a.fail(decodeErr)
	}
	if err := os.WriteFile(args[1], data, 0o600); err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Saved to %s\n", args[1])
	return nil
}

// nameFromPath is the default drawing name: the file name without extension.
func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (a *App) Save(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: save <file> [name]")
		return nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return a.fail(err)
	}

	name := nameFromPath(args[0])
	if len(args) > 1 {
		name = strings.Join(args[1:], " ")
	}

	d, _, err := a.client.SaveDrawing(ctx, "", name, encodeDataURL(data))
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Created drawing %s (%s)\n", d.ID, d.Name)
	return nil
}

// Update replaces a drawing's image. Without a name argument the current
// name is kept.
func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: update <id> <file> [name]")
		return nil
	}
	id := args[0]

	data, err := os.ReadFile(args[1])
	if err != nil {
		return a.fail(err)
	}

	var name string
	if len(args) > 2 {
		name = strings.Join(args[2:], " ")
	} else {
		current, err := a.client.GetDrawing(ctx, id)
		if err != nil {
			return a.fail(err)
		}
		name = current.Name
	}

	d, _, err := a.client.SaveDrawing(ctx, id, name, encodeDataURL(data))
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Updated drawing %s (%s)\n", d.ID, d.Name)
	return nil
}
