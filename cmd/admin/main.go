package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/drawgallery/internal/server"
	"github.com/dmitrijs2005/drawgallery/internal/server/admin"
	"github.com/dmitrijs2005/drawgallery/internal/server/config"
	"golang.org/x/term"
)

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	return pw, err
}

func run(email string) error {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return admin.AddUser(ctx, app.Accounts(), email, readPassword, os.Stdout)
}

func main() {
	if len(os.Args) < 2 || os.Args[1] != "adduser" {
		log.Fatal(admin.ErrUsage)
	}

	email, err := admin.ParseAddUser(os.Args[2:])
	if err != nil {
		log.Fatal(err)
	}

	if err := run(email); err != nil {
		log.Fatalf("%v", err)
	}
}
