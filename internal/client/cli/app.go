// Package cli implements the Passport command-line client: single-shot
// register, login and profile commands against a running server.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ryabovm/passport/internal/client/api"
	"github.com/ryabovm/passport/internal/client/config"
)

const usage = `usage: passport [-s server] [-t token] <command>

commands:
  register   create an account and print the issued token
  login      authenticate and print the issued token
  profile    print the profile for the configured token
`

type App struct {
	config *config.Config
	api    *api.Client
	in     *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config) *App {
	return &App{
		config: cfg,
		api:    api.NewClient(cfg.ServerAddr),
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "profile":
		return a.profile(ctx)
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) register(ctx context.Context) error {
	username, err := GetSimpleText(a.in, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.in, "Enter email", a.out)
	if err != nil {
		return err
	}
	fullName, err := GetSimpleText(a.in, "Enter full name (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	data, err := a.api.Register(ctx, username, email, fullName, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered as %s (id %d)\n", data.User.Username, data.User.ID)
	fmt.Fprintf(a.out, "Token: %s\n", data.Token)
	return nil
}

func (a *App) login(ctx context.Context) error {
	email, err := GetSimpleText(a.in, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	data, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", data.User.Username)
	fmt.Fprintf(a.out, "Token: %s\n", data.Token)
	return nil
}

func (a *App) profile(ctx context.Context) error {
	if a.config.Token == "" {
		return fmt.Errorf("no token configured: pass -t or set PASSPORT_TOKEN")
	}

	user, err := a.api.Profile(ctx, a.config.Token)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "id:         %d\n", user.ID)
	fmt.Fprintf(a.out, "username:   %s\n", user.Username)
	fmt.Fprintf(a.out, "email:      %s\n", user.Email)
	if user.FullName != "" {
		fmt.Fprintf(a.out, "full name:  %s\n", user.FullName)
	}
	fmt.Fprintf(a.out, "created at: %s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}
