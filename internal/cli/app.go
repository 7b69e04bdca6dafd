// Package cli implements a small command-line client for the blogmesh
// gateway:
//
//	blogmesh [-g URL] [-t TOKEN] register -u NAME -e EMAIL [-p PASSWORD]
//	blogmesh [-g URL] login -e EMAIL [-p PASSWORD]
//	blogmesh [-g URL] [-t TOKEN] list [-limit N] [-offset N]
//	blogmesh [-g URL] [-t TOKEN] create -title T -content C
//
// The gateway URL and token default to BLOGMESH_GATEWAY and BLOGMESH_TOKEN.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
)

const (
	DefaultGateway = "http://localhost:3000"
	EnvGateway     = "BLOGMESH_GATEWAY"
	EnvToken       = "BLOGMESH_TOKEN"
)

var errUsage = errors.New("usage: blogmesh [-g URL] [-t TOKEN] register|login|list|create [flags]")

type App struct {
	out    io.Writer
	errOut io.Writer
	lookup func(string) (string, bool)
}

func NewApp(out, errOut io.Writer, lookup func(string) (string, bool)) *App {
	return &App{out: out, errOut: errOut, lookup: lookup}
}

func (a *App) env(key, def string) string {
	if v, ok := a.lookup(key); ok && v != "" {
		return v
	}
	return def
}

// Run executes one command and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if err := a.run(ctx, args); err != nil {
		fmt.Fprintln(a.errOut, "error:", err)
		return 1
	}
	return 0
}

func (a *App) run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("blogmesh", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	gateway := fs.String("g", a.env(EnvGateway, DefaultGateway), "gateway base URL")
	token := fs.String("t", a.env(EnvToken, ""), "access token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	client := NewClient(*gateway, *token)
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "register":
		return a.register(ctx, client, rest)
	case "login":
		return a.login(ctx, client, rest)
	case "list":
		return a.list(ctx, client, rest)
	case "create":
		return a.create(ctx, client, rest)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func (a *App) password(given string) (string, error) {
	if given != "" {
		return given, nil
	}
	return GetPassword(a.errOut)
}

func (a *App) register(ctx context.Context, c *Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email")
	pw := fs.String("p", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *email == "" {
		return errors.New("register requires -u and -e")
	}

	password, err := a.password(*pw)
	if err != nil {
		return err
	}

	res, err := c.Register(ctx, *username, *email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (user id %s)\n", res.Message, res.UserID)
	return nil
}

func (a *App) login(ctx context.Context, c *Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	email := fs.String("e", "", "email")
	pw := fs.String("p", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("login requires -e")
	}

	password, err := a.password(*pw)
	if err != nil {
		return err
	}

	res, err := c.Login(ctx, *email, password)
	if err != nil {
		return err
	}
	// The token alone goes to stdout so it can be captured into BLOGMESH_TOKEN.
	fmt.Fprintln(a.out, res.AccessToken)
	return nil
}

func (a *App) list(ctx context.Context, c *Client, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	limit := fs.Int("limit", -1, "page size")
	offset := fs.Int("offset", -1, "rows to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	posts, err := c.ListPosts(ctx, *limit, *offset)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tCREATED")
	for _, p := range posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.UserID, p.CreatedAt)
	}
	return tw.Flush()
}

func (a *App) create(ctx context.Context, c *Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	title := fs.String("title", "", "post title")
	content := fs.String("content", "", "post body")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" || *content == "" {
		return errors.New("create requires -title and -content")
	}

	p, err := c.CreatePost(ctx, *title, *content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created post %s\n", p.ID)
	return nil
}
