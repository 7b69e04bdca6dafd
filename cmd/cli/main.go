package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/blogmesh/internal/cli"
)

func main() {

	ctx := context.Background()
	app := cli.NewApp(os.Stdout, os.Stderr, os.LookupEnv)

	os.Exit(app.Run(ctx, os.Args[1:]))

}
