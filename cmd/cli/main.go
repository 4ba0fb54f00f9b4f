package main

import (
	"context"
	"flag"

	"github.com/dmitrijs2005/useraccounts/internal/client/cli"
)

func main() {

	addr := flag.String("a", "http://localhost:8080", "server base URL")
	flag.Parse()

	ctx := context.Background()

	app := cli.NewApp(cli.NewClient(*addr))
	app.Root(ctx)
}
