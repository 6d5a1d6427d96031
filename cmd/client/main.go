// Command inboxctl is the command-line client for the inbox server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophinbox/internal/client/cli"
	"github.com/dmitrijs2005/gophinbox/internal/client/config"
	"github.com/dmitrijs2005/gophinbox/internal/flagx"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	args := flagx.Positional(os.Args[1:], config.ValueFlags)

	app := cli.NewApp(cfg, os.Stdin, os.Stdout)
	if err := app.Run(ctx, args); err != nil {
		if !errors.Is(err, cli.ErrUsage) || len(args) > 0 {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1)
	}

}
