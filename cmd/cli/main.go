package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/casekeeper/internal/client/cli"
	"github.com/dmitrijs2005/casekeeper/internal/client/config"
	"github.com/dmitrijs2005/casekeeper/internal/flagx"
	"github.com/dmitrijs2005/casekeeper/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	args := os.Args[1:]
	cfg, err := config.LoadConfig(args)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogDriver, cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	if z, ok := log.(*logging.ZapLogger); ok {
		defer z.Sync()
	}

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	root := cli.NewRootCommand(app)
	root.SetArgs(flagx.StripArgs(args, config.Flags))
	return root.ExecuteContext(ctx)
}
