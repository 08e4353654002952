package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/evacgrid/internal/app"
	"github.com/specialistvlad/evacgrid/internal/cli"
	"github.com/specialistvlad/evacgrid/internal/config"
	"github.com/specialistvlad/evacgrid/internal/hcl"
	"github.com/specialistvlad/evacgrid/internal/yamlconf"
)

// main is the entrypoint for the evacgrid application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical area errors, so we recover here to provide
	// a clean error to the caller.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	// HCL declarations are applied before YAML ones.
	loader := config.MultiLoader{hcl.NewLoader(), yamlconf.NewLoader()}
	evacApp := app.NewApp(outW, appConfig, loader)

	return evacApp.Run(context.Background())
}
