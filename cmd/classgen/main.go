// Command classgen generates Go classes, host bindings, type stubs and
// documentation from a schema file.
//
//	classgen generate --target ./shapes schema.yaml
//	classgen check schema.yaml
//	classgen idents schema.yaml
//	classgen watch --target ./shapes schema.yaml
//
// Options may also be read from a classgen.yaml file; flags override it.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newApp().RunContext(ctx, args)
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "classgen",
		Usage: "generate classes and host bindings from a schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a classgen.yaml file",
				Value:   defaultConfigFile,
				EnvVars: []string{"CLASSGEN_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"CLASSGEN_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "log format (text, json)",
				Value:   "text",
				EnvVars: []string{"CLASSGEN_LOG_FORMAT"},
			},
		},
		Commands: []*cli.Command{
			cmdGenerate,
			cmdCheck,
			cmdIdents,
			cmdWatch,
		},
	}
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var logger *slog.Logger
	if strings.ToLower(cctx.String("log-format")) == "json" {
		logger = slog.New(slog.NewJSONHandler(writer, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(writer, opts))
	}
	slog.SetDefault(logger)
	return logger
}
