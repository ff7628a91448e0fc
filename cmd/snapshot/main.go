package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dayflow-hr/hrms-backend-go/internal/config"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/snapshot"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	file := flag.String("file", "-", "snapshot file, - for stdin/stdout")
	flag.Parse()

	action := "export"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := runSnapshot(context.Background(), cfg, action, *file); err != nil {
		slog.Error("snapshot failed", "action", action, "error", err)
		os.Exit(1)
	}
}

func runSnapshot(ctx context.Context, cfg *config.Config, action, file string) error {
	backend, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	switch action {
	case "export":
		var w io.Writer = os.Stdout
		if file != "-" {
			f, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("create %s: %w", file, err)
			}
			defer f.Close()
			w = f
		}
		return snapshot.Export(ctx, backend.Store, w)

	case "import":
		var r io.Reader = os.Stdin
		if file != "-" {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open %s: %w", file, err)
			}
			defer f.Close()
			r = f
		}
		report, err := snapshot.Import(ctx, backend.Store, r, snapshot.Options{
			HashPassword: func(password string) (string, error) {
				hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
				return string(hash), err
			},
			Location: cfg.Location(),
		})
		if err != nil {
			return err
		}
		for c, err := range report {
			if err != nil {
				slog.Warn("collection skipped", "collection", c, "error", err)
				continue
			}
			slog.Info("collection imported", "collection", c)
		}
		if report.Failed() {
			return fmt.Errorf("some collections could not be imported")
		}
		return nil

	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}
