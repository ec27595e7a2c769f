// Command diplomacyplus plays Diplomacy+ on one shared terminal and manages
// territory catalogs.
//
// Usage:
//
//	diplomacyplus [-config file] [-catalog source] [-players n] [-v]
//	diplomacyplus catalog import -from source -to sqlite://path|postgres://...
//	diplomacyplus catalog export -from source [-o file]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/diplomacy-plus/internal/catalog"
	"github.com/freeeve/diplomacy-plus/internal/config"
	"github.com/freeeve/diplomacy-plus/internal/console"
	"github.com/freeeve/diplomacy-plus/internal/logger"
	"github.com/freeeve/diplomacy-plus/pkg/diplomacy"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	color := console.IsTerminal(os.Stdout)
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, color); err != nil {
		fmt.Fprintln(os.Stderr, "diplomacyplus:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, color bool) error {
	if len(args) > 0 && args[0] == "catalog" {
		return runCatalog(ctx, args[1:], stdout, stderr)
	}
	return runPlay(ctx, args, stdin, stdout, stderr, color)
}

func runPlay(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, color bool) error {
	fs := flag.NewFlagSet("diplomacyplus", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a YAML config file")
	source := fs.String("catalog", "", "Catalog source: builtin, a YAML/JSON file, sqlite://path or postgres://... (default from config)")
	players := fs.Int("players", 0, "Number of players to seat (default from config)")
	verbose := fs.Bool("v", false, "Log at the configured level instead of warn")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := setup(*configPath, *verbose, stderr)
	if err != nil {
		return err
	}
	if *source == "" {
		*source = cfg.CatalogSource
	}
	if *players <= 0 {
		*players = cfg.PlayerCount
	}

	cat, err := catalog.Open(ctx, *source, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	c := console.New(stdin, stdout)
	c.SetColor(color)
	err = c.Setup(ctx, cat, *players)
	if err == nil {
		err = c.Run(ctx)
	}
	// Interrupting the game or closing input ends it like quit.
	if errors.Is(err, console.ErrNoInput) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runCatalog(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errors.New("catalog: expected import or export")
	}
	sub, args := args[0], args[1:]

	fs := flag.NewFlagSet("catalog "+sub, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a YAML config file")
	from := fs.String("from", catalog.Builtin, "Catalog to read")
	to := fs.String("to", "", "Database to write (import only)")
	out := fs.String("o", "", "Output file, stdout when empty (export only)")
	verbose := fs.Bool("v", false, "Log at the configured level instead of warn")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := setup(*configPath, *verbose, stderr)
	if err != nil {
		return err
	}
	cat, err := catalog.Open(ctx, *from, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	switch sub {
	case "import":
		if *to == "" {
			return errors.New("catalog import: -to is required")
		}
		if err := catalog.Import(ctx, cat, *to, cfg.DatabaseURL); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "imported %d territories\n", cat.Len())
		return nil
	case "export":
		w := stdout
		if *out != "" {
			f, err := os.Create(*out)
			if err != nil {
				return fmt.Errorf("catalog export: %w", err)
			}
			defer f.Close()
			w = f
		}
		return diplomacy.EncodeCatalog(w, cat)
	default:
		return fmt.Errorf("catalog: unknown subcommand %q", sub)
	}
}

// setup loads config and sends logs to stderr so stdout stays game output.
func setup(configPath string, verbose bool, stderr io.Writer) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	level := "warn"
	if verbose {
		level = cfg.Log.Level
	}
	logger.Init(logger.Options{
		Level:      level,
		Dev:        cfg.Dev,
		Out:        stderr,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	log.Debug().Str("catalog", cfg.CatalogSource).Int("players", cfg.PlayerCount).Msg("Config loaded")
	return cfg, nil
}
