package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"htmltag-go/packages/htmltag/src/config"
	"htmltag-go/packages/htmltag/src/diaglog"
	"htmltag-go/packages/htmltag/src/markup"
)

func main() {
	configDir := flag.String("config", ".", "Directory containing tagscan.yaml")
	mode := flag.String("mode", "", "Parse mode: demand or full (overrides the config file)")
	typesFile := flag.String("types", "", "YAML file with custom tag types (overrides the config file)")
	typeFilter := flag.String("type", "", "Only print tags whose type has this description")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		zlog.Fatal().Err(err).Msg("cannot load config")
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *typesFile != "" {
		cfg.TagTypesFile = *typesFile
	}
	if *typeFilter != "" {
		cfg.TypeFilter = *typeFilter
	}
	if err := cfg.Validate(); err != nil {
		zlog.Fatal().Err(err).Msg("invalid configuration")
	}

	stderrIsTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if cfg.IsDevelopment() || stderrIsTerminal {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !stderrIsTerminal})
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: tagscan [flags] FILE...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(cfg, flag.Args()); err != nil {
		zlog.Fatal().Err(err).Msg("scan failed")
	}
}

func run(cfg config.Config, paths []string) error {
	registry := markup.NewDefaultRegistry()
	ignoring := markup.DefaultIgnoringTypes()
	if cfg.TagTypesFile != "" {
		defs, err := config.LoadTagTypesFile(cfg.TagTypesFile)
		if err != nil {
			return err
		}
		types, extra := config.RegisterTagTypes(registry, defs)
		ignoring = append(ignoring, extra...)
		zlog.Info().Int("count", len(types)).Str("file", cfg.TagTypesFile).Msg("registered custom tag types")
	}

	var filter markup.TagType
	if cfg.TypeFilter != "" {
		filter = findTagType(registry, cfg.TypeFilter)
		if filter == nil {
			return fmt.Errorf("no registered tag type described as %q", cfg.TypeFilter)
		}
	}

	logger, sync, err := newDiagnosticLogger(cfg)
	if err != nil {
		return err
	}
	defer sync()

	colored := isatty.IsTerminal(os.Stdout.Fd())
	reports := make([]*report, len(paths))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("cannot read %s: %w", path, err)
			}
			source := markup.NewSource(string(content), &markup.SourceOptions{
				Registry:      registry,
				Logger:        logger,
				IgnoringTypes: ignoring,
				URL:           path,
			})
			reports[i] = scan(source, cfg.Mode, filter)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range reports {
		r.write(os.Stdout, colored)
	}
	return nil
}

// newDiagnosticLogger returns the diagnostic sink for the configured backend and a function
// flushing it
func newDiagnosticLogger(cfg config.Config) (markup.Logger, func(), error) {
	switch cfg.LogBackend {
	case config.LogBackendZap:
		var z *zap.Logger
		var err error
		if cfg.IsDevelopment() {
			z, err = zap.NewDevelopment()
		} else {
			z, err = zap.NewProduction()
		}
		if err != nil {
			return nil, nil, fmt.Errorf("cannot create zap logger: %w", err)
		}
		return diaglog.NewZap(z), func() { _ = z.Sync() }, nil
	case config.LogBackendStd:
		return diaglog.NewStdLogger(log.New(os.Stderr, "tagscan: ", 0)), func() {}, nil
	case config.LogBackendNone:
		return diaglog.Discard, func() {}, nil
	default:
		return diaglog.NewZerolog(zlog.Logger), func() {}, nil
	}
}

func findTagType(registry *markup.Registry, description string) markup.TagType {
	for _, t := range registry.TagTypes() {
		if t.Description() == description {
			return t
		}
	}
	return nil
}
