package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/underwrite/candidatescore/pkg/types"
	"github.com/underwrite/candidatescore/scorer/internal/config"
	"github.com/underwrite/candidatescore/scorer/internal/guide"
	"github.com/underwrite/candidatescore/scorer/internal/record"
	"github.com/underwrite/candidatescore/scorer/internal/report"
	"github.com/underwrite/candidatescore/scorer/internal/scoring"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		slog.Error("scorer failed", "err", err)
		os.Exit(1)
	}
}

// options are the parsed command-line flags.
type options struct {
	configPath    string
	candidatePath string
	examPath      string
	format        string
	watch         bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("scorer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "path to config file (optional)")
	fs.StringVar(&o.candidatePath, "candidate", "", "path to candidate YAML document")
	fs.StringVar(&o.examPath, "exam", "", "path to medical exam YAML document")
	fs.StringVar(&o.format, "format", "", "output format: text | json | yaml | prometheus (overrides config)")
	fs.BoolVar(&o.watch, "watch", false, "re-score whenever the config file changes")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if o.candidatePath == "" {
		return o, errors.New("-candidate is required")
	}
	if o.examPath == "" {
		return o, errors.New("-exam is required")
	}
	if o.watch && o.configPath == "" {
		return o, errors.New("-watch requires -config")
	}
	if o.format != "" {
		if err := config.ValidateOutput(o.format); err != nil {
			return o, err
		}
	}
	return o, nil
}

// run scores one exam and writes the report to stdout. With -watch it
// keeps re-scoring on every config change until ctx is cancelled.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg := config.Defaults()
	if opts.configPath != "" {
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}
	level.Set(cfg.SlogLevel())

	candidate, err := record.LoadCandidate(opts.candidatePath)
	if err != nil {
		return err
	}
	exam, err := record.LoadExam(opts.examPath)
	if err != nil {
		return err
	}

	g := guide.NewReloadable(guide.FromConfig(cfg.Guide))
	slog.Debug("scorer starting",
		"config", opts.configPath,
		"origin_state", candidate.OriginState,
		"low_certification_states", g.Current().States(),
	)

	s := scoring.New(candidate)
	format := outputFormat(opts, cfg)
	if err := scoreAndReport(stdout, s, exam, g, format); err != nil {
		return err
	}

	if !opts.watch {
		return nil
	}

	return config.Watch(ctx, opts.configPath, func(updated *config.Config) {
		level.Set(updated.SlogLevel())
		g.Swap(guide.FromConfig(updated.Guide))
		if err := scoreAndReport(stdout, s, exam, g, outputFormat(opts, updated)); err != nil {
			slog.Error("re-score after reload failed", "err", err)
		}
	})
}

func outputFormat(opts options, cfg *config.Config) string {
	if opts.format != "" {
		return opts.format
	}
	return cfg.Output
}

func scoreAndReport(w io.Writer, s *scoring.Scorer, exam *types.MedicalExam, g types.ScoringGuide, format string) error {
	res, err := s.Evaluate(exam, g)
	if err != nil {
		return err
	}
	slog.Info("candidate scored",
		"origin_state", s.Candidate().OriginState,
		"score", res.Score,
		"grade", res.Grade,
		"signals", res.Signals,
	)
	if err := report.Write(w, format, s.Candidate(), res); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
