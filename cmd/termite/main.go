// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/termite"
	"github.com/poiesic/termite/config"
	"github.com/poiesic/termite/core"
	"github.com/poiesic/termite/importer"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// session carries what Before resolves to the command actions.
type session struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdout, stderr io.Writer) *cli.App {
	s := &session{stdout: stdout, stderr: stderr}
	return &cli.App{
		Name:      "termite",
		Usage:     "Import topic models and their corpora into queryable bundles",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "apps-dir",
				Usage: "Directory bundles are created in",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
		},
		Before: s.loadConfig,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import a topic model and its corpus into a bundle",
				ArgsUsage: "APP_NAME MODEL_PATH CORPUS_PATH DATABASE_PATH",
				Action:    s.importCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Log at info level instead of debug",
					},
					&cli.BoolFlag{
						Name:  "overwrite",
						Usage: "Import again even if the bundle exists",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Model format of MODEL_PATH",
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Import again when an existing bundle has no import manifest",
					},
				},
			},
			{
				Name:      "status",
				Usage:     "Show what an imported bundle holds",
				ArgsUsage: "APP_NAME",
				Action:    s.statusCommand,
			},
		},
	}
}

func (s *session) loadConfig(c *cli.Context) error {
	var opts []config.Option
	if dir := c.String("apps-dir"); dir != "" {
		opts = append(opts, config.WithAppsDir(dir))
	}
	if level := c.String("log-level"); level != "" {
		opts = append(opts, config.WithLogLevel(strings.ToLower(level)))
	}

	cfg, err := config.Load(c.String("config"), opts...)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// setupLogger builds the logger handed to every component. The process-wide
// default logger is left alone.
func (s *session) setupLogger(quiet bool) (*slog.Logger, error) {
	level, err := s.cfg.Level()
	if err != nil {
		return nil, err
	}
	if quiet && level < slog.LevelInfo {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(s.stderr, &slog.HandlerOptions{
		Level: level,
	})), nil
}

func (s *session) importCommand(c *cli.Context) error {
	if c.NArg() != 4 {
		return fmt.Errorf("import requires APP_NAME MODEL_PATH CORPUS_PATH DATABASE_PATH, got %d arguments", c.NArg())
	}
	req := core.ImportRequest{
		Name:         c.Args().Get(0),
		ModelPath:    c.Args().Get(1),
		CorpusPath:   c.Args().Get(2),
		DatabasePath: c.Args().Get(3),
		Quiet:        c.Bool("quiet"),
		Overwrite:    c.Bool("overwrite"),
	}

	if format := c.String("format"); format != "" {
		s.cfg.ModelFormat = format
	}
	if c.Bool("strict") {
		s.cfg.StrictGuard = true
	}

	logger, err := s.setupLogger(req.Quiet)
	if err != nil {
		return err
	}
	apps, err := termite.Open(termite.WithConfig(s.cfg), termite.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := apps.Import(ctx, req)
	if err != nil {
		return err
	}

	switch result.State {
	case importer.Skipped:
		fmt.Fprintf(s.stdout, "%s already available at %s\n", req.Name, result.Bundle.Root)
	case importer.Done:
		fmt.Fprintf(s.stdout, "imported %s into %s (run %s)\n", req.Name, result.Bundle.Root, result.RunID)
	}
	return nil
}

func (s *session) statusCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("status requires APP_NAME")
	}
	logger, err := s.setupLogger(false)
	if err != nil {
		return err
	}
	apps, err := termite.Open(termite.WithConfig(s.cfg), termite.WithLogger(logger))
	if err != nil {
		return err
	}

	status, err := apps.Status(context.Background(), c.Args().First())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(s.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "app:\t%s\n", status.Bundle.Name)
	fmt.Fprintf(w, "path:\t%s\n", status.Bundle.Root)
	fmt.Fprintf(w, "available:\t%s\n", strings.Join(status.Available, ", "))
	fmt.Fprintf(w, "ready:\t%t\n", status.Ready())
	if m := status.Manifest; m != nil {
		fmt.Fprintf(w, "run:\t%s\n", m.RunID)
		fmt.Fprintf(w, "format:\t%s\n", m.ModelFormat)
		fmt.Fprintf(w, "finished:\t%s\n", m.FinishedAt.Format(time.RFC3339))
		fmt.Fprintf(w, "documents:\t%d\n", m.Counts.Documents)
		fmt.Fprintf(w, "topics:\t%d\n", m.Counts.Topics)
	}
	return w.Flush()
}
