// Command deckaudit runs the accessibility audit and structure build over
// a presentation model serialized as JSON by the parsing stage.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/wudi/deckkit/audit"
	"github.com/wudi/deckkit/model"
	"github.com/wudi/deckkit/observability"
	"github.com/wudi/deckkit/report"
	"github.com/wudi/deckkit/structure"
)

type options struct {
	modelPath     string
	jobID         string
	reportPath    string
	structurePath string
	markdownPath  string
	htmlPath      string
	verbose       bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "deckaudit: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "deckaudit: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: deckaudit [flags] <model.json>\n")
		flag.PrintDefaults()
	}
	job := flag.String("job", "local", "Job identifier recorded in the report")
	reportOut := flag.String("report", "", "Write the audit report as JSON to this path")
	structureOut := flag.String("structure", "", "Write the structure tree as JSON to this path")
	markdownOut := flag.String("markdown", "", "Write the report as Markdown to this path")
	htmlOut := flag.String("html", "", "Write the report as HTML to this path")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return opts, fmt.Errorf("expected exactly one model file")
	}

	opts.modelPath = flag.Arg(0)
	opts.jobID = *job
	opts.reportPath = *reportOut
	opts.structurePath = *structureOut
	opts.markdownPath = *markdownOut
	opts.htmlPath = *htmlOut
	opts.verbose = *verbose
	return opts, nil
}

func run(opts options) error {
	logger := newLogger(opts.verbose)
	ctx := context.Background()

	data, err := os.ReadFile(opts.modelPath)
	if err != nil {
		return fmt.Errorf("reading model: %w", err)
	}
	var pres model.Presentation
	if err := json.Unmarshal(data, &pres); err != nil {
		return fmt.Errorf("decoding model: %w", err)
	}

	checker := audit.NewChecker(audit.WithLogger(logger))
	rep := checker.GenerateReport(ctx, &pres, opts.jobID)

	builder := structure.NewBuilder(structure.WithLogger(logger))
	tree := builder.Build(ctx, &pres)

	if opts.reportPath != "" {
		if err := writeJSON(opts.reportPath, rep); err != nil {
			return err
		}
	}
	if opts.structurePath != "" {
		if err := writeJSON(opts.structurePath, tree); err != nil {
			return err
		}
	}
	if opts.markdownPath != "" {
		if err := os.WriteFile(opts.markdownPath, []byte(report.Markdown(rep)), 0o644); err != nil {
			return fmt.Errorf("writing markdown: %w", err)
		}
	}
	if opts.htmlPath != "" {
		html, err := report.ToHTML(rep)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.htmlPath, html, 0o644); err != nil {
			return fmt.Errorf("writing html: %w", err)
		}
	}

	fmt.Printf("score %.1f, %d issue(s), PDF/UA ready: %v\n", rep.Score, len(rep.Issues), rep.PDFUAReady)
	return nil
}

func newLogger(verbose bool) observability.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return observability.NewSlogLogger(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	))
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
