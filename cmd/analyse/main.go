// Command analyse replays an NDJSON dump of decoded demo messages through
// the match analyser and emits the resulting game summary. It stands in
// for the demo parser, which normally drives the analyser directly.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tf-demo-insights/internal/analyser"
	"tf-demo-insights/internal/config"
	"tf-demo-insights/internal/ipc"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

func main() {
	var (
		streamPath = flag.String("stream", "", "Path to NDJSON decoded-stream dump ('-' for stdin)")
		outputPath = flag.String("output", "", "Write the summary JSON to this file instead of the result record")
		configPath = flag.String("config", "", "Path to YAML analysis options (optional)")
		pretty     = flag.Bool("pretty", false, "Indent the summary JSON written with --output")
		logLevel   = flag.String("log-level", "", "Override the configured log level")
	)
	flag.Parse()

	if *streamPath == "" {
		fmt.Fprintf(os.Stderr, "error: --stream is required\n")
		os.Exit(exitFailure)
	}

	out := ipc.NewOutput()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			out.Error(err.Error())
			os.Exit(exitFailure)
		}
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := setupLogging(cfg.LogLevel); err != nil {
		out.Error(err.Error())
		os.Exit(exitFailure)
	}

	summary, err := run(*streamPath, cfg.AnalyserOptions(), out)
	if err != nil {
		out.Error(err.Error())
		os.Exit(exitFailure)
	}

	if *outputPath != "" {
		if err := writeSummary(*outputPath, summary, *pretty); err != nil {
			out.Error(err.Error())
			os.Exit(exitFailure)
		}
	} else {
		out.Result(summary)
	}

	os.Exit(exitSuccess)
}

func setupLogging(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

func run(streamPath string, opts analyser.Options, out *ipc.Output) (analyser.GameSummary, error) {
	var r io.Reader
	if streamPath == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(streamPath)
		if err != nil {
			return analyser.GameSummary{}, fmt.Errorf("failed to open stream: %w", err)
		}
		defer f.Close()
		r = f
	}

	a := analyser.New(opts)
	if err := replayStream(r, a, out); err != nil {
		return analyser.GameSummary{}, err
	}

	out.Progress("finalize", 0, 0)
	return a.Summarize(), nil
}

func writeSummary(path string, summary analyser.GameSummary, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(summary, "", "  ")
	} else {
		data, err = json.Marshal(summary)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
