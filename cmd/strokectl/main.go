package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/GoSim-25-26J-441/stroke-coach/config"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/logging"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/service"
)

const usage = `usage:
  strokectl analyze <video> <student> [forehand|backhand|serve|volley]
  strokectl ping`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(os.Stderr, cfg.App.Environment, cfg.App.LogLevel))

	client := service.NewAnalyzerClient(cfg.Analyzer.BaseURL, service.ClientOptions{
		Timeout: cfg.Analyzer.Timeout,
	})

	switch os.Args[1] {
	case "analyze":
		err = RunAnalyze(client, os.Args[2:], os.Stdout)
	case "ping":
		err = RunPing(client, os.Stdout)
	default:
		err = fmt.Errorf("unknown command: %s\n%s", os.Args[1], usage)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
