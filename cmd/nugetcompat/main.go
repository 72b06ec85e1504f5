package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/willibrandon/nugetcompat/cmd/nugetcompat/commands"
	"github.com/willibrandon/nugetcompat/observability"
)

// Version information (set via ldflags during build)
var (
	version = "0.0.0-dev"
	commit  = "unknown"
)

func main() {
	commands.SetVersion(version, commit)
	commands.AddCommand(commands.NewCheckCommand())
	commands.AddCommand(commands.NewUpgradeCommand())

	tracerCfg := observability.DefaultTracerConfig()
	if exporter := os.Getenv("NUGETCOMPAT_TRACE_EXPORTER"); exporter != "" {
		tracerCfg.ExporterType = exporter
		tracerCfg.OTLPEndpoint = os.Getenv("NUGETCOMPAT_OTLP_ENDPOINT")
	}
	tp, err := observability.SetupTracing(context.Background(), tracerCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: tracing disabled: %v\n", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		os.Exit(130) // 128 + SIGINT
	}()

	execErr := commands.Execute()

	if tp != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = observability.ShutdownTracing(ctx, tp)
		cancel()
	}

	if execErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", execErr)
		os.Exit(1)
	}
}
