package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mfcrocker/turnstile/pkg/rotation"
	"github.com/mfcrocker/turnstile/pkg/sink"
	"github.com/mfcrocker/turnstile/pkg/worker"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Println("Usage: turnstile <sequence> <chunk-size> <workers>")
		os.Exit(1)
	}

	chunkSize, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: chunk size %q: %v\n", os.Args[2], err)
		os.Exit(1)
	}
	workers, err := strconv.Atoi(os.Args[3])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: worker count %q: %v\n", os.Args[3], err)
		os.Exit(1)
	}

	cfg := rotation.Config{
		Sequence:  []byte(os.Args[1]),
		ChunkSize: chunkSize,
		Workers:   workers,
	}
	sched, err := rotation.NewScheduler(cfg, sink.NewWriterSink(os.Stdout))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Rotate until interrupted, matching the reference behavior.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := worker.NewPool(sched, cfg.Workers).Run(ctx, 0); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
