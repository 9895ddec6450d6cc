package cmd

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mfcrocker/turnstile/pkg/rotation"
	"github.com/mfcrocker/turnstile/pkg/sink"
	"github.com/mfcrocker/turnstile/pkg/worker"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <sequence> <chunk-size> <workers>",
	Short: "run a rotation over the given sequence",
	Args:  cobra.ExactArgs(3),
	RunE:  handleRun,
}

var (
	turns     int
	tracePath string
	quiet     bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&turns, "turns", "t", 4,
		"turns per worker, 0 to run until interrupted")
	runCmd.Flags().StringVar(&tracePath, "trace", "",
		"write a JSONL turn trace to this file")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress per-turn output")
}

func handleRun(cmd *cobra.Command, args []string) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	var out sink.Multi
	if !quiet {
		out = append(out, sink.NewWriterSink(cmd.OutOrStdout()))
	}
	var trace *sink.TraceSink
	if tracePath != "" {
		trace = sink.NewTraceSink()
		out = append(out, trace)
	}

	sched, err := rotation.NewScheduler(cfg, out)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := worker.NewPool(sched, cfg.Workers).Run(ctx, turns); err != nil {
		return err
	}

	if trace != nil {
		if err := sink.SaveTrace(tracePath, trace.Records()); err != nil {
			return err
		}
		log.Printf("trace written to %s", tracePath)
	}
	return nil
}

// parseConfig turns the three positional arguments into a validated Config.
func parseConfig(args []string) (rotation.Config, error) {
	chunkSize, err := strconv.Atoi(args[1])
	if err != nil {
		return rotation.Config{}, fmt.Errorf("chunk size %q: %w", args[1], err)
	}
	workers, err := strconv.Atoi(args[2])
	if err != nil {
		return rotation.Config{}, fmt.Errorf("worker count %q: %w", args[2], err)
	}
	cfg := rotation.Config{
		Sequence:  []byte(args[0]),
		ChunkSize: chunkSize,
		Workers:   workers,
	}
	return cfg, cfg.Validate()
}
