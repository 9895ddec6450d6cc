package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfcrocker/turnstile/pkg/rotation"
	"github.com/mfcrocker/turnstile/pkg/sink"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <trace>",
	Short: "check a recorded turn trace against the rotation model",
	Args:  cobra.ExactArgs(1),
	RunE:  handleVerify,
}

var (
	verifySequence string
	verifyChunk    int
	verifyWorkers  int
)

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&verifySequence, "sequence", "s", "",
		"sequence the trace was recorded against")
	verifyCmd.Flags().IntVarP(&verifyChunk, "chunk", "c", 0,
		"chunk size the trace was recorded with")
	verifyCmd.Flags().IntVarP(&verifyWorkers, "workers", "w", 0,
		"worker count the trace was recorded with")
	verifyCmd.MarkFlagRequired("sequence")
	verifyCmd.MarkFlagRequired("chunk")
	verifyCmd.MarkFlagRequired("workers")
}

func handleVerify(cmd *cobra.Command, args []string) error {
	records, err := sink.LoadTrace(args[0])
	if err != nil {
		return err
	}

	cfg := rotation.Config{
		Sequence:  []byte(verifySequence),
		ChunkSize: verifyChunk,
		Workers:   verifyWorkers,
	}
	expected, err := rotation.Simulate(cfg, len(records))
	if err != nil {
		return err
	}

	for i, r := range records {
		want := expected[i]
		if r.Worker != want.Worker || r.Chunk != string(want.Chunk) {
			return fmt.Errorf("turn %d diverges: got worker %d chunk %q, want worker %d chunk %q",
				i, r.Worker, r.Chunk, want.Worker, want.Chunk)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "trace ok: %d turns\n", len(records))
	return nil
}
