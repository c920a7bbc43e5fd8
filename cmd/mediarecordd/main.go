// Command mediarecordd runs a development runtime hosting the media
// record program and offers helpers for building instruction data.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mediarecordd",
		Short: "Media record development runtime",
		Long: `mediarecordd hosts the media record program in an in-memory
runtime served over gRPC, and encodes or decodes instruction and
account data for testing.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCmd(),
		newKeygenCmd(),
		newEncodeCreateCmd(),
		newEncodeTransferCmd(),
		newDecodeRecordCmd(),
	)
	return root
}
