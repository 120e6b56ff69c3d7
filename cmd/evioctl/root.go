package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/eviokit/evio"
	"github.com/joshuapare/eviokit/internal/logctx"
)

var (
	// Global flags
	verbose    bool
	jsonOut    bool
	windowSize int64
	byteOrder  string
)

var rootCmd = &cobra.Command{
	Use:   "evioctl",
	Short: "Inspect EVIO event container files",
	Long: `evioctl reads EVIO v4 and v6 container files and reports their headers,
top-level events and nested structures. It never modifies the file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := logctx.NewConfiguredLogger(verbose, true)
		cmd.SetContext(logctx.WithLogger(cmd.Context(), logger))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		Int64Var(&windowSize, "window-size", evio.DefaultMaxWindowSize, "Maximum bytes mapped per window (multiple of 4)")
	rootCmd.PersistentFlags().
		StringVar(&byteOrder, "byte-order", "auto", "Word byte order: auto, big or little")
}

func execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openFile opens path with the global flags applied.
func openFile(ctx context.Context, path string) (*evio.File, error) {
	opts := &evio.OpenOptions{MaxWindowSize: windowSize}
	switch byteOrder {
	case "", "auto":
	case "big":
		opts.ByteOrder = binary.BigEndian
	case "little":
		opts.ByteOrder = binary.LittleEndian
	default:
		return nil, fmt.Errorf("unknown byte order %q", byteOrder)
	}
	f, err := evio.OpenContext(ctx, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// printJSON outputs data as JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
