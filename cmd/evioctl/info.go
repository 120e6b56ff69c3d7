package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/joshuapare/eviokit/evio"
	"github.com/joshuapare/eviokit/evio/walker"
	"github.com/joshuapare/eviokit/internal/logctx"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Report file, block and event counts",
		Long: `The info command walks every block or record of an EVIO file and reports
the file layout, the number of blocks and events, and any structural problems.

Example:
  evioctl info run_001.evio
  evioctl info run_001.evio --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
	return cmd
}

type blockSummary struct {
	Pos         int64  `json:"pos"`
	Number      uint32 `json:"number"`
	Events      int    `json:"events"`
	Declared    uint32 `json:"declared_events"`
	Last        bool   `json:"last,omitempty"`
	Compression string `json:"compression,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infoReport struct {
	Path          string           `json:"path"`
	Size          int64            `json:"size"`
	ByteOrder     string           `json:"byte_order"`
	Version       uint32           `json:"version"`
	Windows       int              `json:"windows"`
	ExtraBytes    int              `json:"extra_bytes"`
	FileHeader    *evio.FileHeader `json:"file_header,omitempty"`
	Blocks        []blockSummary   `json:"blocks"`
	Events        int              `json:"events"`
	TrailingBytes int64            `json:"trailing_bytes"`
	State         string           `json:"state"`
	Error         string           `json:"error,omitempty"`
}

func runInfo(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	f, err := openFile(ctx, path)
	if err != nil {
		return err
	}
	defer f.Close()

	report := infoReport{
		Path:       path,
		Size:       f.Size(),
		ByteOrder:  f.ByteOrder().String(),
		Windows:    f.WindowCount(),
		ExtraBytes: f.ExtraByteCount(),
	}

	w := walker.New(f, walker.WithLogger(logctx.FromContext(ctx)))
	for w.NextBlock() {
		bh, _ := w.CurrentBlock()
		sum := blockSummary{Pos: bh.FilePos, Number: bh.Place, Declared: bh.EventCount, Last: bh.IsLast, Error: bh.Error}
		if rh, ok := w.CurrentRecord(); ok && rh.Compressed() {
			sum.Compression = rh.CompressionType.String()
		}
		for {
			if _, ok := w.NextEvent(); !ok {
				break
			}
			sum.Events++
		}
		report.Events += sum.Events
		report.Blocks = append(report.Blocks, sum)
	}

	report.Version = w.Version()
	if fh, ok := w.FileHeader(); ok {
		report.FileHeader = &fh
	}
	report.TrailingBytes = w.TrailingBytes()
	report.State = w.State().String()
	if err := w.Err(); err != nil {
		report.Error = err.Error()
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, report)
	}
	printInfoReport(out, report)
	return nil
}

func printInfoReport(out io.Writer, r infoReport) {
	fmt.Fprintf(out, "File: %s\n", r.Path)
	fmt.Fprintf(out, "  Size: %d bytes (%d windows, %d extra bytes)\n", r.Size, r.Windows, r.ExtraBytes)
	fmt.Fprintf(out, "  Byte order: %s\n", r.ByteOrder)
	fmt.Fprintf(out, "  Version: %d\n", r.Version)
	if fh := r.FileHeader; fh != nil {
		fmt.Fprintf(out, "  File type: %s, records: %d\n", fh.FileType, fh.RecordCount)
		if fh.Error != "" {
			fmt.Fprintf(out, "  File header problem: %s\n", fh.Error)
		}
	}
	fmt.Fprintf(out, "  Blocks: %d\n", len(r.Blocks))
	fmt.Fprintf(out, "  Events: %d\n", r.Events)
	for _, b := range r.Blocks {
		switch {
		case b.Compression != "":
			fmt.Fprintf(out, "    #%d at %d: compressed (%s)\n", b.Number, b.Pos, b.Compression)
		case b.Error != "":
			fmt.Fprintf(out, "    #%d at %d: %d events: %s\n", b.Number, b.Pos, b.Events, b.Error)
		}
	}
	if r.TrailingBytes > 0 {
		fmt.Fprintf(out, "  Trailing bytes: %d\n", r.TrailingBytes)
	}
	if r.Error != "" {
		fmt.Fprintf(out, "  Walk stopped: %s\n", r.Error)
	}
}
