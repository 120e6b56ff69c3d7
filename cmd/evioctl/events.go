package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/eviokit/evio"
	"github.com/joshuapare/eviokit/evio/walker"
	"github.com/joshuapare/eviokit/internal/format"
	"github.com/joshuapare/eviokit/internal/logctx"
)

var (
	eventsDepth   int
	eventsLimit   int
	eventsStrings bool
)

func init() {
	rootCmd.AddCommand(newEventsCmd())
}

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events <file>",
		Short: "List top-level events and their nested structures",
		Long: `The events command lists the top-level events of an EVIO file. With --depth
it descends into container banks, segments and tagsegments.

Example:
  evioctl events run_001.evio --limit 10
  evioctl events run_001.evio --depth 2 --strings --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvents(cmd, args[0])
		},
	}
	cmd.Flags().IntVarP(&eventsDepth, "depth", "d", 0, "Levels of nested structures to show")
	cmd.Flags().IntVarP(&eventsLimit, "limit", "n", 0, "Stop after this many events (0 for all)")
	cmd.Flags().BoolVar(&eventsStrings, "strings", false, "Decode charstar8 payloads")
	return cmd
}

type node struct {
	Kind       string   `json:"kind"`
	Pos        int64    `json:"pos"`
	Tag        uint16   `json:"tag"`
	Num        uint8    `json:"num,omitempty"`
	Type       string   `json:"type"`
	Words      int64    `json:"words"`
	Pad        uint8    `json:"pad,omitempty"`
	Name       string   `json:"name,omitempty"`
	Strings    []string `json:"strings,omitempty"`
	Error      string   `json:"error,omitempty"`
	ErrorAtPos *int64   `json:"error_child_pos,omitempty"`
	Children   []node   `json:"children,omitempty"`
}

func runEvents(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	f, err := openFile(ctx, path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := walker.New(f, walker.WithLogger(logctx.FromContext(ctx)))
	var nodes []node
	for ev := range w.Events() {
		nodes = append(nodes, buildNode(w, f, ev, eventsDepth))
		if eventsLimit > 0 && len(nodes) >= eventsLimit {
			break
		}
	}
	if err := w.Err(); err != nil {
		return fmt.Errorf("walk stopped: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, nodes)
	}
	for i, n := range nodes {
		fmt.Fprintf(out, "event %d\n", i)
		printNode(out, n, 1)
	}
	return nil
}

func buildNode(w *walker.Walker, f *evio.File, h format.EvioHeader, depth int) node {
	n := node{
		Kind:  h.Kind.String(),
		Pos:   h.Pos,
		Tag:   h.Tag,
		Num:   h.Num,
		Type:  h.DataType.String(),
		Words: h.TotalWords(),
		Pad:   h.Pad,
		Name:  h.BankType,
	}
	if eventsStrings && h.DataType == format.TypeCharStar8 {
		if strs, err := walker.Strings(f, h); err == nil {
			n.Strings = strs
		} else {
			h.AddError(err.Error())
		}
	}
	if depth > 0 && h.IsContainer() {
		s := w.Descend(h)
		for {
			c, ok := s.Next()
			if !ok {
				break
			}
			n.Children = append(n.Children, buildNode(w, f, c, depth-1))
		}
		h = s.Parent()
		if h.ErrorChild != nil {
			pos := h.ErrorChild.Pos
			n.ErrorAtPos = &pos
		}
	}
	n.Error = h.Error
	return n
}

func printNode(out io.Writer, n node, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(out, "%s%s tag=0x%04x num=%d type=%s words=%d pos=%d", pad, n.Kind, n.Tag, n.Num, n.Type, n.Words, n.Pos)
	if n.Name != "" {
		fmt.Fprintf(out, " (%s)", n.Name)
	}
	fmt.Fprintln(out)
	for _, s := range n.Strings {
		fmt.Fprintf(out, "%s  %q\n", pad, s)
	}
	if n.Error != "" {
		fmt.Fprintf(out, "%s  ! %s\n", pad, n.Error)
	}
	for _, c := range n.Children {
		printNode(out, c, indent+1)
	}
}
