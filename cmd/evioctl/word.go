package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/eviokit/evio/address"
)

var wordCount int

func init() {
	rootCmd.AddCommand(newWordCmd())
}

func newWordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word <file> <index>",
		Short: "Show words and where they sit in the windowed view",
		Long: `The word command prints the words starting at a word index together with
their window, row and column and the composite cell key.

Example:
  evioctl word run_001.evio 0 --count 8
  evioctl word run_001.evio 0x100 --window-size 4096 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.ParseInt(args[1], 0, 64)
			if err != nil {
				return fmt.Errorf("invalid word index %q: %w", args[1], err)
			}
			return runWord(cmd, args[0], index)
		},
	}
	cmd.Flags().IntVarP(&wordCount, "count", "c", 1, "Number of words to show")
	return cmd
}

type wordCell struct {
	Index  int64  `json:"index"`
	Pos    int64  `json:"pos"`
	Value  uint32 `json:"value"`
	Window int    `json:"window"`
	Row    int64  `json:"row"`
	Col    int    `json:"col"`
	Key    uint64 `json:"key"`
}

func runWord(cmd *cobra.Command, path string, index int64) error {
	f, err := openFile(cmd.Context(), path)
	if err != nil {
		return err
	}
	defer f.Close()

	tr, err := address.New(f.MaxWindowSize(), f.Size())
	if err != nil {
		return err
	}

	var cells []wordCell
	for i := index; i < index+int64(max(wordCount, 1)); i++ {
		c, ok := tr.WordToCoords(i)
		if !ok {
			if len(cells) == 0 {
				return fmt.Errorf("word %d is outside the file (%d words)", i, tr.TotalWords())
			}
			break
		}
		v, err := f.IntAt(i * 4)
		if err != nil {
			return err
		}
		cells = append(cells, wordCell{Index: i, Pos: i * 4, Value: v, Window: c.Window, Row: c.Row, Col: c.Col, Key: c.Key()})
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		return printJSON(out, cells)
	}
	for _, c := range cells {
		fmt.Fprintf(out, "word %d (byte %d): 0x%08x  window %d row %d col %d  key 0x%016x\n",
			c.Index, c.Pos, c.Value, c.Window, c.Row, c.Col, c.Key)
	}
	return nil
}
