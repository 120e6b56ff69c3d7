package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/eviokit/evio"
	"github.com/joshuapare/eviokit/internal/format"
	"github.com/joshuapare/eviokit/internal/testutil"
)

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Reset flags
	verbose, jsonOut = false, false
	windowSize, byteOrder = evio.DefaultMaxWindowSize, "auto"
	eventsDepth, eventsLimit, eventsStrings = 0, 0, false
	wordCount = 1

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func sampleFile(t *testing.T) string {
	t.Helper()
	order := binary.LittleEndian
	names := testutil.Chars(order, "run", "42")
	event := testutil.Bank(0xff50, format.TypeBank, 0, 0, testutil.Concat(
		testutil.Bank(1, format.TypeUint32, 1, 0, 7, 8, 9),
		testutil.Bank(2, format.TypeCharStar8, 2, 0, names...),
	)...)
	words := testutil.Concat(
		testutil.Block{Number: 1, Events: [][]uint32{event}}.Words(),
		testutil.Block{Number: 2, Last: true, Events: [][]uint32{testutil.Bank(3, format.TypeInt32, 0, 0, 1)}}.Words(),
	)
	return testutil.WriteFile(t, testutil.Encode(order, words))
}

func TestInfoCommand(t *testing.T) {
	path := sampleFile(t)

	out, err := runCLI(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Version: 4")
	assert.Contains(t, out, "Blocks: 2")
	assert.Contains(t, out, "Events: 2")
	assert.Contains(t, out, "LittleEndian")

	out, err = runCLI(t, "info", path, "--json")
	require.NoError(t, err)
	var report infoReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "done", report.State)
	require.Len(t, report.Blocks, 2)
	assert.Equal(t, 1, report.Blocks[0].Events)
	assert.True(t, report.Blocks[1].Last)
}

func TestEventsCommand(t *testing.T) {
	path := sampleFile(t)

	out, err := runCLI(t, "events", path, "--depth", "1", "--strings")
	require.NoError(t, err)
	assert.Contains(t, out, "(PHYSICS)")
	assert.Contains(t, out, "type=uint32")
	assert.Contains(t, out, `"run"`)

	out, err = runCLI(t, "events", path, "--json", "--limit", "1", "--depth", "1", "--strings")
	require.NoError(t, err)
	var nodes []node
	require.NoError(t, json.Unmarshal([]byte(out), &nodes))
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Children, 2)
	assert.Equal(t, []string{"run", "42"}, nodes[0].Children[1].Strings)
}

func TestWordCommand(t *testing.T) {
	path := sampleFile(t)

	out, err := runCLI(t, "word", path, "7", "--count", "2", "--window-size", "16", "--json")
	require.NoError(t, err)
	var cells []wordCell
	require.NoError(t, json.Unmarshal([]byte(out), &cells))
	require.Len(t, cells, 2)
	assert.Equal(t, format.MagicNumber, cells[0].Value)
	assert.Equal(t, 1, cells[0].Window)
	assert.Equal(t, int64(0), cells[0].Row)
	assert.Equal(t, 3, cells[0].Col)
	assert.Equal(t, 2, cells[1].Window)

	_, err = runCLI(t, "word", path, "100000")
	assert.Error(t, err)

	_, err = runCLI(t, "word", path, "abc")
	assert.Error(t, err)
}

func TestBadByteOrderFlag(t *testing.T) {
	_, err := runCLI(t, "info", sampleFile(t), "--byte-order", "middle")
	assert.Error(t, err)
}
