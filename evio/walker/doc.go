// Package walker navigates the structures inside an EVIO container.
//
// # Overview
//
// A Walker moves through a container in a fixed order:
//
//	AtFileHeader -> AtBlockOrRecordHeader -> AtEventHeader -> AtChildStructure
//	                       ^                                        |
//	                       +----------------------------------------+
//
// ending in Done after the block or record flagged as last, or at end of
// file. The Error state is entered only when no block header can be found
// where one must start; everything else is reported on the headers.
//
// The format version is read from the info word at word 5. Version 6 files
// start with a 14-word file header followed by records; version 4 files
// start directly with 8-word block headers. Versions 1 to 3 and 5 are
// rejected with format.ErrUnsupportedVersion.
//
// # Top-level events
//
//	w := walker.New(f)
//	for ev := range w.Events() {
//		fmt.Println(ev.Tag, ev.DataType, ev.Error)
//	}
//	if w.State() == walker.Error {
//		return w.Err()
//	}
//
// Events of compressed v6 records are not visited; CurrentRecord reports the
// compression type.
//
// # Corruption
//
// An event whose length runs past its block gets an Error and the walk
// resumes at the next word that decodes as a probable bank (see
// IsProbableBank). When a block holds a different number of events than its
// header declares, every event header found in it is kept on
// BlockHeader.Events for inspection. Bytes left after the last whole event
// are reported on the block. A v6 file header whose lengths place the first
// record past the end of the file is marked, and the walk starts at the
// first record magic found after the fixed header instead.
//
// # Descending
//
// The walker never descends on its own. Descend returns a Scanner over one
// container's children; call Descend again on a child to go deeper. A child
// that overruns its parent ends the scan and is recorded on the parent's
// Error and ErrorChild. Scans of structures in the current block never read
// past the block end.
package walker
