// Package evio opens EVIO container files for random word access.
//
// A File maps the container into read-only windows of at most
// MaxWindowSize bytes so files larger than a single mapping can be read.
// Every read takes an absolute byte offset; the window holding it is found
// by division.
//
//	f, err := evio.Open("run_001.evio", nil)
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	v, err := f.Version()
//
// Byte order is detected from the magic number at word 7 unless
// OpenOptions.ByteOrder fixes it. SetByteOrder changes it later without
// moving any data.
//
// Navigating the structures inside the file is the job of package
// evio/walker.
package evio
