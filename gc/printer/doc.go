// Package printer dumps collector state for debugging: nursery slots,
// old-generation chunks with their colors, and root registry entries with
// the generation each root word points into.
//
// Text output groups large byte counts ("32,768 bytes"); JSON output is a
// single indented document per call.
package printer
