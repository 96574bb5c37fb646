// Package diagram renders one node-link diagram per call handler from a row
// file and describes the produced files in a [Manifest].
//
// # Algorithm
//
// [Renderer.Render] reads the row file, groups rows by handler name in order
// of first appearance, and for every group:
//
//  1. builds a two-level graph with [Build]: the handler as root and one child
//     per menu entry,
//  2. writes <prefix>_images/<name>.png and <prefix>_images/<name>.pdf below
//     the output directory, where <name> is [SafeName] of the handler name.
//     When two handler names sanitize to the same <name>, the later one gets
//     a numeric suffix (_2, _3, ...) so every handler keeps its own files.
//
// When merging is requested and at least one PDF exists, all per-handler PDFs
// are concatenated in group order into <prefix>_combined.pdf directly below
// the output directory.
//
// # Node identity
//
// Child nodes are identified by the handler name plus the touchtone key. Two
// entries of one handler with the same key share an ID; the later entry
// replaces the earlier one and the collision is logged as a warning.
package diagram
