// Package htmlimport converts HTML markup into content blocks.
//
// The importer walks the parsed DOM depth-first and builds a flat chunk:
// the document text with one inline style set and one optional entity key
// per character, plus a list of block descriptors separated by carriage
// return delimiters. The chunk is then sliced on the delimiters into one
// ContentBlock per descriptor.
//
// Parsing is delegated to golang.org/x/net/html, which never executes
// script. Script and style subtrees are skipped entirely. The set of
// block-level tags comes from a renderconfig.Config, so callers can extend
// or remap the recognized elements without touching the walker.
package htmlimport
