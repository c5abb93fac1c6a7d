// Package media defines the canonical identification record, the media type
// vocabulary, and the merge semantics the pipeline relies on.
//
// An Info accumulates evidence from independent resolvers. Merging is
// right-biased for ordinary fields and left-biased for provenance flags:
// once a resolver is recorded as used, later merges never clear it.
package media
