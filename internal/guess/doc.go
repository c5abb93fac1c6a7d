// Package guess implements a deterministic filename parser. It splits a
// path into segments, generates candidate interpretations from the deepest
// segment outward, scores each candidate, and returns the best record.
//
// The parser never calls out to the network and never returns an error; a
// path it cannot interpret yields a nil record.
package guess
