// Package textutil provides the text normalization used to build cache keys.
//
// The primary entry point is SearchableReference, which canonicalizes a title
// by replacing roman numeral tokens with their arabic values, scrubbing
// special characters, and collapsing whitespace. The result is stable under
// repeated normalization, which makes it safe to use as a lookup key.
package textutil
