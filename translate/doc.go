// Package translate normalizes mixed-language queries to English.
//
// Local place names are swapped for opaque markers before the text goes
// to the translation service and restored afterwards, so "Puraran" never
// comes back mangled. Translation is strictly best effort: any failure
// falls back to the original text.
package translate
