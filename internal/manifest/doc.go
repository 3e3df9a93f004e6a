// Package manifest reads, rewrites, and validates the package.json manifest
// at the root of a freshly cloned template.
//
// The rewrite touches only the top-level "name" field. Every other field is
// carried over byte-for-byte in its original order and the whole document is
// re-indented with two spaces.
package manifest
