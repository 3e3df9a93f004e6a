// Package catalog holds the built-in template catalog and the cloners that
// fetch a template's repository into a new project directory.
//
// The catalog is a fixed, ordered list built at startup. It is never mutated
// after process start; Templates returns a copy so callers cannot change it.
package catalog
