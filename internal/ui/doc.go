// Package ui renders user-facing terminal output: colored status lines,
// wrapped text, and the spinner shown while a template is being cloned.
package ui
