// Package prompt asks the user interactive questions: a single choice from a
// list and a validated line of text.
//
// Two implementations exist. TUI drives a bubbletea program and is used when
// both stdin and stdout are terminals. Line reads numbered answers from any
// io.Reader, which keeps pipes, CI and tests working.
package prompt
