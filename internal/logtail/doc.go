// Package logtail reads the end of the diagnostics log and colors it for the
// TUI.
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays proportional to the tail rather than the file. A missing
// file returns no lines and no error.
//
// ColorizeLine styles the first level token written by charmbracelet/log
// (DEBU, INFO, WARN, ERRO, FATA) using lipgloss styles supplied by the
// caller. Lines without a level token pass through unchanged.
package logtail
