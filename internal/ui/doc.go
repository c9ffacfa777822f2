// Package ui provides the CreaHut terminal interface.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns a state.Workbench and the
// bubbles widgets (textinput, spinner, viewport, help). Update translates
// messages into workbench commands and returns tea.Cmds for any I/O; View is a
// pure rendering of the current snapshot.
//
// # Package Structure
//
//   - app.go: Model, Update, key handling and Run
//   - commands.go: Messages and the commands that perform I/O
//   - view.go: Layout and rendering of the workbench
//   - help.go: Keyboard shortcut overlay
//   - keys.go: Key bindings
//   - theme.go: lipgloss color themes
//   - strings.go: Text helpers
//
// # Screen
//
//	┌──────────────── Welcome to CreaHut ────────────────┐
//	│ › Try: Elephant                  │ Search History   │
//	│  ⣾ Drawing your coloring page... │ dog              │
//	│ Latest Image                     │ cat              │
//	│ https://...                      │                  │
//	└────────────────────────────────────────────────────┘
//
// History moves below the form when the terminal is narrower than
// LayoutSideBySideWidth.
//
// # Event Flow
//
//  1. Run starts the program and a placeholder.Start goroutine that sends
//     PlaceholderTick every interval; the rotation stops when Run returns
//  2. enter submits: the workbench enters loading before the request command
//     is returned, and the spinner ticks while anything is in flight
//  3. generateCmd always produces a generatedMsg, including on a panic, and
//     that message settles the request
//  4. Failures go to the diagnostics log; the screen only stops loading
//
// # Key Bindings
//
//   - enter: Submit the prompt
//   - ↑: Recall the most recent prompt
//   - ctrl+o: Open the latest image in the browser
//   - ctrl+y: Copy the latest image URL
//   - ctrl+t: Cycle theme (saved to prefs)
//   - ctrl+l: Toggle the diagnostics panel (pgup/pgdown scroll it)
//   - f1: Help
//   - esc or ctrl+c: Exit (esc closes diagnostics first)
package ui
