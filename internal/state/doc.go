// Package state holds the prompt workbench: the draft, the submission
// history, the loading flag and the latest image reference.
//
// # Model
//
// The view turns key presses into Commands and hands them to Dispatch, which
// looks up a handler in a table keyed by CommandKind. Handlers mutate the
// workbench and return an Effect describing I/O for the caller to perform:
//
//	InputChanged    draft = text
//	Submit          trim draft; blank is a no-op, otherwise prepend to
//	                history, clear draft, start loading, return a Request
//	RecallPrevious  draft = history[0] when history is non-empty
//	OpenImage       return the image URL, state untouched
//
// The caller runs the Request and reports back with Settle.
//
// # Overlapping Requests
//
// Each Request carries a sequence number and stays in flight until settled.
// Loading is true while any request is in flight. Results apply in the order
// they arrive: a success replaces the image, a failure leaves it alone, and
// the last one settled decides the Phase. Settling an unknown sequence is a
// no-op, so a duplicate result cannot clear loading for a live request.
//
// # Concurrency
//
// Workbench is not safe for concurrent use. Bubble Tea delivers every message
// on a single goroutine, and that is the only caller. Snapshot and History
// return copies.
//
// # States
//
//	Idle ──Submit──> Loading ──Settle(ok)──> Succeeded
//	                    │
//	                    └────Settle(err)──> Failed
//
// Succeeded and Failed both accept a new Submit.
package state
