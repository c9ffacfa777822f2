package state

import (
	"fmt"
	"strings"
)

// Phase is the request lifecycle position of the workbench.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// CommandKind selects a handler in the dispatch table.
type CommandKind int

const (
	InputChanged CommandKind = iota
	Submit
	RecallPrevious
	OpenImage
)

// Command is a user intent delivered by the view.
type Command struct {
	Kind CommandKind
	Text string // InputChanged only
}

// Request is an accepted submission waiting for an image.
type Request struct {
	Seq    uint64
	Prompt string
}

// Result settles a Request.
type Result struct {
	Seq      uint64
	ImageRef string
	Err      error
}

// Effect tells the caller what to do after a command. The zero value means
// nothing.
type Effect struct {
	Request *Request
	OpenURL string
}

// Snapshot is a copy of the workbench state.
type Snapshot struct {
	Draft     string
	History   []string
	Phase     Phase
	Loading   bool
	InFlight  int
	ImageRef  string
	LastError error
	Failures  int
}

// Workbench holds the prompt form state. It is not safe for concurrent use;
// every call is expected to come from the single UI update loop.
type Workbench struct {
	draft    string
	history  []string
	phase    Phase
	inFlight map[uint64]struct{}
	imageRef string
	lastErr  error
	failures int
	nextSeq  uint64
}

// New returns an idle workbench with empty history.
func New() *Workbench {
	return &Workbench{inFlight: make(map[uint64]struct{})}
}

var handlers = map[CommandKind]func(*Workbench, Command) Effect{
	InputChanged:   (*Workbench).inputChanged,
	Submit:         (*Workbench).submit,
	RecallPrevious: (*Workbench).recallPrevious,
	OpenImage:      (*Workbench).openImage,
}

// Dispatch applies a command and returns the side effect it requests.
func (w *Workbench) Dispatch(cmd Command) Effect {
	handler, ok := handlers[cmd.Kind]
	if !ok {
		return Effect{}
	}
	return handler(w, cmd)
}

func (w *Workbench) inputChanged(cmd Command) Effect {
	w.draft = cmd.Text
	return Effect{}
}

func (w *Workbench) submit(Command) Effect {
	prompt := strings.TrimSpace(w.draft)
	if prompt == "" {
		return Effect{}
	}

	w.history = append([]string{prompt}, w.history...)
	w.draft = ""

	if w.inFlight == nil {
		w.inFlight = make(map[uint64]struct{})
	}
	w.nextSeq++
	req := Request{Seq: w.nextSeq, Prompt: prompt}
	w.inFlight[req.Seq] = struct{}{}
	w.phase = PhaseLoading
	return Effect{Request: &req}
}

func (w *Workbench) recallPrevious(Command) Effect {
	if len(w.history) == 0 {
		return Effect{}
	}
	w.draft = w.history[0]
	return Effect{}
}

func (w *Workbench) openImage(Command) Effect {
	return Effect{OpenURL: w.imageRef}
}

// Settle records the outcome of a request. Results resolve in arrival order,
// so the last one to arrive decides the image and phase. A result for a
// sequence that is not in flight is ignored.
func (w *Workbench) Settle(res Result) {
	if _, ok := w.inFlight[res.Seq]; !ok {
		return
	}
	delete(w.inFlight, res.Seq)

	ref := strings.TrimSpace(res.ImageRef)
	switch {
	case res.Err != nil:
		w.fail(res.Err)
	case ref == "":
		w.fail(fmt.Errorf("request %d settled without an image reference", res.Seq))
	default:
		w.imageRef = ref
		w.phase = PhaseSucceeded
	}

	if len(w.inFlight) > 0 {
		w.phase = PhaseLoading
	}
}

func (w *Workbench) fail(err error) {
	w.lastErr = err
	w.failures++
	w.phase = PhaseFailed
}

// Draft returns the current input text.
func (w *Workbench) Draft() string { return w.draft }

// ImageRef returns the most recently generated image reference.
func (w *Workbench) ImageRef() string { return w.imageRef }

// Loading reports whether any request is outstanding.
func (w *Workbench) Loading() bool { return len(w.inFlight) > 0 }

// Phase returns the current lifecycle phase.
func (w *Workbench) Phase() Phase { return w.phase }

// History returns a copy of the submitted prompts, most recent first.
func (w *Workbench) History() []string { return cloneHistory(w.history) }

// Snapshot returns a copy of the current state.
func (w *Workbench) Snapshot() Snapshot {
	return Snapshot{
		Draft:     w.draft,
		History:   cloneHistory(w.history),
		Phase:     w.phase,
		Loading:   len(w.inFlight) > 0,
		InFlight:  len(w.inFlight),
		ImageRef:  w.imageRef,
		LastError: w.lastErr,
		Failures:  w.failures,
	}
}

func cloneHistory(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	dup := make([]string, len(items))
	copy(dup, items)
	return dup
}
