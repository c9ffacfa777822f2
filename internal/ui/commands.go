package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"github.com/five82/creahut/internal/imagegen"
	"github.com/five82/creahut/internal/logtail"
	"github.com/five82/creahut/internal/state"
)

const diagnosticsLines = 200

var errNoGenerator = errors.New("no image generator configured")

// Messages

// PlaceholderTick advances the rotating input hint by one word.
type PlaceholderTick struct{}

type generatedMsg struct {
	seq       uint64
	requestID string
	prompt    string
	ref       string
	err       error
}

type action int

const (
	actionOpen action = iota
	actionCopy
)

func (a action) String() string {
	if a == actionCopy {
		return "copy image url"
	}
	return "open image"
}

type actionResultMsg struct {
	action action
	target string
	err    error
}

type diagnosticsMsg struct {
	lines []string
	err   error
}

// Commands

// generateCmd runs one image request. The returned message always settles the
// request, including when the generator panics, so the workbench can never
// be left loading.
func generateCmd(ctx context.Context, gen imagegen.Generator, req state.Request) tea.Cmd {
	return func() (msg tea.Msg) {
		requestID := imagegen.NewRequestID()
		settled := generatedMsg{seq: req.Seq, requestID: requestID, prompt: req.Prompt}

		defer func() {
			if r := recover(); r != nil {
				settled.ref = ""
				settled.err = fmt.Errorf("image generator panicked: %v", r)
				msg = settled
			}
		}()

		if gen == nil {
			settled.err = errNoGenerator
			return settled
		}
		settled.ref, settled.err = gen.Generate(imagegen.WithRequestID(ctx, requestID), req.Prompt)
		return settled
	}
}

func actionCmd(a action, target string, fn func(string) error) tea.Cmd {
	return func() tea.Msg {
		return actionResultMsg{action: a, target: target, err: fn(target)}
	}
}

func loadDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return diagnosticsMsg{}
		}
		lines, err := logtail.Read(path, diagnosticsLines)
		return diagnosticsMsg{lines: lines, err: err}
	}
}

var quietBrowser sync.Once

// openInBrowser hands url to the system browser. The launcher's own output
// would corrupt the alt screen, so it is discarded.
func openInBrowser(url string) error {
	quietBrowser.Do(func() {
		browser.Stdout = io.Discard
		browser.Stderr = io.Discard
	})
	return browser.OpenURL(url)
}

func copyToClipboard(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard unsupported on this system")
	}
	return clipboard.WriteAll(text)
}
