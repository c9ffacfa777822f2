package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/creahut/internal/diag"
	"github.com/five82/creahut/internal/imagegen"
	"github.com/five82/creahut/internal/prefs"
)

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	fn      func(prompt string) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.fn(prompt)
}

type recorder struct {
	calls []string
	err   error
}

func (r *recorder) record(target string) error {
	r.calls = append(r.calls, target)
	return r.err
}

type harness struct {
	m      Model
	opened *recorder
	copied *recorder
	logs   *bytes.Buffer
	prefs  string
}

func newHarness(t *testing.T, gen imagegen.Generator) *harness {
	t.Helper()
	h := &harness{
		opened: &recorder{},
		copied: &recorder{},
		logs:   &bytes.Buffer{},
		prefs:  filepath.Join(t.TempDir(), "prefs.toml"),
	}
	h.m = New(Options{
		Generator: gen,
		Logger:    diag.New(h.logs, "debug"),
		ThemeName: "CreaHut",
		PrefsPath: h.prefs,
		OpenURL:   h.opened.record,
		CopyText:  h.copied.record,
	})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) typeText(text string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func (h *harness) press(k tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: k})
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func findMsg[T any](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if typed, ok := msg.(T); ok {
			return typed
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}

func TestEndToEnd_SuccessThenFailure(t *testing.T) {
	gen := &fakeGenerator{fn: func(prompt string) (string, error) {
		if prompt == "cat" {
			return "http://img/1", nil
		}
		return "", errors.New("endpoint exploded")
	}}
	h := newHarness(t, gen)

	h.typeText("cat")
	cmd := h.press(tea.KeyEnter)
	require.NotNil(t, cmd)

	snap := h.m.Snapshot()
	assert.Equal(t, []string{"cat"}, snap.History)
	assert.Equal(t, "", snap.Draft)
	assert.Equal(t, "", h.m.input.Value())
	assert.True(t, snap.Loading, "loading is set before the request runs")
	assert.Empty(t, gen.prompts, "request not dispatched until the command runs")

	h.send(findMsg[generatedMsg](t, collect(cmd)))
	snap = h.m.Snapshot()
	assert.Equal(t, "http://img/1", snap.ImageRef)
	assert.False(t, snap.Loading)

	h.typeText("dog")
	cmd = h.press(tea.KeyEnter)
	require.NotNil(t, cmd)
	snap = h.m.Snapshot()
	assert.Equal(t, []string{"dog", "cat"}, snap.History)
	assert.Equal(t, "", snap.Draft)

	assert.NotPanics(t, func() { h.send(findMsg[generatedMsg](t, collect(cmd))) })
	snap = h.m.Snapshot()
	assert.Equal(t, "http://img/1", snap.ImageRef)
	assert.False(t, snap.Loading)

	assert.Equal(t, []string{"cat", "dog"}, gen.prompts)
	assert.Contains(t, h.logs.String(), "image generation failed")
	assert.Contains(t, h.logs.String(), "endpoint exploded")

	view := h.m.View()
	assert.NotContains(t, view, "endpoint exploded", "failures are not shown to the user")
}

func TestSubmit_BlankDraftIsNoop(t *testing.T) {
	gen := &fakeGenerator{fn: func(string) (string, error) { return "http://img/1", nil }}
	h := newHarness(t, gen)

	h.typeText("   ")
	cmd := h.press(tea.KeyEnter)

	assert.Nil(t, cmd)
	snap := h.m.Snapshot()
	assert.Empty(t, snap.History)
	assert.Equal(t, "   ", snap.Draft)
	assert.False(t, snap.Loading)
	assert.Equal(t, "   ", h.m.input.Value())
}

func TestGeneratorPanic_StillReleasesLoading(t *testing.T) {
	gen := &fakeGenerator{fn: func(string) (string, error) { panic("kaboom") }}
	h := newHarness(t, gen)

	h.typeText("cat")
	cmd := h.press(tea.KeyEnter)

	var msg generatedMsg
	require.NotPanics(t, func() { msg = findMsg[generatedMsg](t, collect(cmd)) })
	require.Error(t, msg.err)
	assert.Contains(t, msg.err.Error(), "kaboom")

	h.send(msg)
	assert.False(t, h.m.Snapshot().Loading)
}

func TestNilGenerator_SettlesAsFailure(t *testing.T) {
	h := newHarness(t, nil)

	h.typeText("cat")
	cmd := h.press(tea.KeyEnter)
	msg := findMsg[generatedMsg](t, collect(cmd))
	assert.ErrorIs(t, msg.err, errNoGenerator)

	h.send(msg)
	assert.False(t, h.m.Snapshot().Loading)
}

func TestFailure_LogsAPIStatus(t *testing.T) {
	gen := &fakeGenerator{fn: func(string) (string, error) {
		return "", &imagegen.APIError{Status: 401, Message: "Incorrect API key provided"}
	}}
	h := newHarness(t, gen)

	h.typeText("cat")
	h.send(findMsg[generatedMsg](t, collect(h.press(tea.KeyEnter))))

	assert.Contains(t, h.logs.String(), "status=401")
}

func TestRecallPrevious(t *testing.T) {
	gen := &fakeGenerator{fn: func(string) (string, error) { return "http://img/1", nil }}
	h := newHarness(t, gen)

	assert.NotPanics(t, func() { h.press(tea.KeyUp) })
	assert.Equal(t, "", h.m.input.Value())

	h.typeText("cat")
	h.press(tea.KeyEnter)
	h.typeText("dog")
	h.press(tea.KeyEnter)

	h.press(tea.KeyUp)
	assert.Equal(t, "dog", h.m.input.Value())
	assert.Equal(t, "dog", h.m.Snapshot().Draft)
}

func TestOpenImage(t *testing.T) {
	gen := &fakeGenerator{fn: func(string) (string, error) { return "http://img/1", nil }}
	h := newHarness(t, gen)

	assert.Nil(t, h.press(tea.KeyCtrlO), "nothing to open yet")
	assert.Empty(t, h.opened.calls)

	h.typeText("cat")
	h.send(findMsg[generatedMsg](t, collect(h.press(tea.KeyEnter))))
	h.typeText("draft")
	before := h.m.Snapshot()

	cmd := h.press(tea.KeyCtrlO)
	require.NotNil(t, cmd)
	h.send(findMsg[actionResultMsg](t, collect(cmd)))

	assert.Equal(t, []string{"http://img/1"}, h.opened.calls)
	assert.Equal(t, before, h.m.Snapshot())
}

func TestOpenImage_FailureIsLoggedOnly(t *testing.T) {
	gen := &fakeGenerator{fn: func(string) (string, error) { return "http://img/1", nil }}
	h := newHarness(t, gen)
	h.opened.err = errors.New("no browser")

	h.typeText("cat")
	h.send(findMsg[generatedMsg](t, collect(h.press(tea.KeyEnter))))
	h.send(findMsg[actionResultMsg](t, collect(h.press(tea.KeyCtrlO))))

	assert.Contains(t, h.logs.String(), "open image failed")
	assert.Equal(t, "", h.m.notice)
}

func TestCopyImage_ShowsNotice(t *testing.T) {
	gen := &fakeGenerator{fn: func(string) (string, error) { return "http://img/1", nil }}
	h := newHarness(t, gen)

	h.typeText("cat")
	h.send(findMsg[generatedMsg](t, collect(h.press(tea.KeyEnter))))
	h.send(findMsg[actionResultMsg](t, collect(h.press(tea.KeyCtrlY))))

	assert.Equal(t, []string{"http://img/1"}, h.copied.calls)
	assert.Contains(t, h.m.View(), "Image URL copied")
}

func TestPlaceholderTick_RotatesHint(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, "Try: Elephant", h.m.input.Placeholder)

	want := []string{"Batman", "Sun", "Skateboard", "Elephant", "Batman"}
	for _, word := range want {
		h.send(PlaceholderTick{})
		assert.Equal(t, "Try: "+word, h.m.input.Placeholder)
	}
	assert.Empty(t, h.m.Snapshot().History)
}

func TestSpinnerStopsWhenIdle(t *testing.T) {
	h := newHarness(t, nil)
	assert.Nil(t, h.send(spinner.TickMsg{}))
}

func TestView_RendersSections(t *testing.T) {
	m := New(Options{ThemeName: "CreaHut", PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	assert.Equal(t, "Loading...", m.View())

	gen := &fakeGenerator{fn: func(string) (string, error) { return "http://img/1", nil }}
	h := newHarness(t, gen)
	view := h.m.View()
	assert.Contains(t, view, headerTitle)
	assert.Contains(t, view, historyTitle)
	assert.Contains(t, view, emptyHistoryText)
	assert.Contains(t, view, emptyImageText)

	h.typeText("cat")
	cmd := h.press(tea.KeyEnter)
	assert.Contains(t, h.m.View(), loadingText)

	h.send(findMsg[generatedMsg](t, collect(cmd)))
	view = h.m.View()
	assert.Contains(t, view, "cat")
	assert.Contains(t, view, "http://img/1")
	assert.NotContains(t, view, emptyHistoryText)
	assert.NotContains(t, view, loadingText)
}

func TestView_NarrowLayoutStacks(t *testing.T) {
	h := newHarness(t, nil)
	h.send(tea.WindowSizeMsg{Width: 60, Height: 30})
	assert.False(t, h.m.sideBySide())
	assert.Contains(t, h.m.View(), historyTitle)
}

func TestHelpOverlay(t *testing.T) {
	h := newHarness(t, nil)

	h.press(tea.KeyF1)
	assert.True(t, h.m.showHelp)
	assert.Contains(t, h.m.View(), "Keyboard Shortcuts")

	h.typeText("x")
	assert.False(t, h.m.showHelp, "any key closes help")
	assert.Equal(t, "", h.m.input.Value(), "closing key is not typed")
}

func TestCycleTheme_PersistsPreference(t *testing.T) {
	h := newHarness(t, nil)

	h.press(tea.KeyCtrlT)
	assert.Equal(t, "Kanagawa", h.m.theme.Name)

	assert.Equal(t, "Kanagawa", prefs.Load(h.prefs).Theme)
}

func TestDiagnosticsPanel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "creahut.log")
	require.NoError(t, os.WriteFile(logPath, []byte(
		"2026/10/15 10:00:00 INFO creahut: starting\n"+
			"2026/10/15 10:00:05 ERRO creahut: image generation failed status=401\n"), 0o600))

	h := newHarness(t, nil)
	h.m.logPath = logPath

	cmd := h.press(tea.KeyCtrlL)
	require.NotNil(t, cmd)
	h.send(findMsg[diagnosticsMsg](t, collect(cmd)))

	view := h.m.View()
	assert.Contains(t, view, diagnosticsTitle)
	assert.Contains(t, view, "image generation failed")

	h.press(tea.KeyEsc)
	assert.False(t, h.m.showDiagnostics, "esc closes the panel instead of quitting")
	assert.NotContains(t, h.m.View(), "image generation failed")
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t, nil)

	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		cmd := h.press(k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestTypingSyncsDraft(t *testing.T) {
	h := newHarness(t, nil)
	h.typeText("a red ")
	h.typeText("fox")
	assert.Equal(t, "a red fox", h.m.Snapshot().Draft)
	assert.True(t, strings.HasSuffix(h.m.input.Value(), "fox"))
}

func TestSubmit_LongPromptKeptWhole(t *testing.T) {
	gen := &fakeGenerator{fn: func(string) (string, error) { return "http://img/1", nil }}
	h := newHarness(t, gen)

	long := strings.Repeat("a", 1500)
	h.typeText(long)
	h.send(findMsg[generatedMsg](t, collect(h.press(tea.KeyEnter))))

	history := h.m.Snapshot().History
	require.NotEmpty(t, history)
	assert.Equal(t, long, history[0])
	assert.Equal(t, []string{long}, gen.prompts)
}

func TestRecall_WorksWithDiagnosticsOpen(t *testing.T) {
	gen := &fakeGenerator{fn: func(string) (string, error) { return "http://img/1", nil }}
	h := newHarness(t, gen)

	h.typeText("cat")
	h.send(findMsg[generatedMsg](t, collect(h.press(tea.KeyEnter))))

	h.send(findMsg[diagnosticsMsg](t, collect(h.press(tea.KeyCtrlL))))
	require.True(t, h.m.showDiagnostics)

	h.press(tea.KeyUp)
	assert.Equal(t, "cat", h.m.input.Value())
	assert.Equal(t, "cat", h.m.Snapshot().Draft)
	assert.True(t, h.m.showDiagnostics)
}

func TestOverlappingSubmits_StartOneSpinner(t *testing.T) {
	gen := &fakeGenerator{fn: func(string) (string, error) { return "http://img/1", nil }}
	h := newHarness(t, gen)

	countTicks := func(msgs []tea.Msg) int {
		n := 0
		for _, msg := range msgs {
			if _, ok := msg.(spinner.TickMsg); ok {
				n++
			}
		}
		return n
	}

	h.typeText("cat")
	first := collect(h.press(tea.KeyEnter))
	assert.Equal(t, 1, countTicks(first))

	h.typeText("dog")
	second := collect(h.press(tea.KeyEnter))
	assert.Equal(t, 0, countTicks(second), "spinner already ticking")
	assert.Equal(t, 2, h.m.Snapshot().InFlight)

	h.send(findMsg[generatedMsg](t, first))
	h.send(findMsg[generatedMsg](t, second))
	require.False(t, h.m.Snapshot().Loading)

	h.typeText("sun")
	third := collect(h.press(tea.KeyEnter))
	assert.Equal(t, 1, countTicks(third), "idle to loading restarts the spinner")
}

func TestInit_OnlyStartsCursorBlink(t *testing.T) {
	h := newHarness(t, nil)
	msgs := collect(h.m.Init())
	assert.Len(t, msgs, 1)
}
