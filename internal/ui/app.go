package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/creahut/internal/diag"
	"github.com/five82/creahut/internal/imagegen"
	"github.com/five82/creahut/internal/placeholder"
	"github.com/five82/creahut/internal/prefs"
	"github.com/five82/creahut/internal/state"
)

// Options configures the UI.
type Options struct {
	Context          context.Context
	Generator        imagegen.Generator
	Logger           *log.Logger
	LogPath          string // diagnostics panel source
	ThemeName        string
	PrefsPath        string
	PlaceholderEvery time.Duration
	OpenURL          func(string) error // defaults to the system browser
	CopyText         func(string) error // defaults to the system clipboard
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	generator imagegen.Generator
	logger    *log.Logger
	logPath   string
	prefsPath string
	openURL   func(string) error
	copyText  func(string) error

	// Domain state
	wb   *state.Workbench
	hint placeholder.Cycle

	// Widgets
	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool
	notice string

	// Overlays
	showHelp        bool
	showDiagnostics bool
	diagViewport    viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = diag.Discard()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Load(opts.PrefsPath).Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	openURL := opts.OpenURL
	if openURL == nil {
		openURL = openInBrowser
	}
	copyText := opts.CopyText
	if copyText == nil {
		copyText = copyToClipboard
	}

	m := Model{
		ctx:          ctx,
		generator:    opts.Generator,
		logger:       logger,
		logPath:      opts.LogPath,
		prefsPath:    prefsPath,
		openURL:      openURL,
		copyText:     copyText,
		wb:           state.New(),
		input:        textinput.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:         help.New(),
		keys:         DefaultKeyMap(),
		theme:        GetTheme(themeName),
		diagViewport: viewport.New(0, 0),
	}
	m.input.Prompt = "› "
	m.input.CharLimit = 0 // unlimited
	m.input.Focus()
	m.applyTheme()
	m.syncPlaceholder()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case PlaceholderTick:
		m.hint.Advance()
		m.syncPlaceholder()
		return m, nil

	case generatedMsg:
		m.handleGenerated(msg)
		return m, nil

	case spinner.TickMsg:
		// The spinner only keeps ticking while something is in flight.
		if !m.wb.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionResultMsg:
		m.handleActionResult(msg)
		return m, nil

	case diagnosticsMsg:
		m.handleDiagnostics(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key closes help.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.showDiagnostics {
		switch msg.String() {
		case "esc":
			m.showDiagnostics = false
			m.layout()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.diagViewport, cmd = m.diagViewport.Update(msg)
			return m, cmd
		}
	}

	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.logger.Warn("save prefs failed", "err", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Diagnostics):
		m.showDiagnostics = !m.showDiagnostics
		m.layout()
		if m.showDiagnostics {
			return m, loadDiagnosticsCmd(m.logPath)
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Recall):
		m.wb.Dispatch(state.Command{Kind: state.RecallPrevious})
		m.input.SetValue(m.wb.Draft())
		m.input.CursorEnd()
		return m, nil

	case key.Matches(msg, m.keys.OpenImage):
		eff := m.wb.Dispatch(state.Command{Kind: state.OpenImage})
		if eff.OpenURL == "" {
			return m, nil
		}
		return m, actionCmd(actionOpen, eff.OpenURL, m.openURL)

	case key.Matches(msg, m.keys.CopyImage):
		eff := m.wb.Dispatch(state.Command{Kind: state.OpenImage})
		if eff.OpenURL == "" {
			return m, nil
		}
		return m, actionCmd(actionCopy, eff.OpenURL, m.copyText)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.wb.Draft() {
		m.wb.Dispatch(state.Command{Kind: state.InputChanged, Text: value})
	}
	return m, cmd
}

// submit hands the draft to the workbench and, when accepted, starts the
// image request. The workbench enters loading before the command exists, so
// loading is always observable before the request is dispatched.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.wb.Dispatch(state.Command{Kind: state.InputChanged, Text: m.input.Value()})
	wasLoading := m.wb.Loading()
	eff := m.wb.Dispatch(state.Command{Kind: state.Submit})
	if eff.Request == nil {
		return m, nil
	}
	m.input.SetValue(m.wb.Draft())

	m.logger.Debug("prompt submitted", "seq", eff.Request.Seq, "prompt", eff.Request.Prompt)
	gen := generateCmd(m.ctx, m.generator, *eff.Request)
	if wasLoading {
		// The spinner tick chain from the first request is still running.
		return m, gen
	}
	return m, tea.Batch(gen, m.spinner.Tick)
}

func (m *Model) handleGenerated(msg generatedMsg) {
	m.wb.Settle(state.Result{Seq: msg.seq, ImageRef: msg.ref, Err: msg.err})

	if msg.err != nil {
		fields := []any{"request", msg.requestID, "seq", msg.seq, "prompt", msg.prompt, "err", msg.err}
		var apiErr *imagegen.APIError
		if errors.As(msg.err, &apiErr) {
			fields = append(fields, "status", apiErr.Status)
		}
		m.logger.Error("image generation failed", fields...)
		return
	}
	m.logger.Info("image generated", "request", msg.requestID, "seq", msg.seq, "prompt", msg.prompt, "url", msg.ref)
}

func (m *Model) handleActionResult(msg actionResultMsg) {
	if msg.err != nil {
		m.logger.Warn(msg.action.String()+" failed", "url", msg.target, "err", msg.err)
		return
	}
	if msg.action == actionCopy {
		m.notice = "Image URL copied"
	}
}

func (m *Model) handleDiagnostics(msg diagnosticsMsg) {
	if msg.err != nil {
		m.logger.Warn("read diagnostics failed", "path", m.logPath, "err", msg.err)
		m.diagViewport.SetContent(m.theme.Styles().MutedText.Render("Diagnostics unavailable."))
		return
	}
	m.setDiagnosticsContent(msg.lines)
}

func (m *Model) syncPlaceholder() {
	m.input.Placeholder = "Try: " + m.hint.Current()
}

// Snapshot exposes the workbench state for callers embedding the model.
func (m Model) Snapshot() state.Snapshot {
	return m.wb.Snapshot()
}

// Run starts the Bubble Tea program and the placeholder rotation, and stops
// the rotation before returning.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
		opts.Context = ctx
	}

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))

	stop := placeholder.Start(ctx, opts.PlaceholderEvery, func() {
		p.Send(PlaceholderTick{})
	})
	defer stop()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
