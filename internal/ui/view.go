package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/creahut/internal/logtail"
)

// Layout thresholds and sizes.
const (
	// LayoutSideBySideWidth is the minimum width to show history beside the form.
	LayoutSideBySideWidth = 90

	historyPanelWidth  = 34
	historyMaxRows     = 12
	diagnosticsHeight  = 10
	minInputWidth      = 20
	maxInputWidth      = 72
	headerTitle        = "Welcome to CreaHut"
	historyTitle       = "Search History"
	emptyHistoryText   = "No history yet."
	emptyImageText     = "No image yet."
	loadingText        = "Drawing your coloring page..."
	diagnosticsTitle   = "Diagnostics"
	emptyDiagnostics   = "No diagnostics recorded."
	imageOpenHint      = "ctrl+o open · ctrl+y copy"
	sideBySideGapWidth = 2
)

// applyTheme pushes the current theme into the widgets.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.input.PromptStyle = styles.AccentText
	m.input.TextStyle = styles.Text
	m.input.PlaceholderStyle = styles.FaintText
	m.spinner.Style = styles.WarningText
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.MutedText
}

// layout resizes widgets for the current window.
func (m *Model) layout() {
	formWidth := m.formWidth()
	m.input.Width = clamp(formWidth-6, minInputWidth, maxInputWidth)
	m.help.Width = m.width

	m.diagViewport.Width = maxInt(m.width-4, 10)
	m.diagViewport.Height = diagnosticsHeight
}

func (m Model) sideBySide() bool {
	return m.width >= LayoutSideBySideWidth
}

func (m Model) formWidth() int {
	if m.sideBySide() {
		return m.width - historyPanelWidth - sideBySideGapWidth
	}
	return m.width
}

// renderMain renders the full workbench.
func (m Model) renderMain() string {
	snap := m.wb.Snapshot()

	form := lipgloss.JoinVertical(lipgloss.Left,
		m.renderInput(),
		m.renderStatus(snap.Loading),
		m.renderImage(snap.ImageRef),
	)
	history := m.renderHistory(snap.History)

	var body string
	if m.sideBySide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.formWidth()).Render(form),
			strings.Repeat(" ", sideBySideGapWidth),
			history,
		)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, form, history)
	}

	sections := []string{m.renderHeader(), "", body}
	if m.showDiagnostics {
		sections = append(sections, m.renderDiagnostics())
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	return styles.Header.Width(maxInt(m.width, len(headerTitle)+4)).Align(lipgloss.Center).Render(headerTitle)
}

func (m Model) renderInput() string {
	styles := m.theme.Styles()
	return styles.Input.Render(m.input.View())
}

// renderStatus shows the spinner while loading. Failures deliberately leave
// this line blank; the only signal is that no new image appears.
func (m Model) renderStatus(loading bool) string {
	if !loading {
		return " "
	}
	styles := m.theme.Styles()
	return fmt.Sprintf(" %s %s", m.spinner.View(), styles.MutedText.Render(loadingText))
}

func (m Model) renderImage(ref string) string {
	styles := m.theme.Styles()
	width := clamp(m.formWidth()-4, minInputWidth, maxInputWidth+4)

	var b strings.Builder
	b.WriteString(styles.Title.Render("Latest Image"))
	b.WriteString("\n")
	if ref == "" {
		b.WriteString(styles.MutedText.Render(emptyImageText))
	} else {
		b.WriteString(styles.Link.Render(truncateMiddle(ref, width)))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(imageOpenHint))
	}
	return styles.Panel.Width(width).Render(b.String())
}

func (m Model) renderHistory(history []string) string {
	styles := m.theme.Styles()
	inner := historyPanelWidth - 4

	var b strings.Builder
	b.WriteString(styles.Title.Render(historyTitle))
	b.WriteString("\n")
	if len(history) == 0 {
		b.WriteString(styles.MutedText.Render(emptyHistoryText))
	} else {
		shown := history
		if len(shown) > historyMaxRows {
			shown = shown[:historyMaxRows]
		}
		for i, item := range shown {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(styles.Text.Render(truncate(item, inner)))
		}
		if extra := len(history) - len(shown); extra > 0 {
			b.WriteString("\n")
			b.WriteString(styles.FaintText.Render(fmt.Sprintf("+%d more", extra)))
		}
	}
	return styles.Panel.Width(historyPanelWidth - 2).Render(b.String())
}

func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	title := styles.Title.Render(diagnosticsTitle) + styles.FaintText.Render("  esc close · pgup/pgdn scroll")
	return styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, m.diagViewport.View()))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	line := m.help.View(m.keys)
	if m.notice != "" {
		line = styles.SuccessText.Render(m.notice) + "  " + line
	}
	return line
}

func (m *Model) setDiagnosticsContent(lines []string) {
	if len(lines) == 0 {
		m.diagViewport.SetContent(m.theme.Styles().MutedText.Render(emptyDiagnostics))
		return
	}
	colored := logtail.ColorizeLines(lines, m.theme.LogStyles())
	m.diagViewport.SetContent(strings.Join(colored, "\n"))
	m.diagViewport.GotoBottom()
}
