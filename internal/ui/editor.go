package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	core "edit0r/internal/core"
	"edit0r/internal/inspect"
	"edit0r/internal/logger"
	"edit0r/internal/store"
	"edit0r/internal/util"
	verinfo "edit0r/internal/version"
)

type mode int

const (
	modeEdit mode = iota
	modeSave
)

// logLines is how many recent log entries the log panel shows.
const logLines = 8

// Options wires the editor to its collaborators.
type Options struct {
	Inspector *inspect.Inspector
	Drafts    *store.Store
	Log       *zap.Logger
	// Ring backs the log panel; nil hides it.
	Ring     *logger.Ring
	Debounce time.Duration
	// Text preloads the buffer. Draft names the draft it came from, if any.
	Text     string
	Draft    string
	Provider core.Vendor
	// Clipboard defaults to the system clipboard.
	Clipboard Clipboard
}

type model struct {
	opts Options
	log  *zap.Logger

	m       mode
	editor  textarea.Model
	nameIn  textinput.Model
	formErr string
	// confirm holds a draft name the user already tried to save once.
	confirm string

	overrides []core.Vendor
	override  int

	report   inspect.Report
	have     bool
	seq      int
	draft    string
	draftIdx int
	showLog  bool
	// flattened is set while the buffer holds Flatten output.
	flattened bool

	status string
	width  int
	height int
}

// inspectMsg fires once edits have settled for the debounce window.
type inspectMsg struct{ seq int }

var (
	styleHeader    = lipgloss.NewStyle().Bold(true)
	styleMuted     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleKey       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleStatusOK  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleStatusErr = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleWarn      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	stylePanel     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
)

func newModel(opts Options) model {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = systemClipboard{}
	}
	m := model{opts: opts, log: opts.Log.Named(logger.ComponentTUI), draft: opts.Draft, draftIdx: -1}

	m.editor = textarea.New()
	m.editor.Placeholder = "Paste an AI provider config (JSON or YAML)..."
	m.editor.ShowLineNumbers = true
	m.editor.CharLimit = 0
	m.editor.MaxHeight = 0
	m.editor.SetValue(opts.Text)
	m.editor.Focus()

	m.nameIn = textinput.New()
	m.nameIn.Placeholder = "draft-name"
	m.nameIn.CharLimit = 64

	m.overrides = append([]core.Vendor{""}, core.Vendors...)
	for i, v := range m.overrides {
		if v == opts.Provider {
			m.override = i
		}
	}
	m.status = "Ready"
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.inspectNow())
}

func (m model) inspectNow() tea.Cmd {
	seq := m.seq
	return func() tea.Msg { return inspectMsg{seq: seq} }
}

// touch invalidates pending inspections and schedules a new one after the
// debounce window.
func (m *model) touch() tea.Cmd {
	m.seq++
	seq := m.seq
	if m.opts.Debounce <= 0 {
		return func() tea.Msg { return inspectMsg{seq: seq} }
	}
	return tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg { return inspectMsg{seq: seq} })
}

func (m *model) runInspect() {
	text := m.editor.Value()
	r, err := m.opts.Inspector.Inspect(text, m.overrides[m.override])
	if err != nil {
		m.status = "inspect failed: " + err.Error()
		return
	}
	m.report, m.have = r, true
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case inspectMsg:
		if msg.seq == m.seq {
			m.runInspect()
		}
		return m, nil
	case tea.KeyMsg:
		if m.m == modeSave {
			return m.updateSaveKey(msg)
		}
		return m.updateEditKey(msg)
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) updateEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return m, tea.Quit
	case "ctrl+p":
		m.override = (m.override + 1) % len(m.overrides)
		m.status = "Provider: " + overrideTitle(m.overrides[m.override])
		m.runInspect()
		return m, nil
	case "ctrl+f":
		out, err := inspect.Format(m.editor.Value())
		if err != nil {
			m.status = "format failed: " + err.Error()
			return m, nil
		}
		m.editor.SetValue(out)
		m.flattened = false
		m.status = "Formatted"
		cmd := m.touch()
		return m, cmd
	case "ctrl+t":
		return m.toggleFlatten()
	case "ctrl+y":
		if err := m.opts.Clipboard.WriteAll(m.editor.Value()); err != nil {
			m.status = "copy failed: " + err.Error()
			m.log.Warn("clipboard write failed", zap.Error(err))
			return m, nil
		}
		m.status = "Copied to clipboard"
		return m, nil
	case "ctrl+r":
		text, err := m.opts.Clipboard.ReadAll()
		if err != nil {
			m.status = "paste failed: " + err.Error()
			m.log.Warn("clipboard read failed", zap.Error(err))
			return m, nil
		}
		m.editor.SetValue(text)
		m.flattened = false
		m.status = "Replaced from clipboard"
		cmd := m.touch()
		return m, cmd
	case "ctrl+s":
		m.m = modeSave
		m.formErr, m.confirm = "", ""
		m.nameIn.SetValue(m.draft)
		m.nameIn.CursorEnd()
		m.editor.Blur()
		cmd := m.nameIn.Focus()
		return m, cmd
	case "ctrl+o":
		return m.nextDraft()
	case "ctrl+l":
		m.showLog = !m.showLog && m.opts.Ring != nil
		m.resize()
		return m, nil
	}
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != before {
		settle := m.touch()
		return m, tea.Batch(cmd, settle)
	}
	return m, cmd
}

func (m model) updateSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.nameIn.Value())
		overwrite := name == m.draft || name == m.confirm
		d, err := m.opts.Drafts.SaveDraft(name, m.editor.Value(), m.overrides[m.override], overwrite)
		switch {
		case errors.Is(err, store.ErrExists):
			m.confirm = name
			m.formErr = fmt.Sprintf("draft %q exists, press Enter again to overwrite", name)
			return m, nil
		case err != nil:
			m.formErr = err.Error()
			return m, nil
		}
		m.log.Info("draft saved from editor", zap.String("name", d.Name))
		m.draft = d.Name
		m.status = "saved '" + d.Name + "'"
		cmd := m.leaveSave()
		return m, cmd
	case "esc":
		m.status = "save cancelled"
		cmd := m.leaveSave()
		return m, cmd
	}
	var cmd tea.Cmd
	m.nameIn, cmd = m.nameIn.Update(msg)
	return m, cmd
}

func (m *model) leaveSave() tea.Cmd {
	m.m = modeEdit
	m.formErr, m.confirm = "", ""
	m.nameIn.Blur()
	return m.editor.Focus()
}

// toggleFlatten swaps the buffer between pretty JSON and its one-line,
// percent-escaped form.
func (m model) toggleFlatten() (tea.Model, tea.Cmd) {
	if m.flattened {
		out, err := inspect.Unflatten(m.editor.Value())
		if err != nil {
			m.status = "unflatten failed: " + err.Error()
			return m, nil
		}
		m.editor.SetValue(out)
		m.flattened = false
		m.status = "Unflattened"
	} else {
		m.editor.SetValue(inspect.Flatten(m.editor.Value()))
		m.flattened = true
		m.status = "Flattened"
	}
	cmd := m.touch()
	return m, cmd
}

func (m model) nextDraft() (tea.Model, tea.Cmd) {
	list, err := m.opts.Drafts.ListDrafts()
	if err != nil {
		m.status = "load failed: " + err.Error()
		return m, nil
	}
	if len(list) == 0 {
		m.status = "no saved drafts in " + m.opts.Drafts.Dir()
		return m, nil
	}
	m.draftIdx = (m.draftIdx + 1) % len(list)
	d := list[m.draftIdx]
	m.editor.SetValue(d.Content)
	m.flattened = false
	m.draft = d.Name
	m.override = 0
	for i, v := range m.overrides {
		if v == d.Provider {
			m.override = i
		}
	}
	m.status = fmt.Sprintf("loaded '%s' (%d/%d)", d.Name, m.draftIdx+1, len(list))
	cmd := m.touch()
	return m, cmd
}

func (m *model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.editor.SetWidth(m.width - 2)
	reserved := 12
	if m.showLog {
		reserved += logLines + 2
	}
	h := m.height - reserved
	if h < 5 {
		h = 5
	}
	m.editor.SetHeight(h)
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTop() + "\n")
	b.WriteString(m.renderDetection() + "\n")
	b.WriteString(m.editor.View() + "\n")
	b.WriteString(m.renderIssues())
	b.WriteString(m.renderStats() + "\n")
	if m.m == modeSave {
		b.WriteString("Save as: " + m.nameIn.View() + "\n")
		if m.formErr != "" {
			b.WriteString(styleStatusErr.Render(m.formErr) + "\n")
		}
	}
	if m.showLog {
		b.WriteString(m.renderLog() + "\n")
	}
	b.WriteString(m.help())
	return b.String()
}

func (m model) renderTop() string {
	name := verinfo.Name
	if name == "" {
		name = "edit0r"
	}
	left := styleHeader.Render(name) + " " + styleMuted.Render(verinfo.Version)
	if m.draft != "" {
		left += " " + styleMuted.Render("["+m.draft+"]")
	}
	st := m.status
	stStyled := styleStatusOK.Render(st)
	ls := strings.ToLower(st)
	if strings.Contains(ls, "failed") || strings.Contains(ls, "error") {
		stStyled = styleStatusErr.Render(st)
	}
	return left + " | Status: " + stStyled
}

// Badge renders a vendor's display name on its signature color.
func Badge(v core.Vendor) string {
	sig := core.SignatureFor(v)
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(sig.Color)).
		Padding(0, 1).
		Render(sig.Icon + " " + sig.DisplayName)
}

func (m model) renderDetection() string {
	if !m.have {
		return styleMuted.Render("detecting...")
	}
	r := m.report
	line := Badge(r.Vendor)
	if r.Overridden {
		line += styleWarn.Render(" override") + styleMuted.Render(" (detected "+core.SignatureFor(r.Detection.Vendor).DisplayName+")")
	} else {
		line += fmt.Sprintf(" %.0f%%", r.Detection.Confidence*100)
	}
	ind := strings.Join(r.Detection.Indicators, " · ")
	if m.width > 0 {
		ind = util.Preview(ind, m.width)
	}
	return line + "\n" + styleMuted.Render(ind)
}

func (m model) renderIssues() string {
	if !m.have || !m.report.Parsed {
		return ""
	}
	v := m.report.Validation
	if len(v.Errors) == 0 && len(v.Warnings) == 0 {
		return styleStatusOK.Render("✔ valid "+core.SignatureFor(m.report.Vendor).DisplayName+" config") + "\n"
	}
	var b strings.Builder
	for _, e := range v.Errors {
		b.WriteString(styleStatusErr.Render("✖ "+e.Field+": ") + e.Message + "\n")
	}
	for _, w := range v.Warnings {
		b.WriteString(styleWarn.Render("⚠ "+w.Field+": ") + w.Message + "\n")
	}
	return b.String()
}

func (m model) renderStats() string {
	s := inspect.Measure(m.editor.Value())
	if m.have {
		s = m.report.Stats
	}
	return styleMuted.Render(fmt.Sprintf("Characters: %d  Words: %d  Lines: %d  Tokens: %d", s.Chars, s.Words, s.Lines, s.Tokens))
}

func (m model) renderLog() string {
	lines := m.opts.Ring.Lines()
	if len(lines) > logLines {
		lines = lines[len(lines)-logLines:]
	}
	if len(lines) == 0 {
		lines = []string{"(no log entries)"}
	}
	w := m.width - 4
	for i, l := range lines {
		if w > 0 {
			lines[i] = util.Preview(l, w)
		}
	}
	return stylePanel.Render(strings.Join(lines, "\n"))
}

func (m model) help() string {
	var b strings.Builder
	if m.m == modeSave {
		b.WriteString(styleKey.Render("[Enter]"))
		b.WriteString(" Save  ")
		b.WriteString(styleKey.Render("[Esc]"))
		b.WriteString(" Cancel")
		return b.String()
	}
	b.WriteString(styleKey.Render("[^P]"))
	b.WriteString(" Provider: " + overrideTitle(m.overrides[m.override]) + "  ")
	b.WriteString(styleKey.Render("[^F]"))
	b.WriteString(" Format  ")
	b.WriteString(styleKey.Render("[^T]"))
	if m.flattened {
		b.WriteString(" Unflatten  ")
	} else {
		b.WriteString(" Flatten  ")
	}
	b.WriteString(styleKey.Render("[^Y]"))
	b.WriteString(" Copy  ")
	b.WriteString(styleKey.Render("[^R]"))
	b.WriteString(" Paste  ")
	b.WriteString(styleKey.Render("[^S]"))
	b.WriteString(" Save  ")
	b.WriteString(styleKey.Render("[^O]"))
	b.WriteString(" Open next  ")
	if m.opts.Ring != nil {
		b.WriteString(styleKey.Render("[^L]"))
		b.WriteString(" Log  ")
	}
	b.WriteString(styleKey.Render("[Esc]"))
	b.WriteString(" Quit")
	return b.String()
}

func overrideTitle(v core.Vendor) string {
	if v == "" {
		return "auto"
	}
	return core.SignatureFor(v).DisplayName
}

// Run starts the editor and blocks until the user quits.
func Run(opts Options) error {
	m := newModel(opts)
	m.log.Info("editor started", zap.String("draft", opts.Draft), zap.Duration("debounce", opts.Debounce))
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
