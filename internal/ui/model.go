// Package ui implements the interactive review session: browse records by
// day, mark some of them, then export or delete the marked set.
package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faizmokh/sugarlog/internal/aggregate"
	"github.com/faizmokh/sugarlog/internal/export"
	"github.com/faizmokh/sugarlog/internal/record"
	"github.com/faizmokh/sugarlog/internal/render"
	"github.com/faizmokh/sugarlog/internal/selection"
)

// Store is the part of the record store the review session uses.
type Store interface {
	All() []record.Record
	Load(ctx context.Context) error
	RemoveMany(ctx context.Context, ids []string) (int, error)
}

// Exporter writes a record set to disk.
type Exporter interface {
	Export(ctx context.Context, records []record.Record, opts export.Options) (export.Result, error)
}

// Options carries the collaborators of a review session.
type Options struct {
	Store     Store
	Exporter  Exporter
	ExportDir string
	// Now stamps default export file names. Defaults to time.Now.
	Now func() time.Time
}

// Model owns Bubble Tea state for the review session.
type Model struct {
	ctx       context.Context
	store     Store
	exporter  Exporter
	exportDir string
	now       func() time.Time

	// marks is backed by the records of the last load, never the live store,
	// so View and key handlers do not read what a running command writes.
	marks   *selection.Set
	days    []aggregate.Day
	order   []record.Record
	history aggregate.History
	cursor  int

	mode         mode
	input        textinput.Model
	exportFormat export.Format
	withStats    bool

	keys   keyMap
	help   help.Model
	height int

	loading    bool
	// busy is set while a command is loading from or writing to the store.
	busy       bool
	statusLine string
	errorLine  string
}

type mode uint8

const (
	modeNormal mode = iota
	modeExportPath
	modeConfirmDelete
)

type recordsLoadedMsg struct {
	records []record.Record
	reload  bool
	err     error
}

type exportResultMsg struct {
	result export.Result
	err    error
}

type deleteResultMsg struct {
	removed int
	records []record.Record
	err     error
}

// NewModel seeds a Bubble Tea model with required collaborators.
func NewModel(ctx context.Context, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 512

	return Model{
		ctx:        ctx,
		store:      opts.Store,
		exporter:   opts.Exporter,
		exportDir:  opts.ExportDir,
		now:        now,
		marks:      selection.New(selection.Snapshot(nil)),
		input:      input,
		keys:       defaultKeyMap(),
		help:       help.New(),
		mode:       modeNormal,
		loading:    true,
		busy:       true,
		statusLine: "Loading records...",
	}
}

// Init shows the records already held by the store.
func (m Model) Init() tea.Cmd {
	return m.loadCmd(false)
}

// Update wires TUI state transitions from user input and async commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case recordsLoadedMsg:
		return m.handleRecordsLoaded(msg)
	case exportResultMsg:
		return m.handleExportResult(msg)
	case deleteResultMsg:
		return m.handleDeleteResult(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeExportPath:
		return m.handleExportInput(msg)
	case modeConfirmDelete:
		return m.handleConfirmDelete(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.order)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Reload):
		if m.busy {
			return m, nil
		}
		m.loading = true
		m.busy = true
		m.statusLine = "Reloading records..."
		m.errorLine = ""
		return m, m.loadCmd(true)
	case key.Matches(msg, m.keys.Toggle):
		if m.loading || len(m.order) == 0 {
			return m, nil
		}
		r := m.order[m.cursor]
		if m.marks.Toggle(r.ID) {
			m.statusLine = fmt.Sprintf("Marked %s %s.", r.Date, r.Time)
		} else {
			m.statusLine = fmt.Sprintf("Unmarked %s %s.", r.Date, r.Time)
		}
		m.errorLine = ""
	case key.Matches(msg, m.keys.MarkAll):
		m.marks.SetAll(true)
		m.statusLine = fmt.Sprintf("Marked %d record%s.", m.marks.Count(), render.Plural(m.marks.Count()))
		m.errorLine = ""
	case key.Matches(msg, m.keys.ClearMarks):
		m.marks.SetAll(false)
		m.statusLine = "Cleared marks."
		m.errorLine = ""
	case key.Matches(msg, m.keys.Stats):
		m.withStats = !m.withStats
		m.statusLine = "Statistics sheet " + onOff(m.withStats) + "."
		m.errorLine = ""
	case key.Matches(msg, m.keys.ExportCSV):
		return m.beginExport(export.FormatCSV)
	case key.Matches(msg, m.keys.ExportXLSX):
		return m.beginExport(export.FormatXLSX)
	case key.Matches(msg, m.keys.Delete):
		if m.busy {
			return m, nil
		}
		if m.marks.Count() == 0 {
			m.statusLine = "Nothing marked."
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.statusLine = ""
		m.errorLine = ""
	}
	return m, nil
}

func (m Model) beginExport(format export.Format) (tea.Model, tea.Cmd) {
	if m.marks.Count() == 0 {
		m.statusLine = "Nothing marked."
		m.errorLine = ""
		return m, nil
	}
	m.mode = modeExportPath
	m.exportFormat = format
	m.input.SetValue(filepath.Join(m.exportDir, "sugarlog-"+m.now().Format("20060102-150405")+format.Extension()))
	m.input.CursorEnd()
	m.statusLine = ""
	m.errorLine = ""
	return m, m.input.Focus()
}

func (m Model) handleExportInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		return m.cancelInput("Export cancelled.")
	case tea.KeyEnter:
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			m.errorLine = "Path cannot be empty."
			return m, nil
		}
		records := m.marks.Marked()
		opts := export.Options{Format: m.exportFormat, Path: path, IncludeStatistics: m.withStats}
		m.mode = modeNormal
		m.input.Blur()
		m.statusLine = fmt.Sprintf("Exporting %d record%s...", len(records), render.Plural(len(records)))
		m.errorLine = ""
		return m, m.exportCmd(records, opts)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		ids := m.marks.IDs()
		m.mode = modeNormal
		m.busy = true
		m.statusLine = fmt.Sprintf("Deleting %d record%s...", len(ids), render.Plural(len(ids)))
		m.errorLine = ""
		return m, m.deleteCmd(ids)
	case "n", "N", "esc":
		return m.cancelInput("Delete cancelled.")
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) cancelInput(message string) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
	m.statusLine = message
	m.errorLine = ""
	return m, nil
}

func (m Model) handleRecordsLoaded(msg recordsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.busy = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load records: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m = m.applyRecords(msg.records)
	if len(m.order) == 0 {
		m.statusLine = "No records yet."
	} else if msg.reload || m.statusLine == "Loading records..." {
		m.statusLine = fmt.Sprintf("Loaded %d record%s.", len(m.order), render.Plural(len(m.order)))
	}
	m.errorLine = ""
	return m, nil
}

// applyRecords replaces the snapshot. Marks start empty because identities
// are reassigned on every load.
func (m Model) applyRecords(records []record.Record) Model {
	m.marks = selection.New(selection.Snapshot(records))
	m.days = aggregate.GroupByDate(records)
	m.history = aggregate.Overview(records)
	m.order = nil
	for _, day := range m.days {
		m.order = append(m.order, day.Records...)
	}
	if m.cursor >= len(m.order) {
		m.cursor = len(m.order) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m Model) handleExportResult(msg exportResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Export failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}
	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Exported %d record%s to %s.", msg.result.Rows, render.Plural(msg.result.Rows), msg.result.Path)
	return m, nil
}

func (m Model) handleDeleteResult(msg deleteResultMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Delete failed: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}
	m = m.applyRecords(msg.records)
	m.errorLine = ""
	m.statusLine = fmt.Sprintf("Deleted %d record%s.", msg.removed, render.Plural(msg.removed))
	return m, nil
}

func (m Model) loadCmd(reload bool) tea.Cmd {
	st := m.store
	ctx := m.ctx
	return func() tea.Msg {
		if reload {
			if err := st.Load(ctx); err != nil {
				return recordsLoadedMsg{reload: reload, err: err}
			}
		}
		return recordsLoadedMsg{records: st.All(), reload: reload}
	}
}

func (m Model) exportCmd(records []record.Record, opts export.Options) tea.Cmd {
	exporter := m.exporter
	ctx := m.ctx
	return func() tea.Msg {
		res, err := exporter.Export(ctx, records, opts)
		return exportResultMsg{result: res, err: err}
	}
}

func (m Model) deleteCmd(ids []string) tea.Cmd {
	st := m.store
	ctx := m.ctx
	return func() tea.Msg {
		removed, err := st.RemoveMany(ctx, ids)
		if err != nil {
			return deleteResultMsg{err: err}
		}
		return deleteResultMsg{removed: removed, records: st.All()}
	}
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sugarlog review"))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s\n\n", dimStyle.Render(fmt.Sprintf(
		"%d record%s over %d day%s | %d marked | stats sheet %s",
		m.history.Records, render.Plural(m.history.Records),
		m.history.Days, render.Plural(m.history.Days),
		m.marks.Count(), onOff(m.withStats),
	)))

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(m.order) == 0:
		b.WriteString("(no records)\n")
	default:
		b.WriteString(m.listView())
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(m.statusLine)
		b.WriteByte('\n')
	}

	switch m.mode {
	case modeExportPath:
		fmt.Fprintf(&b, "\nExport %d marked record%s as %s (Enter to save, Esc to cancel):\n",
			m.marks.Count(), render.Plural(m.marks.Count()), m.exportFormat)
		b.WriteString(m.input.View())
		b.WriteByte('\n')
	case modeConfirmDelete:
		fmt.Fprintf(&b, "\nDelete %d marked record%s? (y/n, Esc to cancel)\n", m.marks.Count(), render.Plural(m.marks.Count()))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteByte('\n')

	return b.String()
}

// listView renders day headers and records, clipped to the window height
// around the cursor.
func (m Model) listView() string {
	var (
		lines      []string
		cursorLine int
		index      int
	)
	for i, day := range m.days {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, dayStyle.Render(day.Date)+"  "+dimStyle.Render(render.Stats(day.Stats())))
		for _, r := range day.Records {
			cursor := "  "
			if index == m.cursor {
				cursor = cursorStyle.Render("> ")
				cursorLine = len(lines)
			}
			box := "[ ] "
			if m.marks.IsMarked(r.ID) {
				box = markedStyle.Render("[x] ")
			}
			lines = append(lines, cursor+box+render.Record(r, styledStatus))
			index++
		}
	}

	// Title, summary, status and help take roughly eight lines.
	avail := m.height - 8
	if avail > 0 && len(lines) > avail {
		start := cursorLine - avail/2
		if start < 0 {
			start = 0
		}
		if start+avail > len(lines) {
			start = len(lines) - avail
		}
		lines = lines[start : start+avail]
	}
	return strings.Join(lines, "\n") + "\n"
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func styledStatus(s aggregate.Status) string {
	return statusStyle(s).Render(s.String())
}
