package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/search"
	"github.com/Aman-CERP/physref/internal/session"
	"github.com/Aman-CERP/physref/internal/store"
	"github.com/Aman-CERP/physref/internal/telemetry"
)

// BrowseConfig wires the interactive browser to the loaded tables.
type BrowseConfig struct {
	Catalog *store.Catalog
	Engine  *search.Engine
	Session *session.State
	// Metrics feeds the stats panel; optional.
	Metrics *telemetry.QueryMetrics
	// Stats describes the data source for the stats panel.
	Stats   StatsInfo
	Details bool
	NoColor bool
}

// headerLines is the space taken by tabs, the input and blank lines.
const headerLines = 4

// footerLines is the space taken by the status bar.
const footerLines = 2

// searchDoneMsg carries a finished search. seq identifies the request so
// results of superseded keystrokes are dropped.
type searchDoneMsg struct {
	seq     int
	result  *search.Result
	elapsed time.Duration
}

type browseModel struct {
	ctx context.Context
	cfg BrowseConfig

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	cards    *CardRenderer
	styles   Styles
	latency  *Sparkline

	result    *search.Result
	seq       int
	searching bool
	details   bool
	showStats bool

	width  int
	height int
}

func newBrowseModel(ctx context.Context, cfg BrowseConfig) *browseModel {
	if cfg.Session == nil {
		cfg.Session = session.New(record.DomainFormulas)
	}
	if cfg.Engine == nil {
		cfg.Engine = search.NewEngine()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = store.NewCatalog()
	}

	ti := textinput.New()
	ti.Prompt = "🔎 "
	ti.CharLimit = 120
	ti.Width = 50
	ti.SetValue(cfg.Session.Query())
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime))

	m := &browseModel{
		ctx:      ctx,
		cfg:      cfg,
		input:    ti,
		viewport: viewport.New(80, 24-headerLines-footerLines),
		spinner:  s,
		cards:    NewCardRenderer(CardOptions{Styled: !cfg.NoColor, Details: cfg.Details, Width: 76}),
		styles:   GetStyles(cfg.NoColor),
		latency:  NewSparkline(20),
		details:  cfg.Details,
		width:    80,
		height:   24,
	}
	m.updatePlaceholder()
	return m
}

// Init implements tea.Model.
func (m *browseModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startSearch())
}

// Update implements tea.Model.
func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerLines-footerLines, 3)
		m.cards.SetWidth(max(msg.Width-4, 30))
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case searchDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.searching = false
		m.result = msg.result
		m.latency.Add(float64(msg.elapsed.Microseconds()))
		m.refresh()
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyTab:
		m.cfg.Session.Next()
		return m, m.domainChanged()

	case tea.KeyShiftTab:
		m.cfg.Session.Prev()
		return m, m.domainChanged()

	case tea.KeyEsc, tea.KeyCtrlU:
		m.cfg.Session.Clear()
		m.input.SetValue("")
		return m, m.startSearch()

	case tea.KeyCtrlD:
		m.details = !m.details
		m.cards.SetDetails(m.details)
		m.refresh()
		return m, nil

	case tea.KeyCtrlT:
		m.showStats = !m.showStats
		m.refresh()
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	m.cfg.Session.SetQuery(m.input.Value())
	return m, tea.Batch(cmd, m.startSearch())
}

func (m *browseModel) domainChanged() tea.Cmd {
	m.input.SetValue(m.cfg.Session.Query())
	m.updatePlaceholder()
	m.showStats = false
	return m.startSearch()
}

func (m *browseModel) updatePlaceholder() {
	m.input.Placeholder = fmt.Sprintf("Search %s...", record.SchemaFor(m.cfg.Session.Active()).Noun)
}

// startSearch issues a search for the active domain and query.
func (m *browseModel) startSearch() tea.Cmd {
	m.seq++
	m.searching = true

	seq := m.seq
	ctx := m.ctx
	engine := m.cfg.Engine
	st := m.cfg.Catalog.Store(m.cfg.Session.Active())
	query := m.cfg.Session.Query()

	run := func() tea.Msg {
		start := time.Now()
		res := engine.Search(ctx, st, query)
		return searchDoneMsg{seq: seq, result: res, elapsed: time.Since(start)}
	}
	return tea.Batch(run, m.spinner.Tick)
}

// refresh redraws the viewport content.
func (m *browseModel) refresh() {
	if m.showStats {
		m.viewport.SetContent(m.statsView())
		return
	}

	var sb strings.Builder
	if err := m.cfg.Catalog.NoticeFor(m.cfg.Session.Active()); err != nil {
		sb.WriteString(m.styles.Warning.Render("⚠ "+err.Error()) + "\n\n")
	}
	if m.result != nil {
		sb.WriteString(m.cards.Render(m.result, m.cfg.Engine.Hint(m.result)))
	}
	m.viewport.SetContent(sb.String())
}

func (m *browseModel) statsView() string {
	info := m.cfg.Stats
	info.Domains = DomainStatuses(m.cfg.Catalog)
	if m.cfg.Metrics != nil {
		info.Telemetry = m.cfg.Metrics.Snapshot()
	}
	var buf bytes.Buffer
	_ = NewStatsRenderer(&buf, m.cfg.NoColor).Render(info)
	return buf.String()
}

// View implements tea.Model.
func (m *browseModel) View() string {
	sections := []string{
		m.renderTabs(),
		m.input.View(),
		"",
		m.viewport.View(),
		m.renderDivider(),
		m.renderStatusBar(),
	}
	return strings.Join(sections, "\n")
}

func (m *browseModel) renderTabs() string {
	tabs := make([]string, 0, len(record.Domains)+1)
	tabs = append(tabs, m.styles.Header.Render("physref"))
	for _, d := range record.Domains {
		label := d.Title()
		if d == m.cfg.Session.Active() {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
			continue
		}
		tabs = append(tabs, m.styles.Tab.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *browseModel) renderDivider() string {
	return m.styles.Border.Render(strings.Repeat("─", max(m.width, 10)))
}

func (m *browseModel) renderStatusBar() string {
	var parts []string

	switch {
	case m.searching:
		parts = append(parts, m.spinner.View()+" searching")
	case m.result != nil:
		parts = append(parts, fmt.Sprintf("%d %s", m.result.Count, record.SchemaFor(m.result.Domain).Noun))
		if n := len(m.result.Warnings); n > 0 {
			parts = append(parts, m.styles.Warning.Render(fmt.Sprintf("⚠ %d warnings", n)))
		}
	}
	if m.latency.Count() > 0 {
		parts = append(parts, m.styles.Sparkline.Render(m.latency.Render()))
	}

	details := "off"
	if m.details {
		details = "on"
	}
	parts = append(parts, m.styles.Dim.Render(
		"tab domain • esc clear • ctrl+d details "+details+" • ctrl+t stats • ctrl+c quit"))

	return strings.Join(parts, m.styles.Dim.Render("  │  "))
}

// RunBrowse runs the interactive browser until the user quits or ctx is
// canceled.
func RunBrowse(ctx context.Context, cfg BrowseConfig, in io.Reader, out io.Writer) error {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}

	p := tea.NewProgram(newBrowseModel(ctx, cfg), opts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
