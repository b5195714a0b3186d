// Package tui renders the parent dashboard as an interactive terminal UI.
// It is a pure rendering collaborator: authorization happens before the
// program starts, and all data arrives through the API client.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colegioapp/colegio/internal/api"
)

// view identifies which screen is showing.
type view int

const (
	viewChildren view = iota
	viewDetail
)

// statusFilter narrows the children list, mirroring the dashboard's filter
// dropdown: all, excellent, needs attention, low attendance.
type statusFilter int

const (
	filterAll statusFilter = iota
	filterExcellent
	filterNeedsAttention
	filterLowAttendance
)

func (f statusFilter) label() string {
	switch f {
	case filterExcellent:
		return "excellent"
	case filterNeedsAttention:
		return "needs attention"
	case filterLowAttendance:
		return "low attendance"
	default:
		return "all"
	}
}

// lowAttendanceThreshold is the cutoff under which a child is flagged.
const lowAttendanceThreshold = 85.0

// dashboardMsg carries the dashboard fetch result.
type dashboardMsg struct {
	dashboard *api.ParentDashboard
	err       error
}

// detailMsg carries a child detail fetch result.
type detailMsg struct {
	detail *api.ChildDetail
	err    error
}

// keyMap defines the dashboard key bindings.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Enter   key.Binding
	Back    key.Binding
	Filter  key.Binding
	Period  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Period:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "period")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea model for the parent dashboard.
type Model struct {
	client     *api.Client
	parentName string

	dashboard *api.ParentDashboard
	detail    *api.ChildDetail

	// offline means the dashboard came from the snapshot cache; refresh and
	// detail navigation are disabled because there is no backend to ask.
	offline   bool
	fetchedAt time.Time

	currentView   view
	filter        statusFilter
	cursor        int
	period        string
	loading       bool
	detailLoading bool
	errMsg        string

	width  int
	height int

	spinner spinner.Model
	keys    keyMap
	styles  Styles
}

// New creates the dashboard model. A nil preloaded dashboard triggers a fetch
// on startup.
func New(client *api.Client, parentName string, preloaded *api.ParentDashboard) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		client:     client,
		parentName: parentName,
		dashboard:  preloaded,
		loading:    preloaded == nil,
		spinner:    sp,
		keys:       defaultKeyMap(),
		styles:     DefaultStyles(),
	}
}

// NewOffline creates the model around a cached snapshot.
func NewOffline(parentName string, snapshot *api.ParentDashboard, fetchedAt time.Time) Model {
	m := New(nil, parentName, snapshot)
	m.offline = true
	m.fetchedAt = fetchedAt
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.dashboard == nil && !m.offline {
		cmds = append(cmds, m.fetchDashboard())
	}
	return tea.Batch(cmds...)
}

// fetchDashboard loads the aggregate dashboard with a bounded timeout.
func (m Model) fetchDashboard() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		d, err := client.ParentDashboard(ctx)
		return dashboardMsg{dashboard: d, err: err}
	}
}

func (m Model) fetchDetail(childID int, period string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		d, err := client.ChildDetail(ctx, childID, period)
		return detailMsg{detail: d, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dashboardMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.dashboard = msg.dashboard
		if m.cursor >= len(m.filteredChildren()) {
			m.cursor = 0
		}
		return m, nil

	case detailMsg:
		m.detailLoading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.detail = msg.detail
		m.currentView = viewDetail
		if m.period == "" && len(msg.detail.AvailablePeriods) > 0 {
			m.period = msg.detail.AvailablePeriods[0]
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.currentView == viewDetail {
			m.currentView = viewChildren
			m.detail = nil
			m.period = ""
			m.errMsg = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.currentView == viewChildren && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.currentView == viewChildren && m.cursor < len(m.filteredChildren())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.currentView != viewChildren || m.offline {
			return m, nil
		}
		children := m.filteredChildren()
		if m.cursor >= len(children) {
			return m, nil
		}
		m.detailLoading = true
		return m, m.fetchDetail(children[m.cursor].ID, "")

	case key.Matches(msg, m.keys.Filter):
		if m.currentView == viewChildren {
			m.filter = (m.filter + 1) % 4
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Period):
		if m.currentView != viewDetail || m.detail == nil || m.offline {
			return m, nil
		}
		periods := m.detail.AvailablePeriods
		if len(periods) < 2 {
			return m, nil
		}
		next := nextPeriod(periods, m.period)
		m.period = next
		m.detailLoading = true
		return m, m.fetchDetail(m.detail.ID, next)

	case key.Matches(msg, m.keys.Refresh):
		if m.currentView == viewChildren && !m.offline && !m.loading {
			m.loading = true
			m.errMsg = ""
			return m, m.fetchDashboard()
		}
		return m, nil
	}

	return m, nil
}

// filteredChildren applies the active status filter.
func (m Model) filteredChildren() []api.ChildOverview {
	if m.dashboard == nil {
		return nil
	}
	if m.filter == filterAll {
		return m.dashboard.Children
	}

	var out []api.ChildOverview
	for _, child := range m.dashboard.Children {
		switch m.filter {
		case filterExcellent:
			if child.AcademicStatus == "excelente" {
				out = append(out, child)
			}
		case filterNeedsAttention:
			if child.AcademicStatus == "necesita_atencion" || len(child.Alerts) > 0 {
				out = append(out, child)
			}
		case filterLowAttendance:
			if child.AttendancePct != nil && *child.AttendancePct < lowAttendanceThreshold {
				out = append(out, child)
			}
		}
	}
	return out
}

// nextPeriod returns the period after current, wrapping around.
func nextPeriod(periods []string, current string) string {
	for i, p := range periods {
		if p == current {
			return periods[(i+1)%len(periods)]
		}
	}
	return periods[0]
}
