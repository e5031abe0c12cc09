package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/pkg/models"
)

// Board focus targets, cycled with tab.
const (
	focusTitle = iota
	focusDescription
	focusPriority
	focusList
	focusSearch
	focusCount
)

type boardModel struct {
	ctrl   *core.Controller
	client api.Client

	width  int
	height int
	focus  int
	cursor int
}

// Messages carrying backend responses back to the update loop. All state
// mutation happens in Update via the controller's Apply* methods, so the
// collection is only ever touched on one goroutine.
type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

type taskCreatedMsg struct {
	task *models.Task
	err  error
}

type taskToggledMsg struct {
	task *models.Task
	err  error
}

type taskDeletedMsg struct {
	id  string
	err error
}

// Style definitions.
var (
	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	boardPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	boardActivePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)

	boardLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	boardErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	boardLoadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))

	boardDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	boardCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)

	priorityHighStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	priorityMediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	priorityLowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	boardHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	boardStatsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newBoardModel(ctrl *core.Controller, client api.Client) boardModel {
	ctrl.BeginRequest()
	return boardModel{
		ctrl:   ctrl,
		client: client,
		focus:  focusList,
	}
}

func (m boardModel) Init() tea.Cmd {
	return loadTasksCmd(m.client)
}

// --- Commands (network only; results applied in Update) ---

func loadTasksCmd(client api.Client) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.List(context.Background())
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func createTaskCmd(client api.Client, title, description string, priority models.Priority) tea.Cmd {
	return func() tea.Msg {
		task, err := client.Create(context.Background(), title, description, priority)
		return taskCreatedMsg{task: task, err: err}
	}
}

func toggleTaskCmd(client api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		task, err := client.Toggle(context.Background(), id)
		return taskToggledMsg{task: task, err: err}
	}
}

func deleteTaskCmd(client api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := client.Delete(context.Background(), id)
		return taskDeletedMsg{id: id, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksLoadedMsg:
		_ = m.ctrl.ApplyLoad(msg.tasks, msg.err)
		m.clampCursor()
		return m, nil

	case taskCreatedMsg:
		_ = m.ctrl.ApplyCreate(msg.task, msg.err)
		if msg.err == nil {
			m.focus = focusList
			m.cursor = 0
		}
		return m, nil

	case taskToggledMsg:
		_ = m.ctrl.ApplyToggle(msg.task, msg.err)
		m.clampCursor()
		return m, nil

	case taskDeletedMsg:
		_ = m.ctrl.ApplyDelete(msg.id, msg.err)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Keys that work everywhere.
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.focus = (m.focus + 1) % focusCount
		return m, nil
	case "shift+tab":
		m.focus = (m.focus - 1 + focusCount) % focusCount
		return m, nil
	}

	switch m.focus {
	case focusTitle, focusDescription:
		return m.handleFormKey(msg)
	case focusPriority:
		return m.handlePriorityKey(msg)
	case focusSearch:
		return m.handleSearchKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m boardModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	draft := m.ctrl.CurrentDraft()

	switch msg.Type {
	case tea.KeyEscape:
		m.focus = focusList
		return m, nil

	case tea.KeyEnter:
		if m.focus == focusTitle {
			m.focus = focusDescription
			return m, nil
		}
		return m.submitDraft()

	case tea.KeyBackspace:
		if m.focus == focusTitle {
			m.ctrl.SetDraftTitle(trimLastRune(draft.Title))
		} else {
			m.ctrl.SetDraftDescription(trimLastRune(draft.Description))
		}
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		if m.focus == focusTitle {
			m.ctrl.SetDraftTitle(draft.Title + text)
		} else {
			m.ctrl.SetDraftDescription(draft.Description + text)
		}
		return m, nil
	}

	return m, nil
}

func (m boardModel) handlePriorityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusList
		return m, nil
	case "enter":
		return m.submitDraft()
	case "left", "h":
		m.ctrl.SetDraftPriority(prevPriority(m.ctrl.CurrentDraft().Priority))
		return m, nil
	case "right", "l", " ":
		m.ctrl.SetDraftPriority(nextPriority(m.ctrl.CurrentDraft().Priority))
		return m, nil
	}
	return m, nil
}

func (m boardModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	query := m.ctrl.Filter().Query

	switch msg.Type {
	case tea.KeyEscape:
		m.ctrl.SetQuery("")
		m.focus = focusList
		m.cursor = 0
		return m, nil

	case tea.KeyEnter:
		m.focus = focusList
		m.cursor = 0
		return m, nil

	case tea.KeyBackspace:
		m.ctrl.SetQuery(trimLastRune(query))
		m.cursor = 0
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		m.ctrl.SetQuery(query + text)
		m.cursor = 0
		return m, nil
	}

	return m, nil
}

func (m boardModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.ctrl.Visible()

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", " ":
		if m.cursor < len(visible) {
			m.ctrl.BeginRequest()
			return m, toggleTaskCmd(m.client, visible[m.cursor].ID)
		}
		return m, nil

	case "d", "x":
		if m.cursor < len(visible) {
			m.ctrl.BeginRequest()
			return m, deleteTaskCmd(m.client, visible[m.cursor].ID)
		}
		return m, nil

	case "n", "a":
		m.focus = focusTitle
		return m, nil

	case "/":
		m.focus = focusSearch
		return m, nil

	case "f":
		m.ctrl.SetStatus(nextStatusFilter(m.ctrl.Filter().Status))
		m.cursor = 0
		return m, nil

	case "r":
		m.ctrl.BeginRequest()
		return m, loadTasksCmd(m.client)
	}

	return m, nil
}

// submitDraft validates locally and, if valid, sends the create request.
// Validation failures set the banner without touching the network.
func (m boardModel) submitDraft() (tea.Model, tea.Cmd) {
	if err := m.ctrl.ValidateDraft(); err != nil {
		return m, nil
	}
	title, description, priority := m.ctrl.TrimmedDraft()
	m.ctrl.BeginRequest()
	return m, createTaskCmd(m.client, title, description, priority)
}

func (m *boardModel) clampCursor() {
	if n := len(m.ctrl.Visible()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m boardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := boardTitleStyle.Render(" taskdeck ")
	if m.ctrl.Loading() {
		header += " " + boardLoadingStyle.Render("loading...")
	}
	if banner := m.ctrl.ErrorMessage(); banner != "" {
		header += " " + boardErrorStyle.Render(banner)
	}

	panelWidth := m.width - 6
	if panelWidth < 30 {
		panelWidth = 30
	}

	form := m.stylePanel(m.focus <= focusPriority, m.renderForm(), panelWidth)
	list := m.stylePanel(m.focus == focusList || m.focus == focusSearch, m.renderList(), panelWidth)

	body := lipgloss.JoinVertical(lipgloss.Left, form, list)

	help := boardHelpStyle.Render("tab: focus | enter: add/toggle | d: delete | /: search | f: filter | r: reload | q: quit")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, body, m.renderStats(), help)
}

func (m boardModel) stylePanel(active bool, content string, width int) string {
	style := boardPanelStyle
	if active {
		style = boardActivePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m boardModel) renderForm() string {
	draft := m.ctrl.CurrentDraft()

	var b strings.Builder
	b.WriteString(boardLabelStyle.Render("New task"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Title:       %s\n", fieldValue(draft.Title, m.focus == focusTitle)))
	b.WriteString(fmt.Sprintf("  Description: %s\n", fieldValue(draft.Description, m.focus == focusDescription)))
	b.WriteString(fmt.Sprintf("  Priority:    %s", renderPriorityPicker(draft.Priority, m.focus == focusPriority)))
	return b.String()
}

func (m boardModel) renderList() string {
	visible := m.ctrl.Visible()
	filter := m.ctrl.Filter()

	var b strings.Builder
	label := fmt.Sprintf("Tasks (%s)", filter.Status)
	if filter.Query != "" {
		label += fmt.Sprintf(" matching %q", filter.Query)
	}
	b.WriteString(boardLabelStyle.Render(label))
	b.WriteString("\n")

	if m.focus == focusSearch {
		b.WriteString(fmt.Sprintf("  Search: %s\n", fieldValue(filter.Query, true)))
	}

	if len(visible) == 0 {
		b.WriteString("  No tasks match.")
		return b.String()
	}

	now := time.Now()
	for i, t := range visible {
		cursor := "  "
		if i == m.cursor && m.focus == focusList {
			cursor = boardCursorStyle.Render("> ")
		}

		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		line := fmt.Sprintf("%s %s", t.Title, boardStatsStyle.Render(age(t.CreatedAt, now)))
		if t.Completed {
			line = boardDoneStyle.Render(line)
		}

		b.WriteString(fmt.Sprintf("%s%s %s %s\n", cursor, check, priorityBadge(t.Priority), line))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m boardModel) renderStats() string {
	stats := m.ctrl.Stats()
	return boardStatsStyle.Render(fmt.Sprintf("  %d total | %d active | %d completed | %d high priority",
		stats.Total, stats.Active, stats.Completed, stats.HighPriority))
}

// --- Render helpers ---

func fieldValue(value string, focused bool) string {
	if focused {
		return value + boardCursorStyle.Render("_")
	}
	if value == "" {
		return boardStatsStyle.Render("(empty)")
	}
	return value
}

func renderPriorityPicker(selected models.Priority, focused bool) string {
	parts := make([]string, 0, 3)
	for _, p := range []models.Priority{models.PriorityLow, models.PriorityMedium, models.PriorityHigh} {
		label := string(p)
		if p == selected {
			label = "[" + label + "]"
			if focused {
				label = boardCursorStyle.Render(label)
			}
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func priorityBadge(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return priorityHighStyle.Render("high")
	case models.PriorityLow:
		return priorityLowStyle.Render("low ")
	default:
		return priorityMediumStyle.Render("med ")
	}
}

func trimLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}

func nextPriority(p models.Priority) models.Priority {
	switch p {
	case models.PriorityLow:
		return models.PriorityMedium
	case models.PriorityMedium:
		return models.PriorityHigh
	default:
		return models.PriorityLow
	}
}

func prevPriority(p models.Priority) models.Priority {
	switch p {
	case models.PriorityHigh:
		return models.PriorityMedium
	case models.PriorityMedium:
		return models.PriorityLow
	default:
		return models.PriorityHigh
	}
}

func nextStatusFilter(s models.StatusFilter) models.StatusFilter {
	switch s {
	case models.StatusAll:
		return models.StatusActive
	case models.StatusActive:
		return models.StatusCompleted
	default:
		return models.StatusAll
	}
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive task board",
	Long: `Launch the interactive task board: a single screen with a create
form, the task list, live search and status filtering, and aggregate
statistics.

Toggle with Enter, delete with d, search with /, cycle the status filter
with f, reload with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Ctrl == nil || API == nil {
			return fmt.Errorf("controller not initialized")
		}
		p := tea.NewProgram(newBoardModel(Ctrl, API), tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
