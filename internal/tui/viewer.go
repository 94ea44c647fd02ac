// Package tui provides the interactive stage viewer: a bubbletea program
// paging through the stages of a project with a table of the entities alive
// at each one.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Moller21/StagedBlueprintPlanning/internal/content"
	"github.com/Moller21/StagedBlueprintPlanning/internal/entity"
	"github.com/Moller21/StagedBlueprintPlanning/internal/output"
)

type viewerKeyMap struct {
	Prev key.Binding
	Next key.Binding
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

func (k viewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Quit}
}

func (k viewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.Up, k.Down},
		{k.Quit},
	}
}

var defaultViewerKeys = viewerKeyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous stage"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next stage"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q", "esc"),
		key.WithHelp("q/esc", "quit"),
	),
}

// StageViewer is the bubbletea model paging through stages
type StageViewer struct {
	store     *content.Content
	numStages int
	stage     int
	table     table.Model
	keys      viewerKeyMap
	help      help.Model
}

// NewStageViewer creates a viewer positioned on stage 1
func NewStageViewer(store *content.Content, numStages int) StageViewer {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "NAME", Width: 18},
		{Title: "DIR", Width: 10},
		{Title: "STAGES", Width: 8},
		{Title: "VALUE", Width: 40},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("205")).Bold(true)
	t.SetStyles(styles)

	m := StageViewer{
		store:     store,
		numStages: numStages,
		stage:     1,
		table:     t,
		keys:      defaultViewerKeys,
		help:      help.New(),
	}
	m.table.SetRows(m.rowsForStage())
	return m
}

func (m StageViewer) Init() tea.Cmd {
	return nil
}

func (m StageViewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Prev):
			if m.stage > 1 {
				m.stage--
				m.table.SetRows(m.rowsForStage())
			}
			return m, nil

		case key.Matches(msg, m.keys.Next):
			if m.stage < m.numStages {
				m.stage++
				m.table.SetRows(m.rowsForStage())
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m StageViewer) View() string {
	title := output.StageStyle(m.stage).Render(fmt.Sprintf("Stage %d/%d", m.stage, m.numStages))
	return title + "\n" + m.table.View() + "\n" + m.help.View(m.keys)
}

// rowsForStage builds the table rows for the entities alive at the current
// stage, in id order
func (m StageViewer) rowsForStage() []table.Row {
	var rows []table.Row
	for _, ent := range m.store.AllEntities() {
		if ent.IsSettingsRemnant() || !ent.ExistsAtStage(m.stage) {
			continue
		}
		value := ent.GetValueAtStage(m.stage)
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", ent.ID()),
			ent.NameAtStage(m.stage),
			ent.Direction().String(),
			stageSpan(ent),
			summarizeValue(value),
		})
	}
	return rows
}

func stageSpan(ent *entity.StagedEntity) string {
	if last, bounded := ent.LastStage(); bounded {
		return fmt.Sprintf("%d-%d", ent.FirstStage(), last)
	}
	return fmt.Sprintf("%d+", ent.FirstStage())
}

// summarizeValue renders the non-name properties as "key=value" pairs in key
// order
func summarizeValue(value entity.Value) string {
	keys := make([]string, 0, len(value))
	for key := range value {
		if key == entity.NameKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, value[key]))
	}
	return strings.Join(parts, " ")
}

// Run starts the viewer program and blocks until the user quits
func Run(store *content.Content, numStages int) error {
	program := tea.NewProgram(NewStageViewer(store, numStages))
	_, err := program.Run()
	return err
}
