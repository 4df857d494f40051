package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Zuo-Peng/chatstat/internal/chart"
	"github.com/Zuo-Peng/chatstat/internal/render"
)

// Display shows charts in a full-screen terminal viewer, one tab per chart.
type Display struct{}

func (Display) Render(charts ...chart.Chart) error {
	if len(charts) == 0 {
		return nil
	}
	p := tea.NewProgram(newChartModel(charts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	if fm := finalModel.(chartModel); fm.copied != "" {
		copyToClipboard(fm.copied)
	}
	return nil
}

type chartModel struct {
	charts []chart.Chart
	active int
	view   viewport.Model
	width  int
	height int
	ready  bool
	copied string
}

func newChartModel(charts []chart.Chart) chartModel {
	return chartModel{charts: charts, view: viewport.New(0, 0)}
}

func (m chartModel) Init() tea.Cmd {
	return nil
}

func (m chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.view = newViewport(m.bodyWidth(), m.bodyHeight())
		m.view.SetContent(m.content())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit), msg.String() == "q":
			return m, tea.Quit
		case key.Matches(msg, keys.Enter):
			m.copied = ansi.Strip(render.Chart(m.charts[m.active], m.bodyWidth()))
			return m, tea.Quit
		case key.Matches(msg, keys.NextTab):
			m.active = (m.active + 1) % len(m.charts)
			m.view.SetContent(m.content())
			m.view.GotoTop()
			return m, nil
		case key.Matches(msg, keys.PrevTab):
			m.active = (m.active - 1 + len(m.charts)) % len(m.charts)
			m.view.SetContent(m.content())
			m.view.GotoTop()
			return m, nil
		case key.Matches(msg, keys.Up):
			m.view.LineUp(1)
			return m, nil
		case key.Matches(msg, keys.Down):
			m.view.LineDown(1)
			return m, nil
		case key.Matches(msg, keys.PageUp):
			m.view.LineUp(m.bodyHeight())
			return m, nil
		case key.Matches(msg, keys.PageDown):
			m.view.LineDown(m.bodyHeight())
			return m, nil
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m chartModel) View() string {
	if !m.ready {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.tabs(), m.view.View(), m.statusBar())
}

func (m chartModel) content() string {
	return render.Chart(m.charts[m.active], m.bodyWidth()-2)
}

func (m chartModel) tabs() string {
	var parts []string
	for i, c := range m.charts {
		if i == m.active {
			parts = append(parts, styleTabActive.Render(c.Title))
		} else {
			parts = append(parts, styleTab.Render(c.Title))
		}
	}
	return strings.Join(parts, " ")
}

func (m chartModel) statusBar() string {
	parts := []string{
		fmt.Sprintf("chart %d/%d", m.active+1, len(m.charts)),
		"tab switch",
		"up/dn scroll",
		"Enter copy",
		"Esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func (m chartModel) bodyWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(m.width-2, 20)
}

func (m chartModel) bodyHeight() int {
	if m.height <= 0 {
		return 20
	}
	// tabs (1) + status bar (1) + borders (2)
	return max(m.height-4, 5)
}
