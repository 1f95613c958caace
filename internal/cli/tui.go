package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/jarscope/pkg/artifact"
	"github.com/matzehuels/jarscope/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// CandidateListModel - Interactive candidate selection
// =============================================================================

// CandidateListModel is the bubbletea model for choosing one of several
// artifacts that share a checksum.
type CandidateListModel struct {
	Path       string
	Candidates []artifact.Artifact
	Cursor     int
	Selected   *artifact.Artifact
	Height     int
	Offset     int
}

// NewCandidateListModel creates a new candidate list model.
func NewCandidateListModel(path string, candidates []artifact.Artifact) CandidateListModel {
	return CandidateListModel{
		Path:       path,
		Candidates: candidates,
		Height:     15,
	}
}

func (m CandidateListModel) Init() tea.Cmd {
	return nil
}

func (m CandidateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Candidates)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Candidates) == 0 {
				return m, tea.Quit
			}
			a := m.Candidates[m.Cursor]
			m.Selected = &a
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m CandidateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Artifact"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(filepath.Base(m.Path)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Candidates))
	for i := m.Offset; i < end; i++ {
		a := m.Candidates[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-40s %s", cursor, a.GroupID+":"+a.ArtifactID, listDimStyle.Render(a.Version))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Candidates))))
	return b.String()
}

// pickCandidate runs the selector and returns the chosen artifact, or nil
// if the user quit.
func pickCandidate(path string, candidates []artifact.Artifact) (*artifact.Artifact, error) {
	final, err := tea.NewProgram(NewCandidateListModel(path, candidates)).Run()
	if err != nil {
		return nil, fmt.Errorf("candidate selection: %w", err)
	}
	return final.(CandidateListModel).Selected, nil
}

// =============================================================================
// Audit table
// =============================================================================

var statusStyles = map[pipeline.Status]lipgloss.Style{
	pipeline.StatusResolved: StyleSuccess,
	pipeline.StatusUnknown:  StyleDim,
	pipeline.StatusNoPOM:    StyleWarning,
	pipeline.StatusFailed:   StyleError,
}

// auditTable renders reports as a bordered table.
func auditTable(reports []pipeline.Report) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(reports))
	for i, r := range reports {
		coords := "-"
		if r.Artifact != nil {
			coords = r.Artifact.Coordinates()
		}
		deps := ""
		if r.Status == pipeline.StatusResolved {
			deps = strconv.Itoa(len(r.Dependencies))
		}
		note := ""
		switch {
		case r.Error != "":
			note = r.Error
		case len(r.Candidates) > 1:
			note = fmt.Sprintf("%d candidates", len(r.Candidates))
		}
		rows[i] = []string{filepath.Base(r.Path), coords, string(r.Status), deps, formatDuration(r.Duration), note}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Archive", "Artifact", "Status", "Deps", "Time", "Note").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(reports) {
				return base
			}
			switch col {
			case 1:
				return base.Foreground(colorCyan)
			case 2:
				return statusStyles[reports[row].Status].Padding(0, 1)
			case 4, 5:
				return base.Foreground(colorDim)
			}
			return base
		})
	return t.Render()
}

func formatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return ""
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}
