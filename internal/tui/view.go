package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"keypointview/internal/keypoint"
)

const headerHeight = 1

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	contentHeight := m.contentHeight()
	contentWidth := max(10, m.width)
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
	}

	header := titleStyle.Render(" keypointview ─ terminal keypoint viewer ")
	header = lipgloss.NewStyle().Width(contentWidth).Render(header)

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sw).Render(m.l.View())
	}

	popup := ""
	if m.inspectPopup != "" && !m.showRecords {
		popupW := max(20, min(56, contentWidth/2))
		box := boxStyle.MaxWidth(popupW).Render(m.inspectPopup)
		popup = lipgloss.Place(contentWidth, lipgloss.Height(box), lipgloss.Left, lipgloss.Top, box)
	}

	canvasWidth := max(10, contentWidth-sw-1)
	canvasHeight := contentHeight
	if popup != "" {
		canvasHeight = max(4, canvasHeight-lipgloss.Height(popup))
	}
	var canvasView string
	switch {
	case m.showRecords:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		boxW := min(canvasWidth, max(32, colW))
		m.tbl.SetWidth(boxW - 4)
		m.tbl.SetHeight(min(canvasHeight-2, 20))
		box := boxStyle.Width(boxW).Render(m.tbl.View())
		canvasView = lipgloss.Place(canvasWidth, canvasHeight, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(canvasWidth)
		m.ta.SetHeight(min(canvasHeight, 12))
		canvasView = lipgloss.NewStyle().Width(canvasWidth).Height(canvasHeight).Render(m.ta.View())
	default:
		canvasView = lipgloss.NewStyle().Width(canvasWidth).Height(canvasHeight).Render(m.renderCanvas(canvasWidth, canvasHeight))
	}

	body := canvasView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", canvasView)
	}

	status := dimStyle.Render(" " + m.status + " ")
	if m.statusErr {
		status = errorStyle.Render(" " + m.status + " ")
	}
	readout := dimStyle.Render("  " + m.readout() + "  ")
	spacer := max(0, contentWidth-lipgloss.Width(status)-lipgloss.Width(readout))
	line := lipgloss.JoinHorizontal(lipgloss.Bottom, status, lipgloss.NewStyle().Width(spacer).Render(""), readout)
	footer := lipgloss.JoinVertical(lipgloss.Left, line, m.help.View(m.keys))
	footer = lipgloss.NewStyle().Width(contentWidth).Render(footer)

	parts := []string{header}
	if popup != "" {
		parts = append(parts, popup)
	}
	ui := lipgloss.JoinVertical(lipgloss.Left, append(parts, body, footer)...)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

// readout is the mode and view parameter summary shown bottom-right.
func (m Model) readout() string {
	st := m.sess.State()
	s := st.Mode.String()
	if m.loading {
		s += " (loading)"
	}
	if st.Mode == keypoint.Mode3D {
		return fmt.Sprintf("%s  dist=%.1f  yaw=%.0f°", s, st.CameraDistance, m.yaw*180/math.Pi)
	}
	return fmt.Sprintf("%s  zoom=%.1f", s, st.Zoom)
}
