package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keypointview/internal/keypoint"
	"keypointview/internal/session"
)

const sidebarWidth = 28

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.contentHeight()-2)
		}
	case loadedMsg:
		m.applyLoaded(msg)
		return m, nil
	case tea.KeyMsg:
		// filtering and paste mode own the keyboard
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showRecords && msg.String() != "a" && !key.Matches(msg, m.keys.Quit) {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		return m.updateKeys(msg)
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.step(1)
		case tea.MouseButtonWheelDown:
			m.step(-1)
		}
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Increase):
		if m.showSidebar && msg.String() == "up" {
			break
		}
		m.step(1)
		return m, nil
	case key.Matches(msg, m.keys.Decrease):
		if m.showSidebar && msg.String() == "down" {
			break
		}
		m.step(-1)
		return m, nil
	case key.Matches(msg, m.keys.OrbitL):
		m.orbit(-orbitStep)
		return m, nil
	case key.Matches(msg, m.keys.OrbitR):
		m.orbit(orbitStep)
		return m, nil
	case key.Matches(msg, m.keys.Mode):
		return m, m.toggleMode()
	case key.Matches(msg, m.keys.Fit):
		m.sess.Handle(session.Event{Kind: session.FitToggled})
		m.status = fmt.Sprintf("fit 2D: %v", m.sess.State().Fit)
		return m, nil
	case key.Matches(msg, m.keys.Sources):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshSources()
			m.l.SetSize(sidebarWidth-2, m.contentHeight()-2)
		}
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if !m.showSidebar {
			return m, nil
		}
		it, ok := m.l.SelectedItem().(sourceItem)
		if !ok {
			return m, nil
		}
		m.yaw = 0
		m.inspectPopup = ""
		return m, m.startLoad(session.Event{Kind: session.SourceSelected, Source: it.name})
	case key.Matches(msg, m.keys.Paste):
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
		return m, nil
	case key.Matches(msg, m.keys.Records):
		m.showRecords = !m.showRecords
		if m.showRecords {
			m.refreshRecords()
		}
		return m, nil
	case key.Matches(msg, m.keys.Inspect):
		if m.inspectPopup != "" {
			m.inspectPopup = ""
			return m, nil
		}
		m.inspectPopup = inspectText(m.sess)
		m.status = "inspect popup"
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case msg.String() == "esc":
		m.inspectPopup = ""
		return m, nil
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.ta.Value())
		if text == "" {
			m.setError("paste: empty")
			return m, nil
		}
		if err := m.applyPaste(text); err != nil {
			m.setError("paste error: " + err.Error())
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// step nudges zoom in 2D or camera distance in 3D. Moving the camera closer
// is the 3D equivalent of zooming in.
func (m *Model) step(dir float64) {
	st := m.sess.State()
	if st.Mode == keypoint.Mode3D {
		d := m.sess.UpdateCameraDistance(st.CameraDistance - dir*distanceStep)
		m.status = fmt.Sprintf("camera distance: %.1f", d)
		return
	}
	z := m.sess.UpdateZoom(st.Zoom + dir*zoomStep)
	m.status = fmt.Sprintf("zoom: %.1f", z)
}

func (m *Model) orbit(d float64) {
	if m.sess.State().Mode != keypoint.Mode3D {
		return
	}
	m.yaw = math.Remainder(m.yaw+d, 2*math.Pi)
	m.status = fmt.Sprintf("yaw: %.0f°", m.yaw*180/math.Pi)
}

// contentHeight is the height left between the header and the status and
// help lines.
func (m Model) contentHeight() int {
	return max(4, m.height-headerHeight-1-lipgloss.Height(m.help.View(m.keys)))
}
