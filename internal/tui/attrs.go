package tui

import (
	"fmt"
	"strconv"
	"strings"

	table "github.com/charmbracelet/bubbles/table"

	"keypointview/internal/keypoint"
	"keypointview/internal/session"
)

// refreshRecords rebuilds the table from the loaded records in draw order.
func (m *Model) refreshRecords() {
	p := m.sess.Projection()
	if p == nil || len(p.Records) == 0 {
		m.showRecords = false
		m.status = "no records for current source"
		return
	}
	cols := []table.Column{
		{Title: "#", Width: 5},
		{Title: "id", Width: 8},
		{Title: "coordinates", Width: 36},
	}
	rows := make([]table.Row, 0, len(p.Records))
	for i, r := range p.Records {
		rows = append(rows, table.Row{strconv.Itoa(i + 1), strconv.Itoa(r.ID), formatCoords(r.Coordinates)})
	}
	// clear rows before swapping columns so the table never sees a short row
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	m.tbl.GotoTop()
}

func formatCoords(c []float64) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.FormatFloat(v, 'g', 6, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// inspectText summarizes the loaded source for the inspect popup.
func inspectText(s *session.Session) string {
	st := s.State()
	p := s.Projection()
	if p == nil {
		return "nothing loaded"
	}
	lines := []string{
		fmt.Sprintf("source: %s", p.Source),
		fmt.Sprintf("mode: %s  policy: %s", p.Mode, s.Policy(p.Mode)),
		fmt.Sprintf("records: %d  points: %d  dropped: %d", len(p.Records), p.Len(), len(p.Report.Dropped)),
	}
	if p.Mode == keypoint.Mode3D {
		if b, ok := keypoint.BoundsOf3D(p.Raw3D); ok {
			lines = append(lines,
				"x: "+formatExtent(b.X),
				"y: "+formatExtent(b.Y),
				"z: "+formatExtent(b.Z))
		}
		lines = append(lines,
			fmt.Sprintf("camera distance: %.1f", st.CameraDistance),
			fmt.Sprintf("tubes: %d", len(s.Scene().Tubes())))
	} else {
		if b, ok := keypoint.BoundsOf2D(p.Points2D); ok {
			lines = append(lines,
				"x: "+formatExtent(b.X),
				"y: "+formatExtent(b.Y))
		}
		lines = append(lines, fmt.Sprintf("zoom: %.2f  fit: %v", st.Zoom, st.Fit))
	}
	for i, d := range p.Report.Dropped {
		if i == 3 {
			lines = append(lines, fmt.Sprintf("… %d more dropped", len(p.Report.Dropped)-i))
			break
		}
		lines = append(lines, "dropped: "+d.Error())
	}
	return strings.Join(lines, "\n")
}

func formatExtent(e keypoint.Extent) string {
	s := fmt.Sprintf("[%.4g, %.4g]", e.Min, e.Max)
	if e.Degenerate() {
		s += " (flat)"
	}
	return s
}
