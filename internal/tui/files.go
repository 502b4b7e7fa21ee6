package tui

import (
	"context"
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"keypointview/internal/keypoint"
	"keypointview/internal/session"
	"keypointview/internal/source"
)

type sourceItem struct {
	name string
}

func (s sourceItem) Title() string       { return s.name }
func (s sourceItem) Description() string { return "" }
func (s sourceItem) FilterValue() string { return s.name }

// loadedMsg carries the result of an asynchronous load back to Update.
type loadedMsg struct {
	gen  uint64
	proj *session.Projection
	err  error
}

func (m *Model) refreshSources() {
	lister, ok := m.sess.Fetcher().(source.Lister)
	if !ok {
		return
	}
	names, err := lister.Names()
	if err != nil {
		m.setError("list sources: " + err.Error())
		return
	}
	items := make([]list.Item, 0, len(names))
	for _, n := range names {
		items = append(items, sourceItem{name: n})
	}
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no keypoint sources found"
	}
}

// startLoad folds ev into the session and, when it asks for a reload, returns
// a command that fetches and projects off the event loop. A newer load
// cancels this one and its result is discarded on arrival.
func (m *Model) startLoad(ev session.Event) tea.Cmd {
	cmd := m.sess.Handle(ev)
	if cmd.Kind != session.Reload {
		return nil
	}
	ctx, gen := m.sess.Begin(context.Background())
	f, pol, log := m.sess.Fetcher(), m.sess.Policy(cmd.Mode), m.log
	name, mode := cmd.Source, cmd.Mode
	if name == pastedSource {
		f = source.Memory{pastedSource: m.pasted}
	}
	m.loading = true
	m.status = fmt.Sprintf("loading %s (%s)…", name, mode)
	m.statusErr = false
	return func() tea.Msg {
		p, err := session.LoadAndProject(ctx, f, name, mode, pol, log)
		return loadedMsg{gen: gen, proj: p, err: err}
	}
}

func (m *Model) applyLoaded(msg loadedMsg) {
	err := m.sess.Apply(msg.gen, msg.proj, msg.err)
	if err == session.ErrStale {
		return
	}
	m.loading = false
	if err != nil {
		m.setError("load error: " + err.Error())
		m.showRecords = false
		return
	}
	m.loadedStatus(msg.proj)
	if m.showRecords {
		m.refreshRecords()
	}
}

// pastedSource names pasted data; mode toggles re-project it from memory.
const pastedSource = "<pasted>"

// applyPaste projects pasted JSON in the current mode. A parse error leaves
// the current view untouched.
func (m *Model) applyPaste(text string) error {
	mode := m.sess.State().Mode
	data := []byte(text)
	p, err := session.LoadAndProject(context.Background(), source.Memory{pastedSource: data}, pastedSource, mode, m.sess.Policy(mode), m.log)
	if err != nil {
		return err
	}
	_, gen := m.sess.Begin(context.Background())
	if err := m.sess.Apply(gen, p, nil); err != nil {
		return err
	}
	m.pasted = data
	m.yaw = 0
	m.loadedStatus(p)
	return nil
}

func (m *Model) loadedStatus(p *session.Projection) {
	m.statusErr = false
	m.status = fmt.Sprintf("loaded: %s (%s)  records=%d points=%d", p.Source, p.Mode, len(p.Records), p.Len())
	if p.Report.Degraded() {
		m.status += fmt.Sprintf("  dropped=%d", len(p.Report.Dropped))
	}
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) toggleMode() tea.Cmd {
	next := keypoint.Mode3D
	if m.sess.State().Mode == keypoint.Mode3D {
		next = keypoint.Mode2D
	}
	cmd := m.startLoad(session.Event{Kind: session.ModeSelected, Mode: next})
	if cmd == nil {
		m.status = "mode: " + next.String()
	}
	return cmd
}
