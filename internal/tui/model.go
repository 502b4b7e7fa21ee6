package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"keypointview/internal/session"
)

const (
	zoomStep     = 0.1
	distanceStep = 1.0
	orbitStep    = 0.2617993877991494 // 15 degrees
)

type Model struct {
	width  int
	height int

	showSidebar bool

	sess    *session.Session
	log     *slog.Logger
	yaw     float64
	loading bool
	initial string

	status    string
	statusErr bool

	// Source list
	l     list.Model
	items []list.Item

	// paste mode
	pasteMode bool
	ta        textarea.Model
	pasted    []byte

	// inspect popup
	inspectPopup string

	// ordered records table
	showRecords bool
	tbl         table.Model

	keys keyMap
	help help.Model
}

// New builds a model around sess. The session's state (mode, zoom, camera
// distance) is the starting view.
func New(sess *session.Session) Model {
	m := Model{
		sess:   sess,
		log:    sess.Logger(),
		status: "keypointview ready",
		keys:   defaultKeys(),
		help:   help.New(),
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Sources"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = `Paste a JSON array of {"id": n, "keypoints": [x, y, z]}. Enter renders; Esc cancels.`
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.ta.KeyMap.InsertNewline.SetKeys("ctrl+j")
	// records table setup (columns depend on mode)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshSources()
	return m
}

// NewWithSource loads name at startup in the session's current mode.
func NewWithSource(sess *session.Session, name string) Model {
	m := New(sess)
	m.initial = name
	return m
}

func (m Model) Init() tea.Cmd {
	if m.initial == "" {
		return nil
	}
	return m.startLoad(session.Event{Kind: session.SourceSelected, Source: m.initial})
}
