package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Increase key.Binding
	Decrease key.Binding
	OrbitL   key.Binding
	OrbitR   key.Binding
	Mode     key.Binding
	Fit      key.Binding
	Sources  key.Binding
	Open     key.Binding
	Paste    key.Binding
	Records  key.Binding
	Inspect  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Increase: key.NewBinding(key.WithKeys("+", "=", "up"), key.WithHelp("+/-", "zoom/distance")),
		Decrease: key.NewBinding(key.WithKeys("-", "_", "down")),
		OrbitL:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←→", "orbit 3D")),
		OrbitR:   key.NewBinding(key.WithKeys("right")),
		Mode:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "2D/3D")),
		Fit:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit 2D")),
		Sources:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "sources")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Paste:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		Records:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "records")),
		Inspect:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
		Help:     key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increase, k.OrbitL, k.Mode, k.Sources, k.Inspect, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Increase, k.OrbitL, k.Mode, k.Fit},
		{k.Sources, k.Open, k.Paste},
		{k.Records, k.Inspect, k.Help, k.Quit},
	}
}
