// Package console is the interactive terminal frontend of panelctl: a menu
// of entity panels over the developer-panel API, with a login gate in front.
// One Model owns the whole program; panels share a single generic state
// machine driven by per-entity descriptors.
package console

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"panelctl/cmd/panelctl/ui"
	"panelctl/internal/api"
	"panelctl/internal/logging"
)

// ViewMode is the top-level screen the console is showing.
type ViewMode int

const (
	ModeLogin ViewMode = iota
	ModeMenu
	ModePanel
	ModeHelp
)

// menuEntry is one selectable row of the main menu.
type menuEntry struct {
	label  string
	panel  *panelDef // nil for the non-panel entries below
	help   bool
	logout bool
	quit   bool
}

// Model is the bubbletea model for the whole console.
type Model struct {
	client *api.Client
	styles ui.Styles

	mode      ViewMode
	userLogin string
	width     int
	height    int

	spinner   spinner.Model
	status    string
	statusErr bool

	login      *loginForm
	menu       []menuEntry
	menuCursor int
	panel      *panelState
	helpText   string
}

// New builds the console model. The stored session decides the initial
// screen: a durable token means the user is authenticated until the backend
// says otherwise, so a restart lands on the menu, not the login form.
func New(client *api.Client, styles ui.Styles) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		client:  client,
		styles:  styles,
		spinner: sp,
		login:   newLoginForm(),
		menu:    buildMenu(),
	}

	if sess := client.Sessions().Current(); sess != nil {
		m.mode = ModeMenu
		m.userLogin = sess.UserLogin
		logging.Console("resumed session for %s", sess.UserLogin)
	} else {
		m.mode = ModeLogin
	}
	return m
}

func buildMenu() []menuEntry {
	entries := make([]menuEntry, 0, len(panels)+3)
	for i := range panels {
		entries = append(entries, menuEntry{label: panels[i].title, panel: &panels[i]})
	}
	entries = append(entries,
		menuEntry{label: "Help", help: true},
		menuEntry{label: "Logout", logout: true},
		menuEntry{label: "Quit", quit: true},
	)
	return entries
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// setStatus replaces the transient status line.
func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}
