package console

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"panelctl/internal/api"
	"panelctl/internal/logging"
)

// Update is the single message router. Every async result lands here as a
// typed message; failures become a visible status line and never leave a
// spinner running.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeLogin:
			return m.updateLogin(msg)
		case ModeMenu:
			return m.updateMenu(msg)
		case ModePanel:
			return m.updatePanel(msg)
		case ModeHelp:
			m.mode = ModeMenu
			return m, nil
		}
		return m, nil

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case panelRowsMsg:
		return m.handlePanelRows(msg)

	case panelFormatsMsg:
		return m.handlePanelFormats(msg)

	case singleRecordMsg:
		return m.handleSingleRecord(msg)

	case saveDoneMsg:
		return m.handleSaveDone(msg)
	}

	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.waiting {
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		if f := m.login.form.FocusedField(); f != nil && f.Name == "developer_password" {
			login, password := m.login.credentials()
			if login == "" || password == "" {
				m.setStatus("Login and password are required.", true)
				return m, nil
			}
			m.login.waiting = true
			m.setStatus("Signing in…", false)
			return m, loginCmd(m.client, login, password)
		}
		// Enter on the login field advances to the password field.
		msg = tea.KeyMsg{Type: tea.KeyTab}
	}

	m.login.form.Update(msg)
	return m, nil
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.login.reset()
		m.setStatus(errorText(msg.err), true)
		return m, nil
	}
	m.userLogin = msg.sess.UserLogin
	m.mode = ModeMenu
	m.menuCursor = 0
	m.setStatus("Signed in as "+m.userLogin, false)
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(m.menu)-1 {
			m.menuCursor++
		}
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		entry := m.menu[m.menuCursor]
		switch {
		case entry.panel != nil:
			return m, m.openPanel(entry.panel)
		case entry.help:
			m.helpText = renderHelp(m.styles)
			m.mode = ModeHelp
		case entry.logout:
			if err := m.client.Logout(); err != nil {
				m.setStatus(errorText(err), true)
				return m, nil
			}
			m.userLogin = ""
			m.login = newLoginForm()
			m.mode = ModeLogin
			m.setStatus("Logged out.", false)
		case entry.quit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.panel
	if p == nil {
		m.mode = ModeMenu
		return m, nil
	}

	switch p.step {
	case stepScope:
		switch msg.Type {
		case tea.KeyEsc:
			return m.closePanel()
		case tea.KeyEnter:
			scope := p.scopeInput.Value()
			if scope == "" {
				m.setStatus("Enterprise code is required.", true)
				return m, nil
			}
			p.scope = scope
			p.step = stepLoading
			m.clearStatus()
			return m, m.loadPanelCmd(p.def, scope)
		}
		var cmd tea.Cmd
		p.scopeInput, cmd = p.scopeInput.Update(msg)
		return m, cmd

	case stepLoading:
		if msg.Type == tea.KeyEsc {
			return m.closePanel()
		}
		return m, nil

	case stepList:
		switch msg.String() {
		case "esc":
			return m.closePanel()
		case "up", "k":
			p.table.MoveCursor(-1)
		case "down", "j":
			p.table.MoveCursor(+1)
		case "r":
			p.step = stepLoading
			m.clearStatus()
			return m, m.loadPanelCmd(p.def, p.scope)
		case "n":
			if p.def.canCreate {
				m.clearStatus()
				p.startCreate()
			}
		case "enter":
			if len(p.actions) > 0 {
				if row := p.table.SelectedRow(); row != nil {
					m.clearStatus()
					p.actions[0].Handler(row)
				}
			}
		}
		return m, nil

	case stepForm:
		if p.saving {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			// Abandon edits: single panels fall back to the menu, list
			// panels to their list.
			if p.def.single {
				return m.closePanel()
			}
			p.form = nil
			p.step = stepList
			m.clearStatus()
			return m, nil
		case "ctrl+s":
			p.saving = true
			m.setStatus("Saving…", false)
			return m, m.saveCmd(p, p.form.Normalized())
		}
		p.form.Update(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) closePanel() (tea.Model, tea.Cmd) {
	m.panel = nil
	m.mode = ModeMenu
	m.clearStatus()
	return m, nil
}

func (m Model) handlePanelRows(msg panelRowsMsg) (tea.Model, tea.Cmd) {
	p := m.panel
	if p == nil {
		return m, nil
	}
	if msg.err != nil {
		if isAuthFailure(msg.err) {
			return m.forceLogin(msg.err)
		}
		m.setStatus(errorText(msg.err), true)
		if p.def.scoped {
			p.step = stepScope
			p.scopeInput.Focus()
		} else {
			p.step = stepList
		}
		return m, nil
	}

	p.table.SetRows(msg.rows)
	if p.table.Cursor < 0 && len(msg.rows) > 0 {
		p.table.Cursor = 0
	}
	p.step = stepList
	return m, nil
}

func (m Model) handlePanelFormats(msg panelFormatsMsg) (tea.Model, tea.Cmd) {
	p := m.panel
	if p == nil {
		return m, nil
	}
	if msg.err != nil {
		if isAuthFailure(msg.err) {
			return m.forceLogin(msg.err)
		}
		// The list stays usable; the select just has no options to offer.
		m.setStatus("Data formats unavailable: "+errorText(msg.err), true)
		return m, nil
	}
	p.formats = msg.options
	return m, nil
}

func (m Model) handleSingleRecord(msg singleRecordMsg) (tea.Model, tea.Cmd) {
	p := m.panel
	if p == nil {
		return m, nil
	}
	if msg.err != nil {
		if isAuthFailure(msg.err) {
			return m.forceLogin(msg.err)
		}
		m.setStatus(errorText(msg.err), true)
		return m.closePanelKeepStatus()
	}
	p.editKey = m.userLogin
	p.form = newFormFor(p, msg.values)
	p.step = stepForm
	return m, nil
}

func (m Model) handleSaveDone(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	p := m.panel
	if p == nil {
		return m, nil
	}
	p.saving = false
	if msg.err != nil {
		if isAuthFailure(msg.err) {
			return m.forceLogin(msg.err)
		}
		// The form keeps the user's edits; only the status line changes.
		m.setStatus(errorText(msg.err), true)
		return m, nil
	}

	m.setStatus("Saved.", false)
	if p.def.single {
		p.step = stepLoading
		p.form = nil
		return m, m.loadSingleCmd(p.def)
	}
	p.form = nil
	p.step = stepLoading
	return m, m.loadPanelCmd(p.def, p.scope)
}

// forceLogin drops to the login screen when the backend no longer accepts
// the stored token (or there is none).
func (m Model) forceLogin(err error) (tea.Model, tea.Cmd) {
	logging.Console("auth failure, returning to login: %v", err)
	_ = m.client.Logout()
	m.panel = nil
	m.userLogin = ""
	m.login = newLoginForm()
	m.mode = ModeLogin
	m.setStatus("Session expired, please sign in again.", true)
	return m, nil
}

func (m Model) closePanelKeepStatus() (tea.Model, tea.Cmd) {
	m.panel = nil
	m.mode = ModeMenu
	return m, nil
}

// isAuthFailure reports whether err means the session is gone: either no
// stored token or a 401 from the backend.
func isAuthFailure(err error) bool {
	if errors.Is(err, api.ErrNoSession) {
		return true
	}
	var apiErr *api.APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// errorText renders an error for the status line, preferring the backend's
// structured detail.
func errorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}
