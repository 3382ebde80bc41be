package console

import "strings"

// View renders the current screen: header, mode content, status line,
// footer with the active key bindings.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.renderHeader())
	sb.WriteString("\n\n")

	switch m.mode {
	case ModeLogin:
		sb.WriteString(m.renderLogin())
	case ModeMenu:
		sb.WriteString(m.renderMenu())
	case ModePanel:
		sb.WriteString(m.renderPanel())
	case ModeHelp:
		sb.WriteString(m.helpText)
	}

	if m.status != "" {
		sb.WriteString("\n")
		if m.statusErr {
			sb.WriteString(m.styles.Error.Render(m.status))
		} else {
			sb.WriteString(m.styles.Success.Render(m.status))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render(m.footerHint()))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderHeader() string {
	title := " panelctl "
	if m.userLogin != "" {
		return m.styles.Header.Render(title) + " " + m.styles.Badge.Render(m.userLogin)
	}
	return m.styles.Header.Render(title)
}

func (m Model) renderLogin() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Sign in"))
	sb.WriteString("\n")
	if m.login.waiting {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" authenticating\n")
		return sb.String()
	}
	sb.WriteString(m.login.form.View(m.styles))
	return sb.String()
}

func (m Model) renderMenu() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Panels"))
	sb.WriteString("\n")
	for i, entry := range m.menu {
		if i == m.menuCursor {
			sb.WriteString(m.styles.Selected.Render("> " + entry.label))
		} else {
			sb.WriteString(m.styles.Body.Render("  " + entry.label))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderPanel() string {
	p := m.panel
	if p == nil {
		return ""
	}

	switch p.step {
	case stepScope:
		return m.styles.Title.Render(p.def.title) + "\n" + p.scopeInput.View() + "\n"

	case stepLoading:
		return m.styles.Title.Render(p.def.title) + "\n" + m.spinner.View() + " loading\n"

	case stepList:
		return p.table.View(m.styles)

	case stepForm:
		var sb strings.Builder
		verb := "Edit"
		if p.editKey == "" {
			verb = "New"
		}
		sb.WriteString(m.styles.Title.Render(verb + ": " + p.def.title))
		sb.WriteString("\n")
		if p.saving {
			sb.WriteString(m.spinner.View())
			sb.WriteString(" saving\n")
		}
		sb.WriteString(p.form.View(m.styles))
		return sb.String()
	}
	return ""
}

func (m Model) footerHint() string {
	switch m.mode {
	case ModeLogin:
		return "enter sign in · tab next field · ctrl+c quit"
	case ModeMenu:
		return "↑/↓ move · enter open · q quit"
	case ModeHelp:
		return "any key to return"
	case ModePanel:
		p := m.panel
		if p == nil {
			return ""
		}
		switch p.step {
		case stepScope:
			return "enter load · esc back"
		case stepList:
			hint := "↑/↓ move · r reload · esc back"
			for _, a := range p.actions {
				hint = "enter " + a.Label + " · " + hint
			}
			if p.def.canCreate {
				hint = "n new · " + hint
			}
			return hint
		case stepForm:
			return "ctrl+s save · tab next field · esc cancel"
		}
	}
	return ""
}
