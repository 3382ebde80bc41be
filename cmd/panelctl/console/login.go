package console

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"panelctl/cmd/panelctl/ui"
	"panelctl/internal/api"
	"panelctl/internal/schema"
	"panelctl/internal/session"
)

// loginForm is the credentials screen, reusing the generic form with two
// fields.
type loginForm struct {
	form    *ui.Form
	waiting bool
}

func newLoginForm() *loginForm {
	fields := []schema.Field{
		{Name: "developer_login", Label: "Login", Kind: schema.KindText},
		{Name: "developer_password", Label: "Password", Kind: schema.KindPassword},
	}
	return &loginForm{form: ui.NewForm(fields, schema.Values{})}
}

func (l *loginForm) credentials() (login, password string) {
	v := l.form.Values()
	return v.String("developer_login"), v.String("developer_password")
}

// reset clears the password but keeps the login so a typo costs one field,
// not two.
func (l *loginForm) reset() {
	login, _ := l.credentials()
	l.form = ui.NewForm([]schema.Field{
		{Name: "developer_login", Label: "Login", Kind: schema.KindText},
		{Name: "developer_password", Label: "Password", Kind: schema.KindPassword},
	}, schema.Values{"developer_login": login})
	l.waiting = false
}

// loginDoneMsg carries the authentication outcome.
type loginDoneMsg struct {
	sess *session.Session
	err  error
}

func loginCmd(client *api.Client, login, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := client.Login(context.Background(), login, password)
		return loginDoneMsg{sess: sess, err: err}
	}
}
