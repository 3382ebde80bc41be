package console

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"panelctl/cmd/panelctl/ui"
	"panelctl/internal/api"
	"panelctl/internal/schema"
	"panelctl/internal/session"
)

// testBackend serves just enough of the developer-panel API to drive the
// console through its transitions.
func testBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/login/", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["developer_login"] == "dev" && creds["developer_password"] == "secret" {
			w.Write([]byte(`{"access_token": "jwt", "token_type": "bearer"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid login or password."}`))
	})
	mux.HandleFunc("/enterprise/settings/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"enterprise_code": "E1", "enterprise_name": "Central", "email": "a@x"}]`))
	})
	mux.HandleFunc("/data_formats/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "format_name": "morion"}]`))
	})
	mux.HandleFunc("/mapping_branch/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"enterprise_code": "E1", "branch": "B1", "store_id": "S1"}]`))
	})
	mux.HandleFunc("/developer/settings/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"developer_login": "dev", "developer_password": "x"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestModel(t *testing.T, authenticated bool) (Model, *session.Store) {
	t.Helper()
	server := testBackend(t)
	store := session.NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	if authenticated {
		if err := store.Save(session.Session{Token: "jwt", UserLogin: "dev"}); err != nil {
			t.Fatal(err)
		}
	}
	client := api.New(server.URL, 5*time.Second, store)
	return New(client, ui.NewStyles(ui.LightTheme())), store
}

// deliver executes cmd and feeds every resulting message (flattening
// batches) back through Update, the way the bubbletea runtime would.
func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = deliver(t, m, c)
		}
		return m
	}
	newModel, _ := m.Update(msg)
	return newModel.(Model)
}

// menuIndexOf finds a menu entry by label.
func menuIndexOf(t *testing.T, m Model, label string) int {
	t.Helper()
	for i, e := range m.menu {
		if e.label == label {
			return i
		}
	}
	t.Fatalf("menu entry %q not found", label)
	return -1
}

func TestNew_StoredTokenStartsAtMenu(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, true)
	if m.mode != ModeMenu {
		t.Errorf("mode = %d, want ModeMenu", m.mode)
	}
	if m.userLogin != "dev" {
		t.Errorf("userLogin = %q, want dev", m.userLogin)
	}
}

func TestNew_NoTokenStartsAtLogin(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, false)
	if m.mode != ModeLogin {
		t.Errorf("mode = %d, want ModeLogin", m.mode)
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, true)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	result := newModel.(Model)

	if result.width != 120 || result.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", result.width, result.height)
	}
}

func TestUpdate_LoginSuccess(t *testing.T) {
	t.Parallel()
	m, store := newTestModel(t, false)

	msg := loginCmd(m.client, "dev", "secret")()
	newModel, _ := m.Update(msg)
	result := newModel.(Model)

	if result.mode != ModeMenu {
		t.Errorf("mode = %d, want ModeMenu", result.mode)
	}
	if result.userLogin != "dev" {
		t.Errorf("userLogin = %q, want dev", result.userLogin)
	}
	stored := store.Current()
	if stored == nil || stored.Token != "jwt" {
		t.Errorf("session not persisted: %+v", stored)
	}
}

func TestUpdate_LoginFailureShowsDetail(t *testing.T) {
	t.Parallel()
	m, store := newTestModel(t, false)

	msg := loginCmd(m.client, "dev", "wrong")()
	newModel, _ := m.Update(msg)
	result := newModel.(Model)

	if result.mode != ModeLogin {
		t.Errorf("mode = %d, want ModeLogin", result.mode)
	}
	if !strings.Contains(result.status, "Invalid login or password.") {
		t.Errorf("status = %q, want backend detail", result.status)
	}
	if !result.statusErr {
		t.Error("status must be flagged as an error")
	}
	if store.Current() != nil {
		t.Error("failed login must not persist a session")
	}
}

func TestUpdate_MenuOpensEnterprisesPanel(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, true)
	m.menuCursor = menuIndexOf(t, m, "Enterprises")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	if result.mode != ModePanel {
		t.Fatalf("mode = %d, want ModePanel", result.mode)
	}
	if result.panel.step != stepLoading {
		t.Fatalf("step = %d, want stepLoading", result.panel.step)
	}
	if cmd == nil {
		t.Fatal("expected a load command")
	}

	// Run the load; the list and the format reference fetch settle
	// independently.
	result = deliver(t, result, cmd)

	if result.panel.step != stepList {
		t.Errorf("step = %d, want stepList", result.panel.step)
	}
	if len(result.panel.table.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(result.panel.table.Rows))
	}
	if len(result.panel.formats) != 1 || result.panel.formats[0].Value != "morion" {
		t.Errorf("formats = %+v, want morion", result.panel.formats)
	}
}

func TestUpdate_ScopedPanelAsksForEnterpriseCode(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, true)
	m.menuCursor = menuIndexOf(t, m, "Branch mappings")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	if result.panel.step != stepScope {
		t.Fatalf("step = %d, want stepScope", result.panel.step)
	}

	// Empty code is rejected.
	newModel, cmd := result.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result = newModel.(Model)
	if cmd != nil || result.panel.step != stepScope {
		t.Fatal("empty scope must not trigger a load")
	}

	for _, r := range "E1" {
		newModel, _ = result.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		result = newModel.(Model)
	}
	newModel, cmd = result.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result = newModel.(Model)

	if result.panel.step != stepLoading || cmd == nil {
		t.Fatal("scope submit must start the load")
	}
	if result.panel.scope != "E1" {
		t.Errorf("scope = %q, want E1", result.panel.scope)
	}

	result = deliver(t, result, cmd)
	if result.panel.step != stepList || len(result.panel.table.Rows) != 1 {
		t.Errorf("scoped list not loaded: step=%d rows=%d", result.panel.step, len(result.panel.table.Rows))
	}
}

func TestUpdate_FormatsFailureDoesNotBlockList(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, true)
	m.menuCursor = menuIndexOf(t, m, "Enterprises")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	newModel, _ = result.Update(panelRowsMsg{rows: []schema.Values{{"enterprise_code": "E1"}}})
	result = newModel.(Model)
	newModel, _ = result.Update(panelFormatsMsg{err: &api.APIError{Status: 500, Detail: "boom"}})
	result = newModel.(Model)

	if result.panel.step != stepList {
		t.Errorf("step = %d, want stepList despite formats failure", result.panel.step)
	}
	if !result.statusErr || !strings.Contains(result.status, "boom") {
		t.Errorf("status = %q, want formats warning", result.status)
	}
}

func TestUpdate_SaveFailureKeepsEdits(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, true)
	m.menuCursor = menuIndexOf(t, m, "Enterprises")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)
	result = deliver(t, result, cmd)

	// Open the selected record and edit a field.
	newModel, _ = result.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result = newModel.(Model)
	if result.panel.step != stepForm {
		t.Fatalf("step = %d, want stepForm", result.panel.step)
	}
	newModel, _ = result.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	result = newModel.(Model)
	edited := result.panel.form.Values().String("enterprise_code")

	newModel, _ = result.Update(saveDoneMsg{err: &api.APIError{Status: 422, Detail: "Validation failed."}})
	result = newModel.(Model)

	if result.panel.step != stepForm {
		t.Errorf("step = %d, want stepForm (edits preserved)", result.panel.step)
	}
	if got := result.panel.form.Values().String("enterprise_code"); got != edited {
		t.Errorf("edits lost: %q != %q", got, edited)
	}
	if !strings.Contains(result.status, "Validation failed.") || !result.statusErr {
		t.Errorf("status = %q (err=%v), want validation detail", result.status, result.statusErr)
	}
}

func TestUpdate_SaveSuccessClearsFormAndRefetches(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, true)
	m.menuCursor = menuIndexOf(t, m, "Enterprises")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)
	result = deliver(t, result, cmd)
	newModel, _ = result.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result = newModel.(Model)

	newModel, cmd = result.Update(saveDoneMsg{})
	result = newModel.(Model)

	if result.panel.form != nil {
		t.Error("form must be cleared after a successful save")
	}
	if result.panel.step != stepLoading || cmd == nil {
		t.Error("successful save must refetch the list")
	}
}

func TestUpdate_AuthFailureDropsToLogin(t *testing.T) {
	t.Parallel()
	m, store := newTestModel(t, true)
	m.menuCursor = menuIndexOf(t, m, "Enterprises")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	newModel, _ = result.Update(panelRowsMsg{err: &api.APIError{Status: 401, Detail: "Could not validate credentials"}})
	result = newModel.(Model)

	if result.mode != ModeLogin {
		t.Errorf("mode = %d, want ModeLogin", result.mode)
	}
	if store.Current() != nil {
		t.Error("rejected token must be cleared")
	}
}

func TestUpdate_LogoutClearsSession(t *testing.T) {
	t.Parallel()
	m, store := newTestModel(t, true)
	m.menuCursor = menuIndexOf(t, m, "Logout")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	if result.mode != ModeLogin {
		t.Errorf("mode = %d, want ModeLogin", result.mode)
	}
	if result.userLogin != "" {
		t.Errorf("userLogin = %q, want empty", result.userLogin)
	}
	if store.Current() != nil {
		t.Error("logout must clear the stored session")
	}
}

func TestUpdate_SinglePanelOpensForm(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, true)
	m.menuCursor = menuIndexOf(t, m, "Developer settings")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)
	if result.panel.step != stepLoading || cmd == nil {
		t.Fatal("single panel must load its record on open")
	}

	newModel, _ = result.Update(cmd())
	result = newModel.(Model)

	if result.panel.step != stepForm {
		t.Fatalf("step = %d, want stepForm", result.panel.step)
	}
	if result.panel.editKey != "dev" {
		t.Errorf("editKey = %q, want dev", result.panel.editKey)
	}
	if got := result.panel.form.Values().String("developer_login"); got != "dev" {
		t.Errorf("form login = %q, want dev", got)
	}
}

func TestView_RendersWithoutPanic(t *testing.T) {
	t.Parallel()
	m, _ := newTestModel(t, true)

	for _, mode := range []ViewMode{ModeLogin, ModeMenu, ModeHelp} {
		m.mode = mode
		if mode == ModeHelp {
			m.helpText = renderHelp(m.styles)
		}
		if view := m.View(); view == "" {
			t.Errorf("empty view for mode %d", mode)
		}
	}
}
