package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"panelctl/internal/schema"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testFields() []schema.Field {
	return []schema.Field{
		{Name: "name", Label: "Name", Kind: schema.KindText},
		{Name: "active", Label: "Active", Kind: schema.KindCheckbox},
		{Name: "format", Label: "Format", Kind: schema.KindSelect, Options: []schema.Option{
			{Value: "morion", Label: "Morion"},
			{Value: "badm", Label: "BADM"},
		}},
		{Name: "updated", Label: "Updated", Kind: schema.KindDateTime, Disabled: true},
	}
}

func TestForm_EditDoesNotMutateInitialValues(t *testing.T) {
	initial := schema.Values{"name": "old", "active": false, "format": "morion"}
	form := NewForm(testFields(), initial)

	form.Update(keyMsg("x"))

	if initial.String("name") != "old" {
		t.Errorf("initial map mutated: name = %q", initial.String("name"))
	}
	if got := form.Values().String("name"); got != "oldx" {
		t.Errorf("form value = %q, want oldx", got)
	}
}

func TestForm_OnChangeReceivesMergedCopy(t *testing.T) {
	var seen []schema.Values
	form := NewForm(testFields(), schema.Values{"name": "a"})
	form.OnChange = func(v schema.Values) { seen = append(seen, v) }

	form.Update(keyMsg("b"))
	form.Update(keyMsg("c"))

	if len(seen) != 2 {
		t.Fatalf("OnChange fired %d times, want 2", len(seen))
	}
	// Each emission is an independent snapshot.
	if seen[0].String("name") != "ab" || seen[1].String("name") != "abc" {
		t.Errorf("snapshots = %q, %q", seen[0].String("name"), seen[1].String("name"))
	}
}

func TestForm_CheckboxToggle(t *testing.T) {
	form := NewForm(testFields(), schema.Values{"active": false})

	form.Update(keyMsg("tab")) // name -> active
	if f := form.FocusedField(); f == nil || f.Name != "active" {
		t.Fatalf("focus = %v, want active", f)
	}

	form.Update(keyMsg(" "))
	if !form.Values().Bool("active") {
		t.Error("space must toggle the checkbox on")
	}
	form.Update(keyMsg("enter"))
	if form.Values().Bool("active") {
		t.Error("enter must toggle the checkbox off")
	}
}

func TestForm_SelectCyclesThroughOptions(t *testing.T) {
	form := NewForm(testFields(), schema.Values{"format": "morion"})

	form.Update(keyMsg("tab"))
	form.Update(keyMsg("tab")) // name -> active -> format

	form.Update(keyMsg("right"))
	if got := form.Values().String("format"); got != "badm" {
		t.Errorf("format = %q, want badm", got)
	}
	form.Update(keyMsg("right")) // wraps
	if got := form.Values().String("format"); got != "morion" {
		t.Errorf("format = %q, want morion after wrap", got)
	}
	form.Update(keyMsg("left"))
	if got := form.Values().String("format"); got != "badm" {
		t.Errorf("format = %q, want badm after left", got)
	}
}

func TestForm_FocusSkipsDisabledFields(t *testing.T) {
	form := NewForm(testFields(), schema.Values{})

	// Three enabled fields; a fourth tab wraps past the disabled one.
	form.Update(keyMsg("tab"))
	form.Update(keyMsg("tab"))
	form.Update(keyMsg("tab"))
	if f := form.FocusedField(); f == nil || f.Name != "name" {
		t.Errorf("focus after wrap = %v, want name", f)
	}

	form.Update(keyMsg("shift+tab"))
	if f := form.FocusedField(); f == nil || f.Name != "format" {
		t.Errorf("focus after shift+tab = %v, want format", f)
	}
}

func TestForm_NormalizedClampsNumbers(t *testing.T) {
	fields := []schema.Field{
		{Name: "priority", Label: "Priority", Kind: schema.KindNumber,
			Constraints: &schema.NumberConstraints{Min: 1, Max: 10, Step: 1}},
		{Name: "markup", Label: "Markup", Kind: schema.KindNumber,
			Constraints: &schema.NumberConstraints{Min: 0, Step: 0.1}},
	}
	form := NewForm(fields, schema.Values{"priority": "42", "markup": "3.5"})

	got := form.Normalized()
	if got.Float("priority") != 10 {
		t.Errorf("priority = %v, want clamped to 10", got.Float("priority"))
	}
	if got.Float("markup") != 3.5 {
		t.Errorf("markup = %v, want 3.5", got.Float("markup"))
	}
}

func TestForm_ViewMasksPasswordsAndMarksDisabled(t *testing.T) {
	fields := []schema.Field{
		{Name: "login", Label: "Login", Kind: schema.KindText},
		{Name: "password", Label: "Password", Kind: schema.KindPassword},
		{Name: "updated", Label: "Updated", Kind: schema.KindDateTime, Disabled: true},
	}
	form := NewForm(fields, schema.Values{
		"login":    "dev",
		"password": "secret",
		"updated":  "2025-03-14T09:30:00",
	})

	view := form.View(DefaultStyles())
	if strings.Contains(view, "secret") {
		t.Error("password value must not render in clear text")
	}
	if !strings.Contains(view, "******") {
		t.Error("password must render masked")
	}
	if !strings.Contains(view, "2025-03-14T09:30:00") {
		t.Error("disabled field must still display its value")
	}
}
