package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"panelctl/internal/schema"
)

// Form is a generic field editor driven entirely by field descriptors and a
// value map. It is a controlled component: edits never mutate the map it was
// given — every change produces a fresh merged copy, which OnChange receives.
type Form struct {
	fields []schema.Field
	values schema.Values
	inputs []textinput.Model
	focus  int

	// OnChange, when set, receives the merged value map after every edit.
	OnChange func(schema.Values)
}

// NewForm builds a form over the descriptors, pre-filled from initial.
// Number fields keep their text representation while being edited; the
// schema accessors parse them back on submit.
func NewForm(fields []schema.Field, initial schema.Values) *Form {
	f := &Form{
		fields: fields,
		values: initial.Clone(),
		inputs: make([]textinput.Model, len(fields)),
		focus:  -1,
	}
	for i, field := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		in.SetValue(initial.String(field.Name))
		if field.Kind == schema.KindPassword {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		f.inputs[i] = in
	}
	f.focus = f.nextFocusable(-1, +1)
	f.syncFocus()
	return f
}

// Values returns the current value map. Callers get the live copy; they must
// go through With for further edits.
func (f *Form) Values() schema.Values {
	return f.values
}

// Normalized returns the value map ready for submit: number fields are
// parsed from their edit-time text and clamped to their constraints.
func (f *Form) Normalized() schema.Values {
	out := f.values
	for _, field := range f.fields {
		if field.Kind != schema.KindNumber {
			continue
		}
		n := out.Float(field.Name)
		if c := field.Constraints; c != nil {
			if n < c.Min {
				n = c.Min
			}
			if c.Max > 0 && n > c.Max {
				n = c.Max
			}
		}
		out = out.With(field.Name, n)
	}
	return out
}

// FocusedField returns the descriptor under focus, or nil when the form has
// no focusable field.
func (f *Form) FocusedField() *schema.Field {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return nil
	}
	return &f.fields[f.focus]
}

// Update handles one message. Navigation moves between enabled fields;
// everything else is routed to the focused control.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.forwardToInput(msg)
	}

	switch key.String() {
	case "up", "shift+tab":
		f.focus = f.nextFocusable(f.focus, -1)
		f.syncFocus()
		return nil
	case "down", "tab":
		f.focus = f.nextFocusable(f.focus, +1)
		f.syncFocus()
		return nil
	}

	field := f.FocusedField()
	if field == nil {
		return nil
	}

	switch field.Kind {
	case schema.KindCheckbox:
		if key.String() == " " || key.String() == "enter" {
			f.setValue(field.Name, !f.values.Bool(field.Name))
		}
		return nil
	case schema.KindSelect:
		switch key.String() {
		case "left":
			f.cycleSelect(field, -1)
		case "right", " ", "enter":
			f.cycleSelect(field, +1)
		}
		return nil
	default:
		return f.forwardToInput(msg)
	}
}

// View renders the form with one line per field.
func (f *Form) View(styles Styles) string {
	var sb strings.Builder
	for i, field := range f.fields {
		focused := i == f.focus

		label := styles.FieldName.Render(field.Label)
		if focused {
			label = styles.Selected.Width(28).Render("> " + field.Label)
		}
		sb.WriteString(label)
		sb.WriteString(" ")
		sb.WriteString(f.renderControl(i, field, focused, styles))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (f *Form) renderControl(i int, field schema.Field, focused bool, styles Styles) string {
	if field.Disabled {
		val := f.values.String(field.Name)
		if val == "" {
			val = "—"
		}
		return styles.Disabled.Render(val)
	}

	switch field.Kind {
	case schema.KindCheckbox:
		box := "[ ]"
		if f.values.Bool(field.Name) {
			box = "[x]"
		}
		if focused {
			return styles.Selected.Render(box)
		}
		return styles.Body.Render(box)

	case schema.KindSelect:
		val := f.values.String(field.Name)
		label := val
		for _, opt := range field.Options {
			if opt.Value == val {
				label = opt.Label
				break
			}
		}
		if label == "" {
			label = "(none)"
		}
		if focused {
			return styles.Selected.Render("< " + label + " >")
		}
		return styles.Body.Render(label)

	default:
		if focused {
			return f.inputs[i].View()
		}
		val := f.values.String(field.Name)
		if field.Kind == schema.KindPassword && val != "" {
			val = strings.Repeat("*", len(val))
		}
		return styles.Body.Render(val)
	}
}

// forwardToInput routes a message to the focused text control and folds the
// edited text back into the value map.
func (f *Form) forwardToInput(msg tea.Msg) tea.Cmd {
	field := f.FocusedField()
	if field == nil || !textEditable(field.Kind) {
		return nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if got := f.inputs[f.focus].Value(); got != f.values.String(field.Name) {
		f.setValue(field.Name, got)
	}
	return cmd
}

func (f *Form) setValue(name string, val any) {
	f.values = f.values.With(name, val)
	if f.OnChange != nil {
		f.OnChange(f.values)
	}
}

func (f *Form) cycleSelect(field *schema.Field, delta int) {
	if len(field.Options) == 0 {
		return
	}
	current := f.values.String(field.Name)
	idx := 0
	for i, opt := range field.Options {
		if opt.Value == current {
			idx = i + delta
			break
		}
	}
	idx = (idx + len(field.Options)) % len(field.Options)
	f.setValue(field.Name, field.Options[idx].Value)
}

// nextFocusable walks from idx in direction dir to the next enabled field,
// wrapping around. Returns -1 when no field is focusable.
func (f *Form) nextFocusable(idx, dir int) int {
	if len(f.fields) == 0 {
		return -1
	}
	for step := 0; step < len(f.fields); step++ {
		idx = (idx + dir + len(f.fields)) % len(f.fields)
		if !f.fields[idx].Disabled {
			return idx
		}
	}
	return -1
}

func (f *Form) syncFocus() {
	for i := range f.inputs {
		if i == f.focus && textEditable(f.fields[i].Kind) && !f.fields[i].Disabled {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func textEditable(kind schema.FieldKind) bool {
	switch kind {
	case schema.KindText, schema.KindPassword, schema.KindNumber, schema.KindDateTime:
		return true
	}
	return false
}
