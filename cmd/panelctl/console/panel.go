package console

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"panelctl/cmd/panelctl/ui"
	"panelctl/internal/api"
	"panelctl/internal/logging"
	"panelctl/internal/schema"
)

// panelDef describes one entity panel: how to project it into the table,
// which form it edits, and the API closures behind load and save. The panel
// state machine itself is shared; only these descriptors differ per entity.
type panelDef struct {
	title    string
	keyField string
	columns  []schema.Column
	fields   func(formats []schema.Option) []schema.Field

	canCreate bool
	canUpdate bool
	// single panels hold exactly one record keyed by the session login and
	// open straight into the edit form.
	single bool
	// scoped panels ask for an enterprise code before listing.
	scoped bool
	// needsFormats panels fetch the data-format reference list alongside
	// their rows to feed a select field.
	needsFormats bool

	load   func(ctx context.Context, c *api.Client, scope string) ([]schema.Values, error)
	getOne func(ctx context.Context, c *api.Client, key string) (schema.Values, error)
	create func(ctx context.Context, c *api.Client, v schema.Values) error
	update func(ctx context.Context, c *api.Client, key string, v schema.Values) error
}

func listAsValues[T schema.Record](recs []T) []schema.Values {
	rows := make([]schema.Values, len(recs))
	for i, r := range recs {
		rows[i] = r.ToValues()
	}
	return rows
}

// panels is the registry behind the main menu, in menu order.
var panels = []panelDef{
	{
		title:        "Enterprises",
		keyField:     "enterprise_code",
		columns:      schema.EnterpriseColumns(),
		fields:       schema.EnterpriseFields,
		canCreate:    true,
		canUpdate:    true,
		needsFormats: true,
		load: func(ctx context.Context, c *api.Client, _ string) ([]schema.Values, error) {
			recs, err := api.Enterprises(c).List(ctx)
			return listAsValues(recs), err
		},
		create: func(ctx context.Context, c *api.Client, v schema.Values) error {
			_, err := api.Enterprises(c).Create(ctx, schema.EnterpriseFromValues(v))
			return err
		},
		update: func(ctx context.Context, c *api.Client, key string, v schema.Values) error {
			_, err := api.Enterprises(c).Update(ctx, key, schema.EnterpriseFromValues(v))
			return err
		},
	},
	{
		title:    "Developer settings",
		keyField: "developer_login",
		fields:   func([]schema.Option) []schema.Field { return schema.DeveloperFields() },
		single:   true,
		getOne: func(ctx context.Context, c *api.Client, key string) (schema.Values, error) {
			rec, err := api.Developers(c).Get(ctx, key)
			if err != nil {
				return nil, err
			}
			return rec.ToValues(), nil
		},
		update: func(ctx context.Context, c *api.Client, key string, v schema.Values) error {
			_, err := api.Developers(c).Update(ctx, key, schema.DeveloperFromValues(v))
			return err
		},
	},
	{
		title:     "Data formats",
		keyField:  "format_name",
		columns:   schema.DataFormatColumns(),
		fields:    func([]schema.Option) []schema.Field { return schema.DataFormatFields() },
		canCreate: true,
		load: func(ctx context.Context, c *api.Client, _ string) ([]schema.Values, error) {
			recs, err := api.DataFormats(c).List(ctx)
			return listAsValues(recs), err
		},
		create: func(ctx context.Context, c *api.Client, v schema.Values) error {
			_, err := api.DataFormats(c).Create(ctx, schema.DataFormatFromValues(v))
			return err
		},
	},
	{
		title:     "Branch mappings",
		keyField:  "branch",
		columns:   schema.MappingBranchColumns(),
		fields:    func([]schema.Option) []schema.Field { return schema.MappingBranchFields() },
		canCreate: true,
		scoped:    true,
		load: func(ctx context.Context, c *api.Client, scope string) ([]schema.Values, error) {
			recs, err := api.MappingBranches(c).ListBy(ctx, scope)
			return listAsValues(recs), err
		},
		create: func(ctx context.Context, c *api.Client, v schema.Values) error {
			_, err := api.MappingBranches(c).Create(ctx, schema.MappingBranchFromValues(v))
			return err
		},
	},
	{
		title:     "Dropship enterprises",
		keyField:  "code",
		columns:   schema.DropshipColumns(),
		fields:    func([]schema.Option) []schema.Field { return schema.DropshipFields() },
		canCreate: true,
		canUpdate: true,
		load: func(ctx context.Context, c *api.Client, _ string) ([]schema.Values, error) {
			recs, err := api.DropshipEnterprises(c).List(ctx)
			return listAsValues(recs), err
		},
		create: func(ctx context.Context, c *api.Client, v schema.Values) error {
			_, err := api.DropshipEnterprises(c).Create(ctx, schema.DropshipFromValues(v))
			return err
		},
		update: func(ctx context.Context, c *api.Client, key string, v schema.Values) error {
			_, err := api.DropshipEnterprises(c).Update(ctx, key, schema.DropshipFromValues(v))
			return err
		},
	},
}

// panelStep is the current stage of the panel state machine.
type panelStep int

const (
	stepScope panelStep = iota
	stepLoading
	stepList
	stepForm
)

// panelState is the live state of the open panel.
type panelState struct {
	def   *panelDef
	step  panelStep
	scope string

	// actions are the row-scoped operations of the list view; the first one
	// is bound to enter.
	actions []schema.Action

	scopeInput textinput.Model
	table      *ui.Table
	formats    []schema.Option

	form *ui.Form
	// editKey is the identity the record had when it was loaded; empty while
	// creating. Saves target this key even if a key-like field was edited.
	editKey string
	saving  bool
}

// openPanel prepares the state for def and returns the first command to run.
func (m *Model) openPanel(def *panelDef) tea.Cmd {
	p := &panelState{
		def:   def,
		table: ui.NewTable(def.title, def.columns),
	}
	if def.canUpdate {
		p.actions = append(p.actions, schema.Action{
			Label:   "edit",
			Handler: func(row schema.Values) { p.startEdit(row) },
		})
	}
	m.panel = p
	m.mode = ModePanel
	m.clearStatus()

	switch {
	case def.single:
		p.step = stepLoading
		return m.loadSingleCmd(def)
	case def.scoped:
		p.step = stepScope
		p.scopeInput = textinput.New()
		p.scopeInput.Prompt = "Enterprise code: "
		p.scopeInput.Focus()
		return nil
	default:
		p.step = stepLoading
		return m.loadPanelCmd(def, "")
	}
}

// panelRowsMsg carries the list fetch result.
type panelRowsMsg struct {
	rows []schema.Values
	err  error
}

// panelFormatsMsg carries the data-format reference fetch. It settles
// independently of the rows: a failed reference fetch leaves the select
// without options instead of blocking the list.
type panelFormatsMsg struct {
	options []schema.Option
	err     error
}

// singleRecordMsg carries the single-panel record fetch.
type singleRecordMsg struct {
	values schema.Values
	err    error
}

// saveDoneMsg reports the outcome of a create or update.
type saveDoneMsg struct {
	err error
}

// loadPanelCmd fetches the panel rows; when the panel feeds a select from
// the data-format list both fetches are issued concurrently and settle
// independently.
func (m Model) loadPanelCmd(def *panelDef, scope string) tea.Cmd {
	client := m.client
	rowsCmd := func() tea.Msg {
		rows, err := def.load(context.Background(), client, scope)
		return panelRowsMsg{rows: rows, err: err}
	}
	if !def.needsFormats {
		return rowsCmd
	}
	formatsCmd := func() tea.Msg {
		formats, err := api.DataFormats(client).List(context.Background())
		return panelFormatsMsg{options: schema.FormatOptions(formats), err: err}
	}
	return tea.Batch(rowsCmd, formatsCmd)
}

func (m Model) loadSingleCmd(def *panelDef) tea.Cmd {
	client, key := m.client, m.userLogin
	return func() tea.Msg {
		values, err := def.getOne(context.Background(), client, key)
		return singleRecordMsg{values: values, err: err}
	}
}

// saveCmd persists the form values: POST while creating, PUT against the
// loaded key otherwise.
func (m Model) saveCmd(p *panelState, values schema.Values) tea.Cmd {
	client := m.client
	def, key := p.def, p.editKey
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if key == "" {
			err = def.create(ctx, client, values)
		} else {
			err = def.update(ctx, client, key, values)
		}
		if err != nil {
			logging.PanelError("%s save: %v", def.title, err)
		} else {
			logging.Panel("%s saved (key=%q)", def.title, key)
		}
		return saveDoneMsg{err: err}
	}
}

func newFormFor(p *panelState, values schema.Values) *ui.Form {
	return ui.NewForm(p.def.fields(p.formats), values)
}

// startCreate opens an empty form.
func (p *panelState) startCreate() {
	p.editKey = ""
	initial := schema.Values{}
	if p.def.scoped {
		initial = initial.With("enterprise_code", p.scope)
	}
	p.form = newFormFor(p, initial)
	p.step = stepForm
}

// startEdit opens the form over the selected row.
func (p *panelState) startEdit(row schema.Values) {
	p.editKey = row.String(p.def.keyField)
	p.form = newFormFor(p, row)
	p.step = stepForm
}
