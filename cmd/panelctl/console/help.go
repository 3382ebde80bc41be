package console

import (
	"github.com/charmbracelet/glamour"

	"panelctl/cmd/panelctl/ui"
)

const helpMarkdown = `# panelctl

Terminal console for the developer panel.

## Panels

- **Enterprises** — supplier integration settings, keyed by code
- **Developer settings** — your global configuration record
- **Data formats** — the reference list feeding the enterprise format select
- **Branch mappings** — pharmacy branch to marketplace store links, scoped
  to one enterprise
- **Dropship enterprises** — dropshipping suppliers

## Keys

| Key | Action |
| --- | --- |
| up/down, j/k | move |
| enter | open / edit |
| n | new record |
| r | reload list |
| ctrl+s | save form |
| esc | back / cancel |
| ctrl+c | quit |

Saving always refetches the list so the table shows what the server
actually stored. A failed save keeps your edits and shows the server's
error in the status line.
`

// renderHelp renders the help screen through glamour, matching the theme.
func renderHelp(styles ui.Styles) string {
	var renderer *glamour.TermRenderer
	var err error
	if styles.Theme.IsDark {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
	} else {
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(80),
		)
	}
	if err != nil || renderer == nil {
		return helpMarkdown
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
