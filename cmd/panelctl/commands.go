package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"panelctl/cmd/panelctl/ui"
	"panelctl/internal/api"
	"panelctl/internal/schema"
)

var (
	jsonOutput bool
	recordFile string
)

// readRecord decodes a record from --file, or stdin when the flag is "-" or
// omitted with piped input.
func readRecord[T schema.Record]() (T, error) {
	var rec T
	var src io.Reader = os.Stdin
	if recordFile != "" && recordFile != "-" {
		f, err := os.Open(recordFile)
		if err != nil {
			return rec, err
		}
		defer f.Close()
		src = f
	}
	if err := json.NewDecoder(src).Decode(&rec); err != nil {
		return rec, fmt.Errorf("decode record: %w", err)
	}
	return rec, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable[T schema.Record](title string, columns []schema.Column, recs []T) {
	table := ui.NewTable(title, columns)
	rows := make([]schema.Values, len(recs))
	for i, r := range recs {
		rows[i] = r.ToValues()
	}
	table.SetRows(rows)
	fmt.Print(table.View(ui.NewStyles(ui.LightTheme())))
}

// runList builds a list handler for one resource.
func runList[T schema.Record](title string, columns []schema.Column, res func(*api.Client) api.Resource[T]) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		recs, err := res(client).List(cmd.Context())
		if err != nil {
			return err
		}
		logger.Debug("list fetched", zap.String("resource", title), zap.Int("count", len(recs)))
		if jsonOutput {
			return printJSON(recs)
		}
		printTable(title, columns, recs)
		return nil
	}
}

func runGet[T schema.Record](res func(*api.Client) api.Resource[T]) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rec, err := res(client).Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(rec)
	}
}

func runCreate[T schema.Record](res func(*api.Client) api.Resource[T]) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rec, err := readRecord[T]()
		if err != nil {
			return err
		}
		created, err := res(client).Create(cmd.Context(), rec)
		if err != nil {
			return err
		}
		logger.Info("record created", zap.String("key", created.Key()))
		return printJSON(created)
	}
}

func runUpdate[T schema.Record](res func(*api.Client) api.Resource[T]) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rec, err := readRecord[T]()
		if err != nil {
			return err
		}
		updated, err := res(client).Update(cmd.Context(), args[0], rec)
		if err != nil {
			return err
		}
		logger.Info("record updated", zap.String("key", updated.Key()))
		return printJSON(updated)
	}
}

var enterpriseCmd = &cobra.Command{
	Use:   "enterprise",
	Short: "Manage supplier enterprise settings",
}

var developerCmd = &cobra.Command{
	Use:   "developer",
	Short: "Manage the developer settings record",
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "Manage the data format reference list",
}

var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Manage branch-to-store mappings",
}

var dropshipCmd = &cobra.Command{
	Use:   "dropship",
	Short: "Manage dropship enterprises",
}

func init() {
	enterpriseCmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List enterprises", RunE: runList("Enterprises", schema.EnterpriseColumns(), api.Enterprises)},
		&cobra.Command{Use: "get [code]", Short: "Fetch one enterprise", Args: cobra.ExactArgs(1), RunE: runGet(api.Enterprises)},
		&cobra.Command{Use: "create", Short: "Create an enterprise from JSON", RunE: runCreate(api.Enterprises)},
		&cobra.Command{Use: "update [code]", Short: "Replace an enterprise from JSON", Args: cobra.ExactArgs(1), RunE: runUpdate(api.Enterprises)},
	)

	developerCmd.AddCommand(
		&cobra.Command{Use: "get [login]", Short: "Fetch the developer settings record", Args: cobra.ExactArgs(1), RunE: runGet(api.Developers)},
		&cobra.Command{Use: "set [login]", Short: "Replace the developer settings record from JSON", Args: cobra.ExactArgs(1), RunE: runUpdate(api.Developers)},
	)

	formatsCmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List data formats", RunE: runList("Data formats", schema.DataFormatColumns(), api.DataFormats)},
		&cobra.Command{
			Use:   "add [name]",
			Short: "Add a data format",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				created, err := api.DataFormats(client).Create(cmd.Context(), schema.DataFormat{FormatName: args[0]})
				if err != nil {
					return err
				}
				return printJSON(created)
			},
		},
	)

	mappingCmd.AddCommand(
		&cobra.Command{
			Use:   "list [enterprise-code]",
			Short: "List branch mappings for one enterprise",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				recs, err := api.MappingBranches(client).ListBy(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(recs)
				}
				printTable("Branch mappings", schema.MappingBranchColumns(), recs)
				return nil
			},
		},
		&cobra.Command{Use: "add", Short: "Create a branch mapping from JSON", RunE: runCreate(api.MappingBranches)},
	)

	dropshipCmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List dropship enterprises", RunE: runList("Dropship enterprises", schema.DropshipColumns(), api.DropshipEnterprises)},
		&cobra.Command{Use: "get [code]", Short: "Fetch one dropship enterprise", Args: cobra.ExactArgs(1), RunE: runGet(api.DropshipEnterprises)},
		&cobra.Command{Use: "create", Short: "Create a dropship enterprise from JSON", RunE: runCreate(api.DropshipEnterprises)},
		&cobra.Command{Use: "update [code]", Short: "Replace a dropship enterprise from JSON", Args: cobra.ExactArgs(1), RunE: runUpdate(api.DropshipEnterprises)},
	)

	for _, c := range []*cobra.Command{enterpriseCmd, developerCmd, formatsCmd, mappingCmd, dropshipCmd} {
		c.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
		c.PersistentFlags().StringVarP(&recordFile, "file", "f", "", "Record JSON file (default stdin)")
	}
}
