package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"panelctl/internal/api"
	"panelctl/internal/schema"
)

var exportOut string

// exportDocument is the combined snapshot of every list-shaped collection.
type exportDocument struct {
	Enterprises []schema.EnterpriseSettings `json:"enterprises"`
	DataFormats []schema.DataFormat         `json:"data_formats"`
	Dropship    []schema.DropshipEnterprise `json:"dropship_enterprises"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Snapshot all collections as one JSON document",
	Long: `Fetches enterprises, data formats and dropship enterprises
concurrently and writes them as a single JSON document, for backups or
diffing environments. Branch mappings are scoped per enterprise and the
developer record is per login; export them individually.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var doc exportDocument

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			var err error
			doc.Enterprises, err = api.Enterprises(client).List(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			doc.DataFormats, err = api.DataFormats(client).List(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			doc.Dropship, err = api.DropshipEnterprises(client).List(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}
		logger.Info("export fetched",
			zap.Int("enterprises", len(doc.Enterprises)),
			zap.Int("data_formats", len(doc.DataFormats)),
			zap.Int("dropship", len(doc.Dropship)))

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return err
		}
		if exportOut != "" {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", exportOut)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
}
