package main

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wildcast/wildcast/internal/importer"
	"github.com/wildcast/wildcast/internal/model"
)

var importFilePath string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import contacts from an XLSX or CSV export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		var (
			contacts []model.Contact
			err      error
		)
		switch strings.ToLower(filepath.Ext(importFilePath)) {
		case ".xlsx":
			contacts, err = importer.ReadXLSX(importFilePath)
		case ".csv":
			contacts, err = importer.ReadCSV(importFilePath)
		default:
			return eris.Errorf("unsupported file type %q (want .xlsx or .csv)", filepath.Ext(importFilePath))
		}
		if err != nil {
			return eris.Wrap(err, "read contacts")
		}
		if len(contacts) == 0 {
			zap.L().Warn("no contacts found in file", zap.String("file", importFilePath))
			return nil
		}

		st, err := openStore(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close()

		inserted, err := st.BulkInsertContacts(ctx, contacts)
		if err != nil {
			return eris.Wrap(err, "insert contacts")
		}

		zap.L().Info("import complete",
			zap.Int("read", len(contacts)),
			zap.Int("inserted", inserted),
			zap.String("file", importFilePath),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFilePath, "file", "", "path to XLSX or CSV file (required)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
