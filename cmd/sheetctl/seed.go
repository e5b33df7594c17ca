package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inventario-sheets/internal/domain/inventory"
)

func seedCommand() *cobra.Command {
	var (
		file     string
		encoding string
		dryRun   bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Sobrescribe la hoja con el contenido de un CSV (cabecera incluida)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("abrir CSV: %w", err)
			}
			defer f.Close()

			tbl, stats, err := readSeed(f, encoding)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d ítems leídos (%d filas vacías, %d fechas YYYY-MM-DD)\n",
				stats.Rows, stats.BlankRows, stats.LegacyDates)
			if dryRun {
				return nil
			}

			e, err := newEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()
			if err := e.syncer.ReplaceAll(cmd.Context(), tbl); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "hoja sobrescrita")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "ruta del CSV")
	cmd.Flags().StringVar(&encoding, "encoding", "utf-8", "utf-8 | latin1 | windows-1252")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "solo validar el CSV")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// readSeed decodifica el CSV con la misma validación que una lectura de la hoja.
func readSeed(r io.Reader, encoding string) (*inventory.Table, inventory.DecodeStats, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
	case "latin1", "iso-8859-1":
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "windows-1252", "cp1252":
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return nil, inventory.DecodeStats{}, fmt.Errorf("encoding no soportado %q", encoding)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	values, err := cr.ReadAll()
	if err != nil {
		return nil, inventory.DecodeStats{}, fmt.Errorf("leer CSV: %w", err)
	}
	return inventory.DecodeTable(values)
}
