package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"go-restaurant-pos/config"
	"go-restaurant-pos/services"

	"github.com/spf13/cobra"
)

var qrFlags struct {
	out   string
	size  int
	table int
}

// restaurant qr: print a PNG per dining table for the table tents.
var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Write the QR code PNG for every configured dining table",
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := config.DiningTables()
		if err != nil {
			return err
		}
		svc := services.NewTableService(tables, config.QRBaseURL(), nil)
		if err := os.MkdirAll(qrFlags.out, 0o755); err != nil {
			return fmt.Errorf("qr: %w", err)
		}
		for _, t := range svc.Tables() {
			if qrFlags.table != 0 && t.Number != qrFlags.table {
				continue
			}
			png, err := svc.QRPNG(t.Number, qrFlags.size)
			if err != nil {
				return err
			}
			path := filepath.Join(qrFlags.out, fmt.Sprintf("table-%d.png", t.Number))
			if err := os.WriteFile(path, png, 0o644); err != nil {
				return fmt.Errorf("qr: %w", err)
			}
			payload, _ := svc.PayloadFor(t.Number)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", path, payload)
		}
		return nil
	},
}

func init() {
	qrCmd.Flags().StringVarP(&qrFlags.out, "out", "o", "qr", "directory to write the PNG files to")
	qrCmd.Flags().IntVar(&qrFlags.size, "size", 512, "image size in pixels")
	qrCmd.Flags().IntVar(&qrFlags.table, "table", 0, "only this table number")
}
