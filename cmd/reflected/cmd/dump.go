package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tuannm99/reflected/internal/schemadef"
	"github.com/tuannm99/reflected/internal/store"
)

func newDumpCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "dump <schema.yaml>",
		Short: "Print every stored record of a described type",
		Long: `Print every record saved for a described type, in key order.

Example:
  reflected dump user.yaml --store ./data`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args[0])
			if err != nil {
				return err
			}

			st, err := store.Open(storeDir(cmd), m.Schema)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			var (
				keys []string
				rows []*schemadef.Row
			)
			err = st.Scan(func(key string, row *schemadef.Row) error {
				keys = append(keys, key)
				rows = append(rows, row)
				return nil
			})
			if err != nil {
				return err
			}

			slog.Debug("cmd:: dump", "type", m.Schema.TypeName(), "records", len(rows))
			if keys == nil {
				keys = []string{}
			}
			printRows(cmd, m, keys, rows)
			return nil
		},
	}
	c.Flags().String("store", "", "store directory (defaults to store.dir)")
	return c
}
