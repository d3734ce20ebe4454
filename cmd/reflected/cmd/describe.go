package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tuannm99/reflected/internal/shell"
)

func newDescribeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "describe <schema.yaml>",
		Short: "Print the field table of a record description",
		Long: `Print every field with its taxonomy type, declared Go type and flags.

Example:
  reflected describe user.yaml
  reflected describe user.yaml --yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(args[0])
			if err != nil {
				return err
			}

			if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
				out, err := m.Desc.Marshal()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%d fields)\n", m.Schema.TypeName(), m.Schema.Len())
			rows := make([][]string, 0, m.Schema.Len())
			for _, f := range m.Schema.Fields() {
				var flags []string
				if f.IsID() {
					flags = append(flags, "id")
				}
				if f.IsForeignKey() {
					flags = append(flags, "fk")
				}
				if f.IsSimple() {
					flags = append(flags, "simple")
				}
				if f.IsCustom() {
					flags = append(flags, "custom")
				}
				rows = append(rows, []string{f.Name, f.Type.String(), f.TypeName, strings.Join(flags, ",")})
			}
			shell.PrintTable(w, []string{"field", "type", "go type", "flags"}, rows)
			return nil
		},
	}
	c.Flags().Bool("yaml", false, "print the normalized description as YAML")
	return c
}
