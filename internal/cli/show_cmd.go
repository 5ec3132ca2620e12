package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"matchlake/internal/table"
)

func newShowCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "show <file.parquet>",
		Short: "Print a parquet table's schema and first rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTable(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d rows, %d columns\n\n", args[0], t.NumRows(), t.NumCols())

			w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
			var header []string
			for _, f := range t.Schema() {
				header = append(header, fmt.Sprintf("%s (%s)", f.Name, f.Type))
			}
			fmt.Fprintln(w, strings.Join(header, "\t"))

			n := t.NumRows()
			if limit > 0 && n > limit {
				n = limit
			}
			for i := 0; i < n; i++ {
				var cells []string
				for _, c := range t.Columns() {
					cells = append(cells, formatCell(c, i))
				}
				fmt.Fprintln(w, strings.Join(cells, "\t"))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if n < t.NumRows() {
				fmt.Fprintf(out, "... %d more rows\n", t.NumRows()-n)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum rows to print, 0 for all")
	return cmd
}

func formatCell(c *table.Column, i int) string {
	v := c.Value(i)
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%v", v)
}
