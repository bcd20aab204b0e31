package lingomirror

import (
	"github.com/lingomirror/lingomirror/internal/rules"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List rule IDs, severities and example rewrites",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("ID", "Severity", "Physical", "Logical")
			for _, r := range rules.All() {
				if err := table.Append([]string{r.ID, string(r.Severity), r.Example, r.Fix(r.Example)}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
	rootCmd.AddCommand(cmd)
}
