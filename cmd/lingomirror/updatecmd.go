package lingomirror

import (
	"fmt"

	"github.com/lingomirror/lingomirror/internal/update"
	"github.com/spf13/cobra"
)

var flagCheckOnly bool

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update lingomirror to the latest release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if flagCheckOnly {
				latest, newer, err := update.Check(version, false)
				if err != nil {
					return err
				}
				switch {
				case latest == "":
					fmt.Fprintln(out, "Could not determine the latest version.")
				case newer:
					fmt.Fprintf(out, "New version available: v%s (current v%s)\n", latest, version)
				default:
					fmt.Fprintf(out, "Up to date (v%s)\n", version)
				}
				return nil
			}
			v, err := selfUpdate()
			if err != nil {
				return fmt.Errorf("self-update: %w", err)
			}
			fmt.Fprintf(out, "Updated to v%s\n", v)
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagCheckOnly, "check", false, "only report whether a newer version exists")
	rootCmd.AddCommand(cmd)
}
