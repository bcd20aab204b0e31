package lingomirror

import (
	"fmt"
	"path/filepath"

	"github.com/lingomirror/lingomirror/internal/engine"
	"github.com/lingomirror/lingomirror/internal/files"
	"github.com/spf13/cobra"
)

var flagIgnoreRoot string

func init() {
	cmd := &cobra.Command{
		Use:   "ignore <pattern>...",
		Short: "Add patterns to " + engine.IgnoreFile,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(flagIgnoreRoot, engine.IgnoreFile)
			added, err := files.AppendIgnore(path, args...)
			if err != nil {
				return fmt.Errorf("update %s: %w", path, err)
			}
			out := cmd.OutOrStdout()
			if len(added) == 0 {
				fmt.Fprintln(out, "Nothing to add; patterns already present.")
				return nil
			}
			for _, p := range added {
				fmt.Fprintln(out, "Ignored", p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagIgnoreRoot, "path", "p", ".", "project root holding the ignore file")
	rootCmd.AddCommand(cmd)
}
