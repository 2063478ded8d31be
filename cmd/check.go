package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fretkey/fretkey/internal/mapping"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <mapping-file>",
	Short: "Validate a mapping file and print the fretboard grid",
	Long: `Loads the mapping file exactly as a session would, reporting the first
invalid row or key token, and prints the resulting fretboard layout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tuning, err := parseTuning(tuningFlag)
		if err != nil {
			return configErr(err)
		}
		table, err := mapping.Load(args[0], tuning)
		if err != nil {
			return configErr(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), table.Grid())

		mapped := 0
		for _, channel := range table.Channels() {
			for fret := 0; fret < mapping.NumFrets; fret++ {
				if _, ok := table.Resolve(channel, fret); ok {
					mapped++
				}
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "mapping OK: %d cells mapped\n", mapped)
		return nil
	},
}
