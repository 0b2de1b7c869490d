package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(MakesCmd)
}

var MakesCmd = &cobra.Command{
	Use:   "makes",
	Short: "List the makes and the models offered for each",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		for _, e := range a.catalog.Vocabulary().Entries() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", e.Make, strings.Join(e.Models, ", "))
		}
		return nil
	},
}
