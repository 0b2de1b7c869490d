package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nekruzvatanshoev/carlot/pkg/carlot/compare"
	"github.com/nekruzvatanshoev/carlot/pkg/carlot/dal"
)

const (
	CompareCmdName  = "compare"
	CompareCmdShort = "Compare up to four cars side by side"
	CompareCmdLong  = `Print a comparison table for one to four listings. The best value of
each row is highlighted; fuel type and transmission are informational.

  carlot compare car-1 car-2 car-5`
)

func init() {
	RootCmd.AddCommand(CompareCmd)
}

var CompareCmd = &cobra.Command{
	Use:   CompareCmdName + " <id> [id...]",
	Short: CompareCmdShort,
	Long:  CompareCmdLong,
	Args:  cobra.RangeArgs(1, compare.MaxVehicles),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.log.Sync() }()

		sel, err := compare.NewSelection(args...)
		if err != nil {
			return err
		}
		cars, err := a.search.CarsByID(cmd.Context(), sel.IDs())
		if err != nil {
			return err
		}
		specs, err := compare.Compare(cars)
		if err != nil {
			return err
		}
		printComparison(cmd.OutOrStdout(), cars, specs)
		return nil
	},
}

const compareColumn = 22

func printComparison(w io.Writer, cars []dal.Car, specs []compare.Spec) {
	bold := color.New(color.Bold)
	best := color.New(color.FgGreen, color.Bold)

	bold.Fprintf(w, "%-14s", "")
	for _, c := range cars {
		bold.Fprintf(w, "%-*s", compareColumn, truncate(c.Title(), compareColumn-1))
	}
	fmt.Fprintln(w)

	for _, spec := range specs {
		fmt.Fprintf(w, "%-14s", spec.Name)
		for i, v := range spec.Values {
			cell := v.String()
			if spec.Winner.Is(i) {
				cell += " *"
				best.Fprintf(w, "%-*s", compareColumn, cell)
				continue
			}
			fmt.Fprintf(w, "%-*s", compareColumn, cell)
		}
		fmt.Fprintln(w)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
