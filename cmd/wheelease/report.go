package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wheelease/wheelease/internal/app"
	"github.com/wheelease/wheelease/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [kind]",
	Short: "Run a report and print it as a table",
	Long:  "Run one of the read-side reports. Without arguments, lists the report catalogue.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		defer w.Flush()

		if len(args) == 0 {
			for _, info := range report.Catalogue() {
				fmt.Fprintf(w, "%s\t%s\n", info.Kind, info.FullName)
			}
			return nil
		}

		kind, err := report.ParseKind(args[0])
		if err != nil {
			return err
		}

		var p report.Params
		if p.Date, err = parseDateFlag("date"); err != nil {
			return err
		}
		if p.PeriodStart, err = parseDateFlag("from"); err != nil {
			return err
		}
		if p.PeriodEnd, err = parseDateFlag("to"); err != nil {
			return err
		}

		a, err := app.New(cfg, log)
		if err != nil {
			return err
		}
		res, err := a.Reports.Run(cmd.Context(), kind, p)
		if err != nil {
			return err
		}

		for i, col := range res.Columns {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, col)
		}
		fmt.Fprintln(w)
		for _, row := range res.Rows {
			for i, cell := range row {
				if i > 0 {
					fmt.Fprint(w, "\t")
				}
				fmt.Fprintf(w, "%v", cell)
			}
			fmt.Fprintln(w)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().String("date", "", "report date (YYYY-MM-DD, defaults to today)")
	reportCmd.Flags().String("from", "", "period start (YYYY-MM-DD)")
	reportCmd.Flags().String("to", "", "period end (YYYY-MM-DD)")
	viper.BindPFlags(reportCmd.Flags())
}

func parseDateFlag(name string) (time.Time, error) {
	v := viper.GetString(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be YYYY-MM-DD", name)
	}
	return t, nil
}
