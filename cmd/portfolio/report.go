package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	reportDate string
	reportJSON bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the recorded interactions of one day",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	day, err := parseDay(reportDate, time.Now())
	if err != nil {
		return err
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()
	if err := a.openRecorder(); err != nil {
		return err
	}

	stats, err := a.dailyStats(day)
	if err != nil {
		return err
	}
	if reportJSON {
		out, err := stats.ToJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), stats.GenerateReportSummary())
	return nil
}

// parseDay reads a YYYY-MM-DD date in UTC; empty means the UTC day of now.
func parseDay(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now.UTC(), nil
	}
	day, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: want YYYY-MM-DD", s)
	}
	return day, nil
}
