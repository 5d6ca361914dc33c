// Package report renders the end-of-run stage diagnostic table (spec.md §6
// "Exit behavior") to the console, the way sascodiego-CC-Monitor's
// cmd/claude-monitor/reporting.go renders its terminal summaries with
// tablewriter and fatih/color.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/tolga/fieldroute/internal/model"
)

// StageResult pairs a pipeline stage's name with the report it produced.
type StageResult struct {
	Stage  string
	Report model.Report
}

// PrintStageSummary renders one row per stage (status badge + counts) plus
// one row per diagnostic underneath, matching the batch command's "Exit
// behavior" contract: ok if every stage is ok, warn if any stage warned
// without erroring, error otherwise.
func PrintStageSummary(w io.Writer, results []StageResult) model.Status {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Stage", "Status", "Warnings", "Errors"})
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.FgCyanColor, tablewriter.Bold},
		tablewriter.Colors{tablewriter.FgCyanColor, tablewriter.Bold},
		tablewriter.Colors{tablewriter.FgCyanColor, tablewriter.Bold},
		tablewriter.Colors{tablewriter.FgCyanColor, tablewriter.Bold},
	)

	overall := model.StatusOK
	for _, res := range results {
		status := res.Report.Status()
		if status == model.StatusError {
			overall = model.StatusError
		} else if status == model.StatusWarn && overall != model.StatusError {
			overall = model.StatusWarn
		}

		warnings, errs := 0, 0
		for _, d := range res.Report.Diagnostics {
			if d.Status() == model.StatusError {
				errs++
			} else {
				warnings++
			}
		}
		table.Append([]string{res.Stage, badge(status), fmt.Sprint(warnings), fmt.Sprint(errs)})
	}
	table.Render()

	for _, res := range results {
		for _, d := range res.Report.Diagnostics {
			fmt.Fprintf(w, "  %s %s\n", badge(d.Status()), d.Error())
		}
	}

	return overall
}

func badge(status model.Status) string {
	switch status {
	case model.StatusOK:
		return color.GreenString("OK")
	case model.StatusWarn:
		return color.YellowString("WARN")
	default:
		return color.RedString("ERROR")
	}
}
