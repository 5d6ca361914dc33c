package router

import (
	"context"

	"github.com/tolga/fieldroute/internal/model"
)

// Route runs the full S3 pipeline for one (branch, supervisor, weekday)
// subproblem: grouping, VRPTW construction, modality selection and
// scale-tier assignment.
func Route(ctx context.Context, in Input, cfg Config) Output {
	report := model.Report{Stage: "router"}

	if cfg.Fallback != nil {
		ResolveMissingPairs(ctx, &in, cfg.Fallback, &report)
	}

	groups := BuildGroups(in, &report)
	routes := Solve(in, groups, cfg, &report)

	if len(routes) == 0 && len(groups) > 0 {
		report.Add(model.Diagnostic{
			Code:       model.CodeSolverNoIncumbent,
			Message:    "no feasible route could be constructed for this day",
			Branch:     in.Branch.ID,
			Weekday:    &in.Weekday,
			Supervisor: in.Supervisor,
		})
	}

	for i := range routes {
		SelectModality(&routes[i], cfg, in.Weekday, in.Branch)
		AssignTier(&routes[i], cfg, in.Branch, in.Weekday)
	}

	return Output{Routes: routes, Report: report}
}
