package pipeline

import (
	"context"

	"github.com/tolga/fieldroute/internal/matcher"
	"github.com/tolga/fieldroute/internal/router"
	"github.com/tolga/fieldroute/internal/scheduler"
)

// ScheduleAll runs S2 once per branch (spec.md §5: "S2: independent per
// branch").
func ScheduleAll(ctx context.Context, pool Pool, inputs []scheduler.Input) ([]scheduler.Output, error) {
	return Run(ctx, pool, inputs, func(_ context.Context, in scheduler.Input) (scheduler.Output, error) {
		return scheduler.Schedule(in), nil
	})
}

// RouteAll runs S3 once per (branch, supervisor, day) tuple (spec.md §5).
// cfgFor selects the router.Config for each input: FTE fractions in
// router.Config.ScaleTiers depend on the owning branch's own Tmax (spec.md
// §4.3 Step 6), so the config isn't uniform across branches.
func RouteAll(ctx context.Context, pool Pool, inputs []router.Input, cfgFor func(router.Input) router.Config) ([]router.Output, error) {
	return Run(ctx, pool, inputs, func(ctx context.Context, in router.Input) (router.Output, error) {
		return router.Route(ctx, in, cfgFor(in)), nil
	})
}

// MatchAll runs S4 once per (branch, supervisor) tuple (spec.md §5).
func MatchAll(ctx context.Context, pool Pool, inputs []matcher.Input, cfg matcher.Config) ([]matcher.Output, error) {
	return Run(ctx, pool, inputs, func(_ context.Context, in matcher.Input) (matcher.Output, error) {
		return matcher.Match(in, cfg), nil
	})
}
