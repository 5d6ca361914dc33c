// Package main is the entry point for the route planner batch command.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"github.com/tolga/fieldroute/internal/adapters/xlsx"
	"github.com/tolga/fieldroute/internal/config"
	"github.com/tolga/fieldroute/internal/model"
	"github.com/tolga/fieldroute/internal/orchestrate"
	"github.com/tolga/fieldroute/internal/report"
)

func main() {
	var inputPath, outputPath string

	root := &cobra.Command{
		Use:   "planner",
		Short: "Field-service route planner",
		Long:  "Derives visit frequencies, weekly schedules, daily routes and agent assignments from a workbook of partners, assets and consumption history.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd.Context(), inputPath, outputPath)
		},
	}
	root.Flags().StringVar(&inputPath, "input", "", "path to the input workbook (required)")
	root.Flags().StringVar(&outputPath, "output", "plan.xlsx", "path to write the output workbook")
	_ = root.MarkFlagRequired("input")

	var rerouteInputPath, routeBookPath, rerouteOutputPath string
	reroute := &cobra.Command{
		Use:   "reroute",
		Short: "Recompute a previously planned route book without re-solving",
		Long:  "Reads back a RouteBook sheet from a prior run, regroups it by route and recomputes distances, travel times and scale tiers against current partner/asset data, without rerunning the solver (for stop orders edited by hand after the initial plan).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReroute(cmd.Context(), rerouteInputPath, routeBookPath, rerouteOutputPath)
		},
	}
	reroute.Flags().StringVar(&rerouteInputPath, "input", "", "path to the master-data workbook (partners, assets, travel matrix) (required)")
	reroute.Flags().StringVar(&routeBookPath, "routebook", "", "path to the previously written output workbook to read the RouteBook sheet from (required)")
	reroute.Flags().StringVar(&rerouteOutputPath, "output", "reroute.xlsx", "path to write the recomputed RouteBook/RouteSummary workbook")
	_ = reroute.MarkFlagRequired("input")
	_ = reroute.MarkFlagRequired("routebook")
	root.AddCommand(reroute)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runPlan(ctx context.Context, inputPath, outputPath string) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	trafficFactor := make(map[model.BranchID]float64, len(cfg.Planning.Branches))
	for _, b := range cfg.Planning.Branches {
		trafficFactor[model.BranchID(b.Name)] = b.TrafficFactor
	}

	reader := xlsx.Reader{Path: inputPath, TrafficFactor: trafficFactor}
	writer := xlsx.Writer{Path: outputPath}

	log.Info().Str("input", inputPath).Msg("reading input workbook")
	stages, err := orchestrate.Run(ctx, cfg, reader, writer)

	status := report.PrintStageSummary(os.Stdout, stages)
	if err != nil {
		return err
	}
	log.Info().Str("output", outputPath).Str("status", string(status)).Msg("run complete")
	if status == model.StatusError {
		return fmt.Errorf("run completed with errors")
	}
	return nil
}

func runReroute(ctx context.Context, inputPath, routeBookPath, outputPath string) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	trafficFactor := make(map[model.BranchID]float64, len(cfg.Planning.Branches))
	for _, b := range cfg.Planning.Branches {
		trafficFactor[model.BranchID(b.Name)] = b.TrafficFactor
	}

	reader := xlsx.Reader{Path: inputPath, TrafficFactor: trafficFactor}
	log.Info().Str("input", inputPath).Msg("reading master data workbook")
	tables, err := reader.ReadTables(ctx)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	routeBookReader := xlsx.Reader{Path: routeBookPath}
	log.Info().Str("routebook", routeBookPath).Msg("reading previous route book")
	rows, err := routeBookReader.ReadRouteBook(ctx)
	if err != nil {
		return fmt.Errorf("reading route book: %w", err)
	}

	writer := xlsx.Writer{Path: outputPath}
	stages, err := orchestrate.Reroute(ctx, cfg, tables, rows, writer)

	status := report.PrintStageSummary(os.Stdout, stages)
	if err != nil {
		return err
	}
	log.Info().Str("output", outputPath).Str("status", string(status)).Msg("reroute complete")
	if status == model.StatusError {
		return fmt.Errorf("reroute completed with errors")
	}
	return nil
}
