package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/dropsim/internal/config"
	"github.com/san-kum/dropsim/internal/metrics"
	"github.com/san-kum/dropsim/internal/physics"
	"github.com/san-kum/dropsim/internal/scene"
	"github.com/san-kum/dropsim/internal/sensor"
	"github.com/san-kum/dropsim/internal/sim"
	"github.com/san-kum/dropsim/internal/storage"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if ensemble > 1 {
		return runEnsemble(ctx, cfg)
	}

	bodies, err := scene.Build(cfg.Scene, cfg.Seed)
	if err != nil {
		return err
	}

	s := sim.New(physics.NewGravityFieldAt(cfg.GravityVec()))
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}

	sens, err := sensor.FromConfig(cfg.Sensor)
	if err != nil {
		return err
	}
	if sens != nil {
		defer sens.Close()
		s.SetFeed(sens, sens.Interval)
	}

	fmt.Printf("running %s: %d bodies, dt=%.4f, %.1fs\n", name, len(bodies), cfg.Dt, cfg.Duration)
	start := time.Now()

	result, err := s.Run(ctx, bodies, cfg.SimConfig())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		Preset:   name,
		Seed:     cfg.Seed,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Gravity:  cfg.Gravity,
		Sensor:   cfg.Sensor.Kind,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("contacts: %d\n", result.Contacts)
	if result.SettledAt >= 0 {
		fmt.Printf("settled at: %.3fs\n", result.SettledAt)
	} else {
		fmt.Println("settled at: never")
	}
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	return nil
}

func runEnsemble(ctx context.Context, cfg *config.Config) error {
	if cfg.Sensor.Kind != sensor.KindNone && cfg.Sensor.Kind != "" {
		fmt.Printf("note: sensor %q is not applied to ensemble runs\n", cfg.Sensor.Kind)
	}

	fmt.Printf("running ensemble of %d from seed %d\n", ensemble, cfg.Seed)
	start := time.Now()

	e := sim.NewEnsemble(cfg.Scene, physics.NewGravityFieldAt(cfg.GravityVec()), ensemble, cfg.Seed).
		WithMetrics(metrics.Default)
	results, err := e.Run(ctx, cfg.SimConfig())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tCONTACTS\tSETTLED\tENERGY\tCONTAINED")

	var settled, sumSettle float64
	for i, r := range results {
		settle := "never"
		if r.SettledAt >= 0 {
			settle = fmt.Sprintf("%.3fs", r.SettledAt)
			settled++
			sumSettle += r.SettledAt
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%.3f\t%.2f\n",
			cfg.Seed+int64(i),
			r.Contacts,
			settle,
			r.Metrics["energy"],
			r.Metrics["containment"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nsettled: %.0f/%d", settled, len(results))
	if settled > 0 {
		fmt.Printf(" (mean %.3fs)", sumSettle/settled)
	}
	fmt.Println()
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}
