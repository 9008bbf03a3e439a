package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dropsim/internal/export"
	"github.com/san-kum/dropsim/internal/storage"
)

const (
	maxPlots  = 6
	svgWidth  = 800
	svgHeight = 400
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tBODIES\tDURATION\tDT\tSENSOR\tSETTLED")

	for _, run := range runs {
		settled := "never"
		if run.SettledAt >= 0 {
			settled = fmt.Sprintf("%.2fs", run.SettledAt)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumBodies,
			run.Duration,
			run.Dt,
			run.Sensor,
			settled,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(frames))

	n := meta.NumBodies
	if n > maxPlots {
		n = maxPlots
	}

	for i := 0; i < n; i++ {
		graph := asciigraph.Plot(storage.Heights(frames, i),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("body %d height (m)", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if meta.NumBodies > maxPlots {
		fmt.Printf("(%d more bodies not shown)\n", meta.NumBodies-maxPlots)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, *meta, frames)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.WriteFramesCSV(os.Stdout, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	render := export.HeightsSVG
	switch svgView {
	case "heights":
	case "side":
		render = export.SideViewSVG
	default:
		return fmt.Errorf("unknown view: %s (available: heights, side)", svgView)
	}

	if svgOut == "" {
		return render(os.Stdout, frames, svgWidth, svgHeight)
	}

	file, err := os.Create(svgOut)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := render(file, frames, svgWidth, svgHeight); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", svgOut)
	return nil
}
