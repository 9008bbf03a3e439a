package main

import (
	"context"
	"errors"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/dropsim/internal/physics"
	"github.com/san-kum/dropsim/internal/sensor"
	"github.com/san-kum/dropsim/internal/viz"
)

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	field := physics.NewGravityFieldAt(cfg.GravityVec())

	m, err := viz.NewModel(viz.Options{
		Title:   name,
		Spec:    cfg.Scene,
		Seed:    cfg.Seed,
		FPS:     cfg.FPS,
		Gravity: field,
		Theme:   theme,
	})
	if err != nil {
		return err
	}

	sens, err := sensor.FromConfig(cfg.Sensor)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if sens != nil {
		defer sens.Close()
		go func() {
			if err := sens.Run(ctx, field); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("sensor: %v", err)
			}
		}()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
