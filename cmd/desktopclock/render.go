package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siegfried/desktopclock/internal/layout"
	"github.com/siegfried/desktopclock/internal/overlay"
	"github.com/siegfried/desktopclock/internal/render"
	"github.com/siegfried/desktopclock/internal/theme"
)

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the clock as it would appear now into a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			width, _ := cmd.Flags().GetFloat64("screen-width")
			height, _ := cmd.Flags().GetFloat64("screen-height")

			m, err := manager()
			if err != nil {
				return err
			}

			canvas := render.NewCanvas(layout.Size{Width: width, Height: height})
			engine := overlay.NewEngine(m, canvas, theme.Detect())
			engine.Apply()

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := canvas.WritePNG(f); err != nil {
				f.Close()
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			pos := canvas.Position()
			size := canvas.Size()
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%.0fx%.0f at %.0f,%.0f)\n", output, size.Width, size.Height, pos.X, pos.Y)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "clock.png", "PNG file to write")
	cmd.Flags().Float64("screen-width", render.DefaultScreen.Width, "screen width used for placement")
	cmd.Flags().Float64("screen-height", render.DefaultScreen.Height, "screen height used for placement")
	return cmd
}
