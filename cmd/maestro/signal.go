package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tobiasmd/maestro/internal/signals"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Signal a running orchestration to stop after its current wave",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := signals.NewManager(".maestro")
		if err != nil {
			return err
		}
		defer m.Close()

		if err := m.SendStop(); err != nil {
			return fmt.Errorf("send stop signal: %w", err)
		}
		fmt.Println(color.YellowString("Stop signal sent."))
		return nil
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Hold a running orchestration before its next wave",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := signals.NewManager(".maestro")
		if err != nil {
			return err
		}
		defer m.Close()

		if err := m.SendPause(); err != nil {
			return fmt.Errorf("send pause signal: %w", err)
		}
		fmt.Println(color.YellowString("Pause signal sent. Run 'maestro resume' to continue."))
		return nil
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Lift a pause so the orchestration continues",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := signals.NewManager(".maestro")
		if err != nil {
			return err
		}
		defer m.Close()

		m.ClearPause()
		fmt.Println(color.GreenString("Pause cleared."))
		return nil
	},
}
