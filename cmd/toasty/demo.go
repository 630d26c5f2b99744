package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Compose and show toasts in the terminal",
	Long: `Launch the interactive terminal host.

Type a message and press enter to queue it. The composer settings apply to
the next toast you send.

Key bindings:
  enter            Send message
  tab/shift+tab    Next/previous state
  ctrl+o           Toggle dismissal mode
  ctrl+p           Toggle top/bottom
  ctrl+r           Cycle duration
  ctrl+t           Tap the toast
  ctrl+u           Swipe the toast up
  ctrl+x           Press the cancel control
  ctrl+d           Dismiss silently
  ctrl+l           Clear the queue
  f1               Show help
  esc              Quit`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.Options{
		Config:  cfg,
		Styles:  styles,
		Logger:  logger,
		Compose: true,
	})
}
