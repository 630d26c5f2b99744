package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/toasty/internal/adapter/input"
	"github.com/jmylchreest/toasty/internal/adapter/output"
	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/tui"
)

var showOpts struct {
	// Request options
	state      string
	mode       string
	location   string
	presenting string
	dismissing string
	duration   string

	// Output options
	format   string
	template string
	showTime bool
}

var showCmd = &cobra.Command{
	Use:   "show [message...]",
	Short: "Show toasts in the terminal and report how they were dismissed",
	Long: `Show one toast per argument list, or one per line of standard input,
then print a record for every toast the user dismissed.

Input lines are plain messages, or JSON objects with the fields message,
state, mode, location, presenting, dismissing, duration and id. Empty
fields take the configured defaults.

Examples:
  # Show a single toast
  toasty show "Build finished"

  # Ask for confirmation and check the reason
  toasty show --mode interactive "Deploy?" | grep -q interactive

  # Show several toasts from a script
  printf 'one\ntwo\n' | toasty show --duration short

  # JSON input and output
  echo '{"message":"Saved","state":"success"}' | toasty show -f json`,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showOpts.state, "state", "",
		"Visual state (success, error, warning, info, cancel or a style preset)")
	showCmd.Flags().StringVar(&showOpts.mode, "mode", "",
		"Dismissal mode (all, interactive)")
	showCmd.Flags().StringVar(&showOpts.location, "location", "",
		"Screen edge (top, bottom)")
	showCmd.Flags().StringVar(&showOpts.presenting, "presenting", "",
		"Direction the toast enters from (left, right, vertical)")
	showCmd.Flags().StringVar(&showOpts.dismissing, "dismissing", "",
		"Direction the toast leaves to (left, right, vertical)")
	showCmd.Flags().StringVarP(&showOpts.duration, "duration", "d", "",
		"Duration (short, average, long or like 5s)")

	showCmd.Flags().StringVarP(&showOpts.format, "format", "f", string(output.FormatPlain),
		"Output format (plain, json, ids)")
	showCmd.Flags().StringVar(&showOpts.template, "template", "",
		"Custom Go template for plain output")
	showCmd.Flags().BoolVar(&showOpts.showTime, "time", false,
		"Show when each toast was dismissed")
}

func runShow(cmd *cobra.Command, args []string) error {
	formatter, err := output.NewFormatter(output.FormatType(showOpts.format), output.FormatterOptions{
		Template: showOpts.template,
		ShowTime: showOpts.showTime,
	})
	if err != nil {
		return err
	}

	defaults, err := overrideDefaults(cfg, cmd).RequestDefaults(styles)
	if err != nil {
		return fmt.Errorf("invalid request options: %w", err)
	}
	builder := input.NewBuilder(defaults, styles)

	piped := !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd())
	source := "args"
	if len(args) == 0 {
		if !piped {
			return fmt.Errorf("no message given: pass it as arguments or on standard input")
		}
		source = "stdin"
	}

	adapter, err := input.NewAdapter(source, builder, args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	requests, err := adapter.Import(ctx)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		logger.Debug("nothing to show", "source", adapter.Name())
		return nil
	}

	recorder := output.NewRecorder(nil, nil, logger)
	for _, r := range requests {
		recorder.Track(r)
	}

	var progOpts []tea.ProgramOption
	if piped {
		// Standard input is the request stream, so read keys from the terminal.
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	// The alternate screen keeps toasts off standard output.
	progOpts = append(progOpts, tea.WithOutput(os.Stderr))

	if err := tui.Run(tui.Options{
		Config:       cfg,
		Styles:       styles,
		Logger:       logger,
		Requests:     requests,
		ExitWhenIdle: true,
	}, progOpts...); err != nil {
		return err
	}

	logger.Debug("toasts dismissed", "shown", len(requests), "reported", len(recorder.Records()))
	return formatter.Format(cmd.OutOrStdout(), recorder.Records())
}

// overrideDefaults returns a copy of c whose [defaults] section carries the
// request flags that were set.
func overrideDefaults(c *config.Config, cmd *cobra.Command) *config.Config {
	out := *c
	flags := cmd.Flags()
	set := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	set("state", &out.Defaults.State, showOpts.state)
	set("mode", &out.Defaults.Mode, showOpts.mode)
	set("location", &out.Defaults.Location, showOpts.location)
	set("presenting", &out.Defaults.Presenting, showOpts.presenting)
	set("dismissing", &out.Defaults.Dismissing, showOpts.dismissing)
	set("duration", &out.Defaults.Duration, showOpts.duration)
	return &out
}
