package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/musher-dev/dcpps/internal/config"
	clierrors "github.com/musher-dev/dcpps/internal/errors"
	"github.com/musher-dev/dcpps/internal/observability"
	"github.com/musher-dev/dcpps/internal/output"
	"github.com/musher-dev/dcpps/internal/status"
	"github.com/musher-dev/dcpps/internal/terminal"
	"github.com/musher-dev/dcpps/internal/watch"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

func newWatchCmd() *cobra.Command {
	var (
		interval float64
		title    bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the service status on screen",
		Long: `Poll docker compose and redraw the screen whenever a service status
changes. Press Ctrl+C to stop. The interval defaults to the watch.interval
setting (1 second).`,
		Example: `  dcpps watch
  dcpps watch --interval 0.5
  dcpps watch -n 5 --title`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			cfg := config.Load()

			seconds := cfg.Interval()
			if cmd.Flags().Changed("interval") {
				seconds = interval
			}

			every, err := watch.ParseInterval(seconds)
			if err != nil {
				return clierrors.InvalidInterval(strconv.FormatFloat(seconds, 'g', -1, 64))
			}

			project, err := resolveProject(cmd, cfg)
			if err != nil {
				return err
			}

			opts := watch.Options{Interval: every}
			if title {
				opts.Header = titleHeader(every, project.Path, out.Terminal().ColorEnabled())
			}

			w, err := watch.New(status.NewFetcher(newProvider(project.Path)), terminal.NewScreen(out.Out), opts)
			if err != nil {
				return clierrors.InvalidInterval(every.String())
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			services := project.Services()

			observability.FromContext(ctx).Info("watch started",
				slog.String("compose.file", project.Path),
				slog.Int("services", len(services)),
				slog.Duration("interval", every),
			)

			if err := w.Run(ctx, services); err != nil {
				return clierrors.ProviderUnavailable(err)
			}

			return nil
		},
	}

	cmd.Flags().Float64VarP(&interval, "interval", "n", config.DefaultInterval, "Seconds between status checks")
	cmd.Flags().BoolVarP(&title, "title", "t", false, "Show a header line above the status")

	return cmd
}

// titleHeader returns the header drawn above each redraw, in the manner of
// watch(1).
func titleHeader(every time.Duration, file string, styled bool) func(time.Time) string {
	return func(now time.Time) string {
		text := fmt.Sprintf("Every %s: docker compose ps (%s)    %s", every, filepath.Base(file), now.Format("15:04:05"))
		if !styled {
			return text
		}

		return titleStyle.Render(text)
	}
}
