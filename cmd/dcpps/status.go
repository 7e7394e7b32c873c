package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/musher-dev/dcpps/internal/config"
	clierrors "github.com/musher-dev/dcpps/internal/errors"
	"github.com/musher-dev/dcpps/internal/observability"
	"github.com/musher-dev/dcpps/internal/output"
	"github.com/musher-dev/dcpps/internal/status"
	"github.com/musher-dev/dcpps/internal/watch"
)

func newMainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "main",
		Short: "Print the status of every service once",
		Long: `Query docker compose once and print one colored line per declared service.
Services without a container are shown as "not created". This is what
running dcpps without a subcommand does.`,
		Example: `  dcpps main
  dcpps main -f deploy/docker-compose.yml`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMain(cmd)
		},
	}
}

func runMain(cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := output.FromContext(ctx)

	project, err := resolveProject(cmd, config.Load())
	if err != nil {
		return err
	}

	services := project.Services()

	observability.FromContext(ctx).Debug("rendering status once",
		slog.String("compose.file", project.Path),
		slog.Int("services", len(services)),
	)

	spin := out.Spinner("Querying docker compose")
	spin.Start()

	report, err := watch.RenderOnce(ctx, status.NewFetcher(newProvider(project.Path)), services)

	spin.Stop()

	if err != nil {
		return clierrors.ProviderUnavailable(err)
	}

	out.Report(report)

	return nil
}
