package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/musher-dev/dcpps/internal/config"
	"github.com/musher-dev/dcpps/internal/doctor"
	"github.com/musher-dev/dcpps/internal/output"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose common issues",
		Long: `Run diagnostic checks to find out why dcpps cannot show a status.

Checks performed:
  - Compose file found and services declared
  - Docker CLI available in PATH
  - docker compose plugin version (2.0.0 or newer)`,
		Example: `  dcpps doctor
  dcpps doctor --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			file := composeFileFlag(cmd)
			if file == "" {
				file = config.Load().ComposeFile()
			}

			dir, _ := os.Getwd()

			results := doctor.New(doctor.Options{Dir: dir, File: file}).Run(cmd.Context())

			if out.JSON {
				return out.PrintJSON(results)
			}

			renderDoctorReport(out, results)

			return nil
		},
	}
}

func renderDoctorReport(out *output.Writer, results []doctor.Result) {
	out.Println("dcpps doctor")
	out.Println("============")
	out.Println()

	doctor.RenderResults(results, out.Print, out.Success, out.Warning, out.Failure, out.Muted)

	passed, failed, warnings := doctor.Summary(results)

	out.Println()
	out.Print("%d passed", passed)

	if failed > 0 {
		out.Print(", %d failed", failed)
	}

	if warnings > 0 {
		out.Print(", %d warning(s)", warnings)
	}

	out.Println()
}
