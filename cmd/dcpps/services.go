package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/musher-dev/dcpps/internal/config"
	"github.com/musher-dev/dcpps/internal/output"
)

// ServicesInfo is the JSON form of 'dcpps services'.
type ServicesInfo struct {
	File     string   `json:"file"`
	Services []string `json:"services"`
	Hidden   []string `json:"hidden"`
}

func newServicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the services dcpps reports on",
		Long: `List the services declared in the compose file, in report order.
Services labelled hide-from-dcpps are listed separately.`,
		Example: `  dcpps services
  dcpps services --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			project, err := resolveProject(cmd, config.Load())
			if err != nil {
				return err
			}

			info := ServicesInfo{
				File:     project.Path,
				Services: project.Services(),
				Hidden:   project.Hidden(),
			}

			if info.Hidden == nil {
				info.Hidden = []string{}
			}

			if out.JSON {
				return out.PrintJSON(info)
			}

			if len(info.Services) == 0 {
				out.Muted("No visible services in %s", info.File)
			}

			for _, name := range info.Services {
				out.Println(name)
			}

			if len(info.Hidden) > 0 {
				out.Muted("hidden: %s", strings.Join(info.Hidden, ", "))
			}

			return nil
		},
	}
}
