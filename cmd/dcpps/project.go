package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/musher-dev/dcpps/internal/compose"
	"github.com/musher-dev/dcpps/internal/config"
	clierrors "github.com/musher-dev/dcpps/internal/errors"
	"github.com/musher-dev/dcpps/internal/status"
)

// newProvider returns the status provider for a compose file. Replaced in tests.
var newProvider = func(file string) status.Provider {
	return compose.NewCLI(file)
}

// composeFileFlag returns the --file value, or "" when the flag is unset or
// the command runs without the root command.
func composeFileFlag(cmd *cobra.Command) string {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return ""
	}

	return strings.TrimSpace(file)
}

// resolveProject loads the compose project from --file, then the
// compose.file setting, then the working directory.
func resolveProject(cmd *cobra.Command, cfg *config.Config) (*compose.Project, error) {
	file := composeFileFlag(cmd)
	if file == "" {
		file = strings.TrimSpace(cfg.ComposeFile())
	}

	if file == "" {
		dir, err := os.Getwd()
		if err != nil {
			return nil, clierrors.Wrap(clierrors.ExitGeneral, "Could not determine the working directory", err)
		}

		found, err := compose.FindFile(dir)
		if err != nil {
			return nil, clierrors.NoComposeFile(dir)
		}

		file = found
	}

	project, err := compose.LoadProject(file)
	if err != nil {
		if errors.Is(err, compose.ErrNoServices) {
			return nil, clierrors.NoServices(file)
		}

		return nil, clierrors.ComposeFileInvalid(file, err)
	}

	return project, nil
}
