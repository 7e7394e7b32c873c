package main

import (
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/musher-dev/dcpps/internal/config"
	clierrors "github.com/musher-dev/dcpps/internal/errors"
	"github.com/musher-dev/dcpps/internal/output"
	"github.com/musher-dev/dcpps/internal/watch"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View and modify dcpps configuration settings.`,
	}

	cmd.AddCommand(newConfigListCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func knownKeys() []string {
	keys := make([]string, 0, len(config.Keys))
	for key := range config.Keys {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		Long:  `Display every dcpps setting with its current value and a short description.`,
		Example: `  dcpps config list
  dcpps config list --json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			cfg := config.Load()

			keys := knownKeys()

			if out.JSON {
				settings := make(map[string]any, len(keys))
				for _, key := range keys {
					settings[key] = cfg.Get(key)
				}

				return out.PrintJSON(settings)
			}

			for _, key := range keys {
				out.Print("%s = %v\n", key, cfg.Get(key))
				out.Muted("    %s", config.Keys[key])
			}

			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Get a configuration value",
		Long:    `Retrieve and display the current value of a single configuration key.`,
		Example: `  dcpps config get watch.interval`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			key := args[0]

			if _, ok := config.Keys[key]; !ok {
				return clierrors.UnknownConfigKey(key, knownKeys())
			}

			value := config.Load().Get(key)
			if value == nil || value == "" {
				out.Muted("%s is not set", key)
				return nil
			}

			out.Print("%s = %v\n", key, value)

			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  `Set a configuration key to the given value. The value is persisted to the config file.`,
		Example: `  dcpps config set watch.interval 2
  dcpps config set compose.file deploy/docker-compose.yml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			key, raw := args[0], args[1]

			if _, ok := config.Keys[key]; !ok {
				return clierrors.UnknownConfigKey(key, knownKeys())
			}

			var value any = raw

			if key == config.KeyInterval {
				seconds, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return clierrors.InvalidInterval(raw)
				}

				if _, err := watch.ParseInterval(seconds); err != nil {
					return clierrors.InvalidInterval(raw)
				}

				value = seconds
			}

			if err := config.Load().Set(key, value); err != nil {
				return clierrors.ConfigFailed("set config", err)
			}

			out.Success("Set %s = %s", key, raw)

			return nil
		},
	}
}
