package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"steambot/config"
	"steambot/setting"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the settings form descriptors as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := json.MarshalIndent(setting.Default.FormDescriptors(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read or change plugin settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting by display key or group.field path",
	Example: `  steambot settings get 推送间隔
  steambot settings get push.time`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		path := args[0]
		if entry, exists := store.Schema().FlatMap()[path]; exists {
			path = entry.Path()
		}
		v, exists := store.Get(path)
		if !exists {
			return fmt.Errorf("%w: %s", setting.ErrUnknownSetting, args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", path, v)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting by display key",
	Example: `  steambot settings set 推送间隔 10
  steambot settings set 推送黑名单 123,456`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		entry, err := store.SetByKey(args[0], args[1])
		if err != nil {
			return err
		}
		v, _ := store.Get(entry.Path())
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", entry.Path(), v)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func openStore() (*setting.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	store := setting.NewStore(setting.Default, cfg.SettingsDir)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("could not load settings: %w", err)
	}
	return store, nil
}
