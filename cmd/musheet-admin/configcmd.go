package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/musheet/admin/internal/config"
)

func newConfigCmd(gf *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(gf))
	cmd.AddCommand(newConfigShowCmd(gf))
	return cmd
}

func newConfigInitCmd(gf *globalFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(gf.config, force)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, gf)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, err = fmt.Fprintf(out,
				"server.base_url: %s\nserver.timeout: %s\nlist.page_size: %d\ntoast.duration: %s\nstate_dir: %s\nlog.level: %s\n",
				cfg.Server.BaseURL, cfg.Server.Timeout, cfg.List.PageSize, cfg.Toast.Duration, cfg.StateDir, cfg.Log.Level)
			return err
		},
	}
}
