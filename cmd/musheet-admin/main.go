package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(submain())
}

func submain() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// globalFlags are shared by every command.
type globalFlags struct {
	config string
}

func newRootCmd() *cobra.Command {
	var gf globalFlags
	root := &cobra.Command{
		Use:           "musheet-admin",
		Short:         "Administration console for a MuSheet server",
		Long:          "Manage the users and teams of a MuSheet server from the terminal.\nWithout a subcommand the interactive console is started.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, &gf)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&gf.config, "config", "c", "", "path to config file")
	pf.String("url", "", "base URL of the MuSheet server")
	pf.String("state-dir", "", "directory for the session, avatars and logs")

	root.AddCommand(newTUICmd(&gf))
	root.AddCommand(newLoginCmd(&gf))
	root.AddCommand(newSignupCmd(&gf))
	root.AddCommand(newLogoutCmd(&gf))
	root.AddCommand(newWhoamiCmd(&gf))
	root.AddCommand(newUsersCmd(&gf))
	root.AddCommand(newTeamsCmd(&gf))
	root.AddCommand(newStatsCmd(&gf))
	root.AddCommand(newMockServerCmd(&gf))
	root.AddCommand(newConfigCmd(&gf))
	root.AddCommand(newVersionCmd())

	return root
}
