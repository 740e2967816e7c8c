package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/musheet/admin/internal/app"
	"github.com/musheet/admin/internal/avatar"
	"github.com/musheet/admin/internal/rpc"
	"github.com/musheet/admin/internal/views/debug"
)

// feedSize bounds the calls buffered for the debug overlay.
const feedSize = 64

func newTUICmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive console (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, gf)
		},
	}
}

func runTUI(cmd *cobra.Command, gf *globalFlags) error {
	feed := debug.NewFeed(feedSize)
	e, err := newEnv(cmd, gf, sinkFile, rpc.WithObserver(feed.Observe))
	if err != nil {
		return err
	}
	defer e.close()

	e.logger.Info("console starting", zap.String("server", e.client.BaseURL()))
	m := app.New(app.Deps{
		API:           e.api,
		Session:       e.store,
		Avatars:       avatar.NewResolver(e.avatarDir(), e.logger.Named("avatar")),
		Feed:          feed,
		ServerURL:     e.client.BaseURL(),
		PageSize:      e.cfg.List.PageSize,
		ToastDuration: e.cfg.Toast.Duration,
		Logger:        e.logger,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return err
	}
	e.logger.Info("console stopped")
	return nil
}
