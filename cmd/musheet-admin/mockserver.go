package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/musheet/admin/internal/logging"
	"github.com/musheet/admin/internal/mockserver"
)

func newMockServerCmd(gf *globalFlags) *cobra.Command {
	var (
		addr string
		seed bool
		opts = mockserver.DefaultSeed
	)
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run an in-memory MuSheet backend for demos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, gf)
			if err != nil {
				return err
			}
			logger, err := logging.Console(cmd.ErrOrStderr(), cfg.Log.Level)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			srv := mockserver.New(logger.Named("mock"))
			if seed {
				if err := srv.Seed(opts); err != nil {
					return err
				}
				logger.Info("seeded demo data",
					zap.String("admin", opts.AdminUsername),
					zap.Int("users", opts.Users),
					zap.Int("teams", opts.Teams))
			}
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	f.BoolVar(&seed, "seed", false, "create an admin account and demo users and teams")
	f.StringVar(&opts.AdminUsername, "admin-user", opts.AdminUsername, "username of the seeded admin")
	f.StringVar(&opts.AdminPassword, "admin-password", opts.AdminPassword, "password of the seeded admin")
	f.IntVar(&opts.Users, "users", opts.Users, "number of seeded users")
	f.IntVar(&opts.Teams, "teams", opts.Teams, "number of seeded teams")
	return cmd
}
