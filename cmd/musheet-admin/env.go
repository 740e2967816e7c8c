package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/musheet/admin/internal/client"
	"github.com/musheet/admin/internal/config"
	"github.com/musheet/admin/internal/logging"
	"github.com/musheet/admin/internal/rpc"
	"github.com/musheet/admin/internal/session"
)

// env is everything a command needs to talk to the server.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	store  *session.Store
	client *rpc.Client
	api    *client.API
	close  func()
}

// sink selects where an env logs.
type sink int

const (
	sinkStderr sink = iota
	sinkFile
)

func loadConfig(cmd *cobra.Command, gf *globalFlags) (config.Config, error) {
	return config.Load(gf.config, cmd.Flags())
}

// newEnv loads the configuration, opens the persisted session and builds an
// API client. The caller must call env.close.
func newEnv(cmd *cobra.Command, gf *globalFlags, out sink, opts ...rpc.Option) (*env, error) {
	cfg, err := loadConfig(cmd, gf)
	if err != nil {
		return nil, err
	}

	var logger *zap.Logger
	closeFn := func() {}
	switch out {
	case sinkFile:
		logger, closeFn, err = logging.File(cfg.StateDir, cfg.Log.Level)
	default:
		logger, err = logging.Console(cmd.ErrOrStderr(), cfg.Log.Level)
	}
	if err != nil {
		return nil, err
	}

	store, err := session.Open(session.NewFile(cfg.StateDir), logger.Named("session"))
	if err != nil {
		closeFn()
		return nil, err
	}

	opts = append([]rpc.Option{
		rpc.WithTimeout(cfg.Server.Timeout),
		rpc.WithLogger(logger.Named("rpc")),
	}, opts...)
	rc := rpc.NewClient(cfg.Server.BaseURL, store, opts...)

	return &env{
		cfg:    cfg,
		logger: logger,
		store:  store,
		client: rc,
		api:    client.New(rc, store),
		close: func() {
			_ = logger.Sync()
			closeFn()
		},
	}, nil
}

// avatarDir is where resolved avatars are cached.
func (e *env) avatarDir() string {
	return filepath.Join(e.cfg.StateDir, "avatars")
}

// requireSession fails unless an administrator is signed in.
func (e *env) requireSession() error {
	if !e.store.Current().Authenticated() {
		return errNotLoggedIn
	}
	return nil
}
