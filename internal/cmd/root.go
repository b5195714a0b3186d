package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/colegioapp/colegio/internal/api"
	"github.com/colegioapp/colegio/internal/config"
	"github.com/colegioapp/colegio/internal/guard"
	"github.com/colegioapp/colegio/internal/log"
	"github.com/colegioapp/colegio/internal/session"
)

// roleParent is the only role the backend issues to dashboard accounts.
const roleParent = "padre"

var rootCmd = &cobra.Command{
	Use:   "colegio",
	Short: "Parent dashboard for the school information system",
	Long: `colegio is a terminal client for the school information system.
It lets a parent log in, monitor each child's academic progress
(grades, attendance, participation, predictions) and browse the
dashboard the school publishes for their account.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// app bundles the wired client state. Everything is built once per process:
// configuration is read a single time and the session store is the only
// holder of auth state, handed explicitly to whatever needs it.
type app struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
	logger *log.Logger
}

var (
	application *app
	appOnce     sync.Once
	appErr      error
)

// getApp wires configuration, logger, session store and API client, and runs
// the one-time session restore.
func getApp() (*app, error) {
	appOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			appErr = err
			return
		}

		logger := log.New(log.Config{
			Level: log.ParseLevel(cfg.LogLevel),
			JSON:  cfg.LogFormat == "json",
		})
		log.SetDefaultLogger(logger)

		store := session.NewStore(config.CredentialsPath())
		client := api.NewClient(cfg.APIURL,
			api.WithTokenSource(store),
			api.WithLogger(logger),
			api.WithAuthFailureHook(func() {
				// 401 teardown: session and persisted credentials go
				// together, before the AuthError reaches the caller.
				if err := store.Logout(); err != nil {
					logger.Warn("failed to clear credentials", "error", err.Error())
				}
			}),
		)

		store.Restore()

		application = &app{cfg: cfg, store: store, client: client, logger: logger}
	})
	return application, appErr
}

// requireRole gates a protected command on the route guard's decision. On an
// unauthorized (wrong-role) session the caller-side contract applies: one
// logout, then route the user to login.
func (a *app) requireRole(roles ...string) (*session.Session, error) {
	decision := guard.Evaluate(a.store.Restored(), a.store.Current(), roles)
	switch decision.State {
	case guard.StateAuthorized:
		return a.store.Current(), nil

	case guard.StateUnauthorized:
		a.logger.Warn("session role not allowed, logging out", "reason", decision.Reason)
		if err := a.store.Logout(); err != nil {
			a.logger.Warn("failed to clear credentials", "error", err.Error())
		}
		return nil, &api.AuthError{
			Message: fmt.Sprintf("%s: you have been logged out, run 'colegio auth login'", decision.Reason),
		}

	default:
		return nil, &api.AuthError{Message: "not logged in, run 'colegio auth login'"}
	}
}
