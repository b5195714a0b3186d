package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/colegioapp/colegio/internal/api"
	"github.com/colegioapp/colegio/internal/cache"
	"github.com/colegioapp/colegio/internal/config"
	"github.com/colegioapp/colegio/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive parent dashboard",
	Long: `Open the interactive dashboard with one card per child: averages,
attendance, alerts and upcoming events, with per-child drill-down.

The last successful fetch is kept in a local snapshot; --cached shows
it without contacting the backend.

Examples:
  colegio dashboard
  colegio dashboard --cached`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		sess, err := a.requireRole(roleParent)
		if err != nil {
			return err
		}

		useCached, _ := cmd.Flags().GetBool("cached")

		snapshots, err := cache.Open(config.CachePath())
		if err != nil {
			// The dashboard works without the cache; it only loses --cached.
			a.logger.Warn("snapshot cache unavailable", "error", err.Error())
			snapshots = nil
		} else {
			defer snapshots.Close()
		}

		var model tea.Model
		if useCached {
			if snapshots == nil {
				return fmt.Errorf("snapshot cache unavailable")
			}
			snap, err := snapshots.Load(cmd.Context(), sess.User.ID)
			if errors.Is(err, cache.ErrNoSnapshot) {
				return fmt.Errorf("no cached dashboard yet, run 'colegio dashboard' online first")
			}
			if err != nil {
				return err
			}
			var dashboard api.ParentDashboard
			if err := json.Unmarshal(snap.Payload, &dashboard); err != nil {
				return fmt.Errorf("cached snapshot is corrupt: %w", err)
			}
			model = tui.NewOffline(sess.DisplayName(), &dashboard, snap.FetchedAt)
		} else {
			raw, err := a.client.ParentDashboardRaw(cmd.Context())
			if err != nil {
				return err
			}
			if snapshots != nil {
				if err := snapshots.Save(cmd.Context(), sess.User.ID, raw); err != nil {
					a.logger.Warn("failed to save dashboard snapshot", "error", err.Error())
				}
			}
			var dashboard api.ParentDashboard
			if err := json.Unmarshal(raw, &dashboard); err != nil {
				return fmt.Errorf("decode dashboard: %w", err)
			}
			model = tui.New(a.client, sess.DisplayName(), &dashboard)
		}

		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		_, err = program.Run()
		return err
	},
}

func init() {
	dashboardCmd.Flags().Bool("cached", false, "Show the last cached snapshot without contacting the backend")
	rootCmd.AddCommand(dashboardCmd)
}
