package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/colegioapp/colegio/internal/guard"
	"github.com/colegioapp/colegio/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication credentials",
	Long: `Manage authentication credentials for the school backend.

Credentials are stored in ~/.colegio/credentials.json and restored
automatically on every run. Use COLEGIO_HOME to relocate them.

Examples:
  colegio auth login --username olalla.arellano
  colegio auth status
  colegio auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the school backend",
	Long: `Log in with your parent account. When --username or --password is
missing an interactive prompt collects it.

Examples:
  colegio auth login --username olalla.arellano --password secret
  colegio auth login`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		if username == "" || password == "" {
			username, password, err = tui.LoginForm(username)
			if err != nil {
				return err
			}
		}

		user, err := a.store.Login(cmd.Context(), a.client, username, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s %s!\n", user.FirstName, user.LastName)
		fmt.Fprintln(cmd.OutOrStdout(), "Run 'colegio dashboard' to see your children's progress.")
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		sess := a.store.Current()
		if err := a.store.Logout(); err != nil {
			return err
		}

		if sess == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged out %s.\n", sess.DisplayName())
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long: `Show the stored session. The session is restored from local
credentials without contacting the backend; a stale token is only
detected on the next API call.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		sess := a.store.Current()
		decision := guard.Evaluate(a.store.Restored(), sess, nil)
		if !decision.Allowed() {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			fmt.Fprintln(cmd.OutOrStdout(), "Use 'colegio auth login' to authenticate.")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Logged in")
		fmt.Fprintf(out, "User ID:  %d\n", sess.User.ID)
		fmt.Fprintf(out, "Name:     %s\n", sess.DisplayName())
		fmt.Fprintf(out, "Username: %s\n", sess.User.Username)
		fmt.Fprintf(out, "Role:     %s\n", sess.User.Role)
		return nil
	},
}

var authRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the refresh token for a fresh access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		if _, err := a.requireRole(); err != nil {
			return err
		}
		if err := a.store.Refresh(cmd.Context(), a.client); err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Token refreshed.")
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRefreshCmd)

	authLoginCmd.Flags().String("username", "", "Account username")
	authLoginCmd.Flags().String("password", "", "Account password")

	rootCmd.AddCommand(authCmd)
}
